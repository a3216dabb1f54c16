package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fronzypie/share-your-experience/internal/domain"
	"github.com/fronzypie/share-your-experience/internal/repository"
	"github.com/fronzypie/share-your-experience/internal/validation"
	"github.com/fronzypie/share-your-experience/pkg/util"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

type experienceFixture struct {
	svc   *ExperienceService
	users *repository.MemoryUserRepository
	alice int64
	bob   int64
}

func newExperienceFixture(t *testing.T) *experienceFixture {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	experiences := repository.NewMemoryExperienceRepository(users)

	ctx := context.Background()
	alice := &domain.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, alice))
	bob := &domain.User{Username: "bob", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, bob))

	return &experienceFixture{
		svc:   NewExperienceService(testConfig(), experiences),
		users: users,
		alice: alice.ID,
		bob:   bob.ID,
	}
}

func payload(applicationDate, finalDecisionDate string) validation.ExperienceData {
	return validation.ExperienceData{
		JobTitle:              strPtr("Software Engineer"),
		CompanyName:           strPtr("Google"),
		ExperienceDescription: strPtr("Five rounds, mostly coding and system design."),
		Difficulty:            strPtr("Hard"),
		OfferReceived:         boolPtr(true),
		ApplicationDate:       strPtr(applicationDate),
		FinalDecisionDate:     strPtr(finalDecisionDate),
	}
}

func TestCreateExperience(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	exp, err := f.svc.Create(ctx, f.alice, payload("2025-01-01", "2025-01-10"))
	require.NoError(t, err)
	assert.NotZero(t, exp.ID)
	assert.Equal(t, f.alice, exp.UserID)
	assert.Equal(t, "alice", exp.AuthorUsername)
	assert.Equal(t, 9, exp.TimelineDays())
	assert.False(t, exp.CreatedAt.IsZero())
}

func TestCreateExperienceInvalidDateFormat(t *testing.T) {
	f := newExperienceFixture(t)

	_, err := f.svc.Create(context.Background(), f.alice, payload("01/01/2025", "2025-01-10"))
	require.Error(t, err)
	assert.Equal(t, "Invalid date format. Use YYYY-MM-DD", err.Error())
	assert.Equal(t, 400, util.ToDomainError(err).HTTPStatus)
}

func TestCreateExperienceDateOrderInvariant(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.alice, payload("2025-01-10", "2025-01-01"))
	require.Error(t, err)
	assert.Equal(t, "Final decision date cannot be before application date", err.Error())

	// Nothing was persisted.
	result, listErr := f.svc.List(ctx, ListParams{Page: 1})
	require.NoError(t, listErr)
	assert.Equal(t, 0, result.Total)

	// Equal dates are allowed.
	exp, err := f.svc.Create(ctx, f.alice, payload("2025-01-10", "2025-01-10"))
	require.NoError(t, err)
	assert.Equal(t, 0, exp.TimelineDays())
}

func TestGetExperience(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.alice, payload("2025-01-01", "2025-01-10"))
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "alice", got.AuthorUsername)

	_, err = f.svc.Get(ctx, 9999)
	require.Error(t, err)
	assert.Equal(t, "Experience not found", err.Error())
	assert.Equal(t, 404, util.ToDomainError(err).HTTPStatus)
}

func TestUpdateMergesPartialPayload(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.alice, payload("2025-01-01", "2025-01-10"))
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, created.ID, f.alice, validation.ExperienceData{
		JobTitle:   strPtr("Staff Engineer"),
		Difficulty: strPtr("Medium"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.JobTitle)
	assert.Equal(t, domain.DifficultyMedium, updated.Difficulty)
	// Untouched fields keep their prior values.
	assert.Equal(t, "Google", updated.CompanyName)
	assert.True(t, updated.OfferReceived)
	assert.Equal(t, 9, updated.TimelineDays())
}

func TestUpdateRechecksDateInvariantAgainstMergedRecord(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.alice, payload("2025-01-01", "2025-01-10"))
	require.NoError(t, err)

	// Moving only the application date past the stored decision date
	// must fail.
	_, err = f.svc.Update(ctx, created.ID, f.alice, validation.ExperienceData{
		ApplicationDate: strPtr("2025-01-15"),
	})
	require.Error(t, err)
	assert.Equal(t, "Final decision date cannot be before application date", err.Error())

	// The record is unchanged.
	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.TimelineDays())
}

func TestUpdateRejectsInvalidDifficulty(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.alice, payload("2025-01-01", "2025-01-10"))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, created.ID, f.alice, validation.ExperienceData{
		Difficulty: strPtr("Brutal"),
	})
	require.Error(t, err)
	assert.Equal(t, "Difficulty must be one of Easy, Medium, Hard", err.Error())
}

func TestUpdateOwnershipAndExistence(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.alice, payload("2025-01-01", "2025-01-10"))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, created.ID, f.bob, validation.ExperienceData{JobTitle: strPtr("Hacker")})
	require.Error(t, err)
	assert.Equal(t, 403, util.ToDomainError(err).HTTPStatus)

	_, err = f.svc.Update(ctx, 9999, f.alice, validation.ExperienceData{JobTitle: strPtr("Hacker")})
	require.Error(t, err)
	assert.Equal(t, 404, util.ToDomainError(err).HTTPStatus)
}

func TestDeleteExperience(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.alice, payload("2025-01-01", "2025-01-10"))
	require.NoError(t, err)

	err = f.svc.Delete(ctx, created.ID, f.bob)
	require.Error(t, err)
	assert.Equal(t, 403, util.ToDomainError(err).HTTPStatus)

	require.NoError(t, f.svc.Delete(ctx, created.ID, f.alice))

	err = f.svc.Delete(ctx, created.ID, f.alice)
	require.Error(t, err)
	assert.Equal(t, 404, util.ToDomainError(err).HTTPStatus)
}

func TestListPaginationBounds(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	_, err := f.svc.List(ctx, ListParams{Page: 0})
	require.Error(t, err)
	assert.Equal(t, "Page must be >= 1", err.Error())

	_, err = f.svc.List(ctx, ListParams{Page: 1, PerPage: 101})
	require.Error(t, err)
	assert.Equal(t, "Per page must be <= 100", err.Error())
}

func TestListPagination(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := f.svc.Create(ctx, f.alice, payload("2025-01-01", fmt.Sprintf("2025-01-%02d", i+2)))
		require.NoError(t, err)
	}

	result, err := f.svc.List(ctx, ListParams{Page: 2, PerPage: 5})
	require.NoError(t, err)
	assert.Len(t, result.Experiences, 5)
	assert.Equal(t, 12, result.Total)
	assert.Equal(t, 3, result.Pages)
	assert.True(t, result.HasNext)
	assert.True(t, result.HasPrev)

	last, err := f.svc.List(ctx, ListParams{Page: 3, PerPage: 5})
	require.NoError(t, err)
	assert.Len(t, last.Experiences, 2)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)
}

func TestListEmpty(t *testing.T) {
	f := newExperienceFixture(t)

	result, err := f.svc.List(context.Background(), ListParams{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.Pages)
	assert.Empty(t, result.Experiences)
	assert.False(t, result.HasNext)
	assert.False(t, result.HasPrev)
}

func TestListFilters(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	create := func(difficulty, company string, offer bool) {
		data := payload("2025-01-01", "2025-01-10")
		data.Difficulty = strPtr(difficulty)
		data.CompanyName = strPtr(company)
		data.OfferReceived = boolPtr(offer)
		_, err := f.svc.Create(ctx, f.alice, data)
		require.NoError(t, err)
	}
	create("Hard", "Google", true)
	create("Hard", "Netflix", false)
	create("Easy", "Google", true)
	create("Medium", "Amazon", false)

	byDifficulty, err := f.svc.List(ctx, ListParams{Page: 1, Difficulty: strPtr("Hard")})
	require.NoError(t, err)
	assert.Equal(t, 2, byDifficulty.Total)
	for _, exp := range byDifficulty.Experiences {
		assert.Equal(t, domain.DifficultyHard, exp.Difficulty)
	}

	byOffer, err := f.svc.List(ctx, ListParams{Page: 1, OfferReceived: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, 2, byOffer.Total)

	// Search is case-insensitive and matches substrings.
	bySearch, err := f.svc.List(ctx, ListParams{Page: 1, Search: strPtr("goog")})
	require.NoError(t, err)
	assert.Equal(t, 2, bySearch.Total)

	// Combined filters apply as a logical AND.
	combined, err := f.svc.List(ctx, ListParams{Page: 1, Difficulty: strPtr("Hard"), Search: strPtr("google")})
	require.NoError(t, err)
	assert.Equal(t, 1, combined.Total)
	assert.Equal(t, "Google", combined.Experiences[0].CompanyName)
}

func TestListSortByDifficulty(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	for _, difficulty := range []string{"Hard", "Easy", "Medium", "Easy", "Hard"} {
		data := payload("2025-01-01", "2025-01-10")
		data.Difficulty = strPtr(difficulty)
		_, err := f.svc.Create(ctx, f.alice, data)
		require.NoError(t, err)
	}

	result, err := f.svc.List(ctx, ListParams{Page: 1, SortBy: "difficulty"})
	require.NoError(t, err)

	lastRank := 0
	for _, exp := range result.Experiences {
		assert.GreaterOrEqual(t, exp.Difficulty.Rank(), lastRank)
		lastRank = exp.Difficulty.Rank()
	}
}

func TestListSortByDate(t *testing.T) {
	f := newExperienceFixture(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		exp, err := f.svc.Create(ctx, f.alice, payload("2025-01-01", "2025-01-10"))
		require.NoError(t, err)
		ids = append(ids, exp.ID)
	}

	asc, err := f.svc.List(ctx, ListParams{Page: 1, SortBy: "date_asc"})
	require.NoError(t, err)
	require.Len(t, asc.Experiences, 3)
	for i := 1; i < len(asc.Experiences); i++ {
		assert.False(t, asc.Experiences[i].CreatedAt.Before(asc.Experiences[i-1].CreatedAt))
	}

	desc, err := f.svc.List(ctx, ListParams{Page: 1})
	require.NoError(t, err)
	require.Len(t, desc.Experiences, 3)
	assert.Equal(t, ids[len(ids)-1], desc.Experiences[0].ID)
}
