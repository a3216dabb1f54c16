package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fronzypie/share-your-experience/internal/config"
	"github.com/fronzypie/share-your-experience/internal/domain"
	"github.com/fronzypie/share-your-experience/internal/repository"
	"github.com/fronzypie/share-your-experience/internal/validation"
	"github.com/fronzypie/share-your-experience/pkg/util"
)

const dateLayout = "2006-01-02"

// ExperienceService coordinates experience CRUD and the listing query
// engine.
type ExperienceService struct {
	experiences     repository.ExperienceRepository
	defaultPageSize int
	maxPageSize     int
}

// NewExperienceService constructs the service.
func NewExperienceService(cfg config.Config, experiences repository.ExperienceRepository) *ExperienceService {
	return &ExperienceService{
		experiences:     experiences,
		defaultPageSize: cfg.Pagination.DefaultPageSize,
		maxPageSize:     cfg.Pagination.MaxPageSize,
	}
}

// ListParams captures the listing query: page window, optional filters
// and sort key.
type ListParams struct {
	Page          int
	PerPage       int
	Difficulty    *string
	OfferReceived *bool
	Search        *string
	SortBy        string
}

// ListResult is one page of decorated experiences plus pagination info.
type ListResult struct {
	Experiences []domain.Experience
	Total       int
	Page        int
	PerPage     int
	Pages       int
	HasNext     bool
	HasPrev     bool
}

// List returns a filtered, sorted page of experiences. Pagination
// bounds are rejected before any storage access.
func (s *ExperienceService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.PerPage <= 0 {
		params.PerPage = s.defaultPageSize
	}
	if params.Page < 1 {
		return nil, util.NewValidationError("Page must be >= 1")
	}
	if params.PerPage > s.maxPageSize {
		return nil, util.NewValidationError(fmt.Sprintf("Per page must be <= %d", s.maxPageSize))
	}

	filter := repository.ExperienceFilter{
		Difficulty:    params.Difficulty,
		OfferReceived: params.OfferReceived,
		SearchTerm:    params.Search,
		Sort:          sortOrder(params.SortBy),
		Limit:         params.PerPage,
		Offset:        (params.Page - 1) * params.PerPage,
	}

	items, total, err := s.experiences.List(ctx, filter)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	pages := 0
	if total > 0 {
		pages = (total + params.PerPage - 1) / params.PerPage
	}
	return &ListResult{
		Experiences: items,
		Total:       total,
		Page:        params.Page,
		PerPage:     params.PerPage,
		Pages:       pages,
		HasNext:     params.Page < pages,
		HasPrev:     params.Page > 1,
	}, nil
}

// Get fetches a single experience by id.
func (s *ExperienceService) Get(ctx context.Context, id int64) (*domain.Experience, error) {
	exp, err := s.experiences.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Experience")
		}
		return nil, util.NewInternalError(err)
	}
	return exp, nil
}

// Create validates and persists a new experience authored by userID.
func (s *ExperienceService) Create(ctx context.Context, userID int64, data validation.ExperienceData) (*domain.Experience, error) {
	if err := validation.ValidateExperienceData(data); err != nil {
		return nil, err
	}

	applicationDate, err := parseDate(*data.ApplicationDate)
	if err != nil {
		return nil, err
	}
	finalDecisionDate, err := parseDate(*data.FinalDecisionDate)
	if err != nil {
		return nil, err
	}
	if finalDecisionDate.Before(applicationDate) {
		return nil, util.NewValidationError("Final decision date cannot be before application date")
	}

	exp := &domain.Experience{
		JobTitle:              *data.JobTitle,
		CompanyName:           *data.CompanyName,
		ExperienceDescription: *data.ExperienceDescription,
		Difficulty:            domain.Difficulty(*data.Difficulty),
		OfferReceived:         *data.OfferReceived,
		ApplicationDate:       applicationDate,
		FinalDecisionDate:     finalDecisionDate,
		UserID:                userID,
	}
	if err := s.experiences.Create(ctx, exp); err != nil {
		return nil, util.NewInternalError(err)
	}

	// Re-read for the author decoration.
	created, err := s.experiences.GetByID(ctx, exp.ID)
	if err != nil {
		return nil, util.NewInternalError(err)
	}
	return created, nil
}

// Update applies a partial payload to an owned experience. Absent
// fields retain their prior value; the date-ordering invariant is
// re-checked against the merged record.
func (s *ExperienceService) Update(ctx context.Context, id, userID int64, data validation.ExperienceData) (*domain.Experience, error) {
	exp, err := s.experiences.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Experience")
		}
		return nil, util.NewInternalError(err)
	}
	if exp.UserID != userID {
		return nil, util.NewForbidden("Forbidden: You can only edit your own experiences")
	}

	if data.Difficulty != nil {
		if err := validation.ValidateDifficulty(*data.Difficulty); err != nil {
			return nil, err
		}
		exp.Difficulty = domain.Difficulty(*data.Difficulty)
	}
	if data.ApplicationDate != nil {
		parsed, err := parseDate(*data.ApplicationDate)
		if err != nil {
			return nil, err
		}
		exp.ApplicationDate = parsed
	}
	if data.FinalDecisionDate != nil {
		parsed, err := parseDate(*data.FinalDecisionDate)
		if err != nil {
			return nil, err
		}
		exp.FinalDecisionDate = parsed
	}
	if data.JobTitle != nil {
		exp.JobTitle = *data.JobTitle
	}
	if data.CompanyName != nil {
		exp.CompanyName = *data.CompanyName
	}
	if data.ExperienceDescription != nil {
		exp.ExperienceDescription = *data.ExperienceDescription
	}
	if data.OfferReceived != nil {
		exp.OfferReceived = *data.OfferReceived
	}

	if exp.FinalDecisionDate.Before(exp.ApplicationDate) {
		return nil, util.NewValidationError("Final decision date cannot be before application date")
	}

	if err := s.experiences.Update(ctx, exp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Experience")
		}
		return nil, util.NewInternalError(err)
	}
	return exp, nil
}

// Delete removes an owned experience permanently.
func (s *ExperienceService) Delete(ctx context.Context, id, userID int64) error {
	exp, err := s.experiences.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Experience")
		}
		return util.NewInternalError(err)
	}
	if exp.UserID != userID {
		return util.NewForbidden("Forbidden: You can only delete your own experiences")
	}

	if err := s.experiences.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Experience")
		}
		return util.NewInternalError(err)
	}
	return nil
}

func sortOrder(sortBy string) repository.SortOrder {
	switch sortBy {
	case string(repository.SortDateAsc):
		return repository.SortDateAsc
	case string(repository.SortDifficulty):
		return repository.SortDifficulty
	default:
		return repository.SortDateDesc
	}
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, util.NewValidationError("Invalid date format. Use YYYY-MM-DD")
	}
	return parsed, nil
}
