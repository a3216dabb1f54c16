package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fronzypie/share-your-experience/internal/domain"
)

// MemoryUserRepository is an in-process UserRepository used when no
// Postgres DSN is configured, and by tests. It honors the same
// pgx.ErrNoRows convention as the Postgres implementation.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]domain.User
}

// NewMemoryUserRepository creates an empty repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{nextID: 1, users: make(map[int64]domain.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Delete removes a user and cascades to their experiences, mirroring
// the ON DELETE CASCADE constraint in the Postgres schema.
func (r *MemoryUserRepository) Delete(_ context.Context, id int64, experiences *MemoryExperienceRepository) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	if experiences != nil {
		experiences.deleteByUser(id)
	}
	return nil
}

// MemoryExperienceRepository is the in-process ExperienceRepository
// counterpart. Author usernames are decorated from the user repository
// on every read, like the SQL join.
type MemoryExperienceRepository struct {
	mu          sync.RWMutex
	nextID      int64
	experiences map[int64]domain.Experience
	users       *MemoryUserRepository
}

// NewMemoryExperienceRepository creates an empty repository backed by
// the given user repository for author decoration.
func NewMemoryExperienceRepository(users *MemoryUserRepository) *MemoryExperienceRepository {
	return &MemoryExperienceRepository{
		nextID:      1,
		experiences: make(map[int64]domain.Experience),
		users:       users,
	}
}

func (r *MemoryExperienceRepository) Create(_ context.Context, exp *domain.Experience) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp.ID = r.nextID
	r.nextID++
	exp.CreatedAt = time.Now().UTC()
	r.experiences[exp.ID] = *exp
	return nil
}

func (r *MemoryExperienceRepository) Update(_ context.Context, exp *domain.Experience) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.experiences[exp.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	exp.CreatedAt = current.CreatedAt
	r.experiences[exp.ID] = *exp
	return nil
}

func (r *MemoryExperienceRepository) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	r.mu.RLock()
	exp, ok := r.experiences[id]
	r.mu.RUnlock()
	if !ok {
		return nil, pgx.ErrNoRows
	}
	r.decorate(ctx, &exp)
	return &exp, nil
}

func (r *MemoryExperienceRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.experiences[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.experiences, id)
	return nil
}

func (r *MemoryExperienceRepository) List(ctx context.Context, filter ExperienceFilter) ([]domain.Experience, int, error) {
	r.mu.RLock()
	matched := make([]domain.Experience, 0, len(r.experiences))
	for _, exp := range r.experiences {
		if matches(exp, filter) {
			matched = append(matched, exp)
		}
	}
	r.mu.RUnlock()

	applySort(matched, filter.Sort)

	total := len(matched)
	start := filter.Offset
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if filter.Limit <= 0 || end > total {
		end = total
	}

	page := matched[start:end]
	for i := range page {
		r.decorate(ctx, &page[i])
	}
	return page, total, nil
}

func (r *MemoryExperienceRepository) decorate(ctx context.Context, exp *domain.Experience) {
	if r.users == nil {
		return
	}
	if user, err := r.users.GetByID(ctx, exp.UserID); err == nil {
		exp.AuthorUsername = user.Username
	}
}

func (r *MemoryExperienceRepository) deleteByUser(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, exp := range r.experiences {
		if exp.UserID == userID {
			delete(r.experiences, id)
		}
	}
}

func matches(exp domain.Experience, filter ExperienceFilter) bool {
	if filter.Difficulty != nil && string(exp.Difficulty) != *filter.Difficulty {
		return false
	}
	if filter.OfferReceived != nil && exp.OfferReceived != *filter.OfferReceived {
		return false
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		term := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
		if !strings.Contains(strings.ToLower(exp.JobTitle), term) &&
			!strings.Contains(strings.ToLower(exp.CompanyName), term) &&
			!strings.Contains(strings.ToLower(exp.ExperienceDescription), term) {
			return false
		}
	}
	return true
}

func applySort(items []domain.Experience, order SortOrder) {
	switch order {
	case SortDateAsc:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].CreatedAt.Equal(items[j].CreatedAt) {
				return items[i].ID < items[j].ID
			}
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	case SortDifficulty:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Difficulty.Rank() < items[j].Difficulty.Rank()
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].CreatedAt.Equal(items[j].CreatedAt) {
				return items[i].ID > items[j].ID
			}
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}
