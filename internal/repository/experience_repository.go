package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fronzypie/share-your-experience/internal/domain"
)

// SortOrder enumerates supported list orderings.
type SortOrder string

const (
	SortDateDesc   SortOrder = "date_desc"
	SortDateAsc    SortOrder = "date_asc"
	SortDifficulty SortOrder = "difficulty"
)

// ExperienceFilter is the query specification handed to the storage
// layer: optional predicates plus sort key and page window.
type ExperienceFilter struct {
	Difficulty    *string
	OfferReceived *bool
	SearchTerm    *string
	Sort          SortOrder
	Limit         int
	Offset        int
}

// ExperienceRepository encapsulates experience persistence. Reads
// return records decorated with the author username.
type ExperienceRepository interface {
	Create(ctx context.Context, exp *domain.Experience) error
	Update(ctx context.Context, exp *domain.Experience) error
	GetByID(ctx context.Context, id int64) (*domain.Experience, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ExperienceFilter) ([]domain.Experience, int, error)
}

type experienceRepository struct {
	pool *pgxpool.Pool
}

// NewExperienceRepository instantiates the Postgres-backed repository.
func NewExperienceRepository(pool *pgxpool.Pool) ExperienceRepository {
	return &experienceRepository{pool: pool}
}

func (r *experienceRepository) Create(ctx context.Context, exp *domain.Experience) error {
	const query = `
        INSERT INTO experiences (job_title, company_name, experience_description, difficulty, offer_received, application_date, final_decision_date, user_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		exp.JobTitle,
		exp.CompanyName,
		exp.ExperienceDescription,
		exp.Difficulty,
		exp.OfferReceived,
		exp.ApplicationDate,
		exp.FinalDecisionDate,
		exp.UserID,
	).Scan(&exp.ID, &exp.CreatedAt)
}

func (r *experienceRepository) Update(ctx context.Context, exp *domain.Experience) error {
	const query = `
        UPDATE experiences SET job_title=$1, company_name=$2, experience_description=$3,
            difficulty=$4, offer_received=$5, application_date=$6, final_decision_date=$7
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		exp.JobTitle,
		exp.CompanyName,
		exp.ExperienceDescription,
		exp.Difficulty,
		exp.OfferReceived,
		exp.ApplicationDate,
		exp.FinalDecisionDate,
		exp.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *experienceRepository) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	const query = selectColumns + ` WHERE e.id=$1`
	var exp domain.Experience
	if err := r.pool.QueryRow(ctx, query, id).Scan(scanTargets(&exp)...); err != nil {
		return nil, err
	}
	return &exp, nil
}

func (r *experienceRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM experiences WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const selectColumns = `
        SELECT e.id, e.job_title, e.company_name, e.experience_description, e.difficulty,
               e.offer_received, e.application_date, e.final_decision_date, e.user_id,
               u.username, e.created_at
        FROM experiences e
        JOIN users u ON u.id = e.user_id`

func (r *experienceRepository) List(ctx context.Context, filter ExperienceFilter) ([]domain.Experience, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Difficulty != nil {
		args = append(args, *filter.Difficulty)
		clauses = append(clauses, fmt.Sprintf("e.difficulty=$%d", len(args)))
	}
	if filter.OfferReceived != nil {
		args = append(args, *filter.OfferReceived)
		clauses = append(clauses, fmt.Sprintf("e.offer_received=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(e.job_title) LIKE %s OR LOWER(e.company_name) LIKE %s OR LOWER(e.experience_description) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM experiences e WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		selectColumns, where, orderClause(filter.Sort), filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanExperiences(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func orderClause(sort SortOrder) string {
	switch sort {
	case SortDateAsc:
		return "e.created_at ASC"
	case SortDifficulty:
		return "CASE e.difficulty WHEN 'Easy' THEN 1 WHEN 'Medium' THEN 2 WHEN 'Hard' THEN 3 ELSE 4 END"
	default:
		return "e.created_at DESC"
	}
}

func scanTargets(exp *domain.Experience) []any {
	return []any{
		&exp.ID,
		&exp.JobTitle,
		&exp.CompanyName,
		&exp.ExperienceDescription,
		&exp.Difficulty,
		&exp.OfferReceived,
		&exp.ApplicationDate,
		&exp.FinalDecisionDate,
		&exp.UserID,
		&exp.AuthorUsername,
		&exp.CreatedAt,
	}
}

func scanExperiences(rows pgx.Rows) ([]domain.Experience, error) {
	result := []domain.Experience{}
	for rows.Next() {
		var exp domain.Experience
		if err := rows.Scan(scanTargets(&exp)...); err != nil {
			return nil, err
		}
		result = append(result, exp)
	}
	return result, rows.Err()
}
