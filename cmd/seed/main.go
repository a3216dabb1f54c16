// Command seed populates the database with sample accounts and
// interview experiences for local development.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fronzypie/share-your-experience/internal/auth"
	"github.com/fronzypie/share-your-experience/internal/config"
	"github.com/fronzypie/share-your-experience/internal/domain"
	"github.com/fronzypie/share-your-experience/internal/observability"
	"github.com/fronzypie/share-your-experience/internal/persistence"
	"github.com/fronzypie/share-your-experience/internal/repository"
)

type seedExperience struct {
	username          string
	jobTitle          string
	companyName       string
	difficulty        domain.Difficulty
	offerReceived     bool
	description       string
	applicationDate   string
	finalDecisionDate string
}

var seedUsers = []string{"sarah_tech", "john_dev", "alex_engineer", "emily_coder", "mike_swe"}

var seedExperiences = []seedExperience{
	{
		username:          "sarah_tech",
		jobTitle:          "Software Engineer",
		companyName:       "Google",
		difficulty:        domain.DifficultyHard,
		offerReceived:     true,
		description:       "Had 5 rounds of interviews. Started with phone screen covering data structures. Then 4 on-site rounds: 2 coding, 1 system design, and 1 behavioral. Very challenging but fair.",
		applicationDate:   "2025-08-15",
		finalDecisionDate: "2025-09-20",
	},
	{
		username:          "john_dev",
		jobTitle:          "Frontend Developer",
		companyName:       "Meta",
		difficulty:        domain.DifficultyMedium,
		offerReceived:     true,
		description:       "Recruiter call, then technical phone screen on React and JavaScript fundamentals. Two virtual on-sites: one on building a React component from scratch, another on feed system design.",
		applicationDate:   "2025-07-10",
		finalDecisionDate: "2025-08-05",
	},
	{
		username:          "alex_engineer",
		jobTitle:          "Backend Engineer",
		companyName:       "Stripe",
		difficulty:        domain.DifficultyHard,
		offerReceived:     false,
		description:       "Practical coding rounds built around API design and debugging a payment pipeline. Interviewers dug deep into tradeoffs. Rejected after the final round but learned a lot.",
		applicationDate:   "2025-06-01",
		finalDecisionDate: "2025-07-02",
	},
	{
		username:          "emily_coder",
		jobTitle:          "Data Engineer",
		companyName:       "Snowflake",
		difficulty:        domain.DifficultyMedium,
		offerReceived:     true,
		description:       "SQL-heavy screen followed by a take-home pipeline exercise and one on-site loop covering warehousing concepts and behavioral questions.",
		applicationDate:   "2025-05-12",
		finalDecisionDate: "2025-06-10",
	},
	{
		username:          "mike_swe",
		jobTitle:          "Junior Developer",
		companyName:       "Local Startup",
		difficulty:        domain.DifficultyEasy,
		offerReceived:     true,
		description:       "Single casual round with the founding team, pair programming on a small feature. Offer came the next day.",
		applicationDate:   "2025-09-01",
		finalDecisionDate: "2025-09-03",
	},
}

const seedPassword = "password123"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger = logger.With(zap.String("seed_run", uuid.NewString()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("POSTGRES_DSN is required for seeding")
	}

	if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(pool)
	experienceRepo := repository.NewExperienceRepository(pool)

	userIDs := make(map[string]int64, len(seedUsers))
	for _, username := range seedUsers {
		existing, err := userRepo.GetByUsername(ctx, username)
		if err == nil {
			userIDs[username] = existing.ID
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			logger.Fatal("failed to look up user", zap.String("username", username), zap.Error(err))
		}

		hash, err := auth.HashPassword(seedPassword, cfg.Auth.BcryptCost)
		if err != nil {
			logger.Fatal("failed to hash password", zap.Error(err))
		}
		user := &domain.User{Username: username, PasswordHash: hash}
		if err := userRepo.Create(ctx, user); err != nil {
			logger.Fatal("failed to create user", zap.String("username", username), zap.Error(err))
		}
		userIDs[username] = user.ID
		logger.Info("created user", zap.String("username", username), zap.Int64("id", user.ID))
	}

	created := 0
	for _, seed := range seedExperiences {
		applicationDate, err := time.Parse("2006-01-02", seed.applicationDate)
		if err != nil {
			logger.Fatal("bad seed application date", zap.Error(err))
		}
		finalDecisionDate, err := time.Parse("2006-01-02", seed.finalDecisionDate)
		if err != nil {
			logger.Fatal("bad seed decision date", zap.Error(err))
		}

		exp := &domain.Experience{
			JobTitle:              seed.jobTitle,
			CompanyName:           seed.companyName,
			ExperienceDescription: seed.description,
			Difficulty:            seed.difficulty,
			OfferReceived:         seed.offerReceived,
			ApplicationDate:       applicationDate,
			FinalDecisionDate:     finalDecisionDate,
			UserID:                userIDs[seed.username],
		}
		if err := experienceRepo.Create(ctx, exp); err != nil {
			logger.Fatal("failed to create experience", zap.String("company", seed.companyName), zap.Error(err))
		}
		created++
	}

	logger.Info("seeding complete", zap.Int("users", len(userIDs)), zap.Int("experiences", created))
}
