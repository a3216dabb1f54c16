package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fronzypie/share-your-experience/pkg/util"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func validExperienceData() ExperienceData {
	return ExperienceData{
		JobTitle:              strPtr("Software Engineer"),
		CompanyName:           strPtr("Google"),
		ExperienceDescription: strPtr("Five rounds, mostly coding and system design."),
		Difficulty:            strPtr("Hard"),
		OfferReceived:         boolPtr(true),
		ApplicationDate:       strPtr("2025-01-01"),
		FinalDecisionDate:     strPtr("2025-01-10"),
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  string
	}{
		{"valid", "alice", "secret1", ""},
		{"valid with underscore and digits", "alice_99", "secret1", ""},
		{"empty username", "", "secret1", "Username and password are required"},
		{"empty password", "alice", "", "Username and password are required"},
		{"username too short", "ab", "secret1", "Username must be at least 3 characters long"},
		{"username too long", strings.Repeat("a", 81), "secret1", "Username must be at most 80 characters long"},
		{"password too short", "alice", "12345", "Password must be at least 6 characters long"},
		{"username with dash", "alice-x", "secret1", "Username can only contain letters, numbers, and underscores"},
		{"username with space", "alice x", "secret1", "Username can only contain letters, numbers, and underscores"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.username, tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, 400, util.ToDomainError(err).HTTPStatus)
		})
	}
}

func TestValidateExperienceData(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateExperienceData(validExperienceData()))
	})

	t.Run("missing fields", func(t *testing.T) {
		tests := []struct {
			field  string
			mutate func(*ExperienceData)
		}{
			{"job_title", func(d *ExperienceData) { d.JobTitle = nil }},
			{"company_name", func(d *ExperienceData) { d.CompanyName = nil }},
			{"experience_description", func(d *ExperienceData) { d.ExperienceDescription = nil }},
			{"difficulty", func(d *ExperienceData) { d.Difficulty = nil }},
			{"offer_received", func(d *ExperienceData) { d.OfferReceived = nil }},
			{"application_date", func(d *ExperienceData) { d.ApplicationDate = nil }},
			{"final_decision_date", func(d *ExperienceData) { d.FinalDecisionDate = nil }},
		}
		for _, tt := range tests {
			data := validExperienceData()
			tt.mutate(&data)
			err := ValidateExperienceData(data)
			require.Error(t, err, tt.field)
			assert.Equal(t, "Missing required field: "+tt.field, err.Error())
		}
	})

	t.Run("invalid difficulty", func(t *testing.T) {
		data := validExperienceData()
		data.Difficulty = strPtr("Impossible")
		err := ValidateExperienceData(data)
		require.Error(t, err)
		assert.Equal(t, "Difficulty must be one of Easy, Medium, Hard", err.Error())
	})

	t.Run("short job title", func(t *testing.T) {
		data := validExperienceData()
		data.JobTitle = strPtr("X")
		err := ValidateExperienceData(data)
		require.Error(t, err)
		assert.Equal(t, "Job title must be at least 2 characters long", err.Error())
	})

	t.Run("short company name", func(t *testing.T) {
		data := validExperienceData()
		data.CompanyName = strPtr("X")
		require.Error(t, ValidateExperienceData(data))
	})

	t.Run("short description", func(t *testing.T) {
		data := validExperienceData()
		data.ExperienceDescription = strPtr("too short")
		err := ValidateExperienceData(data)
		require.Error(t, err)
		assert.Equal(t, "Experience description must be at least 10 characters long", err.Error())
	})
}

func TestValidateDifficulty(t *testing.T) {
	assert.NoError(t, ValidateDifficulty("Easy"))
	assert.NoError(t, ValidateDifficulty("Medium"))
	assert.NoError(t, ValidateDifficulty("Hard"))
	assert.Error(t, ValidateDifficulty("easy"))
	assert.Error(t, ValidateDifficulty(""))
}
