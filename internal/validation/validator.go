// Package validation provides pure shape checks for incoming payloads.
package validation

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/fronzypie/share-your-experience/internal/domain"
	"github.com/fronzypie/share-your-experience/pkg/util"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 80
	MinPasswordLength = 6

	MinTitleLength       = 2
	MinDescriptionLength = 10
)

// ExperienceData carries the decoded experience payload. Nil fields
// were absent from the request body.
type ExperienceData struct {
	JobTitle              *string
	CompanyName           *string
	ExperienceDescription *string
	Difficulty            *string
	OfferReceived         *bool
	ApplicationDate       *string
	FinalDecisionDate     *string
}

// ValidateRegistration checks username and password bounds.
func ValidateRegistration(username, password string) error {
	if username == "" || password == "" {
		return util.NewValidationError("Username and password are required")
	}
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return util.NewValidationError(fmt.Sprintf("Username must be at least %d characters long", MinUsernameLength))
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return util.NewValidationError(fmt.Sprintf("Username must be at most %d characters long", MaxUsernameLength))
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return util.NewValidationError(fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return util.NewValidationError("Username can only contain letters, numbers, and underscores")
		}
	}
	return nil
}

// ValidateExperienceData checks that all required fields are present and
// well-formed for creation.
func ValidateExperienceData(data ExperienceData) error {
	required := []struct {
		name    string
		present bool
	}{
		{"job_title", data.JobTitle != nil},
		{"company_name", data.CompanyName != nil},
		{"experience_description", data.ExperienceDescription != nil},
		{"difficulty", data.Difficulty != nil},
		{"offer_received", data.OfferReceived != nil},
		{"application_date", data.ApplicationDate != nil},
		{"final_decision_date", data.FinalDecisionDate != nil},
	}
	for _, field := range required {
		if !field.present {
			return util.NewValidationError("Missing required field: " + field.name)
		}
	}

	if err := ValidateDifficulty(*data.Difficulty); err != nil {
		return err
	}
	if utf8.RuneCountInString(*data.JobTitle) < MinTitleLength {
		return util.NewValidationError(fmt.Sprintf("Job title must be at least %d characters long", MinTitleLength))
	}
	if utf8.RuneCountInString(*data.CompanyName) < MinTitleLength {
		return util.NewValidationError(fmt.Sprintf("Company name must be at least %d characters long", MinTitleLength))
	}
	if utf8.RuneCountInString(*data.ExperienceDescription) < MinDescriptionLength {
		return util.NewValidationError(fmt.Sprintf("Experience description must be at least %d characters long", MinDescriptionLength))
	}
	return nil
}

// ValidateDifficulty enforces the closed difficulty set.
func ValidateDifficulty(value string) error {
	if !domain.Difficulty(value).Valid() {
		return util.NewValidationError("Difficulty must be one of Easy, Medium, Hard")
	}
	return nil
}
