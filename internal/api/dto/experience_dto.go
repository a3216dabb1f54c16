package dto

import (
	"time"

	"github.com/fronzypie/share-your-experience/internal/domain"
	"github.com/fronzypie/share-your-experience/internal/validation"
)

const dateLayout = "2006-01-02"

// ExperienceRequest decodes create and partial-update payloads. Pointer
// fields distinguish absent fields from zero values.
type ExperienceRequest struct {
	JobTitle              *string `json:"job_title"`
	CompanyName           *string `json:"company_name"`
	ExperienceDescription *string `json:"experience_description"`
	Difficulty            *string `json:"difficulty"`
	OfferReceived         *bool   `json:"offer_received"`
	ApplicationDate       *string `json:"application_date"`
	FinalDecisionDate     *string `json:"final_decision_date"`
}

// Data converts the request into the validator's payload shape.
func (r ExperienceRequest) Data() validation.ExperienceData {
	return validation.ExperienceData{
		JobTitle:              r.JobTitle,
		CompanyName:           r.CompanyName,
		ExperienceDescription: r.ExperienceDescription,
		Difficulty:            r.Difficulty,
		OfferReceived:         r.OfferReceived,
		ApplicationDate:       r.ApplicationDate,
		FinalDecisionDate:     r.FinalDecisionDate,
	}
}

// ExperienceResponse is the wire shape of a single experience,
// including the derived timeline and author decoration.
type ExperienceResponse struct {
	ID                      int64     `json:"id"`
	JobTitle                string    `json:"job_title"`
	CompanyName             string    `json:"company_name"`
	ExperienceDescription   string    `json:"experience_description"`
	Difficulty              string    `json:"difficulty"`
	OfferReceived           bool      `json:"offer_received"`
	ApplicationDate         string    `json:"application_date"`
	FinalDecisionDate       string    `json:"final_decision_date"`
	ApplicationTimelineDays int       `json:"application_timeline_days"`
	UserID                  int64     `json:"user_id"`
	AuthorUsername          string    `json:"author_username"`
	CreatedAt               time.Time `json:"created_at"`
}

// NewExperienceResponse shapes a domain experience for the wire.
func NewExperienceResponse(exp *domain.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:                      exp.ID,
		JobTitle:                exp.JobTitle,
		CompanyName:             exp.CompanyName,
		ExperienceDescription:   exp.ExperienceDescription,
		Difficulty:              string(exp.Difficulty),
		OfferReceived:           exp.OfferReceived,
		ApplicationDate:         exp.ApplicationDate.Format(dateLayout),
		FinalDecisionDate:       exp.FinalDecisionDate.Format(dateLayout),
		ApplicationTimelineDays: exp.TimelineDays(),
		UserID:                  exp.UserID,
		AuthorUsername:          exp.AuthorUsername,
		CreatedAt:               exp.CreatedAt,
	}
}

// ExperienceListResponse is one page of experiences plus pagination
// metadata.
type ExperienceListResponse struct {
	Experiences []ExperienceResponse `json:"experiences"`
	Total       int                  `json:"total"`
	Page        int                  `json:"page"`
	PerPage     int                  `json:"per_page"`
	Pages       int                  `json:"pages"`
	HasNext     bool                 `json:"has_next"`
	HasPrev     bool                 `json:"has_prev"`
}
