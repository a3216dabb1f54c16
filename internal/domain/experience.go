package domain

import "time"

// Difficulty enumerates interview difficulty levels. The set is closed;
// no other values are accepted on write.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the accepted values in rank order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether the value belongs to the closed set.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Rank orders difficulties Easy < Medium < Hard, with unknown values
// sorting last.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	}
	return 4
}

// Experience is the aggregate for a shared interview experience.
// AuthorUsername is decorated from the owning user on read.
type Experience struct {
	ID                    int64
	JobTitle              string
	CompanyName           string
	ExperienceDescription string
	Difficulty            Difficulty
	OfferReceived         bool
	ApplicationDate       time.Time
	FinalDecisionDate     time.Time
	UserID                int64
	AuthorUsername        string
	CreatedAt             time.Time
}

// TimelineDays derives the number of days between application and final
// decision. It is recomputed on every read and never stored.
func (e *Experience) TimelineDays() int {
	return int(e.FinalDecisionDate.Sub(e.ApplicationDate).Hours() / 24)
}
