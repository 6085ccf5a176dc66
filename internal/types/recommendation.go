package types

import "github.com/google/uuid"

// RecommendationStatus tells the caller whether ranking could proceed.
type RecommendationStatus string

const (
	// StatusOK means Pathways holds a complete ranked result.
	StatusOK RecommendationStatus = "ok"
	// StatusCannotRank means the profile is incomplete; Reason explains why.
	StatusCannotRank RecommendationStatus = "cannot_rank"
)

// Recommendation is the response for one recommendation request.
type Recommendation struct {
	UserID        uuid.UUID            `json:"user_id"`
	Status        RecommendationStatus `json:"status"`
	Reason        string               `json:"reason,omitempty"`
	MissingFields []string             `json:"missing_fields,omitempty"`
	Profile       *UserProfile         `json:"profile,omitempty"`
	CurrentTitle  string               `json:"current_title,omitempty"`
	Pathways      []Pathway            `json:"pathways"`
}

// Pathway is one recommended target job with its supporting courses.
type Pathway struct {
	Rank       int            `json:"rank"`
	Transition TransitionEdge `json:"transition"`
	Courses    []CourseScore  `json:"courses"`
}
