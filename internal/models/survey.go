package models

import (
	"time"

	"github.com/google/uuid"
)

// SurveyResponse is written once on submission and never mutated. Email is
// unique; PromoSequence is the 1-based allocation order, set only for rows
// that were assigned a promotional slot.
type SurveyResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Rating        int       `json:"rating"`
	Feedback      string    `json:"feedback"`
	Improvements  []string  `json:"improvements"`
	PromoSequence *int      `json:"promo_sequence,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type SubmitSurveyRequest struct {
	Name         string   `json:"name" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	Rating       int      `json:"rating" validate:"required,min=1,max=5"`
	Feedback     string   `json:"feedback"`
	Improvements []string `json:"improvements" validate:"dive,required"`
}

type SubmitSurveyResponse struct {
	Eligible     bool   `json:"eligible"`
	DiscountCode string `json:"discount_code,omitempty"`
	Sequence     int    `json:"sequence,omitempty"`
}

// SurveyStatus is display-only: how many responses exist and how many promo
// slots remain.
type SurveyStatus struct {
	TotalResponses int `json:"total_responses"`
	RemainingSlots int `json:"remaining_slots"`
}
