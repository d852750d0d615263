package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateResourceRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=room therapist"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	Ordering    int    `json:"ordering"`
	ActiveDays  string `json:"active_days" validate:"omitempty,len=7"`
}

type UpdateResourceRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=100"`
	Ordering    *int    `json:"ordering,omitempty"`
	ActiveDays  *string `json:"active_days,omitempty" validate:"omitempty,len=7"`
}

type ResourceResponse struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	DisplayName string    `json:"display_name"`
	Ordering    int       `json:"ordering"`
	ActiveDays  string    `json:"active_days"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
	Total     int                `json:"total"`
}
