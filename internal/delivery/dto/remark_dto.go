package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRemarkRequest struct {
	Date    string `json:"date" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type UpdateRemarkRequest struct {
	Content string `json:"content" validate:"required"`
}

type RemarkResponse struct {
	ID           uuid.UUID `json:"id"`
	ScheduleKind string    `json:"schedule_kind"`
	Date         string    `json:"date"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
