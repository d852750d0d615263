package entity

import (
	"time"

	"github.com/google/uuid"
)

// DailyRemark is one free-text staff note per schedule kind per date,
// created and deleted independently of bookings.
type DailyRemark struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ScheduleKind ScheduleKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_remarks_kind_date" json:"schedule_kind"`
	Date         time.Time    `gorm:"type:date;not null;uniqueIndex:idx_remarks_kind_date" json:"date"`
	Content      string       `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DailyRemark) TableName() string {
	return "daily_remarks"
}
