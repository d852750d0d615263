package entity

import (
	"time"

	"github.com/google/uuid"
)

// ResourceKind distinguishes the two bookable resource types.
type ResourceKind string

const (
	ResourceKindRoom      ResourceKind = "room"
	ResourceKindTherapist ResourceKind = "therapist"
)

// Resource is a bookable entity with a per-slot capacity of one: an RF
// treatment room or a manual-therapy therapist.
type Resource struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Kind        ResourceKind `gorm:"type:varchar(20);not null;index" json:"kind"`
	DisplayName string       `gorm:"type:varchar(100);not null" json:"display_name"`
	Ordering    int          `gorm:"not null;default:0" json:"ordering"`
	// ActiveDays is a 7-character mask, Sunday first; '1' means the
	// resource works that weekday. Rooms are typically "1111111",
	// therapists may be off on Saturdays ("1111110").
	ActiveDays string    `gorm:"type:char(7);not null;default:'1111111'" json:"active_days"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Resource) TableName() string {
	return "resources"
}

// ActiveOn reports whether the resource works on the given weekday.
func (r *Resource) ActiveOn(day time.Weekday) bool {
	if len(r.ActiveDays) != 7 {
		return true
	}
	return r.ActiveDays[int(day)] == '1'
}
