package repository

import (
	"time"

	"hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RemarkRepository interface {
	Create(db *gorm.DB, remark *entity.DailyRemark) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.DailyRemark, error)
	FindByKindAndDate(db *gorm.DB, kind entity.ScheduleKind, date time.Time) (*entity.DailyRemark, error)
	FindForRange(db *gorm.DB, kind entity.ScheduleKind, from, to time.Time) ([]entity.DailyRemark, error)
	Update(db *gorm.DB, remark *entity.DailyRemark) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
