package repository

import (
	"errors"
	"time"

	"hospital-scheduling/internal/domain/entity"
	domainRepo "hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type remarkRepository struct{}

func NewRemarkRepository() domainRepo.RemarkRepository {
	return &remarkRepository{}
}

func (r *remarkRepository) Create(db *gorm.DB, remark *entity.DailyRemark) error {
	return db.Create(remark).Error
}

func (r *remarkRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.DailyRemark, error) {
	var remark entity.DailyRemark
	err := db.Where("id = ?", id).First(&remark).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &remark, nil
}

func (r *remarkRepository) FindByKindAndDate(db *gorm.DB, kind entity.ScheduleKind, date time.Time) (*entity.DailyRemark, error) {
	var remark entity.DailyRemark
	err := db.Where("schedule_kind = ? AND date = ?", kind, date).First(&remark).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &remark, nil
}

func (r *remarkRepository) FindForRange(db *gorm.DB, kind entity.ScheduleKind, from, to time.Time) ([]entity.DailyRemark, error) {
	var remarks []entity.DailyRemark
	err := db.
		Where("schedule_kind = ? AND date BETWEEN ? AND ?", kind, from, to).
		Order("date").
		Find(&remarks).Error
	if err != nil {
		return nil, err
	}
	return remarks, nil
}

func (r *remarkRepository) Update(db *gorm.DB, remark *entity.DailyRemark) error {
	return db.Save(remark).Error
}

func (r *remarkRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.DailyRemark{})
	return result.RowsAffected, result.Error
}
