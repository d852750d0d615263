package repository

import (
	"hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResourceRepository interface {
	Create(db *gorm.DB, resource *entity.Resource) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Resource, error)
	// FindByKind returns resources of one kind ordered by their configured
	// ordering.
	FindByKind(db *gorm.DB, kind entity.ResourceKind) ([]entity.Resource, error)
	Update(db *gorm.DB, resource *entity.Resource) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
