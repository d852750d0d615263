package repository

import (
	"errors"

	"hospital-scheduling/internal/domain/entity"
	domainRepo "hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type resourceRepository struct{}

func NewResourceRepository() domainRepo.ResourceRepository {
	return &resourceRepository{}
}

func (r *resourceRepository) Create(db *gorm.DB, resource *entity.Resource) error {
	return db.Create(resource).Error
}

func (r *resourceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Resource, error) {
	var resource entity.Resource
	err := db.Where("id = ?", id).First(&resource).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) FindByKind(db *gorm.DB, kind entity.ResourceKind) ([]entity.Resource, error) {
	var resources []entity.Resource
	err := db.Where("kind = ?", kind).Order("ordering, display_name").Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepository) Update(db *gorm.DB, resource *entity.Resource) error {
	return db.Save(resource).Error
}

func (r *resourceRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Resource{})
	return result.RowsAffected, result.Error
}
