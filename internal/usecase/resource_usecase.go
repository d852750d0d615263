package usecase

import (
	"context"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ResourceUsecase is the resource registry: treatment rooms and therapists.
// Resources are immutable during a scheduling transaction; the registry only
// changes through these admin operations.
type ResourceUsecase interface {
	ListResources(ctx context.Context, kind entity.ScheduleKind) (*dto.ResourceListResponse, error)
	CreateResource(ctx context.Context, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error)
	UpdateResource(ctx context.Context, id uuid.UUID, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error)
	DeleteResource(ctx context.Context, id uuid.UUID) error
}

type resourceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	specs        map[entity.ScheduleKind]entity.GridSpec
	resourceRepo repository.ResourceRepository
}

func NewResourceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specs map[entity.ScheduleKind]entity.GridSpec,
	resourceRepo repository.ResourceRepository,
) ResourceUsecase {
	return &resourceUsecase{
		db:           db,
		log:          log,
		specs:        specs,
		resourceRepo: resourceRepo,
	}
}

func (u *resourceUsecase) ListResources(ctx context.Context, kind entity.ScheduleKind) (*dto.ResourceListResponse, error) {
	spec, ok := u.specs[kind]
	if !ok {
		return nil, ErrUnknownScheduleKind
	}

	resources, err := u.resourceRepo.FindByKind(u.db.WithContext(ctx), spec.ResourceKind)
	if err != nil {
		u.log.Warnf("Failed to list %s resources: %+v", kind, err)
		return nil, err
	}

	return &dto.ResourceListResponse{
		Resources: converter.ResourcesToResponses(resources),
		Total:     len(resources),
	}, nil
}

func (u *resourceUsecase) CreateResource(ctx context.Context, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	resource := &entity.Resource{
		Kind:        entity.ResourceKind(req.Kind),
		DisplayName: req.DisplayName,
		Ordering:    req.Ordering,
		ActiveDays:  req.ActiveDays,
	}
	if resource.ActiveDays == "" {
		resource.ActiveDays = "1111111"
	}

	if err := u.resourceRepo.Create(u.db.WithContext(ctx), resource); err != nil {
		u.log.Warnf("Failed to create resource %q: %+v", req.DisplayName, err)
		return nil, err
	}

	return converter.ResourceToResponse(resource), nil
}

func (u *resourceUsecase) UpdateResource(ctx context.Context, id uuid.UUID, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error) {
	resource, err := u.resourceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find resource %s: %+v", id, err)
		return nil, err
	}
	if resource == nil {
		return nil, ErrResourceNotFound
	}

	if req.DisplayName != nil {
		resource.DisplayName = *req.DisplayName
	}
	if req.Ordering != nil {
		resource.Ordering = *req.Ordering
	}
	if req.ActiveDays != nil {
		resource.ActiveDays = *req.ActiveDays
	}

	if err := u.resourceRepo.Update(u.db.WithContext(ctx), resource); err != nil {
		u.log.Warnf("Failed to update resource %s: %+v", id, err)
		return nil, err
	}

	return converter.ResourceToResponse(resource), nil
}

func (u *resourceUsecase) DeleteResource(ctx context.Context, id uuid.UUID) error {
	rows, err := u.resourceRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete resource %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrResourceNotFound
	}
	return nil
}
