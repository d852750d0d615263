package usecase

import (
	"context"
	"time"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RemarkUsecase manages the free-text staff note attached to one date per
// schedule kind.
type RemarkUsecase interface {
	CreateRemark(ctx context.Context, kind entity.ScheduleKind, req *dto.CreateRemarkRequest) (*dto.RemarkResponse, error)
	UpdateRemark(ctx context.Context, id uuid.UUID, req *dto.UpdateRemarkRequest) (*dto.RemarkResponse, error)
	DeleteRemark(ctx context.Context, id uuid.UUID) error
}

type remarkUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	remarkRepo repository.RemarkRepository
}

func NewRemarkUsecase(db *gorm.DB, log *logrus.Logger, remarkRepo repository.RemarkRepository) RemarkUsecase {
	return &remarkUsecase{
		db:         db,
		log:        log,
		remarkRepo: remarkRepo,
	}
}

func (u *remarkUsecase) CreateRemark(ctx context.Context, kind entity.ScheduleKind, req *dto.CreateRemarkRequest) (*dto.RemarkResponse, error) {
	if !kind.Valid() {
		return nil, ErrUnknownScheduleKind
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	existing, err := u.remarkRepo.FindByKindAndDate(u.db.WithContext(ctx), kind, date)
	if err != nil {
		u.log.Warnf("Failed to check existing remark %s/%s: %+v", kind, req.Date, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrRemarkExists
	}

	remark := &entity.DailyRemark{
		ScheduleKind: kind,
		Date:         date,
		Content:      req.Content,
	}
	if err := u.remarkRepo.Create(u.db.WithContext(ctx), remark); err != nil {
		u.log.Warnf("Failed to create remark %s/%s: %+v", kind, req.Date, err)
		return nil, err
	}

	return converter.RemarkToResponse(remark), nil
}

func (u *remarkUsecase) UpdateRemark(ctx context.Context, id uuid.UUID, req *dto.UpdateRemarkRequest) (*dto.RemarkResponse, error) {
	remark, err := u.remarkRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find remark %s: %+v", id, err)
		return nil, err
	}
	if remark == nil {
		return nil, ErrRemarkNotFound
	}

	remark.Content = req.Content
	if err := u.remarkRepo.Update(u.db.WithContext(ctx), remark); err != nil {
		u.log.Warnf("Failed to update remark %s: %+v", id, err)
		return nil, err
	}

	return converter.RemarkToResponse(remark), nil
}

func (u *remarkUsecase) DeleteRemark(ctx context.Context, id uuid.UUID) error {
	rows, err := u.remarkRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete remark %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrRemarkNotFound
	}
	return nil
}
