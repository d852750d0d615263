package usecase

import (
	"context"
	"testing"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRemarkUsecase(t *testing.T) (RemarkUsecase, *fakeRemarkRepo) {
	t.Helper()
	repo := newFakeRemarkRepo()
	return NewRemarkUsecase(testutil.GormDB(t), testutil.Logger(), repo), repo
}

func TestCreateRemark(t *testing.T) {
	u, _ := newRemarkUsecase(t)

	remark, err := u.CreateRemark(context.Background(), entity.ScheduleKindRF, &dto.CreateRemarkRequest{
		Date:    "2026-09-07",
		Content: "오전 기기 점검",
	})
	require.NoError(t, err)
	assert.Equal(t, "rf", remark.ScheduleKind)
	assert.Equal(t, "2026-09-07", remark.Date)

	// One remark per kind per date.
	_, err = u.CreateRemark(context.Background(), entity.ScheduleKindRF, &dto.CreateRemarkRequest{
		Date:    "2026-09-07",
		Content: "duplicate",
	})
	assert.ErrorIs(t, err, ErrRemarkExists)

	// The other schedule kind is a separate namespace.
	_, err = u.CreateRemark(context.Background(), entity.ScheduleKindTherapy, &dto.CreateRemarkRequest{
		Date:    "2026-09-07",
		Content: "치료사 회의 13시",
	})
	assert.NoError(t, err)
}

func TestCreateRemarkInvalid(t *testing.T) {
	u, _ := newRemarkUsecase(t)

	_, err := u.CreateRemark(context.Background(), entity.ScheduleKind("bad"), &dto.CreateRemarkRequest{Date: "2026-09-07", Content: "x"})
	assert.ErrorIs(t, err, ErrUnknownScheduleKind)

	_, err = u.CreateRemark(context.Background(), entity.ScheduleKindRF, &dto.CreateRemarkRequest{Date: "09/07/2026", Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUpdateRemark(t *testing.T) {
	u, _ := newRemarkUsecase(t)

	created, err := u.CreateRemark(context.Background(), entity.ScheduleKindRF, &dto.CreateRemarkRequest{
		Date:    "2026-09-07",
		Content: "old",
	})
	require.NoError(t, err)

	updated, err := u.UpdateRemark(context.Background(), created.ID, &dto.UpdateRemarkRequest{Content: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Content)

	_, err = u.UpdateRemark(context.Background(), uuid.New(), &dto.UpdateRemarkRequest{Content: "x"})
	assert.ErrorIs(t, err, ErrRemarkNotFound)
}

func TestDeleteRemark(t *testing.T) {
	u, _ := newRemarkUsecase(t)

	created, err := u.CreateRemark(context.Background(), entity.ScheduleKindRF, &dto.CreateRemarkRequest{
		Date:    "2026-09-07",
		Content: "x",
	})
	require.NoError(t, err)

	require.NoError(t, u.DeleteRemark(context.Background(), created.ID))
	assert.ErrorIs(t, u.DeleteRemark(context.Background(), created.ID), ErrRemarkNotFound)
}
