package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suportehub/chamados-service/internal/domain"
	apperrors "github.com/suportehub/chamados-service/pkg/util/errorutil"
)

func newAttendantFixture() (*AttendantService, *fakeAttendantRepo, *fakeLinkRepo) {
	attendants := newFakeAttendantRepo()
	links := newFakeLinkRepo()
	sectors := newFakeSectorRepo(1, 2)
	return NewAttendantService(attendants, sectors, links), attendants, links
}

func TestCreateAttendantWithSectorCreatesAssignment(t *testing.T) {
	svc, _, links := newAttendantFixture()

	sectorID := int64(1)
	attendant, err := svc.CreateAttendant(context.Background(), AttendantInput{
		Name:      "Bruno",
		Email:     "bruno@example.com",
		SectorID:  &sectorID,
		IsManager: true,
	})
	require.NoError(t, err)

	link, err := links.FirstByAttendant(context.Background(), attendant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), link.SectorID)
	assert.True(t, link.IsManager)
}

func TestCreateAttendantWithoutSectorSkipsAssignment(t *testing.T) {
	svc, _, links := newAttendantFixture()

	attendant, err := svc.CreateAttendant(context.Background(), AttendantInput{
		Name:  "Bruno",
		Email: "bruno@example.com",
	})
	require.NoError(t, err)

	all, err := links.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotZero(t, attendant.ID)
}

func TestCreateAttendantValidation(t *testing.T) {
	svc, _, _ := newAttendantFixture()

	badSector := int64(99)
	_, err := svc.CreateAttendant(context.Background(), AttendantInput{
		Name:     "",
		Email:    "sem-arroba",
		SectorID: &badSector,
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 422, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Details, "nome")
	assert.Contains(t, domainErr.Details, "email")
	assert.Contains(t, domainErr.Details, "setor_id")
}

func TestUpdateAttendantMovesFirstAssignment(t *testing.T) {
	svc, _, links := newAttendantFixture()

	sectorID := int64(1)
	attendant, err := svc.CreateAttendant(context.Background(), AttendantInput{
		Name:     "Bruno",
		Email:    "bruno@example.com",
		SectorID: &sectorID,
	})
	require.NoError(t, err)

	newSector := int64(2)
	_, err = svc.UpdateAttendant(context.Background(), attendant.ID, AttendantInput{
		Name:     "Bruno",
		Email:    "bruno@example.com",
		SectorID: &newSector,
	})
	require.NoError(t, err)

	all, err := links.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(2), all[0].SectorID)
}

func TestUpdateAttendantCreatesAssignmentWhenMissing(t *testing.T) {
	svc, _, links := newAttendantFixture()

	attendant, err := svc.CreateAttendant(context.Background(), AttendantInput{
		Name:  "Bruno",
		Email: "bruno@example.com",
	})
	require.NoError(t, err)

	sectorID := int64(2)
	_, err = svc.UpdateAttendant(context.Background(), attendant.ID, AttendantInput{
		Name:     "Bruno",
		Email:    "bruno@example.com",
		SectorID: &sectorID,
	})
	require.NoError(t, err)

	link, err := links.FirstByAttendant(context.Background(), attendant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), link.SectorID)
}

func TestCreateAssignmentValidatesBothEnds(t *testing.T) {
	svc, attendants, _ := newAttendantFixture()
	attendants.attendants[3] = domain.Attendant{ID: 3, Name: "Bruno", Email: "bruno@example.com"}

	_, err := svc.CreateAssignment(context.Background(), AssignmentInput{SectorID: 99, AttendantID: 42})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 422, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Details, "setor_id")
	assert.Contains(t, domainErr.Details, "atendente_id")

	item, err := svc.CreateAssignment(context.Background(), AssignmentInput{SectorID: 1, AttendantID: 3, IsManager: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.Link.SectorID)
	require.NotNil(t, item.Attendant)
	assert.Equal(t, "Bruno", item.Attendant.Name)
}

func TestDeleteAssignmentUnknownIDReturnsNotFound(t *testing.T) {
	svc, _, _ := newAttendantFixture()

	err := svc.DeleteAssignment(context.Background(), 123)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 404, domainErr.HTTPStatus)
}
