package usecases

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terplist/terplist/internal/domain/access"
	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/strain"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type stubStrainRepo struct {
	strain.Repository
	strains map[string]*strain.Strain
	updated []*strain.Strain
}

func (s *stubStrainRepo) GetBySID(_ context.Context, sid string) (*strain.Strain, error) {
	return s.strains[sid], nil
}

func (s *stubStrainRepo) Update(_ context.Context, entity *strain.Strain) error {
	s.updated = append(s.updated, entity)
	return nil
}

type stubProducerRepo struct {
	producer.Repository
	producers map[uint]*producer.Producer
}

func (s *stubProducerRepo) GetByID(_ context.Context, id uint) (*producer.Producer, error) {
	return s.producers[id], nil
}

type stubAuthorizer struct {
	allow bool
}

func (a *stubAuthorizer) CanManage(_ context.Context, _ *access.Actor, _ access.Target) (bool, error) {
	return a.allow, nil
}

type recordingNotifier struct {
	calls []string
}

func (n *recordingNotifier) NotifyDropChanged(_ uint, strainName string, _ *time.Time) {
	n.calls = append(n.calls, strainName)
}

func strainFixtures(t *testing.T, dropAt *time.Time) (*stubStrainRepo, *stubProducerRepo) {
	t.Helper()
	now := time.Now()

	p, err := producer.ReconstructProducer(
		7, "pd_abc", "High Peaks", "high-peaks", "",
		producer.CategoryFlower, producer.MarketBoth, 3, now, now,
	)
	require.NoError(t, err)

	s, err := strain.ReconstructStrain(
		4, "sn_xyz", 7, "Gelato", "gelato", "", []string{"limonene"}, dropAt, now, now,
	)
	require.NoError(t, err)

	return &stubStrainRepo{strains: map[string]*strain.Strain{"sn_xyz": s}},
		&stubProducerRepo{producers: map[uint]*producer.Producer{7: p}}
}

func actor() *access.Actor {
	return &access.Actor{UserID: 1, Claims: &access.Claims{}}
}

func TestUpdateStrainNotifiesWhenDropDateChanges(t *testing.T) {
	strains, producers := strainFixtures(t, nil)
	notifier := &recordingNotifier{}
	uc := NewUpdateStrainUseCase(strains, producers, &stubAuthorizer{allow: true}, notifier, testLogger())

	dropAt := time.Now().Add(48 * time.Hour)
	err := uc.Execute(context.Background(), UpdateStrainCommand{
		Actor: actor(), StrainSID: "sn_xyz", DropAt: &dropAt, SetDropAt: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gelato"}, notifier.calls)
	assert.Len(t, strains.updated, 1)
}

func TestUpdateStrainSkipsNotifyWhenDropDateUnchanged(t *testing.T) {
	dropAt := time.Date(2026, 9, 4, 18, 0, 0, 0, time.UTC)
	strains, producers := strainFixtures(t, &dropAt)
	notifier := &recordingNotifier{}
	uc := NewUpdateStrainUseCase(strains, producers, &stubAuthorizer{allow: true}, notifier, testLogger())

	same := dropAt
	err := uc.Execute(context.Background(), UpdateStrainCommand{
		Actor: actor(), StrainSID: "sn_xyz", DropAt: &same, SetDropAt: true,
	})
	require.NoError(t, err)
	assert.Empty(t, notifier.calls, "same date means no fan-out")
}

func TestUpdateStrainWithoutSetDropAtLeavesScheduleAlone(t *testing.T) {
	dropAt := time.Date(2026, 9, 4, 18, 0, 0, 0, time.UTC)
	strains, producers := strainFixtures(t, &dropAt)
	notifier := &recordingNotifier{}
	uc := NewUpdateStrainUseCase(strains, producers, &stubAuthorizer{allow: true}, notifier, testLogger())

	err := uc.Execute(context.Background(), UpdateStrainCommand{
		Actor: actor(), StrainSID: "sn_xyz", Name: "Gelato 41",
	})
	require.NoError(t, err)
	assert.Empty(t, notifier.calls)

	require.Len(t, strains.updated, 1)
	require.NotNil(t, strains.updated[0].DropAt())
	assert.True(t, strains.updated[0].DropAt().Equal(dropAt))
}

func TestUpdateStrainForbiddenWithoutGrant(t *testing.T) {
	strains, producers := strainFixtures(t, nil)
	uc := NewUpdateStrainUseCase(strains, producers, &stubAuthorizer{allow: false}, &recordingNotifier{}, testLogger())

	err := uc.Execute(context.Background(), UpdateStrainCommand{
		Actor: actor(), StrainSID: "sn_xyz", Name: "Renamed",
	})
	assert.True(t, errors.IsForbiddenError(err))
	assert.Empty(t, strains.updated)
}

func TestUpdateStrainUnknownStrainIsNotFound(t *testing.T) {
	strains, producers := strainFixtures(t, nil)
	uc := NewUpdateStrainUseCase(strains, producers, &stubAuthorizer{allow: true}, &recordingNotifier{}, testLogger())

	err := uc.Execute(context.Background(), UpdateStrainCommand{
		Actor: actor(), StrainSID: "sn_missing",
	})
	assert.True(t, errors.IsNotFoundError(err))
}
