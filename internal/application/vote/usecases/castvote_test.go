package usecases

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/state"
	"github.com/terplist/terplist/internal/domain/vote"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type stubProducerRepo struct {
	producer.Repository
	producers map[string]*producer.Producer
}

func (s *stubProducerRepo) GetBySID(_ context.Context, sid string) (*producer.Producer, error) {
	return s.producers[sid], nil
}

type stubStateRepo struct {
	state.Repository
	states map[uint]*state.State
}

func (s *stubStateRepo) GetByID(_ context.Context, id uint) (*state.State, error) {
	return s.states[id], nil
}

type recordingVoteRepo struct {
	vote.Repository
	upserted  []*vote.Vote
	upsertErr error
}

func (r *recordingVoteRepo) Upsert(_ context.Context, v *vote.Vote) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserted = append(r.upserted, v)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func fixtures(t *testing.T) (*stubProducerRepo, *stubStateRepo) {
	t.Helper()
	now := time.Now()

	p, err := producer.ReconstructProducer(
		7, "pd_abc", "High Peaks", "high-peaks", "",
		producer.CategoryFlower, producer.MarketBoth, 3, now, now,
	)
	require.NoError(t, err)

	st, err := state.ReconstructState(3, "st_co", "Colorado", "colorado", now, now)
	require.NoError(t, err)

	return &stubProducerRepo{producers: map[string]*producer.Producer{"pd_abc": p}},
		&stubStateRepo{states: map[uint]*state.State{3: st}}
}

func TestCastVoteStoresDenormalizedState(t *testing.T) {
	producers, states := fixtures(t)
	votes := &recordingVoteRepo{}
	uc := NewCastVoteUseCase(producers, states, votes, passthroughTx{}, testLogger())

	result, err := uc.Execute(context.Background(), CastVoteCommand{
		UserID: 1, ProducerSID: "pd_abc", Value: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Value)

	require.Len(t, votes.upserted, 1)
	stored := votes.upserted[0]
	assert.Equal(t, uint(7), stored.ProducerID())
	assert.Equal(t, uint(3), stored.StateID(), "state comes from the producer row")
}

func TestCastVoteRejectsOutOfRangeValues(t *testing.T) {
	producers, states := fixtures(t)
	votes := &recordingVoteRepo{}
	uc := NewCastVoteUseCase(producers, states, votes, passthroughTx{}, testLogger())

	for _, value := range []int{0, -1, 6, 100} {
		_, err := uc.Execute(context.Background(), CastVoteCommand{
			UserID: 1, ProducerSID: "pd_abc", Value: value,
		})
		assert.True(t, errors.IsValidationError(err), "value %d should be rejected", value)
	}
	assert.Empty(t, votes.upserted, "no storage write on validation failure")
}

func TestCastVoteUnknownProducerIsNotFound(t *testing.T) {
	producers, states := fixtures(t)
	uc := NewCastVoteUseCase(producers, states, &recordingVoteRepo{}, passthroughTx{}, testLogger())

	_, err := uc.Execute(context.Background(), CastVoteCommand{
		UserID: 1, ProducerSID: "pd_missing", Value: 3,
	})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCastVoteRejectsMismatchedStateSlug(t *testing.T) {
	producers, states := fixtures(t)
	votes := &recordingVoteRepo{}
	uc := NewCastVoteUseCase(producers, states, votes, passthroughTx{}, testLogger())

	_, err := uc.Execute(context.Background(), CastVoteCommand{
		UserID: 1, ProducerSID: "pd_abc", Value: 3, StateSlug: "michigan",
	})
	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, votes.upserted)

	_, err = uc.Execute(context.Background(), CastVoteCommand{
		UserID: 1, ProducerSID: "pd_abc", Value: 3, StateSlug: "colorado",
	})
	assert.NoError(t, err, "matching slug passes")
}

func TestCastVoteRequiresAuthentication(t *testing.T) {
	producers, states := fixtures(t)
	uc := NewCastVoteUseCase(producers, states, &recordingVoteRepo{}, passthroughTx{}, testLogger())

	_, err := uc.Execute(context.Background(), CastVoteCommand{
		UserID: 0, ProducerSID: "pd_abc", Value: 3,
	})
	assert.Error(t, err)
}

func TestCastVoteWrapsStoreFailure(t *testing.T) {
	producers, states := fixtures(t)
	votes := &recordingVoteRepo{upsertErr: fmt.Errorf("connection reset")}
	uc := NewCastVoteUseCase(producers, states, votes, passthroughTx{}, testLogger())

	_, err := uc.Execute(context.Background(), CastVoteCommand{
		UserID: 1, ProducerSID: "pd_abc", Value: 3,
	})
	assert.Error(t, err)
}
