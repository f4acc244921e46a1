package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terplist/terplist/internal/application/vote/usecases"
	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/state"
	"github.com/terplist/terplist/internal/domain/vote"
	"github.com/terplist/terplist/internal/shared/constants"
	"github.com/terplist/terplist/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type stubProducerRepo struct {
	producer.Repository
	bySID map[string]*producer.Producer
}

func (s *stubProducerRepo) GetBySID(_ context.Context, sid string) (*producer.Producer, error) {
	return s.bySID[sid], nil
}

type stubStateRepo struct {
	state.Repository
	byID map[uint]*state.State
}

func (s *stubStateRepo) GetByID(_ context.Context, id uint) (*state.State, error) {
	return s.byID[id], nil
}

type stubVoteRepo struct {
	vote.Repository
	upserted []*vote.Vote
}

func (s *stubVoteRepo) Upsert(_ context.Context, v *vote.Vote) error {
	s.upserted = append(s.upserted, v)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testProducer(t *testing.T) *producer.Producer {
	t.Helper()
	p, err := producer.ReconstructProducer(
		7, "pd_test00000001", "High Peaks", "high-peaks", "",
		producer.CategoryFlower, producer.MarketWhite, 3,
		time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return p
}

func testState(t *testing.T) *state.State {
	t.Helper()
	st, err := state.ReconstructState(3, "st_test00000001", "Colorado", "colorado", time.Now(), time.Now())
	require.NoError(t, err)
	return st
}

// newVoteRouter wires the handler behind a fake authentication middleware
// that injects the given user ID, mirroring what AuthMiddleware does after
// verifying a token.
func newVoteRouter(t *testing.T, voteRepo *stubVoteRepo, userID uint) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uc := usecases.NewCastVoteUseCase(
		&stubProducerRepo{bySID: map[string]*producer.Producer{"pd_test00000001": testProducer(t)}},
		&stubStateRepo{byID: map[uint]*state.State{3: testState(t)}},
		voteRepo,
		passthroughTx{},
		testLogger(),
	)
	handler := NewVoteHandler(uc, testLogger())

	router := gin.New()
	router.PUT("/producers/:id/vote", func(c *gin.Context) {
		if userID != 0 {
			c.Set(constants.ContextKeyUserID, userID)
		}
		c.Next()
	}, handler.CastVote)
	return router
}

func castVote(router *gin.Engine, producerID string, body map[string]any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, "/producers/"+producerID+"/vote", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCastVoteStoresVote(t *testing.T) {
	voteRepo := &stubVoteRepo{}
	router := newVoteRouter(t, voteRepo, 42)

	rec := castVote(router, "pd_test00000001", map[string]any{"value": 4})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, voteRepo.upserted, 1)
	assert.Equal(t, uint(42), voteRepo.upserted[0].UserID())
	assert.Equal(t, 4, voteRepo.upserted[0].Value())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ProducerID string `json:"producer_id"`
			Value      int    `json:"value"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "pd_test00000001", resp.Data.ProducerID)
	assert.Equal(t, 4, resp.Data.Value)
}

func TestCastVoteOutOfRangeValue(t *testing.T) {
	voteRepo := &stubVoteRepo{}
	router := newVoteRouter(t, voteRepo, 42)

	rec := castVote(router, "pd_test00000001", map[string]any{"value": 6})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, voteRepo.upserted)
}

func TestCastVoteUnknownProducer(t *testing.T) {
	router := newVoteRouter(t, &stubVoteRepo{}, 42)

	rec := castVote(router, "pd_doesnotexist", map[string]any{"value": 4})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCastVoteInvalidProducerID(t *testing.T) {
	router := newVoteRouter(t, &stubVoteRepo{}, 42)

	rec := castVote(router, "us_wrongprefix1", map[string]any{"value": 4})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCastVoteUnauthenticated(t *testing.T) {
	voteRepo := &stubVoteRepo{}
	router := newVoteRouter(t, voteRepo, 0)

	rec := castVote(router, "pd_test00000001", map[string]any{"value": 4})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, voteRepo.upserted)
}

func TestCastVoteStateMismatch(t *testing.T) {
	voteRepo := &stubVoteRepo{}
	router := newVoteRouter(t, voteRepo, 42)

	rec := castVote(router, "pd_test00000001", map[string]any{"value": 4, "state": "michigan"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, voteRepo.upserted)
}

func TestCastVoteMatchingState(t *testing.T) {
	voteRepo := &stubVoteRepo{}
	router := newVoteRouter(t, voteRepo, 42)

	rec := castVote(router, "pd_test00000001", map[string]any{"value": 4, "state": "colorado"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, voteRepo.upserted, 1)
}
