package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/terplist/terplist/internal/domain/vote"
	"github.com/terplist/terplist/internal/infrastructure/persistence/models"
	"github.com/terplist/terplist/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Named shared-cache memory DB so the pool's connections see one store,
	// while each test still gets its own database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = database.AutoMigrate(
		&models.UserModel{},
		&models.StateModel{},
		&models.ProducerModel{},
		&models.StrainModel{},
		&models.VoteModel{},
		&models.RatingSnapshotModel{},
		&models.ProducerAdminModel{},
		&models.StateAdminModel{},
		&models.DropSubscriptionModel{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := database.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return database
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mustNewVote(t *testing.T, userID, producerID uint, value int, stateID uint) *vote.Vote {
	t.Helper()
	v, err := vote.NewVote(userID, producerID, value, stateID)
	require.NoError(t, err)
	return v
}

func TestVoteUpsertReplacesExistingVote(t *testing.T) {
	repo := NewVoteRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, mustNewVote(t, 1, 10, 3, 100)))
	require.NoError(t, repo.Upsert(ctx, mustNewVote(t, 1, 10, 5, 100)))

	stored, err := repo.GetByUserAndProducer(ctx, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 5, stored.Value())

	votes, err := repo.ListByProducer(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}

func TestVoteUpsertKeepsVotesForDistinctProducersSeparate(t *testing.T) {
	repo := NewVoteRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, mustNewVote(t, 1, 10, 2, 100)))
	require.NoError(t, repo.Upsert(ctx, mustNewVote(t, 1, 11, 4, 100)))
	require.NoError(t, repo.Upsert(ctx, mustNewVote(t, 2, 10, 5, 100)))

	votes, err := repo.ListByProducer(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, votes, 2)

	byProducer, err := repo.ListByProducerIDs(ctx, []uint{10, 11, 12})
	require.NoError(t, err)
	assert.Len(t, byProducer[10], 2)
	assert.Len(t, byProducer[11], 1)
	_, hasEmpty := byProducer[12]
	assert.False(t, hasEmpty, "producer with no votes should be absent")
}

func TestVoteUpsertUpdatesDenormalizedState(t *testing.T) {
	repo := NewVoteRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, mustNewVote(t, 1, 10, 3, 100)))
	require.NoError(t, repo.Upsert(ctx, mustNewVote(t, 1, 10, 3, 200)))

	stored, err := repo.GetByUserAndProducer(ctx, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, uint(200), stored.StateID())
}

func TestGetByUserAndProducerReturnsNilWhenMissing(t *testing.T) {
	repo := NewVoteRepository(setupTestDB(t), testLogger())

	stored, err := repo.GetByUserAndProducer(context.Background(), 99, 99)
	require.NoError(t, err)
	assert.Nil(t, stored)
}
