package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/vote"
)

func testTime() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func testProducer(t *testing.T, id uint, name string) *producer.Producer {
	t.Helper()
	p, err := producer.ReconstructProducer(
		id, "pd_test", name, "slug", "",
		producer.CategoryFlower, producer.MarketWhite, 1,
		testTime(), testTime(),
	)
	require.NoError(t, err)
	return p
}

func testVotes(t *testing.T, producerID uint, values ...int) []*vote.Vote {
	t.Helper()
	votes := make([]*vote.Vote, 0, len(values))
	for i, val := range values {
		votes = append(votes, vote.ReconstructVote(uint(i+1), uint(i+100), producerID, val, 1, testTime(), testTime()))
	}
	return votes
}

func TestComputeAverageEmptyVotesReturnsZero(t *testing.T) {
	assert.Equal(t, 0.0, ComputeAverage(nil))
	assert.Equal(t, 0.0, ComputeAverage([]*vote.Vote{}))
}

func TestComputeAverage(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   float64
	}{
		{"single vote", []int{4}, 4.0},
		{"exact mean", []int{5, 3, 4}, 4.0},
		{"fractional mean", []int{5, 4}, 4.5},
		{"all minimum", []int{1, 1, 1}, 1.0},
		{"mixed", []int{1, 2, 3, 4, 5}, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			votes := testVotes(t, 1, tt.values...)
			assert.InDelta(t, tt.want, ComputeAverage(votes), 1e-9)
		})
	}
}

func TestRankOrdersByAverageDescending(t *testing.T) {
	p := testProducer(t, 1, "P")
	q := testProducer(t, 2, "Q")

	ranked := Rank([]ProducerVotes{
		{Producer: p, Votes: testVotes(t, 1, 5, 3, 4)}, // 4.0
		{Producer: q, Votes: testVotes(t, 2, 5, 5)},    // 5.0
	})

	require.Len(t, ranked, 2)
	assert.Equal(t, q, ranked[0].Producer)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.InDelta(t, 5.0, ranked[0].Average, 1e-9)
	assert.Equal(t, p, ranked[1].Producer)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.InDelta(t, 4.0, ranked[1].Average, 1e-9)
}

func TestRankDensity(t *testing.T) {
	// Ranks over N producers must be exactly 1..N, no gaps, no duplicates.
	entries := []ProducerVotes{
		{Producer: testProducer(t, 1, "A"), Votes: testVotes(t, 1, 3)},
		{Producer: testProducer(t, 2, "B"), Votes: testVotes(t, 2, 5)},
		{Producer: testProducer(t, 3, "C"), Votes: nil},
		{Producer: testProducer(t, 4, "D"), Votes: testVotes(t, 4, 4, 4)},
	}

	ranked := Rank(entries)
	require.Len(t, ranked, 4)

	seen := make(map[int]bool)
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
		assert.False(t, seen[r.Rank])
		seen[r.Rank] = true
	}
}

func TestRankMonotonicity(t *testing.T) {
	entries := []ProducerVotes{
		{Producer: testProducer(t, 1, "A"), Votes: testVotes(t, 1, 2, 3)},
		{Producer: testProducer(t, 2, "B"), Votes: testVotes(t, 2, 5)},
		{Producer: testProducer(t, 3, "C"), Votes: testVotes(t, 3, 1)},
		{Producer: testProducer(t, 4, "D"), Votes: testVotes(t, 4, 4, 5)},
	}

	ranked := Rank(entries)
	for i := 1; i < len(ranked); i++ {
		assert.Less(t, ranked[i-1].Rank, ranked[i].Rank)
		assert.GreaterOrEqual(t, ranked[i-1].Average, ranked[i].Average)
	}
}

func TestRankTiesKeepFetchOrder(t *testing.T) {
	// A and B tie at 4.0; the stable sort must keep A (fetched first) ahead.
	a := testProducer(t, 1, "A")
	b := testProducer(t, 2, "B")
	c := testProducer(t, 3, "C")

	ranked := Rank([]ProducerVotes{
		{Producer: a, Votes: testVotes(t, 1, 4)},
		{Producer: b, Votes: testVotes(t, 2, 4)},
		{Producer: c, Votes: testVotes(t, 3, 2)},
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, a, ranked[0].Producer)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, b, ranked[1].Producer)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, c, ranked[2].Producer)
	assert.Equal(t, 3, ranked[2].Rank)
}

func TestRankProducersWithoutVotesSortLast(t *testing.T) {
	voted := testProducer(t, 1, "Voted")
	unvoted := testProducer(t, 2, "Unvoted")

	ranked := Rank([]ProducerVotes{
		{Producer: unvoted, Votes: nil},
		{Producer: voted, Votes: testVotes(t, 1, 1)},
	})

	require.Len(t, ranked, 2)
	assert.Equal(t, voted, ranked[0].Producer)
	assert.Equal(t, unvoted, ranked[1].Producer)
	assert.Equal(t, 0.0, ranked[1].Average)
}

func TestRankEmptyInput(t *testing.T) {
	assert.Empty(t, Rank(nil))
}
