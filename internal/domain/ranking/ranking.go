// Package ranking implements the producer scoring and rank assignment logic.
// All functions here are pure; fetching and persistence belong to the
// application layer.
package ranking

import (
	"sort"

	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/vote"
)

// ComputeAverage returns the arithmetic mean of the vote values. An empty
// vote set yields 0 so producers without votes sort to the bottom of their
// pool instead of erroring or producing NaN. No rounding happens here;
// rounding is a presentation concern.
func ComputeAverage(votes []*vote.Vote) float64 {
	if len(votes) == 0 {
		return 0
	}

	sum := 0
	for _, v := range votes {
		sum += v.Value()
	}
	return float64(sum) / float64(len(votes))
}

// ProducerVotes pairs a producer with its current vote set. Callers must
// pre-group entries by category (and state scope, where applicable) before
// ranking; ranks are never computed across mixed pools.
type ProducerVotes struct {
	Producer *producer.Producer
	Votes    []*vote.Vote
}

// Ranking is one producer's position within its pool.
type Ranking struct {
	Producer *producer.Producer
	Average  float64
	Rank     int
}

// Rank orders the entries descending by average rating and assigns dense
// ranks 1..N. The sort is stable: producers with equal averages keep their
// input order, so with repositories fetching by ID ascending the tiebreak is
// deterministic (older producer first). Ties do not share a rank.
func Rank(entries []ProducerVotes) []Ranking {
	ranked := make([]Ranking, len(entries))
	for i, e := range entries {
		ranked[i] = Ranking{
			Producer: e.Producer,
			Average:  ComputeAverage(e.Votes),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Average > ranked[j].Average
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}
