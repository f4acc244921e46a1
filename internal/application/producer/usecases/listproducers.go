// Package usecases contains the producer application use cases.
package usecases

import (
	"context"
	"fmt"

	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/ranking"
	"github.com/terplist/terplist/internal/domain/state"
	"github.com/terplist/terplist/internal/domain/vote"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

// ListProducersCommand filters the leaderboard. Category is required;
// StateSlug is optional (empty means all states); Market filters visibility.
type ListProducersCommand struct {
	Category  string
	StateSlug string
	Market    string
}

// RankedProducer is one leaderboard row.
type RankedProducer struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Category      string  `json:"category"`
	Market        string  `json:"market"`
	AverageRating float64 `json:"average_rating"`
	VoteCount     int     `json:"vote_count"`
	Rank          int     `json:"rank"`
}

// ListProducersUseCase produces the live leaderboard: producers of one
// category ranked by current average rating. The ranking is computed from
// current votes, not from snapshots; snapshots serve history only.
type ListProducersUseCase struct {
	producerRepo producer.Repository
	stateRepo    state.Repository
	voteRepo     vote.Repository
	logger       logger.Interface
}

func NewListProducersUseCase(
	producerRepo producer.Repository,
	stateRepo state.Repository,
	voteRepo vote.Repository,
	log logger.Interface,
) *ListProducersUseCase {
	return &ListProducersUseCase{
		producerRepo: producerRepo,
		stateRepo:    stateRepo,
		voteRepo:     voteRepo,
		logger:       log,
	}
}

func (uc *ListProducersUseCase) Execute(ctx context.Context, cmd ListProducersCommand) ([]RankedProducer, error) {
	category := producer.Category(cmd.Category)
	if !category.IsValid() {
		return nil, errors.NewValidationError("invalid category")
	}

	filter := producer.ListFilter{Category: category}

	if cmd.StateSlug != "" {
		st, err := uc.stateRepo.GetBySlug(ctx, cmd.StateSlug)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve state: %w", err)
		}
		if st == nil {
			return nil, errors.NewNotFoundError("state not found")
		}
		stateID := st.ID()
		filter.StateID = &stateID
	}

	if cmd.Market != "" {
		market := producer.Market(cmd.Market)
		if !market.IsValid() {
			return nil, errors.NewValidationError("invalid market")
		}
		filter.Market = market
	}

	producers, err := uc.producerRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list producers: %w", err)
	}
	if len(producers) == 0 {
		return []RankedProducer{}, nil
	}

	producerIDs := make([]uint, 0, len(producers))
	for _, p := range producers {
		producerIDs = append(producerIDs, p.ID())
	}
	votesByProducer, err := uc.voteRepo.ListByProducerIDs(ctx, producerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	entries := make([]ranking.ProducerVotes, 0, len(producers))
	for _, p := range producers {
		entries = append(entries, ranking.ProducerVotes{
			Producer: p,
			Votes:    votesByProducer[p.ID()],
		})
	}

	ranked := ranking.Rank(entries)

	rows := make([]RankedProducer, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, RankedProducer{
			ID:            r.Producer.SID(),
			Name:          r.Producer.Name(),
			Slug:          r.Producer.Slug(),
			Category:      r.Producer.Category().String(),
			Market:        r.Producer.Market().String(),
			AverageRating: r.Average,
			VoteCount:     len(votesByProducer[r.Producer.ID()]),
			Rank:          r.Rank,
		})
	}
	return rows, nil
}
