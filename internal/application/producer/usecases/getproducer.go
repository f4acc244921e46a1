package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/vote"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/services/markdown"

	rankingdomain "github.com/terplist/terplist/internal/domain/ranking"
)

// ProducerDetail is the full producer view. DescriptionHTML is the
// markdown-rendered, sanitized description; the raw markdown never reaches
// clients.
type ProducerDetail struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Category        string    `json:"category"`
	Market          string    `json:"market"`
	DescriptionHTML string    `json:"description_html"`
	AverageRating   float64   `json:"average_rating"`
	VoteCount       int       `json:"vote_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// GetProducerUseCase loads one producer by slug with its current rating.
type GetProducerUseCase struct {
	producerRepo producer.Repository
	voteRepo     vote.Repository
	markdown     markdown.Service
	logger       logger.Interface
}

func NewGetProducerUseCase(
	producerRepo producer.Repository,
	voteRepo vote.Repository,
	markdownSvc markdown.Service,
	log logger.Interface,
) *GetProducerUseCase {
	return &GetProducerUseCase{
		producerRepo: producerRepo,
		voteRepo:     voteRepo,
		markdown:     markdownSvc,
		logger:       log,
	}
}

func (uc *GetProducerUseCase) Execute(ctx context.Context, slug string) (*ProducerDetail, error) {
	entity, err := uc.producerRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get producer: %w", err)
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("producer not found")
	}

	votes, err := uc.voteRepo.ListByProducer(ctx, entity.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	descriptionHTML := ""
	if entity.Description() != "" {
		descriptionHTML, err = uc.markdown.ToHTMLSanitized(entity.Description())
		if err != nil {
			uc.logger.Warnw("failed to render producer description",
				"producer_id", entity.SID(), "error", err)
			descriptionHTML = ""
		}
	}

	return &ProducerDetail{
		ID:              entity.SID(),
		Name:            entity.Name(),
		Slug:            entity.Slug(),
		Category:        entity.Category().String(),
		Market:          entity.Market().String(),
		DescriptionHTML: descriptionHTML,
		AverageRating:   rankingdomain.ComputeAverage(votes),
		VoteCount:       len(votes),
		CreatedAt:       entity.CreatedAt(),
	}, nil
}
