package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/strain"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
	"github.com/terplist/terplist/internal/shared/services/markdown"
)

// StrainView is one strain in external form.
type StrainView struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	DescriptionHTML string     `json:"description_html"`
	Terpenes        []string   `json:"terpenes"`
	DropAt          *time.Time `json:"drop_at,omitempty"`
}

// ListStrainsUseCase lists a producer's strains with rendered descriptions.
type ListStrainsUseCase struct {
	strainRepo   strain.Repository
	producerRepo producer.Repository
	markdown     markdown.Service
	logger       logger.Interface
}

func NewListStrainsUseCase(
	strainRepo strain.Repository,
	producerRepo producer.Repository,
	markdownSvc markdown.Service,
	log logger.Interface,
) *ListStrainsUseCase {
	return &ListStrainsUseCase{
		strainRepo:   strainRepo,
		producerRepo: producerRepo,
		markdown:     markdownSvc,
		logger:       log,
	}
}

func (uc *ListStrainsUseCase) Execute(ctx context.Context, producerSID string) ([]StrainView, error) {
	owner, err := uc.producerRepo.GetBySID(ctx, producerSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get producer: %w", err)
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("producer not found")
	}

	strains, err := uc.strainRepo.ListByProducer(ctx, owner.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list strains: %w", err)
	}

	views := make([]StrainView, 0, len(strains))
	for _, s := range strains {
		descriptionHTML := ""
		if s.Description() != "" {
			descriptionHTML, err = uc.markdown.ToHTMLSanitized(s.Description())
			if err != nil {
				uc.logger.Warnw("failed to render strain description",
					"strain_id", s.SID(), "error", err)
				descriptionHTML = ""
			}
		}
		terpenes := s.Terpenes()
		if terpenes == nil {
			terpenes = []string{}
		}
		views = append(views, StrainView{
			ID:              s.SID(),
			Name:            s.Name(),
			Slug:            s.Slug(),
			DescriptionHTML: descriptionHTML,
			Terpenes:        terpenes,
			DropAt:          s.DropAt(),
		})
	}
	return views, nil
}
