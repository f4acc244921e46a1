package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/domain/state"
	"github.com/terplist/terplist/internal/domain/strain"
	"github.com/terplist/terplist/internal/shared/biztime"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

// ListDropsCommand selects the drop calendar week containing Anchor (current
// week when zero), optionally scoped to one state.
type ListDropsCommand struct {
	StateSlug string
	Anchor    time.Time
}

// DropEntry is one calendar row.
type DropEntry struct {
	StrainID     string    `json:"strain_id"`
	StrainName   string    `json:"strain_name"`
	ProducerID   string    `json:"producer_id"`
	ProducerName string    `json:"producer_name"`
	DropAt       time.Time `json:"drop_at"`
}

// DropCalendar is one week of scheduled drops, ascending by drop time.
type DropCalendar struct {
	WeekStart time.Time   `json:"week_start"`
	WeekEnd   time.Time   `json:"week_end"`
	Drops     []DropEntry `json:"drops"`
}

type ListDropsUseCase struct {
	strainRepo   strain.Repository
	producerRepo producer.Repository
	stateRepo    state.Repository
	logger       logger.Interface
}

func NewListDropsUseCase(
	strainRepo strain.Repository,
	producerRepo producer.Repository,
	stateRepo state.Repository,
	log logger.Interface,
) *ListDropsUseCase {
	return &ListDropsUseCase{
		strainRepo:   strainRepo,
		producerRepo: producerRepo,
		stateRepo:    stateRepo,
		logger:       log,
	}
}

func (uc *ListDropsUseCase) Execute(ctx context.Context, cmd ListDropsCommand) (*DropCalendar, error) {
	anchor := cmd.Anchor
	if anchor.IsZero() {
		anchor = biztime.NowUTC()
	}
	weekStart, weekEnd := biztime.WeekBounds(anchor)

	var stateID *uint
	if cmd.StateSlug != "" {
		st, err := uc.stateRepo.GetBySlug(ctx, cmd.StateSlug)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve state: %w", err)
		}
		if st == nil {
			return nil, errors.NewNotFoundError("state not found")
		}
		sid := st.ID()
		stateID = &sid
	}

	strains, err := uc.strainRepo.ListDropsBetween(ctx, stateID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list drops: %w", err)
	}

	drops := make([]DropEntry, 0, len(strains))
	for _, s := range strains {
		if s.DropAt() == nil {
			continue
		}
		owner, err := uc.producerRepo.GetByID(ctx, s.ProducerID())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve producer: %w", err)
		}
		if owner == nil {
			uc.logger.Warnw("drop references missing producer",
				"strain_id", s.SID(), "producer_id", s.ProducerID())
			continue
		}
		drops = append(drops, DropEntry{
			StrainID:     s.SID(),
			StrainName:   s.Name(),
			ProducerID:   owner.SID(),
			ProducerName: owner.Name(),
			DropAt:       *s.DropAt(),
		})
	}

	return &DropCalendar{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Drops:     drops,
	}, nil
}
