package repository

import (
	"context"

	"github.com/terplist/terplist/internal/domain/access"
	"github.com/terplist/terplist/internal/domain/grant"
	"github.com/terplist/terplist/internal/domain/producer"
)

// producerDirectory adapts the producer repository to the access resolver's
// directory port.
type producerDirectory struct {
	producers producer.Repository
}

func NewProducerDirectory(producers producer.Repository) access.ProducerDirectory {
	return &producerDirectory{producers: producers}
}

func (d *producerDirectory) StateRefForProducer(ctx context.Context, producerSID string) (*access.StateRef, error) {
	ref, err := d.producers.StateRefFor(ctx, producerSID)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, nil
	}
	return &access.StateRef{SID: ref.SID, Slug: ref.Slug}, nil
}

// grantSource adapts the grant repository to the access resolver's grant port.
type grantSource struct {
	grants grant.Repository
}

func NewGrantSource(grants grant.Repository) access.GrantSource {
	return &grantSource{grants: grants}
}

func (s *grantSource) IsGlobalAdmin(ctx context.Context, userID uint) (bool, error) {
	return s.grants.IsGlobalAdmin(ctx, userID)
}

func (s *grantSource) HasProducerGrant(ctx context.Context, userID uint, producerSID string) (bool, error) {
	return s.grants.HasProducerGrant(ctx, userID, producerSID)
}

func (s *grantSource) HasStateGrant(ctx context.Context, userID uint, ref access.StateRef) (bool, error) {
	return s.grants.HasStateGrant(ctx, userID, ref.SID, ref.Slug)
}
