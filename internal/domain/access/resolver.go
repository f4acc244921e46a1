package access

import (
	"context"

	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

// Target identifies what the actor wants to manage: a producer, a state, or
// both. When ProducerSID is set the producer's state affiliation is resolved
// and state-level grants apply to it as well.
type Target struct {
	ProducerSID string
	StateSID    string
	StateSlug   string
}

// StateRef is a state's external identity as needed for grant matching.
type StateRef struct {
	SID  string
	Slug string
}

// ProducerDirectory resolves a producer's state affiliation. Implemented by
// the producer repository.
type ProducerDirectory interface {
	// StateRefForProducer returns nil when the producer does not exist.
	StateRefForProducer(ctx context.Context, producerSID string) (*StateRef, error)
}

// GrantSource answers grant questions against the relational source of truth.
// Implemented by the grant repository.
type GrantSource interface {
	IsGlobalAdmin(ctx context.Context, userID uint) (bool, error)
	HasProducerGrant(ctx context.Context, userID uint, producerSID string) (bool, error)
	HasStateGrant(ctx context.Context, userID uint, ref StateRef) (bool, error)
}

// Resolver implements the management authorization decision. It performs
// reads only — its single side effect is at most one producer lookup to
// resolve state affiliation — and is safe to call repeatedly per request.
type Resolver struct {
	producers ProducerDirectory
	grants    GrantSource
	logger    logger.Interface
}

func NewResolver(producers ProducerDirectory, grants GrantSource, log logger.Interface) *Resolver {
	return &Resolver{
		producers: producers,
		grants:    grants,
		logger:    log,
	}
}

// CanManage reports whether the actor may manage the target.
//
// Decision order:
//  1. unauthenticated actors are denied regardless of target;
//  2. a global admin — via claims role or the relational user role — is
//     allowed unconditionally;
//  3. otherwise the producer-level grant is evaluated, then the state-level
//     grant; either one allows.
//
// For each grant level the claims are consulted first as a fast path, but a
// miss always falls through to the relational lookup: claims are only as
// fresh as the last token issuance, and a stale token must never deny access
// a grant row confers. A target producer that does not exist yields a
// not-found error, which callers must keep distinct from forbidden.
func (r *Resolver) CanManage(ctx context.Context, actor *Actor, target Target) (bool, error) {
	if !actor.IsAuthenticated() {
		return false, nil
	}

	if actor.Claims.IsAdmin() || actor.Role.IsAdmin() {
		return true, nil
	}
	isAdmin, err := r.grants.IsGlobalAdmin(ctx, actor.UserID)
	if err != nil {
		return false, err
	}
	if isAdmin {
		return true, nil
	}

	stateRef := StateRef{SID: target.StateSID, Slug: target.StateSlug}

	if target.ProducerSID != "" {
		ref, err := r.producers.StateRefForProducer(ctx, target.ProducerSID)
		if err != nil {
			return false, err
		}
		if ref == nil {
			return false, errors.NewNotFoundError("producer not found")
		}
		stateRef = *ref

		if actor.Claims.AllowsProducer(target.ProducerSID) {
			return true, nil
		}
		granted, err := r.grants.HasProducerGrant(ctx, actor.UserID, target.ProducerSID)
		if err != nil {
			return false, err
		}
		if granted {
			return true, nil
		}
	}

	if stateRef.SID == "" && stateRef.Slug == "" {
		// No target identifiers at all: nothing to match a grant against,
		// and authenticated users hold no implicit rights.
		return false, nil
	}

	if actor.Claims.AllowsState(stateRef.SID, stateRef.Slug) {
		return true, nil
	}
	return r.grants.HasStateGrant(ctx, actor.UserID, stateRef)
}
