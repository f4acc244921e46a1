package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terplist/terplist/internal/shared/authorization"
	"github.com/terplist/terplist/internal/shared/errors"
	"github.com/terplist/terplist/internal/shared/logger"
)

type stubDirectory struct {
	refs map[string]StateRef
	err  error
}

func (d *stubDirectory) StateRefForProducer(ctx context.Context, producerSID string) (*StateRef, error) {
	if d.err != nil {
		return nil, d.err
	}
	ref, ok := d.refs[producerSID]
	if !ok {
		return nil, nil
	}
	return &ref, nil
}

type stubGrants struct {
	admins         map[uint]bool
	producerGrants map[uint]map[string]bool
	stateGrants    map[uint]map[string]bool // keyed by state SID or slug
	err            error
}

func (g *stubGrants) IsGlobalAdmin(ctx context.Context, userID uint) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	return g.admins[userID], nil
}

func (g *stubGrants) HasProducerGrant(ctx context.Context, userID uint, producerSID string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	return g.producerGrants[userID][producerSID], nil
}

func (g *stubGrants) HasStateGrant(ctx context.Context, userID uint, ref StateRef) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	return g.stateGrants[userID][ref.SID] || g.stateGrants[userID][ref.Slug], nil
}

func newTestResolver(dir *stubDirectory, grants *stubGrants) *Resolver {
	if dir == nil {
		dir = &stubDirectory{}
	}
	if grants == nil {
		grants = &stubGrants{}
	}
	return NewResolver(dir, grants, logger.NewLogger())
}

func TestCanManageUnauthenticatedAlwaysDenied(t *testing.T) {
	r := newTestResolver(nil, &stubGrants{admins: map[uint]bool{1: true}})

	targets := []Target{
		{},
		{ProducerSID: "pd_abc"},
		{StateSID: "st_abc"},
		{StateSlug: "colorado"},
	}

	for _, target := range targets {
		ok, err := r.CanManage(context.Background(), nil, target)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = r.CanManage(context.Background(), &Actor{}, target)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestCanManageGlobalAdminSupersedes(t *testing.T) {
	// No grant rows anywhere; the admin role alone must allow everything.
	dir := &stubDirectory{refs: map[string]StateRef{
		"pd_abc": {SID: "st_co", Slug: "colorado"},
	}}

	t.Run("via claims role", func(t *testing.T) {
		r := newTestResolver(dir, &stubGrants{})
		actor := &Actor{UserID: 7, Claims: &Claims{Role: "admin"}}

		for _, target := range []Target{{ProducerSID: "pd_abc"}, {StateSID: "st_co"}, {}} {
			ok, err := r.CanManage(context.Background(), actor, target)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("via relational role", func(t *testing.T) {
		r := newTestResolver(dir, &stubGrants{admins: map[uint]bool{7: true}})
		actor := &Actor{UserID: 7} // no claims at all

		ok, err := r.CanManage(context.Background(), actor, Target{ProducerSID: "pd_abc"})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("via loaded role field", func(t *testing.T) {
		r := newTestResolver(dir, &stubGrants{})
		actor := &Actor{UserID: 7, Role: authorization.RoleAdmin}

		ok, err := r.CanManage(context.Background(), actor, Target{})
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestCanManageProducerGrantLocality(t *testing.T) {
	// Actor holds a grant for producer A only; producer B lives in another
	// state, so neither the producer nor the state path may allow it.
	dir := &stubDirectory{refs: map[string]StateRef{
		"pd_a": {SID: "st_co", Slug: "colorado"},
		"pd_b": {SID: "st_mi", Slug: "michigan"},
	}}
	grants := &stubGrants{
		producerGrants: map[uint]map[string]bool{42: {"pd_a": true}},
	}
	r := newTestResolver(dir, grants)
	actor := &Actor{UserID: 42}

	ok, err := r.CanManage(context.Background(), actor, Target{ProducerSID: "pd_a"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CanManage(context.Background(), actor, Target{ProducerSID: "pd_b"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanManageClaimsFastPath(t *testing.T) {
	dir := &stubDirectory{refs: map[string]StateRef{
		"pd_a": {SID: "st_co", Slug: "colorado"},
	}}
	r := newTestResolver(dir, &stubGrants{})

	actor := &Actor{UserID: 42, Claims: &Claims{ProducerIDs: []string{"pd_a"}}}
	ok, err := r.CanManage(context.Background(), actor, Target{ProducerSID: "pd_a"})
	require.NoError(t, err)
	assert.True(t, ok)

	actor = &Actor{UserID: 42, Claims: &Claims{StateSlugs: []string{"colorado"}}}
	ok, err = r.CanManage(context.Background(), actor, Target{ProducerSID: "pd_a"})
	require.NoError(t, err)
	assert.True(t, ok, "state slug claim must also allow the state's producers")
}

func TestCanManageStaleClaimsFallsBackToRelational(t *testing.T) {
	// Claims carry empty arrays (stale token) but a relational state grant
	// exists; the fallback must still allow.
	grants := &stubGrants{
		stateGrants: map[uint]map[string]bool{42: {"st_co": true}},
	}
	r := newTestResolver(nil, grants)

	actor := &Actor{UserID: 42, Claims: &Claims{StateIDs: []string{}, StateSlugs: []string{}}}
	ok, err := r.CanManage(context.Background(), actor, Target{StateSID: "st_co"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanManageStateGrantCoversProducer(t *testing.T) {
	dir := &stubDirectory{refs: map[string]StateRef{
		"pd_a": {SID: "st_co", Slug: "colorado"},
	}}
	grants := &stubGrants{
		stateGrants: map[uint]map[string]bool{42: {"colorado": true}},
	}
	r := newTestResolver(dir, grants)

	actor := &Actor{UserID: 42}
	ok, err := r.CanManage(context.Background(), actor, Target{ProducerSID: "pd_a"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanManageMissingProducerIsNotFoundNotForbidden(t *testing.T) {
	r := newTestResolver(&stubDirectory{}, &stubGrants{})
	actor := &Actor{UserID: 42}

	ok, err := r.CanManage(context.Background(), actor, Target{ProducerSID: "pd_missing"})
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.False(t, errors.IsForbiddenError(err))
}

func TestCanManageNoTargetIdentifiersDenied(t *testing.T) {
	grants := &stubGrants{
		producerGrants: map[uint]map[string]bool{42: {"pd_a": true}},
		stateGrants:    map[uint]map[string]bool{42: {"st_co": true}},
	}
	r := newTestResolver(nil, grants)

	// Even with grants on file, an empty target matches nothing.
	ok, err := r.CanManage(context.Background(), &Actor{UserID: 42}, Target{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanManagePropagatesStoreErrors(t *testing.T) {
	storeErr := errors.NewTransientStoreError("store unreachable")
	r := newTestResolver(nil, &stubGrants{err: storeErr})

	_, err := r.CanManage(context.Background(), &Actor{UserID: 42}, Target{StateSID: "st_co"})
	assert.Error(t, err)
}

func TestClaimsDefaults(t *testing.T) {
	var c *Claims
	assert.False(t, c.IsAdmin())
	assert.False(t, c.AllowsProducer("pd_a"))
	assert.False(t, c.AllowsState("st_co", "colorado"))

	empty := &Claims{}
	assert.False(t, empty.IsAdmin())
	assert.False(t, empty.AllowsProducer(""))
	assert.False(t, empty.AllowsState("", ""))
}

func TestClaimsUnknownRoleIsNotAdmin(t *testing.T) {
	c := &Claims{Role: "superuser"}
	assert.False(t, c.IsAdmin())
}
