package services

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dmitrijs2005/civichub/internal/client/gateway"
	"github.com/dmitrijs2005/civichub/internal/client/mock"
	"github.com/dmitrijs2005/civichub/internal/client/state"
	"github.com/dmitrijs2005/civichub/internal/logging"
	"github.com/dmitrijs2005/civichub/internal/models"
	"golang.org/x/sync/errgroup"
)

// LoadSource tells where LoadAll took its data from.
type LoadSource int

const (
	LoadedNothing LoadSource = iota
	LoadedRemote
	LoadedMock
)

func (s LoadSource) String() string {
	switch s {
	case LoadedRemote:
		return "remote"
	case LoadedMock:
		return "mock"
	}
	return "none"
}

type DataService interface {
	// LoadAll refreshes every collection for the active identity.
	LoadAll(ctx context.Context) LoadSource
	// AutoLoad makes the service load data whenever an identity appears or
	// a different user replaces the active one.
	AutoLoad(ctx context.Context)
}

// dataService implements DataService. now stamps the mock data set.
type dataService struct {
	gw    gateway.Gateway
	store *state.Store
	log   logging.Logger
	now   Clock
}

// NewDataService returns a DataService. A nil clock means time.Now.
func NewDataService(gw gateway.Gateway, store *state.Store, log logging.Logger, now Clock) DataService {
	if now == nil {
		now = time.Now
	}
	return &dataService{gw: gw, store: store, log: log.With("module", "data"), now: now}
}

// AutoLoad subscribes LoadAll to identity changes on the store.
func (d *dataService) AutoLoad(ctx context.Context) {
	d.store.OnIdentity(func(prev, next *models.User) {
		switch {
		case next == nil:
		case prev == nil:
			d.LoadAll(ctx)
		case prev.ID != next.ID:
			// Another user signed in over an active session.
			d.store.ClearData()
			d.LoadAll(ctx)
		}
	})
}

// loadMock replaces every collection with the demo data set.
func (d *dataService) loadMock() LoadSource {
	d.store.ReplaceAll(mock.Seed(d.now()))
	return LoadedMock
}

// readResult is the outcome of one collection read.
type readResult[T any] struct {
	list        []T
	ok          bool
	unreachable bool
}

// fetch runs one read and records its result. It never fails the group:
// reads are independent and each keeps its own outcome.
func fetch[T any](ctx context.Context, d *dataService, name string, read func(context.Context) ([]T, error), out *readResult[T]) func() error {
	return func() error {
		list, err := read(ctx)
		if err != nil {
			d.log.Warn(ctx, "read failed", "collection", name, "error", err)
			out.unreachable = errors.Is(err, gateway.ErrUnavailable)
			return nil
		}
		out.list, out.ok = list, true
		return nil
	}
}

// LoadAll fills the store for the current identity. Demo identities get
// the mock data set. Other identities read the five collections from the
// backend in parallel and keep what each read returned.
func (d *dataService) LoadAll(ctx context.Context) LoadSource {
	u := d.store.Identity()
	if u == nil {
		return LoadedNothing
	}
	if mock.IsDemoID(u.ID) {
		return d.loadMock()
	}

	var (
		complaints readResult[models.Complaint]
		notices    readResult[models.Notice]
		visitors   readResult[models.Visitor]
		residents  readResult[models.User]
		payments   readResult[models.Payment]
	)

	var g errgroup.Group
	g.Go(fetch(ctx, d, "complaints", d.gw.ListComplaints, &complaints))
	g.Go(fetch(ctx, d, "notices", d.gw.ListNotices, &notices))
	g.Go(fetch(ctx, d, "visitors", d.gw.ListVisitors, &visitors))
	g.Go(fetch(ctx, d, "residents", func(ctx context.Context) ([]models.User, error) {
		return d.gw.ListProfilesByRole(ctx, models.RoleResident)
	}, &residents))
	g.Go(fetch(ctx, d, "payments", d.gw.ListPayments, &payments))
	_ = g.Wait()

	// Only a backend that answered none of the reads counts as a total
	// failure. A single failing endpoint leaves its collection as it was.
	if complaints.unreachable && notices.unreachable && visitors.unreachable &&
		residents.unreachable && payments.unreachable {
		d.log.Warn(ctx, "backend unreachable, using mock data")
		return d.loadMock()
	}

	if complaints.ok {
		sortNewestFirst(complaints.list, func(c models.Complaint) time.Time { return c.CreatedAt })
		d.store.SetComplaints(complaints.list)
	}
	if notices.ok {
		sortNewestFirst(notices.list, func(n models.Notice) time.Time { return n.CreatedAt })
		d.store.SetNotices(notices.list)
	}
	if visitors.ok {
		sortNewestFirst(visitors.list, func(v models.Visitor) time.Time { return v.EntryTime })
		d.store.SetVisitors(visitors.list)
	}
	if residents.ok {
		d.store.SetResidents(residents.list)
	}
	if payments.ok {
		d.store.SetPayments(payments.list)
	}
	return LoadedRemote
}

// sortNewestFirst sorts s in place by descending timestamp, keeping the
// order of equal timestamps.
func sortNewestFirst[T any](s []T, at func(T) time.Time) {
	slices.SortStableFunc(s, func(a, b T) int {
		return at(b).Compare(at(a))
	})
}
