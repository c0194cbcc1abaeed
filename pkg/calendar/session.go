package calendar

import (
	"context"
	"sync"

	"github.com/ledgercal/ledgercal/internal/event_bus"
	"github.com/ledgercal/ledgercal/internal/utils"
	"github.com/ledgercal/ledgercal/pkg/balance"
	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/money"
	"github.com/ledgercal/ledgercal/pkg/projection"
	"github.com/ledgercal/ledgercal/pkg/schedule"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Session is the single reader of the three store caches. It refreshes
// them wholesale, derives the projection, and goes stale whenever any
// store service confirms a mutation.
type Session struct {
	items    item.Service
	schedule schedule.Service
	balance  balance.Service
	// defaultBalance is the configured base starting balance used when no
	// adjustment pin applies.
	defaultBalance money.Money

	mu       sync.Mutex
	state    MonthState
	snapshot *Snapshot
	stale    bool
}

func NewSession(
	items item.Service,
	scheduleService schedule.Service,
	balanceService balance.Service,
	defaultBalance money.Money,
	clock utils.Clock,
	bus *event_bus.EventBus,
) *Session {
	today := utils.Today(clock)
	s := &Session{
		items:          items,
		schedule:       scheduleService,
		balance:        balanceService,
		defaultBalance: defaultBalance,
		state:          MonthState{Year: today.Year(), Month: today.Month()},
		stale:          true,
	}

	markStale := func(event_bus.Event) error {
		s.mu.Lock()
		s.stale = true
		s.mu.Unlock()
		return nil
	}
	bus.Subscribe(event_bus.ItemsChangedEvent, markStale)
	bus.Subscribe(event_bus.ScheduleChangedEvent, markStale)
	bus.Subscribe(event_bus.BalanceChangedEvent, markStale)

	return s
}

// State returns the displayed month.
func (s *Session) State() MonthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetMonth switches the displayed month; the next Snapshot call refetches.
func (s *Session) SetMonth(state MonthState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != state {
		s.state = state
		s.stale = true
	}
}

// Snapshot returns the current consistent view, refreshing first when a
// mutation or month switch has made the caches stale.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	if !s.stale && s.snapshot != nil {
		snap := *s.snapshot
		s.mu.Unlock()
		return snap, nil
	}
	state := s.state
	s.mu.Unlock()

	return s.Refresh(ctx, state)
}

// Refresh refetches all three collaborator lists and recomputes the
// projection. The three reads are independent and run concurrently;
// mutations elsewhere stay strictly serialized. On failure the previous
// snapshot (stale but consistent) is returned along with the error.
func (s *Session) Refresh(ctx context.Context, state MonthState) (Snapshot, error) {
	var (
		items       []item.BudgetItem
		occurrences []schedule.Occurrence
		adjustments balance.AdjustmentSet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.items.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		occurrences, err = s.schedule.MonthOccurrences(gctx, state.Year, state.Month)
		return err
	})
	g.Go(func() error {
		var err error
		adjustments, err = s.balance.Adjustments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Errorf("month refresh failed, keeping previous data: %v", err)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.snapshot != nil {
			return *s.snapshot, err
		}
		return Snapshot{State: state}, err
	}

	latestPinDate := ""
	if pin, ok := adjustments.Latest(); ok {
		latestPinDate = pin.Date
	}

	proj := projection.Project(projection.Input{
		Year:            state.Year,
		Month:           state.Month,
		Items:           items,
		Occurrences:     occurrences,
		StartingBalance: adjustments.EffectiveStartingBalance(state.FirstDay(), s.defaultBalance),
		LatestPinDate:   latestPinDate,
	})
	if len(proj.Unresolved) > 0 {
		log.Warnf("%d occurrence(s) reference missing budget items: %v", len(proj.Unresolved), proj.Unresolved)
	}

	snap := Snapshot{
		State:       state,
		Items:       items,
		Occurrences: occurrences,
		Adjustments: adjustments,
		Projection:  proj,
	}

	s.mu.Lock()
	s.state = state
	s.snapshot = &snap
	s.stale = false
	s.mu.Unlock()

	return snap, nil
}
