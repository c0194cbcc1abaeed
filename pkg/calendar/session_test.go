package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ledgercal/ledgercal/internal/event_bus"
	"github.com/ledgercal/ledgercal/internal/utils"
	"github.com/ledgercal/ledgercal/pkg/balance"
	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/projection"
	"github.com/ledgercal/ledgercal/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var clock = &utils.MockClock{FixedNow: time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)}

type fixture struct {
	session       *Session
	itemStore     *item.StubStore
	scheduleStore *schedule.StubStore
	balanceStore  *balance.StubStore
	items         item.Service
	schedule      schedule.Service
	balance       balance.Service
}

func setup(t *testing.T) (*fixture, func()) {
	bus := event_bus.NewEventBus()
	itemStore := item.NewStubStore()
	scheduleStore := schedule.NewStubStore()
	balanceStore := balance.NewStubStore()

	itemService := item.NewService(itemStore, bus)
	scheduleService := schedule.NewService(scheduleStore, bus)
	balanceService := balance.NewService(balanceStore, bus)

	session := NewSession(itemService, scheduleService, balanceService, 250000, clock, bus)

	f := &fixture{
		session:       session,
		itemStore:     itemStore,
		scheduleStore: scheduleStore,
		balanceStore:  balanceStore,
		items:         itemService,
		schedule:      scheduleService,
		balance:       balanceService,
	}
	return f, func() {
		t.Log("Teardown after test")
		itemStore.Cleanup()
		scheduleStore.Cleanup()
		balanceStore.Cleanup()
	}
}

func TestSession_DefaultsToCurrentMonth(t *testing.T) {
	f, teardown := setup(t)
	defer teardown()

	state := f.session.State()
	assert.Equal(t, 2024, state.Year)
	assert.Equal(t, time.March, state.Month)
}

func TestSession_SnapshotProjectsMonth(t *testing.T) {
	f, teardown := setup(t)
	defer teardown()

	rent, err := f.items.Create(ctx, item.BudgetItem{Name: "Rent", Amount: 15000, Type: item.TypeExpense})
	require.NoError(t, err)
	_, err = f.schedule.ScheduleDrop(ctx, rent.ID, "2024-03-03")
	require.NoError(t, err)

	snap, err := f.session.Snapshot(ctx)
	require.NoError(t, err)

	require.Len(t, snap.Projection.Days, 31)
	assert.EqualValues(t, 250000, snap.Projection.Days[0].RunningBalance)
	assert.EqualValues(t, 235000, snap.Projection.Days[2].RunningBalance)
	assert.Equal(t, projection.IndicatorExpense, snap.Projection.Days[2].Indicator)
}

func TestSession_MutationMarksStale(t *testing.T) {
	f, teardown := setup(t)
	defer teardown()

	first, err := f.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 250000, first.Projection.Days[30].RunningBalance)

	// A confirmed pin write must invalidate the cached snapshot.
	_, err = f.balance.Set(ctx, "2024-03-01", 100000)
	require.NoError(t, err)

	second, err := f.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 100000, second.Projection.Days[30].RunningBalance)
	assert.True(t, second.Projection.Days[0].HasPin)
}

func TestSession_ReferenceDateIsFirstOfDisplayedMonth(t *testing.T) {
	f, teardown := setup(t)
	defer teardown()

	// Pin mid-March. Entering March, only pins <= March 1 apply, so the
	// month starts from the base balance, not the pin.
	_, err := f.balance.Set(ctx, "2024-03-10", 100000)
	require.NoError(t, err)

	snap, err := f.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 250000, snap.Projection.Days[0].RunningBalance)

	// Displaying April, the March pin is in force on April 1.
	f.session.SetMonth(MonthState{Year: 2024, Month: time.April})
	snap, err = f.session.Snapshot(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 100000, snap.Projection.Days[0].RunningBalance)
}

func TestSession_FailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	f, teardown := setup(t)
	defer teardown()

	rent, err := f.items.Create(ctx, item.BudgetItem{Name: "Rent", Amount: 15000, Type: item.TypeExpense})
	require.NoError(t, err)
	_, err = f.schedule.ScheduleDrop(ctx, rent.ID, "2024-03-03")
	require.NoError(t, err)

	good, err := f.session.Snapshot(ctx)
	require.NoError(t, err)

	// Force staleness, then fail the next refresh.
	_, err = f.balance.Set(ctx, "2024-03-01", 100000)
	require.NoError(t, err)
	f.itemStore.FailNext = errors.New("connection refused")

	snap, err := f.session.Snapshot(ctx)
	require.Error(t, err)
	assert.Equal(t, good.Projection, snap.Projection)
}

func TestSession_CachedSnapshotIsReusedUntilStale(t *testing.T) {
	f, teardown := setup(t)
	defer teardown()

	_, err := f.session.Snapshot(ctx)
	require.NoError(t, err)

	// With a fresh snapshot the stores are not consulted again, so a
	// pending failure goes unnoticed.
	f.itemStore.FailNext = errors.New("must not be called")
	_, err = f.session.Snapshot(ctx)
	assert.NoError(t, err)
	f.itemStore.FailNext = nil
}

func TestMonthState_Navigation(t *testing.T) {
	jan := MonthState{Year: 2024, Month: time.January}
	assert.Equal(t, MonthState{Year: 2023, Month: time.December}, jan.Previous())
	assert.Equal(t, MonthState{Year: 2024, Month: time.February}, jan.Next())
	assert.Equal(t, "2024-01-01", jan.FirstDay())
	assert.Equal(t, "2024-01-05", jan.DateString(5))
}
