package cli

import (
	"time"

	"github.com/ledgercal/ledgercal/internal/config"
	"github.com/ledgercal/ledgercal/internal/event_bus"
	"github.com/ledgercal/ledgercal/internal/rest"
	"github.com/ledgercal/ledgercal/internal/utils"
	"github.com/ledgercal/ledgercal/pkg/balance"
	"github.com/ledgercal/ledgercal/pkg/calendar"
	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/schedule"
)

// Dependencies holds all services wired against the remote budgeting
// service for one command invocation.
type Dependencies struct {
	Config config.Application

	ItemService     item.Service
	ScheduleService schedule.Service
	BalanceService  balance.Service

	Session *calendar.Session
	Clock   utils.Clock
}

// BuildDependencies initializes and wires all services and the calendar
// session on top of the shared REST client.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg}

	client := rest.NewClient(cfg.API.URL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	bus := event_bus.NewEventBus()

	deps.ItemService = item.NewService(item.NewRestStore(client), bus)
	deps.ScheduleService = schedule.NewService(schedule.NewRestStore(client), bus)
	deps.BalanceService = balance.NewService(balance.NewRestStore(client), bus)

	defaultBalance, err := cfg.DefaultStartingBalance()
	if err != nil {
		return nil, err
	}

	deps.Clock = &utils.SystemClock{}
	deps.Session = calendar.NewSession(
		deps.ItemService,
		deps.ScheduleService,
		deps.BalanceService,
		defaultBalance,
		deps.Clock,
		bus,
	)

	return deps, nil
}
