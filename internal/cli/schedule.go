package cli

import (
	"fmt"

	"github.com/ledgercal/ledgercal/pkg/calendar"
	"github.com/ledgercal/ledgercal/pkg/money"
	"github.com/ledgercal/ledgercal/pkg/schedule"
	"github.com/spf13/cobra"
)

var (
	flagOverrideName   string
	flagOverrideAmount string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Place budget items on calendar dates",
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add <itemID> <date>",
	Short: "Schedule a budget item on a date",
	Long: "Schedule a budget item on a YYYY-MM-DD date. The new entry carries\n" +
		"no overrides; use 'schedule edit' to adjust a single occurrence.",
	Args: cobra.ExactArgs(2),
	RunE: runScheduleAdd,
}

var scheduleEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Override the name or amount of one scheduled entry",
	Long: "Override the name or amount of one scheduled entry without touching\n" +
		"the underlying budget item. The entry's type is always inherited.",
	Args: cobra.ExactArgs(1),
	RunE: runScheduleEdit,
}

var scheduleRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a scheduled entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runScheduleRm,
}

func init() {
	scheduleEditCmd.Flags().StringVarP(&flagOverrideName, "name", "n", "", "Override name for this occurrence only")
	scheduleEditCmd.Flags().StringVarP(&flagOverrideAmount, "amount", "a", "", "Override amount in dollars for this occurrence only")

	scheduleCmd.AddCommand(scheduleAddCmd, scheduleEditCmd, scheduleRmCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func runScheduleAdd(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}

	created, err := deps.ScheduleService.ScheduleDrop(commandContext(cmd), itemID, args[1])
	if err != nil {
		return err
	}
	cmd.Printf("Scheduled entry [%d] on %s\n", created.ID, created.Date)
	return nil
}

// findOccurrence locates a scheduled entry by ID. The remote service only
// lists by month, so the current month and its neighbors are searched;
// that covers the date-detail flows this command serves.
func findOccurrence(cmd *cobra.Command, deps *Dependencies, id int) (schedule.Occurrence, error) {
	ctx := commandContext(cmd)
	state := deps.Session.State()

	for _, candidate := range []calendar.MonthState{state, state.Previous(), state.Next()} {
		occurrences, err := deps.ScheduleService.MonthOccurrences(ctx, candidate.Year, candidate.Month)
		if err != nil {
			return schedule.Occurrence{}, err
		}
		for _, occ := range occurrences {
			if occ.ID == id {
				return occ, nil
			}
		}
	}
	return schedule.Occurrence{}, fmt.Errorf("no scheduled entry with id %d in or around %s", id, state)
}

func runScheduleEdit(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if flagOverrideName == "" && flagOverrideAmount == "" {
		return fmt.Errorf("nothing to change: pass --name and/or --amount")
	}

	occ, err := findOccurrence(cmd, deps, id)
	if err != nil {
		return err
	}

	var name *string
	if flagOverrideName != "" {
		name = &flagOverrideName
	}
	var amount *money.Money
	if flagOverrideAmount != "" {
		parsed, err := money.Parse(flagOverrideAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", flagOverrideAmount, err)
		}
		amount = &parsed
	}

	if err := deps.ScheduleService.Override(commandContext(cmd), occ, name, amount); err != nil {
		return err
	}
	cmd.Printf("Updated scheduled entry [%d]\n", id)
	return nil
}

func runScheduleRm(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	occ, err := findOccurrence(cmd, deps, id)
	if err != nil {
		return err
	}
	if err := deps.ScheduleService.Remove(commandContext(cmd), occ); err != nil {
		return err
	}
	cmd.Printf("Removed scheduled entry [%d] from %s\n", id, occ.Date)
	return nil
}
