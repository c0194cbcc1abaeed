package cli

import (
	"fmt"
	"time"

	"github.com/ledgercal/ledgercal/internal/utils"
	"github.com/ledgercal/ledgercal/pkg/calendar"
	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/money"
	"github.com/ledgercal/ledgercal/pkg/schedule"
	"github.com/spf13/cobra"
)

var flagDetailDay int

var monthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Render the projected calendar for a month",
	Long: "Render the calendar grid for the given month (default: current month)\n" +
		"with the projected running balance for every day.",
	Args: cobra.MaximumNArgs(1),
	RunE: runMonth,
}

func init() {
	monthCmd.Flags().IntVar(&flagDetailDay, "day", 0, "Also list the scheduled entries for this day of the month")
	rootCmd.AddCommand(monthCmd)
}

func parseMonthArg(arg string) (calendar.MonthState, error) {
	t, err := time.Parse("2006-01", arg)
	if err != nil {
		return calendar.MonthState{}, fmt.Errorf("month must be in YYYY-MM format: %q", arg)
	}
	return calendar.MonthState{Year: t.Year(), Month: t.Month()}, nil
}

func runMonth(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		state, err := parseMonthArg(args[0])
		if err != nil {
			return err
		}
		deps.Session.SetMonth(state)
	}

	snap, err := deps.Session.Snapshot(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to load month data: %w", err)
	}

	today := utils.Today(deps.Clock).Format(schedule.DateLayout)
	cmd.Println(RenderMonth(snap, today))

	if flagDetailDay > 0 {
		if flagDetailDay > len(snap.Projection.Days) {
			return fmt.Errorf("%s has no day %d", snap.State, flagDetailDay)
		}
		cmd.Println(renderDayDetail(snap, flagDetailDay))
	}
	return nil
}

// renderDayDetail lists the scheduled entries on one day with their
// effective names and amounts, the way the date-detail view shows them.
func renderDayDetail(snap calendar.Snapshot, day int) string {
	occurrences := snap.OccurrencesOn(day)
	header := titleStyle.Render(snap.State.DateString(day))
	if len(occurrences) == 0 {
		return fmt.Sprintf("  %s\n  %s\n", header, mutedStyle.Render("Nothing scheduled"))
	}

	byID := make(map[int]int, len(snap.Items))
	for i, it := range snap.Items {
		byID[it.ID] = i
	}

	out := fmt.Sprintf("  %s\n", header)
	for _, occ := range occurrences {
		name := occ.EffectiveName()
		amount := money.Money(0)
		sign := "-"
		resolved := false

		if i, ok := byID[occ.BudgetItemID]; ok {
			template := snap.Items[i]
			resolved = true
			amount = template.Amount
			if name == "" {
				name = template.Name
			}
			if template.Type == item.TypeIncome {
				sign = "+"
			}
		} else if occ.Item != nil {
			resolved = true
			amount = occ.Item.Amount
			if occ.Item.Type == item.TypeIncome {
				sign = "+"
			}
		}
		if occ.Amount != nil {
			amount = *occ.Amount
		}

		note := ""
		if !resolved {
			name = "(deleted item)"
			amount = 0
			note = mutedStyle.Render("  reference missing, counts as $0.00")
		}

		line := fmt.Sprintf("%s%s", sign, FormatMoney(amount))
		if sign == "+" {
			line = incomeStyle.Render(line)
		} else {
			line = expenseStyle.Render(line)
		}
		out += fmt.Sprintf("  [%d] %-24s %s%s\n", occ.ID, name, line, note)
	}
	return out
}
