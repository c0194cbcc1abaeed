package cli

import (
	"fmt"

	"github.com/ledgercal/ledgercal/pkg/money"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Manage balance adjustment pins",
	Long: "A balance adjustment pins the real account balance as of a date.\n" +
		"The projection starts every month from the latest pin at or before\n" +
		"the first of that month.",
	RunE: runBalanceList,
}

var balanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List balance adjustments, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBalanceList,
}

var balanceSetCmd = &cobra.Command{
	Use:   "set <date> <amount>",
	Short: "Pin the account balance as of a date",
	Long: "Pin the account balance as of a YYYY-MM-DD date. Setting a date that\n" +
		"already has a pin replaces it. The amount may be negative.",
	Args: cobra.ExactArgs(2),
	RunE: runBalanceSet,
}

var balanceRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a balance adjustment",
	Args:  cobra.ExactArgs(1),
	RunE:  runBalanceRm,
}

func init() {
	balanceCmd.AddCommand(balanceListCmd, balanceSetCmd, balanceRmCmd)
	rootCmd.AddCommand(balanceCmd)
}

func runBalanceList(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}

	adjustments, err := deps.BalanceService.Adjustments(commandContext(cmd))
	if err != nil {
		return err
	}
	if adjustments.Len() == 0 {
		base, err := deps.Config.DefaultStartingBalance()
		if err != nil {
			return err
		}
		cmd.Println(mutedStyle.Render(fmt.Sprintf("No pins. Every month starts from the configured %s.", FormatMoney(base))))
		return nil
	}

	all := adjustments.All()
	for i := len(all) - 1; i >= 0; i-- {
		adj := all[i]
		marker := " "
		if latest, ok := adjustments.Latest(); ok && latest.ID == adj.ID {
			marker = todayStyle.Render("⚑")
		}
		cmd.Printf("%s [%d] %s  %s\n", marker, adj.ID, adj.Date, balanceText(adj.Amount))
	}
	return nil
}

func runBalanceSet(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}

	amount, err := money.ParseSigned(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	adj, err := deps.BalanceService.Set(commandContext(cmd), args[0], amount)
	if err != nil {
		return err
	}
	cmd.Printf("Pinned balance %s as of %s\n", FormatMoney(adj.Amount), adj.Date)
	return nil
}

func runBalanceRm(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	// Raw listing, not the deduped index: a pin shadowed by a duplicate
	// date must still be deletable by ID.
	pins, err := deps.BalanceService.List(ctx)
	if err != nil {
		return err
	}
	var found bool
	for _, adj := range pins {
		if adj.ID == id {
			if err := deps.BalanceService.Delete(ctx, adj); err != nil {
				return err
			}
			found = true
			cmd.Printf("Deleted pin [%d] (%s)\n", adj.ID, adj.Date)
			break
		}
	}
	if !found {
		return fmt.Errorf("no balance adjustment with id %d", id)
	}
	return nil
}
