package cli

import (
	"fmt"
	"strconv"

	"github.com/ledgercal/ledgercal/pkg/item"
	"github.com/ledgercal/ledgercal/pkg/money"
	"github.com/spf13/cobra"
)

// Flags are per command: cobra assigns a flag's default when the flag is
// registered, so two commands must never share one backing variable.
var (
	flagAddItemType  string
	flagEditItemType string
	flagItemName     string
	flagItemAmount   string
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage the recurring budget item list",
	RunE:  runItemsList,
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List budget items in display order",
	Args:  cobra.NoArgs,
	RunE:  runItemsList,
}

var itemsAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Add a budget item",
	Long: "Add a recurring budget item. The amount is in dollars, e.g. 1500.50.\n" +
		"New items go to the end of the list.",
	Args: cobra.ExactArgs(2),
	RunE: runItemsAdd,
}

var itemsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a budget item's name, amount, or type",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemsEdit,
}

var itemsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a budget item",
	Long: "Delete a budget item. Scheduled entries that reference it are kept\n" +
		"and stop contributing to the projection.",
	Args: cobra.ExactArgs(1),
	RunE: runItemsRm,
}

var itemsMoveCmd = &cobra.Command{
	Use:   "move <id> <position>",
	Short: "Move a budget item to a new position in the list",
	Long: "Move a budget item to the given 1-based position. Every item's\n" +
		"display order is reassigned in one atomic batch.",
	Args: cobra.ExactArgs(2),
	RunE: runItemsMove,
}

func init() {
	itemsAddCmd.Flags().StringVarP(&flagAddItemType, "type", "t", "expense", "Item type: expense or income")
	itemsEditCmd.Flags().StringVarP(&flagItemName, "name", "n", "", "New name")
	itemsEditCmd.Flags().StringVarP(&flagItemAmount, "amount", "a", "", "New amount in dollars")
	itemsEditCmd.Flags().StringVarP(&flagEditItemType, "type", "t", "", "New type: expense or income")

	itemsCmd.AddCommand(itemsListCmd, itemsAddCmd, itemsEditCmd, itemsRmCmd, itemsMoveCmd)
	rootCmd.AddCommand(itemsCmd)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("expected a numeric id, got %q", arg)
	}
	return id, nil
}

func runItemsList(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}

	items, err := deps.ItemService.List(commandContext(cmd))
	if err != nil {
		return err
	}
	if len(items) == 0 {
		cmd.Println(mutedStyle.Render("No budget items yet. Add one with: ledgercal items add <name> <amount>"))
		return nil
	}

	for _, it := range items {
		sign := expenseStyle.Render("-" + FormatMoney(it.Amount))
		if it.Type == item.TypeIncome {
			sign = incomeStyle.Render("+" + FormatMoney(it.Amount))
		}
		cmd.Printf("%2d. [%d] %-24s %s\n", it.DisplayOrder, it.ID, it.Name, sign)
	}
	return nil
}

func runItemsAdd(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}

	amount, err := money.Parse(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	ctx := commandContext(cmd)
	existing, err := deps.ItemService.List(ctx)
	if err != nil {
		return err
	}

	created, err := deps.ItemService.Create(ctx, item.BudgetItem{
		Name:         args[0],
		Amount:       amount,
		Type:         item.ItemType(flagAddItemType),
		DisplayOrder: len(existing) + 1,
	})
	if err != nil {
		return err
	}
	cmd.Printf("Added item [%d] %s\n", created.ID, created.Name)
	return nil
}

func runItemsEdit(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	items, err := deps.ItemService.List(ctx)
	if err != nil {
		return err
	}
	var current *item.BudgetItem
	for i := range items {
		if items[i].ID == id {
			current = &items[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("no budget item with id %d", id)
	}

	if flagItemName != "" {
		current.Name = flagItemName
	}
	if flagItemAmount != "" {
		amount, err := money.Parse(flagItemAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", flagItemAmount, err)
		}
		current.Amount = amount
	}
	if flagEditItemType != "" {
		current.Type = item.ItemType(flagEditItemType)
	}

	if err := deps.ItemService.Update(ctx, *current); err != nil {
		return err
	}
	cmd.Printf("Updated item [%d] %s\n", current.ID, current.Name)
	return nil
}

func runItemsRm(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := deps.ItemService.Delete(commandContext(cmd), id); err != nil {
		return err
	}
	cmd.Printf("Deleted item [%d]\n", id)
	return nil
}

func runItemsMove(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	position, err := strconv.Atoi(args[1])
	if err != nil || position <= 0 {
		return fmt.Errorf("expected a 1-based position, got %q", args[1])
	}

	if err := deps.ItemService.Move(commandContext(cmd), id, position-1); err != nil {
		return err
	}
	cmd.Printf("Moved item [%d] to position %d\n", id, position)
	return nil
}
