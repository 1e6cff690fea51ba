package cli

import (
	"context"
	"fmt"

	"github.com/andy/fatoura/internal/domain"
	"github.com/andy/fatoura/internal/render"
	"github.com/spf13/cobra"
)

var invoiceItemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage the line items of the current invoice",
	Long: `Manage the line items of the current invoice. Items are referred to by
their position in 'invoice item list' or their id.`,
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List line items",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv := appInstance.Workspace.Current()
		out := cmd.OutOrStdout()

		if len(inv.Items) == 0 {
			fmt.Fprintln(out, "No items")
			return nil
		}

		fmt.Fprintf(out, "%-4s %-36s %10s %14s %16s\n", "#", "Description", "Qty", "Price", "Amount")
		fmt.Fprintln(out, "------------------------------------------------------------------------------------")
		for i, it := range inv.Items {
			fmt.Fprintf(out, "%-4d %-36s %10s %14s %16s\n",
				i+1,
				truncate(it.Description, 36),
				render.Quantity(it.Quantity),
				render.Amount(it.Price),
				render.Amount(it.Amount()),
			)
		}
		fmt.Fprintf(out, "\nSubtotal: %s\n", render.Money(appInstance.Workspace.Totals().Subtotal))
		return nil
	},
}

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a line item",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ws := appInstance.Workspace

		item, err := ws.AddItem(ctx)
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}
		if updates := itemUpdatesFromFlags(cmd); len(updates) > 0 {
			if err := ws.UpdateItem(ctx, item.ID, updates...); err != nil {
				return fmt.Errorf("failed to update item: %w", err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Item %d added\n", len(ws.Current().Items))
		return nil
	},
}

var itemSetCmd = &cobra.Command{
	Use:   "set <item>",
	Short: "Change a line item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveRef(args[0], itemRefs())
		if err != nil {
			return fmt.Errorf("invalid item: %w", err)
		}

		updates := itemUpdatesFromFlags(cmd)
		if len(updates) == 0 {
			return fmt.Errorf("nothing to change; use --description, --price or --quantity")
		}
		if err := appInstance.Workspace.UpdateItem(context.Background(), id, updates...); err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Item updated")
		return nil
	},
}

var itemRemoveCmd = &cobra.Command{
	Use:     "remove <item>",
	Aliases: []string{"rm"},
	Short:   "Remove a line item",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveRef(args[0], itemRefs())
		if err != nil {
			return fmt.Errorf("invalid item: %w", err)
		}
		if err := appInstance.Workspace.RemoveItem(context.Background(), id); err != nil {
			return fmt.Errorf("failed to remove item: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Item removed")
		return nil
	},
}

func itemUpdatesFromFlags(cmd *cobra.Command) []domain.ItemUpdate {
	var updates []domain.ItemUpdate
	flags := cmd.Flags()
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		updates = append(updates, domain.SetDescription{Value: v})
	}
	if flags.Changed("price") {
		v, _ := flags.GetFloat64("price")
		updates = append(updates, domain.SetPrice{Value: v})
	}
	if flags.Changed("quantity") {
		v, _ := flags.GetFloat64("quantity")
		updates = append(updates, domain.SetQuantity{Value: v})
	}
	return updates
}

func init() {
	invoiceItemCmd.AddCommand(itemListCmd)
	invoiceItemCmd.AddCommand(itemAddCmd)
	invoiceItemCmd.AddCommand(itemSetCmd)
	invoiceItemCmd.AddCommand(itemRemoveCmd)

	for _, c := range []*cobra.Command{itemAddCmd, itemSetCmd} {
		c.Flags().StringP("description", "d", "", "Description")
		c.Flags().Float64P("price", "p", 0, "Unit price")
		c.Flags().Float64P("quantity", "q", 1, "Quantity")
	}
}
