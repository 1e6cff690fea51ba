package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the defaults for new invoices",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appInstance.Config
		out := cmd.OutOrStdout()

		rows := [][2]string{
			{"TVA rate", fmt.Sprintf("%g%%", cfg.Invoice.DefaultTVARate)},
			{"Due days", fmt.Sprintf("%d", cfg.Invoice.DueDays)},
			{"Payment", cfg.Invoice.DefaultPaymentMethod},
			{"Notes", cfg.Invoice.DefaultNotes},
			{"Output", cfg.Invoice.OutputDir},
			{"Storage", fmt.Sprintf("%s (%s)", cfg.Storage.Driver, cfg.Storage.Path)},
			{"Log", fmt.Sprintf("%s (%s)", cfg.Log.Level, cfg.Log.File)},
		}
		for _, r := range rows {
			fmt.Fprintf(out, "%-10s %s\n", r[0]+":", r[1])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the defaults for new invoices",
	Long: `Change the defaults for new invoices and save them to the config file.
Only the flags given are changed.

The invoice being edited keeps its values; the next 'invoice new' uses the
new defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv := appInstance.Config.Invoice
		flags := cmd.Flags()

		changed := false
		if flags.Changed("tva") {
			inv.DefaultTVARate, _ = flags.GetFloat64("tva")
			changed = true
		}
		if flags.Changed("due-days") {
			inv.DueDays, _ = flags.GetInt("due-days")
			changed = true
		}
		if flags.Changed("payment") {
			inv.DefaultPaymentMethod, _ = flags.GetString("payment")
			changed = true
		}
		if flags.Changed("notes") {
			inv.DefaultNotes, _ = flags.GetString("notes")
			changed = true
		}
		if flags.Changed("output-dir") {
			inv.OutputDir, _ = flags.GetString("output-dir")
			changed = true
		}
		if !changed {
			return fmt.Errorf("nothing to change; see --help for the available fields")
		}

		if err := appInstance.UpdateInvoiceDefaults(inv); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Invoice defaults saved")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)

	configSetCmd.Flags().Float64("tva", 0, "Default TVA rate in percent")
	configSetCmd.Flags().Int("due-days", 0, "Days from the issue date to the due date")
	configSetCmd.Flags().String("payment", "", "Default payment method (CASH, TRANSFER or CHECK)")
	configSetCmd.Flags().String("notes", "", "Default notes printed under the totals")
	configSetCmd.Flags().String("output-dir", "", "Directory for exported PDFs")
}
