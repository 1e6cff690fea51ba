package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/andy/fatoura/internal/render"
	"github.com/andy/fatoura/internal/service"
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Browse saved invoices",
	Long: `Browse saved invoices, most recent first. Invoices are referred to by their
position in 'archive list', their id, or a unique id prefix.`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		archive := appInstance.Workspace.Archive()
		out := cmd.OutOrStdout()

		if len(archive) == 0 {
			fmt.Fprintln(out, "No archived invoices")
			return nil
		}

		fmt.Fprintf(out, "%-4s %-12s %-11s %-28s %18s\n", "#", "Number", "Date", "Client", "Total")
		fmt.Fprintln(out, "-----------------------------------------------------------------------------")
		for i, inv := range archive {
			fmt.Fprintf(out, "%-4d %-12s %-11s %-28s %18s\n",
				i+1,
				truncate(inv.InvoiceNumber, 12),
				render.Date(inv.Date),
				truncate(inv.Client.Name, 28),
				render.Money(inv.StoredTotal()),
			)
		}

		fmt.Fprintf(out, "\nTotal: %d invoice(s)\n", len(archive))
		return nil
	},
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <invoice>",
	Short: "Print an archived invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveRef(args[0], archiveRefs())
		if err != nil {
			return fmt.Errorf("invalid invoice: %w", err)
		}
		inv, err := appInstance.Workspace.ArchivedInvoice(id)
		if err != nil {
			return err
		}
		if err := printDocument(cmd, render.NewDocument(inv)); err != nil {
			return err
		}
		if inv.IsArchivedSnapshot() {
			fmt.Fprintf(cmd.OutOrStdout(), "\nArchived total: %s\n", render.Money(inv.StoredTotal()))
		}
		return nil
	},
}

var archiveOpenCmd = &cobra.Command{
	Use:   "open <invoice>",
	Short: "Load an archived invoice into the editor",
	Long: `Load an archived invoice into the editor, replacing the current invoice.
Saving it again updates the archived entry in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveRef(args[0], archiveRefs())
		if err != nil {
			return fmt.Errorf("invalid invoice: %w", err)
		}
		if err := appInstance.Workspace.OpenFromArchive(context.Background(), id); err != nil {
			return fmt.Errorf("failed to open invoice: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Editing invoice %s\n", appInstance.Workspace.Current().InvoiceNumber)
		return nil
	},
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <invoice>",
	Short: "Delete an archived invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveRef(args[0], archiveRefs())
		if err != nil {
			return fmt.Errorf("invalid invoice: %w", err)
		}
		inv, err := appInstance.Workspace.ArchivedInvoice(id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			if !confirmPrompt(cmd.InOrStdin(), out, fmt.Sprintf("Delete invoice %s?", inv.InvoiceNumber)) {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		if err := appInstance.Workspace.DeleteFromArchive(context.Background(), id); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Invoice %s deleted\n", inv.InvoiceNumber)
		return nil
	},
}

var archiveSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Revenue by month and by client",
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		if !cmd.Flags().Changed("year") {
			year = time.Now().Year()
		}
		sum := appInstance.Workspace.Summary(year)
		printSummary(cmd, sum)
		return nil
	},
}

func printSummary(cmd *cobra.Command, sum service.ArchiveSummary) {
	out := cmd.OutOrStdout()

	period := "all years"
	if sum.Year != 0 {
		period = fmt.Sprint(sum.Year)
	}
	fmt.Fprintf(out, "Archive summary (%s)\n\n", period)
	fmt.Fprintf(out, "Invoices:    %d\n", sum.Invoices)
	fmt.Fprintf(out, "Revenue:     %s\n", render.Money(sum.Total))
	fmt.Fprintf(out, "Stamp duty:  %s\n", render.Money(sum.StampDuty))

	if sum.Invoices == 0 {
		return
	}

	fmt.Fprintln(out, "\nBy month:")
	for m := time.January; m <= time.December; m++ {
		if v := sum.ByMonth[m]; v != 0 {
			fmt.Fprintf(out, "  %-10s %18s\n", m.String(), render.Money(v))
		}
	}

	fmt.Fprintln(out, "\nBy client:")
	for _, c := range sum.ByClient {
		name := c.Name
		if name == "" {
			name = "(no client)"
		}
		fmt.Fprintf(out, "  %-28s %3d  %18s\n", truncate(name, 28), c.Invoices, render.Money(c.Total))
	}
}

func init() {
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveOpenCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
	archiveCmd.AddCommand(archiveSummaryCmd)

	addPrintFlags(archiveShowCmd)
	archiveDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	archiveSummaryCmd.Flags().Int("year", 0, "Year to summarize (0 for all; default current year)")
}
