package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/andy/fatoura/internal/domain"
	"github.com/andy/fatoura/internal/render"
	"github.com/andy/fatoura/internal/service"
	"github.com/spf13/cobra"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Edit the current invoice",
	Long: `Edit the current invoice. There is always exactly one invoice being
edited; it is kept between runs until replaced with 'invoice new' or
'archive open'.`,
}

var invoiceNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new invoice, discarding unsaved edits",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.Workspace.NewInvoice(context.Background())
		if err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ New invoice: %s\n", inv.InvoiceNumber)
		fmt.Fprintf(out, "  Date: %s  Due: %s\n", render.Date(inv.Date), render.Date(inv.DueDate))
		return nil
	},
}

var invoiceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Preview the current invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := render.NewDocument(appInstance.Workspace.Current())
		delivery, _ := cmd.Flags().GetBool("delivery-note")
		if delivery {
			return render.DeliveryNoteText(cmd.OutOrStdout(), doc)
		}
		return render.Text(cmd.OutOrStdout(), doc)
	},
}

var invoiceSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change invoice fields",
	Long: `Change invoice fields. Only the flags given are changed.

Client flags edit the client details printed on this invoice without
touching the roster.`,
	Example: `  fatoura invoice set --number 2026/017 --payment cash
  fatoura invoice set --date 2026-03-01 --due 2026-03-31 --tva 9`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := appInstance.Workspace
		flags := cmd.Flags()

		cur := ws.Current()
		h := service.InvoiceHeader{
			Number:        cur.InvoiceNumber,
			Date:          cur.Date,
			DueDate:       cur.DueDate,
			TVARate:       cur.TVARate,
			PaymentMethod: cur.PaymentMethod,
			Notes:         cur.Notes,
			Client:        clientUpdatesFromFlags(cmd, "client-"),
		}
		changed := len(h.Client) > 0

		// Every flag is parsed before anything is written
		if flags.Changed("number") {
			h.Number, _ = flags.GetString("number")
			changed = true
		}
		if flags.Changed("date") {
			v, _ := flags.GetString("date")
			d, err := domain.ParseDate(v)
			if err != nil {
				return err
			}
			h.Date = d
			changed = true
		}
		if flags.Changed("due") {
			v, _ := flags.GetString("due")
			d, err := domain.ParseDate(v)
			if err != nil {
				return err
			}
			h.DueDate = d
			changed = true
		}
		if flags.Changed("tva") {
			h.TVARate, _ = flags.GetFloat64("tva")
			changed = true
		}
		if flags.Changed("payment") {
			v, _ := flags.GetString("payment")
			pm, err := domain.ParsePaymentMethod(v)
			if err != nil {
				return err
			}
			h.PaymentMethod = pm
			changed = true
		}
		if flags.Changed("notes") {
			h.Notes, _ = flags.GetString("notes")
			changed = true
		}

		if !changed {
			return fmt.Errorf("nothing to change; see --help for the available fields")
		}
		if err := ws.SetHeader(context.Background(), h); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Invoice %s updated\n", h.Number)
		return nil
	},
}

var invoiceSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current invoice to the archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := appInstance.Workspace
		outcome, err := ws.SaveToArchive(context.Background())
		if errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
			return fmt.Errorf("%w; change it with 'invoice set --number'", err)
		}
		if err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}

		inv := ws.Current()
		verb := "saved"
		if outcome == domain.OutcomeUpdated {
			verb = "updated"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Invoice %s %s in archive (total %s)\n",
			inv.InvoiceNumber, verb, render.Money(ws.Totals().Total))
		return nil
	},
}

var invoicePrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the current invoice and delivery note",
	Long: `Print the current invoice to the terminal, or export it as a PDF with the
delivery note on a second page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDocument(cmd, render.NewDocument(appInstance.Workspace.Current()))
	},
}

// printDocument renders doc according to the --pdf, --output and
// --delivery-note flags of cmd
func printDocument(cmd *cobra.Command, doc render.Document) error {
	out := cmd.OutOrStdout()
	asPDF, _ := cmd.Flags().GetBool("pdf")
	if !asPDF {
		if err := render.Text(out, doc); err != nil {
			return err
		}
		if delivery, _ := cmd.Flags().GetBool("delivery-note"); delivery {
			fmt.Fprintln(out)
			return render.DeliveryNoteText(out, doc)
		}
		return nil
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = filepath.Join(appInstance.Config.Invoice.OutputDir, render.FileName(doc.Invoice))
	}
	if err := render.WriteFile(path, doc); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Written %s\n", path)
	return nil
}

func addPrintFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("delivery-note", false, "Also print the delivery note")
	cmd.Flags().Bool("pdf", false, "Export a PDF with invoice and delivery note")
	cmd.Flags().StringP("output", "o", "", "PDF file (default: <output_dir>/facture-<number>.pdf)")
}

func init() {
	invoiceCmd.AddCommand(invoiceNewCmd)
	invoiceCmd.AddCommand(invoiceShowCmd)
	invoiceCmd.AddCommand(invoiceSetCmd)
	invoiceCmd.AddCommand(invoiceItemCmd)
	invoiceCmd.AddCommand(invoiceSaveCmd)
	invoiceCmd.AddCommand(invoicePrintCmd)

	invoiceShowCmd.Flags().Bool("delivery-note", false, "Show the delivery note instead")

	invoiceSetCmd.Flags().String("number", "", "Invoice number")
	invoiceSetCmd.Flags().String("date", "", "Issue date (YYYY-MM-DD)")
	invoiceSetCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	invoiceSetCmd.Flags().Float64("tva", 0, "TVA rate in percent")
	invoiceSetCmd.Flags().String("payment", "", "Payment method: cash, transfer or check")
	invoiceSetCmd.Flags().String("notes", "", "Notes printed under the totals")
	addClientFlags(invoiceSetCmd, "client-", "Client")

	addPrintFlags(invoicePrintCmd)
}
