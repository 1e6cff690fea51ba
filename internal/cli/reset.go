package cli

import (
	"context"
	"fmt"

	"github.com/andy/fatoura/internal/crypto"
	"github.com/andy/fatoura/internal/repository"
	"github.com/andy/fatoura/internal/service"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset stored data",
	Long: `Reset stored data. Each subcommand clears one slot of the store; the next
run starts from the built-in defaults for it.

Examples:
  fatoura reset draft      # Discard the invoice being edited
  fatoura reset archive    # Delete every archived invoice
  fatoura reset all        # Wipe company, clients, archive and draft
  fatoura reset all --forget-key  # ...and drop the database key`,
}

// slot picks one repository out of the set
type slot func(r service.Repositories) repository.Clearer

var (
	draftSlot   slot = func(r service.Repositories) repository.Clearer { return r.Draft }
	clientsSlot slot = func(r service.Repositories) repository.Clearer { return r.Clients }
	archiveSlot slot = func(r service.Repositories) repository.Clearer { return r.Archive }
	companySlot slot = func(r service.Repositories) repository.Clearer { return r.Company }
)

// newResetCmd builds a reset subcommand that clears the given slots
func newResetCmd(use, short, prompt string, slots ...slot) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				if !confirmPrompt(cmd.InOrStdin(), out, prompt) {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			ctx := context.Background()
			repos := service.NewRepositories(appInstance.Store)
			for _, pick := range slots {
				if err := pick(repos).Clear(ctx); err != nil {
					return fmt.Errorf("failed to reset %s: %w", use, err)
				}
			}

			// Only "all" defines --forget-key
			if forget, _ := cmd.Flags().GetBool("forget-key"); forget {
				if err := crypto.NewKeyring().DeleteKey(); err != nil {
					fmt.Fprintf(out, "Note: %v\n", err)
				} else {
					fmt.Fprintln(out, "Database key removed from the keychain.")
				}
			}

			fmt.Fprintln(out, "Done. Changes apply from the next run.")
			return nil
		},
	}
}

func init() {
	subcommands := []*cobra.Command{
		newResetCmd("draft", "Discard the invoice being edited",
			"This will discard the current invoice. Continue?",
			draftSlot),
		newResetCmd("clients", "Delete all clients",
			"This will delete ALL clients. Invoices keep their copies. Continue?",
			clientsSlot),
		newResetCmd("archive", "Delete all archived invoices",
			"This will delete ALL archived invoices. Continue?",
			archiveSlot),
		newResetCmd("company", "Restore the default company profile",
			"This will replace your company profile with the default. Continue?",
			companySlot),
		newResetCmd("all", "Delete ALL data: company, clients, archive, draft",
			"This will delete ALL data (company, clients, archive, draft). Continue?",
			companySlot, clientsSlot, archiveSlot, draftSlot),
	}
	for _, c := range subcommands {
		c.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
		resetCmd.AddCommand(c)
	}
	all := subcommands[len(subcommands)-1]
	all.Flags().Bool("forget-key", false, "Also remove the database key from the keychain")
}
