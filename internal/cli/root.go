package cli

import (
	"github.com/andy/fatoura/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "fatoura",
	Short: "Invoices and delivery notes for a small business",
	Long: `Fatoura keeps your company profile, a client roster and an archive of
invoices, and prints invoices with their delivery notes.

By default, running fatoura without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep all data in memory for this run")

	rootCmd.AddCommand(companyCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
