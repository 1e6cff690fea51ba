package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Show or change the company profile",
}

var companyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the company profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := appInstance.Workspace.Company()
		out := cmd.OutOrStdout()

		rows := [][2]string{
			{"Name", c.Name},
			{"Address", c.Address},
			{"Phone", c.Phone},
			{"RC", c.RC},
			{"NIF", c.NIF},
			{"NIS", c.NIS},
			{"AI", c.AI},
			{"Bank", c.BankName},
			{"Account", c.BankAccount},
		}
		for _, r := range rows {
			fmt.Fprintf(out, "%-10s %s\n", r[0]+":", r[1])
		}
		return nil
	},
}

var companySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update company profile fields",
	Long: `Update company profile fields. Only the flags given are changed.

The invoice being edited picks up the new profile; archived invoices keep
the profile they were saved with.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c := appInstance.Workspace.Company()

		fields := map[string]*string{
			"name":         &c.Name,
			"address":      &c.Address,
			"phone":        &c.Phone,
			"rc":           &c.RC,
			"nif":          &c.NIF,
			"nis":          &c.NIS,
			"ai":           &c.AI,
			"bank-name":    &c.BankName,
			"bank-account": &c.BankAccount,
		}
		changed := 0
		for flag, field := range fields {
			if cmd.Flags().Changed(flag) {
				*field, _ = cmd.Flags().GetString(flag)
				changed++
			}
		}
		if changed == 0 {
			return fmt.Errorf("nothing to change; see --help for the available fields")
		}

		if err := appInstance.Workspace.UpdateCompany(ctx, c); err != nil {
			return fmt.Errorf("failed to update company: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Company updated: %s\n", c.Name)
		return nil
	},
}

func init() {
	companyCmd.AddCommand(companyShowCmd)
	companyCmd.AddCommand(companySetCmd)

	companySetCmd.Flags().String("name", "", "Company name")
	companySetCmd.Flags().String("address", "", "Address")
	companySetCmd.Flags().String("phone", "", "Phone")
	companySetCmd.Flags().String("rc", "", "Trade registry number (RC)")
	companySetCmd.Flags().String("nif", "", "Tax id (NIF)")
	companySetCmd.Flags().String("nis", "", "Statistical id (NIS)")
	companySetCmd.Flags().String("ai", "", "Article d'imposition (AI)")
	companySetCmd.Flags().String("bank-name", "", "Bank name")
	companySetCmd.Flags().String("bank-account", "", "Bank account (RIB)")
}
