package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long: `List, add, edit and delete clients, and pick the client of the current invoice.

Clients are referred to by their position in 'clients list', their id, or a
unique id prefix.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		clients := appInstance.Workspace.Clients()
		out := cmd.OutOrStdout()

		if len(clients) == 0 {
			fmt.Fprintln(out, "No clients found")
			return nil
		}

		// Print table header
		fmt.Fprintf(out, "%-4s %-9s %-30s %-15s %-15s\n", "#", "ID", "Name", "Phone", "NIF")
		fmt.Fprintln(out, "-----------------------------------------------------------------------------")

		for i, c := range clients {
			fmt.Fprintf(out, "%-4d %-9s %-30s %-15s %-15s\n",
				i+1,
				shortID(c.ID),
				truncate(c.Name, 30),
				truncate(c.Phone, 15),
				c.NIF,
			)
		}

		fmt.Fprintf(out, "\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new client at the top of the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ws := appInstance.Workspace

		client, err := ws.AddClient(ctx)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		if updates := clientUpdatesFromFlags(cmd, ""); len(updates) > 0 {
			if err := ws.UpdateClient(ctx, client.ID, updates...); err != nil {
				return fmt.Errorf("failed to update client: %w", err)
			}
			client, _ = ws.Client(client.ID)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client created: %s (ID: %s)\n", client.Name, shortID(client.ID))
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit <client>",
	Short: "Edit an existing client",
	Long: `Edit an existing client. Invoices that already use the client keep the
details they were created with.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := resolveRef(args[0], clientRefs())
		if err != nil {
			return fmt.Errorf("invalid client: %w", err)
		}

		updates := clientUpdatesFromFlags(cmd, "")
		if len(updates) == 0 {
			return fmt.Errorf("nothing to change; use --name, --address, --phone or --nif")
		}
		if err := appInstance.Workspace.UpdateClient(ctx, id, updates...); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		client, _ := appInstance.Workspace.Client(id)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client updated: %s\n", client.Name)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <client>",
	Short: "Remove a client from the roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := resolveRef(args[0], clientRefs())
		if err != nil {
			return fmt.Errorf("invalid client: %w", err)
		}
		client, err := appInstance.Workspace.Client(id)
		if err != nil {
			return err
		}

		if err := appInstance.Workspace.DeleteClient(ctx, id); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client deleted: %s\n", client.Name)
		return nil
	},
}

var clientsSelectCmd = &cobra.Command{
	Use:   "select <client>",
	Short: "Use a client for the current invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := resolveRef(args[0], clientRefs())
		if err != nil {
			return fmt.Errorf("invalid client: %w", err)
		}
		if err := appInstance.Workspace.SelectClient(ctx, id); err != nil {
			return fmt.Errorf("failed to select client: %w", err)
		}

		inv := appInstance.Workspace.Current()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Invoice %s billed to %s\n", inv.InvoiceNumber, inv.Client.Name)
		return nil
	},
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)
	clientsCmd.AddCommand(clientsSelectCmd)

	addClientFlags(clientsAddCmd, "", "Client")
	addClientFlags(clientsEditCmd, "", "New")
}
