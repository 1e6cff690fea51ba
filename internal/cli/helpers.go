package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/andy/fatoura/internal/domain"
	"github.com/spf13/cobra"
)

// resolveRef accepts either a full id or a 1-based position in ids
func resolveRef(ref string, ids []string) (string, error) {
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(ids) {
			return "", fmt.Errorf("index %d out of range (1-%d)", n, len(ids))
		}
		return ids[n-1], nil
	}
	// Unique id prefix, as printed by list commands
	match := ""
	for _, id := range ids {
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return "", fmt.Errorf("%q matches more than one entry", ref)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no entry matches %q", ref)
	}
	return match, nil
}

func clientRefs() []string {
	clients := appInstance.Workspace.Clients()
	ids := make([]string, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
	}
	return ids
}

func itemRefs() []string {
	items := appInstance.Workspace.Current().Items
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func archiveRefs() []string {
	archive := appInstance.Workspace.Archive()
	ids := make([]string, len(archive))
	for i, inv := range archive {
		ids[i] = inv.ID
	}
	return ids
}

// clientUpdatesFromFlags collects a ClientUpdate for every changed flag.
// prefix is prepended to the flag names, e.g. "client-".
func clientUpdatesFromFlags(cmd *cobra.Command, prefix string) []domain.ClientUpdate {
	var updates []domain.ClientUpdate
	flags := cmd.Flags()
	if flags.Changed(prefix + "name") {
		v, _ := flags.GetString(prefix + "name")
		updates = append(updates, domain.SetClientName{Value: v})
	}
	if flags.Changed(prefix + "address") {
		v, _ := flags.GetString(prefix + "address")
		updates = append(updates, domain.SetClientAddress{Value: v})
	}
	if flags.Changed(prefix + "phone") {
		v, _ := flags.GetString(prefix + "phone")
		updates = append(updates, domain.SetClientPhone{Value: v})
	}
	if flags.Changed(prefix + "nif") {
		v, _ := flags.GetString(prefix + "nif")
		updates = append(updates, domain.SetClientNIF{Value: v})
	}
	return updates
}

func addClientFlags(cmd *cobra.Command, prefix, what string) {
	cmd.Flags().String(prefix+"name", "", what+" name")
	cmd.Flags().String(prefix+"address", "", what+" address")
	cmd.Flags().String(prefix+"phone", "", what+" phone")
	cmd.Flags().String(prefix+"nif", "", what+" tax id (NIF)")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}

func confirmPrompt(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s [y/N] ", message)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes" || input == "o" || input == "oui"
}

