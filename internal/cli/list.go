package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List remembered exchanges, oldest first",
		Run:   runList,
	}

	cmd.Flags().IntP("limit", "l", 0, "Only the newest N entries (0: all)")
	cmd.Flags().Bool("ids-only", false, "Only output entry ids")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	a, err := openApp(cmd.Context())
	if err != nil {
		exitErr("open app", err)
	}
	defer a.Close()

	entries := a.mem.Entries()
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	out := cmd.OutOrStdout()
	if idsOnly {
		for _, e := range entries {
			fmt.Fprintln(out, e.ID)
		}
		return
	}
	if textOutput() {
		for _, e := range entries {
			mark := " "
			if e.IsSummarized {
				mark = "*"
			}
			fmt.Fprintf(out, "%s %s %s %s\n", e.ID, e.Timestamp.Local().Format(time.DateTime), mark, e.Query)
		}
		return
	}
	printJSON(out, entries)
}
