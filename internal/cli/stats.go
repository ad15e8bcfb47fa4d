package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show memory statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	a, err := openApp(cmd.Context())
	if err != nil {
		exitErr("open app", err)
	}
	defer a.Close()

	stats := a.mem.Stats()

	out := cmd.OutOrStdout()
	if textOutput() {
		fmt.Fprintf(out, "entries:     %d / %d\n", stats.TotalEntries, stats.MaxItems)
		fmt.Fprintf(out, "summarized:  %d\n", stats.SummarizedCount)
		fmt.Fprintf(out, "compression: %.2f\n", stats.CompressionRatio)
		intents := make([]string, 0, len(stats.Intents))
		for in := range stats.Intents {
			intents = append(intents, in)
		}
		sort.Strings(intents)
		for _, in := range intents {
			fmt.Fprintf(out, "  %-10s %d\n", in, stats.Intents[in])
		}
		return
	}
	printJSON(out, stats)
}
