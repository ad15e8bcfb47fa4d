package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "context [query]",
		Short: "Render relevant memories as a prompt context block",
		Args:  cobra.MinimumNArgs(1),
		Run:   runContext,
	}

	cmd.Flags().IntP("top-k", "k", 0, "Max entries (default: memory.top_k)")

	RootCmd.AddCommand(cmd)
}

func runContext(cmd *cobra.Command, args []string) {
	topK, _ := cmd.Flags().GetInt("top-k")
	query := strings.Join(args, " ")

	a, err := openApp(cmd.Context())
	if err != nil {
		exitErr("open app", err)
	}
	defer a.Close()

	ctx := a.mem.GetRelevantContextString(query, topK)
	if textOutput() {
		fmt.Fprint(cmd.OutOrStdout(), ctx)
		return
	}
	printJSON(cmd.OutOrStdout(), map[string]string{"context": ctx})
}
