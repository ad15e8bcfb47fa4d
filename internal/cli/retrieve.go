package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/text-assist/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "retrieve [query]",
		Short: "Find remembered exchanges relevant to a query",
		Long:  "Queries about earlier or previous work return the newest entries; others are ranked by BM25.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runRetrieve,
	}

	cmd.Flags().IntP("top-k", "k", 0, "Max results (default: memory.top_k)")

	RootCmd.AddCommand(cmd)
}

func runRetrieve(cmd *cobra.Command, args []string) {
	topK, _ := cmd.Flags().GetInt("top-k")
	query := strings.Join(args, " ")

	a, err := openApp(cmd.Context())
	if err != nil {
		exitErr("open app", err)
	}
	defer a.Close()

	results := a.mem.Retrieve(query, topK)

	out := cmd.OutOrStdout()
	if textOutput() {
		for _, r := range results {
			if r.RetrievalType == model.RetrievalChronological {
				fmt.Fprintf(out, "%s  recent      %s\n", r.ID, r.Query)
			} else {
				fmt.Fprintf(out, "%s  %-10.2f  %s\n", r.ID, r.Score, r.Query)
			}
		}
		return
	}
	printJSON(out, results)
}
