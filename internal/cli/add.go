package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Remember an exchange",
		Long:  "Store a query and the content produced for it. Content can be a positional arg or piped via stdin.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("query", "q", "", "The request the content answers (required)")
	cmd.Flags().StringToStringP("meta", "m", nil, "Metadata as key=value pairs")

	cmd.MarkFlagRequired("query")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	query, _ := cmd.Flags().GetString("query")
	meta, _ := cmd.Flags().GetStringToString("meta")

	content, err := readInput(args)
	if err != nil {
		exitErr("add", err)
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		exitErr("open app", err)
	}
	defer a.Close()

	e, err := a.mem.AddConversation(cmd.Context(), query, strings.TrimSpace(content), meta)
	if err != nil {
		a.Close()
		exitErr("add", err)
	}

	if textOutput() {
		fmt.Fprintln(cmd.OutOrStdout(), e.ID)
		return
	}
	printJSON(cmd.OutOrStdout(), e)
}
