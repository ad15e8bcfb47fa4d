package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one remembered exchange",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	a, err := openApp(cmd.Context())
	if err != nil {
		exitErr("open app", err)
	}
	defer a.Close()

	e, ok := a.mem.Get(args[0])
	if !ok {
		a.Close()
		exitErr("get", fmt.Errorf("memory %s not found", args[0]))
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "Q: %s\nA: %s\n", e.Query, e.Content)
		return
	}
	printJSON(cmd.OutOrStdout(), e)
}
