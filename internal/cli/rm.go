package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [id...]",
		Short: "Delete remembered exchanges",
		Args:  cobra.MinimumNArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	a, err := openApp(cmd.Context())
	if err != nil {
		exitErr("open app", err)
	}
	defer a.Close()

	var missing []string
	for _, id := range args {
		if !a.mem.Delete(id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		a.Close()
		exitErr("rm", fmt.Errorf("not found: %v", missing))
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"deleted":%d}`+"\n", len(args))
}
