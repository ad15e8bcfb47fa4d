package main

import (
	"os"

	"github.com/rcliao/text-assist/internal/cli"
)

var version = "dev"

func main() {
	cli.Version = version
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
