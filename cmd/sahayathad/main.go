package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pro-joshi-grammer/sahayatha/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sahayathad",
		Short: "Sahayatha daemon",
		Long:  "Sahayatha daemon for running the citizen assistant API server and corpus tooling",
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.IngestCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
