package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sdi",
		Short:         "Symptom Drift Index desde la línea de comandos",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(adjustCmd())
	rootCmd.AddCommand(symptomsCmd())

	return rootCmd
}
