package main

import (
	"fmt"
	"text/tabwriter"

	"symptom-drift/internal/domain/symptoms"

	"github.com/spf13/cobra"
)

func symptomsCmd() *cobra.Command {
	var minPriority int

	cmd := &cobra.Command{
		Use:   "symptoms",
		Short: "Lista el vocabulario de síntomas con su prioridad",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := symptoms.Default()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SYMPTOM\tPRIORITY")
			for _, s := range catalog.All() {
				if s.Priority < minPriority {
					continue
				}
				fmt.Fprintf(tw, "%s\t%d\n", s.Name, s.Priority)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&minPriority, "min-priority", 1, "Solo síntomas con prioridad >= N")

	return cmd
}
