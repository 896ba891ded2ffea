package main

import (
	"fmt"

	"symptom-drift/internal/domain/severity"
	"symptom-drift/internal/domain/symptoms"

	"github.com/spf13/cobra"
)

type adjustOutput struct {
	Symptom   string  `yaml:"symptom,omitempty" json:"symptom,omitempty"`
	Base      float64 `yaml:"base" json:"base"`
	Intensity string  `yaml:"intensity" json:"intensity"`
	Severity  float64 `yaml:"severity" json:"severity"`
}

func adjustCmd() *cobra.Command {
	var (
		base      float64
		symptom   string
		age       int
		chronic   bool
		intensity string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Ajusta una severidad base por edad, condición crónica e intensidad",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := adjustOutput{Base: base}

			if symptom != "" {
				catalog, err := symptoms.Default()
				if err != nil {
					return err
				}
				s, err := catalog.Lookup(symptom)
				if err != nil {
					return fmt.Errorf("unknown symptom %q", symptom)
				}
				out.Symptom = s.Name
				if !cmd.Flags().Changed("base") {
					out.Base = float64(s.Priority)
				}
			}

			lvl := severity.ParseIntensity(intensity)
			out.Intensity = string(lvl)
			out.Severity = severity.Adjust(out.Base, age, chronic, lvl)

			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}

	cmd.Flags().Float64Var(&base, "base", 1, "Severidad base")
	cmd.Flags().StringVar(&symptom, "symptom", "", "Toma la base de la prioridad del síntoma")
	cmd.Flags().IntVar(&age, "age", 0, "Edad del paciente")
	cmd.Flags().BoolVar(&chronic, "chronic", false, "El paciente tiene una condición crónica")
	cmd.Flags().StringVar(&intensity, "intensity", "none", "Intensidad (none, mild, severe)")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Formato de salida (yaml, json)")

	return cmd
}
