package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"symptom-drift/internal/domain/sdi"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// scoreFile es el formato de entrada: el historial y, opcionalmente,
// el contexto del paciente y los scores previos.
type scoreFile struct {
	History  []sdi.HistoryRow `yaml:"history"`
	Patient  scorePatient     `yaml:"patient"`
	Previous []float64        `yaml:"previous_scores"`
}

type scorePatient struct {
	Age            int    `yaml:"age"`
	ChronicDisease string `yaml:"chronic_disease"`
}

type scoreOutput struct {
	RawScore        float64  `yaml:"raw_score" json:"raw_score"`
	NormalizedScore float64  `yaml:"normalized_score" json:"normalized_score"`
	Color           string   `yaml:"color" json:"color"`
	Alert           string   `yaml:"alert" json:"alert"`
	Trend           string   `yaml:"trend" json:"trend"`
	Critical        bool     `yaml:"critical" json:"critical"`
	Patterns        []string `yaml:"patterns" json:"patterns"`
}

func scoreCmd() *cobra.Command {
	var (
		file     string
		age      int
		chronic  string
		previous string
		nowFlag  string
		tz       string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Calcula el SDI de un historial en YAML",
		Long: `Lee un archivo YAML con el historial (symptom_name, severity, date_recorded)
y muestra el resultado. Las flags --age, --chronic y --previous pisan lo que
venga en el archivo. Usar "-" para leer de stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readScoreFile(cmd, file)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("age") {
				in.Patient.Age = age
			}
			if cmd.Flags().Changed("chronic") {
				in.Patient.ChronicDisease = chronic
			}
			if cmd.Flags().Changed("previous") {
				in.Previous, err = parseFloats(previous)
				if err != nil {
					return err
				}
			}

			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("invalid --tz: %w", err)
			}

			now := time.Now
			if nowFlag != "" {
				fixed, err := sdi.ParseTimestamp(nowFlag, loc)
				if err != nil {
					return fmt.Errorf("invalid --now: %w", err)
				}
				now = func() time.Time { return fixed }
			}

			entries, err := sdi.ParseHistoryRows(in.History, loc)
			if err != nil {
				return err
			}

			engine := sdi.NewEngineWithClock(now)
			res := engine.Calculate(entries, sdi.PatientContext{
				Age:            in.Patient.Age,
				ChronicDisease: in.Patient.ChronicDisease,
			}, in.Previous)

			return writeOutput(cmd.OutOrStdout(), output, toScoreOutput(res))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Archivo YAML con el historial (- = stdin)")
	cmd.Flags().IntVar(&age, "age", 0, "Edad del paciente")
	cmd.Flags().StringVar(&chronic, "chronic", "", "Condición crónica (Diabetes, Hypertension, ...)")
	cmd.Flags().StringVar(&previous, "previous", "", "Scores normalizados previos, separados por coma")
	cmd.Flags().StringVar(&nowFlag, "now", "", "Fecha-hora local de referencia, sin zona (por defecto, ahora)")
	cmd.Flags().StringVar(&tz, "tz", "UTC", "Zona para fechas sin zona")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Formato de salida (yaml, json)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readScoreFile(cmd *cobra.Command, path string) (scoreFile, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return scoreFile{}, fmt.Errorf("read history: %w", err)
	}

	var in scoreFile
	if err := yaml.Unmarshal(raw, &in); err != nil {
		return scoreFile{}, fmt.Errorf("parse history yaml: %w", err)
	}
	return in, nil
}

func parseFloats(csv string) ([]float64, error) {
	var out []float64
	for _, p := range strings.Split(csv, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid previous score %q", p)
		}
		out = append(out, f)
	}
	return out, nil
}

func toScoreOutput(res sdi.Result) scoreOutput {
	patterns := res.Patterns
	if patterns == nil {
		patterns = []string{}
	}
	return scoreOutput{
		RawScore:        res.RawScore,
		NormalizedScore: res.NormalizedScore,
		Color:           string(res.Color),
		Alert:           string(res.Alert),
		Trend:           string(res.Trend),
		Critical:        res.Critical,
		Patterns:        patterns,
	}
}

func writeOutput(w io.Writer, format string, v any) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "", "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
