package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func evaluateCmd() *cobra.Command {
	var (
		clientPath    string
		guidelinePath string
		clientId      string
		jsonOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate client records against a guideline file",
		Long: `Evaluate a client record offline and print its health report.

The client file holds either a single client or a seed file of the form
{"clients": [...]}. The guideline file is JSON or YAML of the form
{"guidelines": {...}}.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := readClients(clientPath)
			if err != nil {
				return err
			}

			guidelines, err := loadGuidelineFile(guidelinePath)
			if err != nil {
				return fmt.Errorf("read guidelines: %w", err)
			}
			if guidelines == nil {
				return fmt.Errorf("no guidelines found in %s", guidelinePath)
			}

			var reports []*HealthReport
			for _, client := range clients {
				if clientId != "" && client.Id != clientId {
					continue
				}
				report, err := Evaluate(client, guidelines)
				if err != nil {
					return err
				}
				reports = append(reports, report)
			}
			if clientId != "" && len(reports) == 0 {
				return fmt.Errorf("client %s not found in %s", clientId, clientPath)
			}

			output := cmd.OutOrStdout()
			if jsonOutput || !isTerminal(output) {
				return writeReportsJSON(output, reports)
			}

			ages := map[string]int{}
			for _, client := range clients {
				if !client.DateOfBirth.IsZero() {
					ages[client.Id] = yearsBetween(client.DateOfBirth.Time, time.Now())
				}
			}
			for _, report := range reports {
				writeReportTable(output, report, ages)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&clientPath, "client", "", "client record or client seed file")
	cmd.Flags().StringVar(&guidelinePath, "guidelines", "data/medicalGuidelines.json", "guideline file (JSON or YAML)")
	cmd.Flags().StringVar(&clientId, "id", "", "only evaluate the client with this id")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print reports as JSON")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

// readClients accepts a seed file or a single client document.
func readClients(path string) ([]*Client, error) {
	clients, err := loadClientFile(path)
	if err != nil {
		return nil, fmt.Errorf("read clients: %w", err)
	}
	if len(clients) > 0 {
		return clients, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read clients: %w", err)
	}
	var client Client
	if err := json.Unmarshal(data, &client); err != nil {
		return nil, fmt.Errorf("error parsing client %s: %w", path, err)
	}
	return []*Client{&client}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func writeReportsJSON(w io.Writer, reports []*HealthReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if len(reports) == 1 {
		return encoder.Encode(reports[0])
	}
	return encoder.Encode(reports)
}

func writeReportTable(w io.Writer, report *HealthReport, ages map[string]int) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	header := fmt.Sprintf("%s (%s)", report.ClientName, report.ClientId)
	if age, ok := ages[report.ClientId]; ok {
		header += fmt.Sprintf(", age %d", age)
	}
	cyan.Fprintln(w, header)

	bold.Fprintln(w, "Health metrics")
	for _, name := range sortedKeys(report.HealthMetrics) {
		result := report.HealthMetrics[name]
		value := result.Reading
		if value == "" {
			value = strconv.FormatFloat(result.ClientValue, 'f', -1, 64)
		}
		writeReportRow(w, name, value, result.Status, result.GuidelineRange)
	}

	bold.Fprintln(w, "Qualitative metrics")
	for _, name := range sortedKeys(report.QualitativeMetrics) {
		result := report.QualitativeMetrics[name]
		writeReportRow(w, name, result.ClientValue, result.Status, result.GuidelineRange)
	}
	fmt.Fprintln(w)
}

func writeReportRow(w io.Writer, name, value string, status Status, guidelineRange string) {
	fmt.Fprintf(w, "  %-24s %-28s %s\n", name, value, statusColor(status).Sprint(status))
	if guidelineRange != "" {
		fmt.Fprintf(w, "  %-24s %s\n", "", color.New(color.Faint).Sprint(guidelineRange))
	}
}

func statusColor(status Status) *color.Color {
	switch status {
	case StatusOptimal:
		return color.New(color.FgGreen)
	case StatusNeedsAttention:
		return color.New(color.FgYellow)
	case StatusSeriousIssue:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgHiBlack)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
