package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/the-truth-must-out/internal/cli"
	"github.com/Veraticus/the-truth-must-out/internal/detector"
	"github.com/Veraticus/the-truth-must-out/internal/model"
	"github.com/Veraticus/the-truth-must-out/internal/session"
	"github.com/Veraticus/the-truth-must-out/internal/tui/viewmodel"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Output formats for analyze.
const (
	outputText = "text"
	outputJSON = "json"
)

var (
	errAnalysisFailed = errors.New("analysis failed")
	errTooManySources = errors.New("text arguments cannot be combined with --file")
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze a single text and print the verdict",
		Long: `Submit text to the classification service and print how likely it is to be
truthful.

Text is taken from the arguments, from --file, or from stdin when piped
or when the only argument is "-". Arguments and --file cannot be combined.`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("file", "f", "", "read text from file (- for stdin)")
	cmd.Flags().StringP("output", "o", outputText, "output format (text, json)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	format, _ := cmd.Flags().GetString("output")
	if format != outputText && format != outputJSON {
		return fmt.Errorf("invalid output format: %s", format)
	}

	text, err := readInput(args, file, cmd.InOrStdin(), stdinIsTerminal())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return analyze(cmd.Context(), cmd.OutOrStdout(), newClient(cfg), text, format, stdoutIsTerminal())
}

// analyze submits text through a fresh session and reports the outcome to w.
func analyze(ctx context.Context, w io.Writer, predictor detector.Predictor, text, format string, color bool) error {
	sess := session.New(predictor)
	sess.SetText(text)

	outcome, err := sess.Submit(ctx)
	if err != nil {
		if format == outputJSON {
			if writeErr := writeJSON(w, analyzeOutput{
				State: model.StateIdle.String(),
				Error: session.WarningFor(err).Description,
			}); writeErr != nil {
				return writeErr
			}
			return err
		}
		if n := session.WarningFor(err); !n.IsZero() {
			if writeErr := cli.NewReport(w, color).Notification(n); writeErr != nil {
				return writeErr
			}
		}
		return err
	}

	if format == outputJSON {
		if err := writeJSON(w, newAnalyzeOutput(outcome)); err != nil {
			return err
		}
	} else if err := reportOutcome(cli.NewReport(w, color), outcome); err != nil {
		return err
	}

	if outcome.State == model.StateFailed {
		return fmt.Errorf("%w: %s", errAnalysisFailed, outcome.ErrorMessage)
	}
	return nil
}

func reportOutcome(report *cli.Report, outcome session.Outcome) error {
	if err := report.Notification(outcome.Notification); err != nil {
		return err
	}
	if outcome.Result != nil {
		return report.Analysis(*outcome.Result)
	}
	return report.Failure(outcome.ErrorMessage)
}

// analyzeOutput is the --output json document.
type analyzeOutput struct {
	State            string   `json:"state"`
	Label            string   `json:"label,omitempty"`
	LabelText        string   `json:"label_text,omitempty"`
	Tier             string   `json:"tier,omitempty"`
	Error            string   `json:"error,omitempty"`
	TruthProbability *float64 `json:"truth_probability,omitempty"`
	Percentage       *int     `json:"percentage,omitempty"`
}

func newAnalyzeOutput(outcome session.Outcome) analyzeOutput {
	out := analyzeOutput{
		State: outcome.State.String(),
		Error: outcome.ErrorMessage,
	}
	if outcome.Result == nil {
		return out
	}

	view := viewmodel.NewAnalysisView(*outcome.Result)
	probability := outcome.Result.TruthProbability
	out.Label = string(outcome.Result.Label)
	out.LabelText = view.LabelText
	out.Tier = view.Tier.String()
	out.TruthProbability = &probability
	out.Percentage = &view.Percentage
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// readInput picks the text to analyze. Validation of blank text is left to
// the session so every entry point reports it the same way.
func readInput(args []string, file string, stdin io.Reader, interactive bool) (string, error) {
	if file != "" && len(args) > 0 {
		return "", errTooManySources
	}

	switch {
	case file == "-":
		return readAll(stdin)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	case len(args) == 1 && args[0] == "-":
		return readAll(stdin)
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case !interactive:
		return readAll(stdin)
	default:
		return "", nil
	}
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
