package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquiz/internal/questions"
)

var previewCmd = &cobra.Command{
	Use:   "preview <assessment|tailored>",
	Short: "Print generated questions without taking the quiz",
	Long: `Generate one question list and print it with the correct answers marked.

Useful for checking a model's output quality. When the provider fails or
returns malformed output, the built-in fallback list is printed instead and
a warning is logged.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"assessment", "tailored"},
	RunE:      runPreview,
}

func init() {
	previewCmd.Flags().String("level", string(questions.Beginner), "Level for tailored questions: beginner, intermediate or advanced")
	previewCmd.Flags().Bool("json", false, "Print the normalized questions as JSON")
}

func runPreview(cmd *cobra.Command, args []string) error {
	v := viperForCmd(cmd)
	closeLog, err := setupLogging(v, os.Stderr)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	cfg := providerConfig(v)
	client := questions.New(nil, nil)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var qs []questions.Question
	switch strings.ToLower(args[0]) {
	case "assessment":
		qs, err = client.GenerateAssessment(ctx, cfg)
	case "tailored":
		level, perr := questions.ParseLevel(v.GetString("level"))
		if perr != nil {
			return perr
		}
		qs, err = client.GenerateTailored(ctx, level, nil, cfg)
	default:
		return fmt.Errorf("invalid list %q: must be assessment or tailored", args[0])
	}
	if err != nil {
		return err
	}

	if v.GetBool("json") {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(qs)
	}
	printQuestions(cmd.OutOrStdout(), qs)
	return nil
}

// printQuestions writes qs in reading order, marking the correct option.
func printQuestions(w io.Writer, qs []questions.Question) {
	for i, q := range qs {
		fmt.Fprintf(w, "── Question %d/%d", i+1, len(qs))
		var tags []string
		if q.Topic != "" {
			tags = append(tags, q.Topic)
		}
		if q.Difficulty != "" {
			tags = append(tags, string(q.Difficulty))
		}
		if len(tags) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(tags, ", "))
		}
		fmt.Fprintln(w, " ──")
		fmt.Fprintln(w, q.Text)
		for _, l := range questions.Labels {
			mark := " "
			if l == q.CorrectAnswer {
				mark = "✓"
			}
			fmt.Fprintf(w, "  %s %s) %s\n", mark, l, q.Options[l])
		}
		fmt.Fprintln(w)
	}
}
