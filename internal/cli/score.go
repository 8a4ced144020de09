package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ux-career-assessment/internal/app"
	"ux-career-assessment/internal/cache"
	"ux-career-assessment/internal/config"
	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/infra/memory"
	"ux-career-assessment/internal/logger"
	"ux-career-assessment/internal/questionbank"
	"ux-career-assessment/internal/results"
	"ux-career-assessment/internal/scoring"
)

// NewScoreCmd scores an answers file offline and prints the results.
func NewScoreCmd(configPath *string) *cobra.Command {
	var (
		answersPath string
		withContent bool
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a JSON answers object ({\"Q1\": 4, ...}) and print the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := readAnswers(cmd.InOrStdin(), answersPath)
			if err != nil {
				return err
			}

			bank := memory.NewStaticBankLoader(questionbank.Default())
			service := app.NewAssessmentService(bank, results.NewStore(memory.NewKVStore()))
			res, err := service.Score(cmd.Context(), answers)
			if err != nil {
				return err
			}

			out := map[string]any{"results": res}
			if withContent {
				cfg, err := config.Load(*configPath)
				if err != nil {
					return err
				}
				log, err := logger.New(cfg.Log.Mode)
				if err != nil {
					return err
				}
				defer log.Sync()

				gen, err := newGenerator(cfg, log)
				if err != nil {
					return err
				}
				loader := app.NewContentLoader(cache.New(memory.NewKVStore()), gen, loaderConfig(cfg, log))
				sections, err := loader.LoadAll(cmd.Context(), res)
				if err != nil {
					return err
				}
				out["sections"] = sections
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&answersPath, "answers", "-", "answers JSON file, - for stdin")
	cmd.Flags().BoolVar(&withContent, "content", false, "also generate every content section")
	return cmd
}

func readAnswers(stdin io.Reader, path string) (domain.Answers, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return scoring.ParseAnswers(raw)
}
