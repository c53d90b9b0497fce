package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mitra-support-backend/content"
	"mitra-support-backend/models"
	"mitra-support-backend/services"
	"mitra-support-backend/utils"

	"github.com/spf13/cobra"
)

var lang string

var classifyCmd = &cobra.Command{
	Use:   "classify [message]",
	Short: "Classify a chat message and print the canned reply",
	Example: `  mitra classify "I'm stressed about exams"
  mitra classify --lang hi "मुझे नींद नहीं आती"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		locale, err := utils.ParseLocale(lang)
		if err != nil {
			return err
		}
		library, err := content.Default()
		if err != nil {
			return err
		}

		classifier, err := utils.NewTopicClassifier(library)
		if err != nil {
			return err
		}
		result, err := classifier.Classify(strings.Join(args, " "), locale)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), result)
	},
}

var screenCmd = &cobra.Command{
	Use:   "screen <phq9|gad7> <v1,v2,...>",
	Short: "Score a questionnaire from comma-separated answers",
	Example: `  mitra screen gad7 1,2,1,0,3,1,2
  mitra screen phq9 0,0,0,0,0,0,0,0,1 --lang hi`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		locale, err := utils.ParseLocale(lang)
		if err != nil {
			return err
		}
		responses, err := parseAnswers(args[1])
		if err != nil {
			return err
		}

		var scorer services.ScreeningScorer
		result, err := scorer.Score(models.InstrumentName(strings.ToLower(args[0])), responses, locale)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), result)
	},
}

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "List the screening questionnaires",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		locale, err := utils.ParseLocale(lang)
		if err != nil {
			return err
		}
		svc := services.NewScreeningService(nil, logger)
		return writeJSON(cmd.OutOrStdout(), svc.Instruments(locale))
	},
}

func init() {
	for _, cmd := range []*cobra.Command{classifyCmd, screenCmd, instrumentsCmd} {
		cmd.Flags().StringVarP(&lang, "lang", "l", string(models.LocaleEnglish), "locale (en or hi)")
	}
}

// parseAnswers turns "1,0,3" into answers for questions 1..n.
func parseAnswers(raw string) (models.ScreeningResponseSet, error) {
	responses := make(models.ScreeningResponseSet)
	for i, part := range strings.Split(raw, ",") {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("answer %d: %q is not a number", i+1, part)
		}
		responses[i+1] = value
	}
	return responses, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
