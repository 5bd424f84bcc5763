package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biblec/biblec/internal/chat"
	"github.com/biblec/biblec/internal/config"
	"github.com/biblec/biblec/internal/output"
	"github.com/biblec/biblec/internal/prompt"
	"github.com/biblec/biblec/internal/verse"
)

var (
	aiModel       string
	aiPrompt      string
	aiMaxTokens   int
	aiTemperature float64
	aiWindow      int
	aiChat        bool
)

// aiCmd represents the ai command
var aiCmd = &cobra.Command{
	Use:   "ai <reference>",
	Short: "Reflect on a passage with an AI provider",
	Long: `Stream an AI reflection on the referenced passage, or start an
interactive chat session seeded with it.

The model is specified as provider:model (e.g. openai:gpt-4o-mini or
anthropic:claude-3-5-haiku-latest). The provider's API key is read from
OPENAI_API_KEY or ANTHROPIC_API_KEY.

In chat mode, lines starting with "/" are commands: /help lists them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		style := newStyle()

		reference, err := verse.ParseReference(args)
		if err != nil {
			return err
		}
		verses, err := loadVerses(cachePaths(cfg))
		if err != nil {
			return err
		}
		selected, err := selectPassage(verses, reference, aiWindow)
		if err != nil {
			return err
		}

		modelStr := cfg.Model
		if aiModel != "" {
			modelStr = aiModel
		}
		providerName, modelName, err := config.ParseModelString(modelStr)
		if err != nil {
			return err
		}

		system := ""
		var tmpl *prompt.Prompt
		if aiPrompt != "" {
			tmpl, err = prompt.Find(aiPrompt, cfg.PromptDirs)
			if err != nil {
				return err
			}
			system = prompt.Expand(tmpl.System, verse.PassageText(selected))
			if tmpl.Model != nil && !cmd.Flags().Changed("model") {
				providerName, modelName, err = config.ParseModelString(*tmpl.Model)
				if err != nil {
					return fmt.Errorf("invalid model in prompt file: %w", err)
				}
			}
		}

		opts := chat.Options{
			Provider:    providerName,
			Model:       modelName,
			MaxTokens:   aiMaxTokens,
			Temperature: aiTemperature,
			System:      system,
			MaxRecent:   cfg.MaxRecentMessages,
		}
		if !cmd.Flags().Changed("max-tokens") {
			opts.MaxTokens = cfg.MaxTokens
		}
		if !cmd.Flags().Changed("temperature") {
			opts.Temperature = cfg.Temperature
		}

		if aiChat {
			return runAIChat(cmd, style, selected, opts, tmpl)
		}
		return runAISingle(cmd, style, selected, opts, tmpl)
	},
}

// buildQuestion builds the single-shot question: a template's user field
// with the passage substituted, or the default reflection prompt.
func buildQuestion(tmpl *prompt.Prompt, passageText string) string {
	if tmpl != nil && tmpl.User != "" {
		return prompt.Expand(tmpl.User, passageText)
	}
	return "Provide a concise reflection on the passage below.\n\nPassage:\n" +
		passageText + "\nResponse:"
}

// runAISingle streams one reflection on the passage and exits.
func runAISingle(cmd *cobra.Command, style *output.Style, selected []verse.Verse, opts chat.Options, tmpl *prompt.Prompt) error {
	for _, v := range selected {
		style.Println(style.VerseLine(v))
	}
	style.Println("")

	question := buildQuestion(tmpl, verse.PassageText(selected))

	if _, err := chat.Ask(cmd.Context(), style, opts, question); err != nil {
		return err
	}
	return nil
}

// runAIChat runs the interactive session seeded with the passage.
func runAIChat(cmd *cobra.Command, style *output.Style, selected []verse.Verse, opts chat.Options, tmpl *prompt.Prompt) error {
	style.Separator()
	for _, v := range selected {
		style.Println(style.VerseLine(v))
	}
	style.Separator()
	style.Println("")
	style.ChatIntro()
	style.Println("")

	passage := strings.TrimRight(verse.PassageText(selected), "\n")
	if tmpl != nil && tmpl.User != "" {
		opts.Seed = prompt.Expand(tmpl.User, passage)
	}
	session := chat.NewSession(passage, style, opts)
	if verbose {
		fmt.Fprintf(os.Stderr, "Session %s: %s:%s\n", session.ID(), session.Provider(), session.Model())
	}
	return chat.Run(cmd.Context(), session, os.Stdin)
}

// selectPassage picks the verses an AI command talks about: the whole
// chapter, or a window around one verse.
func selectPassage(verses []verse.Verse, ref verse.ReferenceQuery, window int) ([]verse.Verse, error) {
	if ref.Chapter == 0 {
		return nil, fmt.Errorf("chapter is required for AI prompts (e.g. `biblec ai %s 1`)", ref.Book)
	}
	chapterVerses := verse.Chapter(verses, ref.Book, ref.Chapter)
	if len(chapterVerses) == 0 {
		return nil, fmt.Errorf("no verses found for %s %d", ref.Book, ref.Chapter)
	}
	if ref.Verse == 0 {
		return chapterVerses, nil
	}
	selected, _, err := verse.Window(chapterVerses, ref.Verse, window)
	if err != nil {
		return nil, err
	}
	return selected, nil
}

func init() {
	rootCmd.AddCommand(aiCmd)

	aiCmd.Flags().StringVarP(&aiModel, "model", "m", "", "Model to use (format: provider:model)")
	aiCmd.Flags().StringVarP(&aiPrompt, "prompt", "p", "", "Name of a TOML prompt template (without extension)")
	aiCmd.Flags().IntVar(&aiMaxTokens, "max-tokens", 256, "Maximum response tokens")
	aiCmd.Flags().Float64Var(&aiTemperature, "temperature", 0.7, "Sampling temperature")
	aiCmd.Flags().IntVar(&aiWindow, "window", 0, "Verses of context around the referenced verse")
	aiCmd.Flags().BoolVar(&aiChat, "chat", false, "Start an interactive chat session with the selected passage")
}
