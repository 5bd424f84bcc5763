package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biblec/biblec/internal/config"
	"github.com/biblec/biblec/internal/verse"
)

var echoWindow int

// echoCmd represents the echo command
var echoCmd = &cobra.Command{
	Use:   "echo <reference>",
	Short: "Print a verse with its surrounding context",
	Long: `Print a verse together with the verses around it. The anchor verse
is marked with "*". Requires a full reference (book, chapter, and verse).

Example:
  biblec echo John 3:16 --window 3`,
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
		if reference.Chapter == 0 {
			return fmt.Errorf("chapter is required")
		}
		if reference.Verse == 0 {
			return fmt.Errorf("verse is required")
		}

		verses, err := loadVerses(cachePaths(cfg))
		if err != nil {
			return err
		}

		chapter := verse.Chapter(verses, reference.Book, reference.Chapter)
		if len(chapter) == 0 {
			return fmt.Errorf("no verses found for %s %d", reference.Book, reference.Chapter)
		}

		window, anchor, err := verse.Window(chapter, reference.Verse, echoWindow)
		if err != nil {
			return err
		}
		for i, v := range window {
			marker := " "
			if i == anchor {
				marker = "*"
			}
			style.Println(style.MarkedVerseLine(marker, v))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(echoCmd)

	echoCmd.Flags().IntVarP(&echoWindow, "window", "w", 2, "verses of context on each side")
}
