package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biblec/biblec/internal/config"
	"github.com/biblec/biblec/internal/verse"
)

var moodList bool

// moodCmd represents the mood command
var moodCmd = &cobra.Command{
	Use:   "mood [name]",
	Short: "Print a curated set of verses for a mood",
	Long: `Print hand-picked verses for a mood such as peace or courage.
Without a name (or with --list) the available moods are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		style := newStyle()

		if moodList || len(args) == 0 {
			style.Println("Available moods:")
			for _, m := range verse.AllMoods() {
				style.Println(fmt.Sprintf("- %s: %s", m.Name, m.Description))
			}
			return nil
		}

		mood, ok := verse.FindMood(args[0])
		if !ok {
			return fmt.Errorf("unknown mood: %s", args[0])
		}

		verses, err := loadVerses(cachePaths(cfg))
		if err != nil {
			return err
		}

		style.Println("Mood: " + mood.Name)
		for _, ref := range mood.Refs {
			if v, found := verse.Find(verses, ref.Book, ref.Chapter, ref.Verse); found {
				style.Println(style.VerseLine(v))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moodCmd)

	moodCmd.Flags().BoolVarP(&moodList, "list", "l", false, "list available moods")
}
