package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biblec/biblec/internal/config"
	"github.com/biblec/biblec/internal/verse"
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read <reference>",
	Short: "Read a verse, chapter, or book overview",
	Long: `Read from the cached KJV. A bare book name prints an overview, a
book with chapter prints the chapter, and a full reference prints one verse.

Examples:
  biblec read John
  biblec read John 3
  biblec read John 3:16`,
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

		switch {
		case reference.Chapter == 0:
			maxChapter, ok := verse.MaxChapter(verses, reference.Book)
			if !ok {
				return fmt.Errorf("book not found: %s", reference.Book)
			}
			style.Println(fmt.Sprintf("%s has %d chapters.", reference.Book, maxChapter))
			style.Println(fmt.Sprintf("Tip: biblec read %s <chapter>", reference.Book))

		case reference.Verse == 0:
			chapter := verse.Chapter(verses, reference.Book, reference.Chapter)
			if len(chapter) == 0 {
				return fmt.Errorf("no verses found for %s %d", reference.Book, reference.Chapter)
			}
			for _, v := range chapter {
				style.Println(style.VerseLine(v))
			}

		default:
			v, ok := verse.Find(verses, reference.Book, reference.Chapter, reference.Verse)
			if !ok {
				return fmt.Errorf("verse not found")
			}
			style.Println(style.VerseLine(v))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
