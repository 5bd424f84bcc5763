package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biblec/biblec/internal/config"
	"github.com/biblec/biblec/internal/verse"
)

var (
	searchBook  string
	searchLimit int
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search verse text",
	Long: `Search the cached KJV for verses containing the query,
case-insensitively. Use --book to restrict the search to one book.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		style := newStyle()

		book := ""
		if searchBook != "" {
			normalized, ok := verse.NormalizeBook(searchBook)
			if !ok {
				return fmt.Errorf("unknown book: %s", searchBook)
			}
			book = normalized
		}

		verses, err := loadVerses(cachePaths(cfg))
		if err != nil {
			return err
		}

		matches := verse.Search(verses, strings.Join(args, " "), book, searchLimit)
		if len(matches) == 0 {
			style.Println("No matches found.")
			return nil
		}
		for _, v := range matches {
			style.Println(style.VerseLine(v))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchBook, "book", "b", "", "restrict the search to one book")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of matches")
}
