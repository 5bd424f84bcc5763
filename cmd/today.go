package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/biblec/biblec/internal/config"
)

var dailyPrompts = []string{
	"What word or phrase sticks with you today?",
	"Where does this verse meet your day?",
	"What is one small action this invites?",
	"What is the hardest line to live, and why?",
	"Read it twice, slowly. What changes?",
}

// todayCmd represents the today command
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print the verse of the day with a reflection prompt",
	Long: `Print a verse chosen deterministically from today's date, along with a
rotating reflection prompt. The same verse comes back all day.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		style := newStyle()

		verses, err := loadVerses(cachePaths(cfg))
		if err != nil {
			return err
		}

		seed := daySeed(time.Now())
		v := verses[seed%len(verses)]
		style.Println(style.VerseLine(v))
		style.Println("Prompt: " + dailyPrompts[seed%len(dailyPrompts)])
		return nil
	},
}

// daySeed counts whole days since the Unix epoch in local time, so the
// selection rolls over at local midnight.
func daySeed(now time.Time) int {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return int(midnight.Unix() / 86400)
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
