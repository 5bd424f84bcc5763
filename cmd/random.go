package cmd

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/biblec/biblec/internal/config"
)

// randomCmd represents the random command
var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Print a random verse",
	Args:  cobra.NoArgs,
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

		v := verses[rand.Intn(len(verses))]
		style.Println(style.VerseLine(v))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(randomCmd)
}
