package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/biblec/biblec/internal/config"
)

var (
	cachePreload bool
	cacheSource  string
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Show or preload the local KJV cache",
	Long: `Without flags, show the cache status. With --preload, download the
KJV and write it to the local cache. --source overrides the download
URL and also accepts a local file path.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		style := newStyle()
		paths := cachePaths(cfg)

		if cachePreload {
			source := cacheSource
			if source == "" {
				source = cfg.KJVSource
			}
			if verbose {
				fmt.Fprintln(os.Stderr, "Preloading from:", source)
			}
			count, err := paths.Preload(source)
			if err != nil {
				return fmt.Errorf("preloading KJV: %w", err)
			}
			style.Println(fmt.Sprintf("KJV cached: %d verses", count))
			return nil
		}

		style.Println("Cache root: " + paths.Root)
		if _, err := os.Stat(paths.VersesPath); err != nil {
			style.Println("KJV: missing. Run `biblec cache --preload`.")
			return nil
		}
		if manifest, ok := paths.ReadManifest(); ok {
			style.Println(fmt.Sprintf("KJV: ready (%d verses)", manifest.VerseCount))
			style.Println("Source: " + manifest.Source)
			style.Println("Updated: " + manifest.CreatedAt)
		} else {
			style.Println("KJV: ready")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)

	cacheCmd.Flags().BoolVar(&cachePreload, "preload", false, "download and cache the KJV")
	cacheCmd.Flags().StringVar(&cacheSource, "source", "", "override the KJV source URL or file path")
}
