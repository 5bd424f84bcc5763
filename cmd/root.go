package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/biblec/biblec/internal/cache"
	"github.com/biblec/biblec/internal/config"
	"github.com/biblec/biblec/internal/output"
	"github.com/biblec/biblec/internal/verse"
)

var (
	cfgFile   string
	verbose   bool
	colorMode string
	dataDir   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "biblec",
	Short: "A fast, playful Bible CLI (KJV)",
	Long: `biblec reads, searches, and reflects on the King James Version from a
local cache, and can hold streamed AI conversations about a passage.
Configuration lives in a TOML file; provider credentials stay in the
OPENAI_API_KEY and ANTHROPIC_API_KEY environment variables.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/biblec/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", string(output.ColorAuto), "color output (auto, always, never)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "cache directory (default is $HOME/.biblec)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("BIBLEC")
	viper.AutomaticEnv()

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	userConfigDir := filepath.Join(home, ".config", "biblec")

	defaults := config.NewDefaultConfig(filepath.Join(userConfigDir, "prompts"))
	viper.SetDefault("model", defaults.Model)
	viper.SetDefault("max_tokens", defaults.MaxTokens)
	viper.SetDefault("temperature", defaults.Temperature)
	viper.SetDefault("max_recent_messages", defaults.MaxRecentMessages)
	viper.SetDefault("data_dir", defaults.DataDir)
	viper.SetDefault("prompt_dirs", defaults.PromptDirs)
	viper.SetDefault("kjv_source", defaults.KJVSource)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(userConfigDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	} else if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newStyle builds the output style from the global color flag.
func newStyle() *output.Style {
	return output.New(output.ColorMode(colorMode))
}

// cachePaths resolves the cache layout, preferring the --data-dir flag over
// the configured directory.
func cachePaths(cfg *config.Config) cache.Paths {
	root := dataDir
	if root == "" {
		root = cfg.DataDir
	}
	return cache.NewPaths(root)
}

// loadVerses loads the cached KJV, pointing at the preload command when the
// cache is missing.
func loadVerses(paths cache.Paths) ([]verse.Verse, error) {
	verses, err := verse.Load(paths.VersesPath)
	if err != nil {
		return nil, fmt.Errorf("KJV not cached (run `biblec cache --preload`): %w", err)
	}
	return verses, nil
}
