package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/witgo"
	"github.com/aretw0/witgo/internal/cli"
	"github.com/aretw0/witgo/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "witgo",
	Short: "witgo talks to a hosted natural language understanding service",
	Long: `witgo interprets natural language utterances through a remote NLU service
and can drive multi-turn conversations against it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("token", "", "API access token (overrides config and WIT_ACCESS_TOKEN)")
	rootCmd.PersistentFlags().String("base-url", "", "API endpoint (overrides config and WIT_URL)")
	rootCmd.PersistentFlags().String("api-version", "", "Pinned API version (overrides config and WIT_API_VERSION)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// clientFromFlags resolves the config chain (flags > file > env) and builds
// a client from it.
func clientFromFlags(cmd *cobra.Command) (*witgo.Client, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := cli.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("token"); v != "" {
		cfg.AccessToken = v
	}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("api-version"); v != "" {
		cfg.APIVersion = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []witgo.Option{}
	if cfg.BaseURL != "" {
		opts = append(opts, witgo.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIVersion != "" {
		opts = append(opts, witgo.WithAPIVersion(cfg.APIVersion))
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		opts = append(opts, witgo.WithLogger(logging.New(slog.LevelDebug)))
	}

	return witgo.New(cfg.AccessToken, opts...)
}
