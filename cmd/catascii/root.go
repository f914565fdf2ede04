package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"catascii-hq/catascii/pkg/art"
	"catascii-hq/catascii/pkg/ascii"
	"catascii-hq/catascii/pkg/cli"
	"catascii-hq/catascii/pkg/config"
)

const defaultEnvFile = ".env"

var (
	// Global flags
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "catascii",
	Short: "catascii - random cats as ASCII art over HTTP",
	Long: `catascii fetches a random cat picture from The Cat API on every request,
converts it into ASCII art and serves it as HTML.

Configuration is read from an optional YAML file, then from CATASCII_*
environment variables (optionally loaded from a .env file), then from
command flags.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadEnvFile,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults only when empty)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file loaded into the environment before config")
}

// loadEnvFile loads the dotenv file. A missing default file is ignored; a
// missing file named explicitly on the command line is an error. Variables
// already set in the environment win.
func loadEnvFile(cmd *cobra.Command, _ []string) error {
	if envFile == "" {
		return nil
	}
	err := godotenv.Load(envFile)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
		return nil
	}
	return cli.NewConfigError(envFile, err)
}

// loadConfig loads the config file (if any) with environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError(cfgFile, err)
	}
	return cfg, nil
}

func newConverter(cfg *config.Config) (*ascii.Converter, error) {
	conv, err := ascii.NewConverter(ascii.Options{
		Width:      cfg.Render.Width,
		Characters: cfg.Render.Characters,
		Colored:    cfg.Render.Colored,
		Document:   cfg.Render.Document,
		Title:      "catascii",
	})
	if err != nil {
		return nil, cli.NewConfigError(cfgFile, fmt.Errorf("render: %w", err))
	}
	return conv, nil
}

func newClientConfig(cfg *config.Config, observer art.UpstreamObserver) art.ClientConfig {
	return art.ClientConfig{
		SearchURL:     cfg.CatAPI.SearchURL,
		APIKey:        cfg.CatAPI.APIKey,
		UserAgent:     cfg.CatAPI.UserAgent,
		Timeout:       cfg.CatAPI.Timeout,
		MaxImageBytes: cfg.CatAPI.MaxImageBytes,
		Observer:      observer,
	}
}
