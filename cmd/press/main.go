// Command press builds a static blog from a directory of Markdown posts.
package main

import (
	"fmt"
	"os"
	"time"

	press "github.com/goliatone/go-press"
	"github.com/spf13/cobra"
)

var (
	flagConfig     string
	flagContentDir string
	flagOutputDir  string
	flagBaseURL    string
	flagSlugSource string
	flagWorkers    int
	flagDrafts     bool
	flagDryRun     bool
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "press",
	Short: "press builds a static blog from Markdown posts",
	Long: `press reads Markdown documents with YAML or TOML frontmatter, renders
them through templates and publishes a complete static site: post pages,
chronological and tag indexes, RSS/Atom feeds, sitemap and robots.txt.`,
	SilenceUsage: true,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render and publish the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := newModule()
		if err != nil {
			return err
		}
		result, err := module.Build(cmd.Context(), press.BuildOptions{DryRun: flagDryRun})
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Render everything without writing and report what would change",
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := newModule()
		if err != nil {
			return err
		}
		result, err := module.Diff(cmd.Context(), press.BuildOptions{})
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the published output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := newModule()
		if err != nil {
			return err
		}
		if err := module.Clean(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "output cleaned")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagContentDir, "content", "", "Content directory (default \"content\")")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output", "", "Output directory (default \"public\")")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Absolute base URL for permalinks and feeds")
	rootCmd.PersistentFlags().StringVar(&flagSlugSource, "slug-source", "", "Slug policy: identifier or title")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Render worker count (default: CPU count)")
	rootCmd.PersistentFlags().BoolVar(&flagDrafts, "drafts", false, "Include draft posts")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	buildCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Render without writing output")

	rootCmd.AddCommand(buildCmd, diffCmd, cleanCmd)
}

func newModule() (*press.Module, error) {
	cfg := press.DefaultConfig()
	if flagConfig != "" {
		loaded, err := press.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flagContentDir != "" {
		cfg.Content.Dir = flagContentDir
	}
	if flagOutputDir != "" {
		cfg.Output.Dir = flagOutputDir
	}
	if flagBaseURL != "" {
		cfg.Site.BaseURL = flagBaseURL
	}
	if flagSlugSource != "" {
		cfg.Content.SlugSource = flagSlugSource
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	if flagDrafts {
		cfg.Content.IncludeDrafts = true
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}

	return press.New(cfg)
}

func printResult(result *press.BuildResult) {
	if result == nil {
		return
	}
	mode := "build"
	if result.DryRun {
		mode = "dry-run"
	}
	fmt.Fprintf(os.Stdout, "%s complete: %d posts discovered, %d excluded, %d pages (%d unchanged), %d assets in %s\n",
		mode,
		result.PostsDiscovered,
		result.PostsExcluded,
		len(result.Rendered),
		result.PagesUnchanged,
		result.AssetsCopied,
		result.Duration.Round(time.Millisecond),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
