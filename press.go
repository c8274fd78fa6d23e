// Package press turns a directory of Markdown documents with frontmatter
// into a publishable static blog: post pages, chronological and tag indexes,
// feeds, sitemap and theme assets.
package press

import (
	"context"

	staticcmd "github.com/goliatone/go-press/internal/commands/static"
	"github.com/goliatone/go-press/internal/content"
	"github.com/goliatone/go-press/internal/generator"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/internal/logging/gologger"
	"github.com/goliatone/go-press/internal/markdown"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// GeneratorService exports the site builder contract.
type GeneratorService = generator.Service

// BuildOptions exports the per-run build options.
type BuildOptions = generator.BuildOptions

// BuildResult exports the aggregated build report.
type BuildResult = generator.BuildResult

// Module is the top level runtime facade. It owns the wired pipeline and
// exposes build, diff and clean entry points.
type Module struct {
	cfg       Config
	logger    interfaces.LoggerProvider
	generator generator.Service

	buildHandler *staticcmd.BuildSiteHandler
	diffHandler  *staticcmd.DiffSiteHandler
	cleanHandler *staticcmd.CleanSiteHandler
}

// New wires a module from the provided configuration.
func New(cfg Config) (*Module, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return nil, err
	}

	loader, err := markdown.NewDirLoader(markdown.LoaderConfig{
		BasePath:  cfg.Content.Dir,
		Pattern:   cfg.Content.Pattern,
		Recursive: cfg.Content.Recursive,
	})
	if err != nil {
		return nil, err
	}

	converter := markdown.NewGoldmarkConverter(interfaces.ConvertOptions{
		Extensions: cfg.Markdown.Extensions,
		HardWraps:  cfg.Markdown.HardWraps,
		SafeMode:   cfg.Markdown.SafeMode,
	})

	renderer, err := generator.NewGoTemplateRenderer(cfg.Theme.TemplateDir)
	if err != nil {
		return nil, err
	}

	slugSource, err := content.ParseSlugSource(cfg.Content.SlugSource)
	if err != nil {
		return nil, err
	}

	svc := generator.NewService(generator.Config{
		ContentDir:      cfg.Content.Dir,
		OutputDir:       cfg.Output.Dir,
		BaseURL:         cfg.Site.BaseURL,
		SiteTitle:       cfg.Site.Title,
		SiteDescription: cfg.Site.Description,
		DefaultAuthor:   cfg.Site.Author,
		SlugSource:      slugSource,
		Workers:         cfg.Workers,
		GenerateSitemap: cfg.Output.Sitemap,
		GenerateRobots:  cfg.Output.Robots,
		GenerateFeeds:   cfg.Output.Feeds,
		IncludeDrafts:   cfg.Content.IncludeDrafts,
		Theming: generator.ThemingConfig{
			Dir:               cfg.Theme.Dir,
			Variant:           cfg.Theme.Variant,
			CSSVariablePrefix: cfg.Theme.CSSVariablePrefix,
			PartialFallbacks:  cfg.Theme.Partials,
		},
	}, generator.Dependencies{
		Loader:    loader,
		Converter: converter,
		Renderer:  renderer,
		Logger:    logging.GeneratorLogger(provider),
	})

	commandLogger := logging.CommandsLogger(provider)
	return &Module{
		cfg:          cfg,
		logger:       provider,
		generator:    svc,
		buildHandler: staticcmd.NewBuildSiteHandler(svc, commandLogger),
		diffHandler:  staticcmd.NewDiffSiteHandler(svc, commandLogger),
		cleanHandler: staticcmd.NewCleanSiteHandler(svc, commandLogger),
	}, nil
}

// Config returns the effective configuration after defaulting.
func (m *Module) Config() Config {
	return m.cfg
}

// Generator exposes the underlying site builder for advanced integrations.
func (m *Module) Generator() GeneratorService {
	return m.generator
}

// Build runs a full site build through the command layer.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	var captured *BuildResult
	err := m.buildHandler.Execute(ctx, staticcmd.BuildSiteCommand{
		DryRun:    opts.DryRun,
		BuildTime: opts.BuildTime,
		ResultCallback: func(env staticcmd.ResultEnvelope) {
			captured = env.Result
		},
	})
	return captured, err
}

// Diff performs a dry-run build and reports what a real build would produce.
func (m *Module) Diff(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	var captured *BuildResult
	err := m.diffHandler.Execute(ctx, staticcmd.DiffSiteCommand{
		BuildTime: opts.BuildTime,
		ResultCallback: func(env staticcmd.ResultEnvelope) {
			captured = env.Result
		},
	})
	return captured, err
}

// Clean removes the published output directory.
func (m *Module) Clean(ctx context.Context) error {
	return m.cleanHandler.Execute(ctx, staticcmd.CleanSiteCommand{})
}
