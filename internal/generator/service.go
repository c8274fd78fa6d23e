package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-press/internal/content"
	"github.com/goliatone/go-press/internal/identity"
	"github.com/goliatone/go-press/internal/index"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/internal/markdown"
	"github.com/goliatone/go-press/pkg/interfaces"
	gotheme "github.com/goliatone/go-theme"
	"github.com/google/uuid"
)

var (
	errRendererRequired  = errors.New("generator: template renderer is required")
	errConverterRequired = errors.New("generator: markdown converter is required")
	errLoaderRequired    = errors.New("generator: content loader is required")

	// ErrUnmanagedOutput guards Clean against deleting a directory this
	// tool did not produce.
	ErrUnmanagedOutput = errors.New("generator: output directory has no build manifest")
)

// BuildState tracks how far a build progressed before returning.
type BuildState string

const (
	StateCollecting BuildState = "collecting"
	StateResolved   BuildState = "resolved"
	StatePublished  BuildState = "published"
	StateFailed     BuildState = "failed"
)

// Service describes the static site build contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the site builder.
type Config struct {
	ContentDir      string
	OutputDir       string
	BaseURL         string
	SiteTitle       string
	SiteDescription string
	DefaultAuthor   string
	SlugSource      content.SlugSource
	Workers         int
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	IncludeDrafts   bool
	Theming         ThemingConfig
}

// BuildOptions narrows the scope of a single build run.
type BuildOptions struct {
	// DryRun renders everything but writes nothing.
	DryRun bool
	// BuildTime pins the publication cutoff; zero means time.Now.
	BuildTime time.Time
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	BuildID         uuid.UUID
	State           BuildState
	PostsDiscovered int
	PostsExcluded   int
	PagesWritten    int
	PagesUnchanged  int
	AssetsCopied    int
	Rendered        []RenderedPage
	Diagnostics     []RenderDiagnostic
	Errors          []error
	Duration        time.Duration
	DryRun          bool
}

// Dependencies lists the collaborators required by the builder.
type Dependencies struct {
	Loader      *markdown.Loader
	Converter   interfaces.MarkdownConverter
	Renderer    interfaces.TemplateRenderer
	Logger      interfaces.Logger
	ThemeLoader themeManifestLoader
}

// NewService wires a builder with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &service{
		cfg:    cfg,
		deps:   deps,
		themes: newThemeSelector(cfg.Theming, deps.ThemeLoader),
		now:    time.Now,
	}
}

type service struct {
	cfg    Config
	deps   Dependencies
	themes *themeSelector
	now    func() time.Time
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Loader == nil {
		return nil, errLoaderRequired
	}
	if s.deps.Converter == nil {
		return nil, errConverterRequired
	}
	if s.deps.Renderer == nil {
		return nil, errRendererRequired
	}

	start := time.Now()
	buildTime := opts.BuildTime
	if buildTime.IsZero() {
		buildTime = s.now()
	}
	buildTime = buildTime.UTC()

	result := &BuildResult{
		BuildID: identity.BuildUUID(s.cfg.OutputDir),
		State:   StateCollecting,
		DryRun:  opts.DryRun,
	}
	fail := func(err error) (*BuildResult, error) {
		result.State = StateFailed
		result.Errors = append(result.Errors, err)
		result.Duration = time.Since(start)
		return result, err
	}

	s.deps.Logger.Info("build started",
		"build_id", result.BuildID.String(),
		"content_dir", s.cfg.ContentDir,
		"output_dir", s.cfg.OutputDir,
		"dry_run", opts.DryRun,
	)

	store, err := s.collect(ctx, buildTime, result)
	if err != nil {
		return fail(err)
	}

	slugs, err := s.resolveSlugs(store)
	if err != nil {
		return fail(err)
	}
	result.State = StateResolved

	siteMeta := SiteMetadata{
		Title:       s.cfg.SiteTitle,
		Description: s.cfg.SiteDescription,
		BaseURL:     strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/"),
		Author:      s.cfg.DefaultAuthor,
		GeneratedAt: buildTime,
	}

	selection, err := s.themes.Selection()
	if err != nil {
		return fail(err)
	}
	themeCtx := buildThemeContext(selection, s.cfg.Theming)

	ordered := index.ByDate(store.All())
	views, err := s.buildPostViews(ordered, slugs, siteMeta)
	if err != nil {
		return fail(err)
	}

	rendered, diagnostics, renderErr := s.renderConcurrently(ctx, siteMeta, themeCtx, ordered, views)
	result.Diagnostics = diagnostics
	if renderErr != nil {
		return fail(renderErr)
	}

	indexPages, err := s.renderIndexes(ctx, siteMeta, themeCtx, ordered, views, buildTime)
	if err != nil {
		return fail(err)
	}
	rendered = append(rendered, indexPages...)

	sort.Slice(rendered, func(i, j int) bool {
		return rendered[i].Output < rendered[j].Output
	})
	result.Rendered = rendered

	previous := loadManifest(s.cfg.OutputDir)
	manifest := newBuildManifest(result.BuildID.String(), buildTime)
	for _, page := range rendered {
		if page.Target != TargetPostPage {
			continue
		}
		if previous.unchanged(page.Identifier, page.Checksum) {
			result.PagesUnchanged++
		}
		manifest.addPage(manifestPage{
			Identifier:   page.Identifier,
			Route:        page.Route,
			Output:       page.Output,
			Checksum:     page.Checksum,
			Date:         page.Date,
			LastModified: page.LastModified,
			RenderedAt:   buildTime,
		})
	}

	if opts.DryRun {
		result.State = StatePublished
		result.Duration = time.Since(start)
		s.deps.Logger.Info("dry run complete",
			"pages", len(rendered),
			"unchanged", result.PagesUnchanged,
		)
		return result, nil
	}

	publisher, err := newStagingPublisher(s.cfg.OutputDir)
	if err != nil {
		return fail(err)
	}
	defer publisher.Discard()

	if err := s.publish(ctx, publisher, siteMeta, rendered, views, selection, manifest, buildTime, result); err != nil {
		return fail(err)
	}

	if err := publisher.Commit(ctx); err != nil {
		return fail(err)
	}

	result.State = StatePublished
	result.PagesWritten = len(rendered)
	result.Duration = time.Since(start)
	s.deps.Logger.Info("build complete",
		"pages", result.PagesWritten,
		"unchanged", result.PagesUnchanged,
		"assets", result.AssetsCopied,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// Clean removes the published output. It refuses to touch a directory that
// carries no build manifest, so a mistyped path cannot wipe unrelated files.
func (s *service) Clean(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	outputDir := strings.TrimSpace(s.cfg.OutputDir)
	if outputDir == "" {
		return errors.New("generator: output directory is required")
	}
	if _, err := os.Stat(outputDir); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("generator: inspect output dir: %w", err)
	}
	if loadManifest(outputDir) == nil {
		return fmt.Errorf("%w: %s", ErrUnmanagedOutput, outputDir)
	}
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("generator: clean output dir: %w", err)
	}
	s.deps.Logger.Info("output cleaned", "output_dir", outputDir)
	return nil
}

// collect loads every content file, parses frontmatter and fills the store.
// A malformed file fails the whole build so broken pages never publish.
func (s *service) collect(ctx context.Context, buildTime time.Time, result *BuildResult) (*content.Store, error) {
	posts, err := s.deps.Loader.LoadDirectory(ctx, ".")
	if err != nil {
		return nil, err
	}
	result.PostsDiscovered = len(posts)

	store := content.NewStore(s.deps.Logger)
	for _, post := range posts {
		publishable := post.Publishable(buildTime)
		if !publishable && s.cfg.IncludeDrafts && post.Draft {
			publishable = !post.Date.IsZero() && !post.Date.After(buildTime)
		}
		if !publishable {
			result.PostsExcluded++
			logging.WithPostContext(s.deps.Logger, post.Identifier, "", "collect").
				Debug("post excluded from publication", "draft", post.Draft, "date", post.Date)
			continue
		}
		if err := store.Add(post); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (s *service) resolveSlugs(store *content.Store) (map[string]string, error) {
	resolver := content.NewResolver(s.cfg.SlugSource)
	slugs, err := resolver.ResolveAll(store.All())
	if err != nil {
		return nil, err
	}
	return slugs, nil
}

func (s *service) buildPostViews(ordered []*content.Post, slugs map[string]string, site SiteMetadata) (map[string]*PostView, error) {
	views := make(map[string]*PostView, len(ordered))
	for _, post := range ordered {
		slug := slugs[post.Identifier]
		output := postOutputPath(slug)
		route := routeForOutput(output)
		author := post.Author
		if strings.TrimSpace(author) == "" {
			author = site.Author
		}
		tags, err := tagRefs(post.Tags)
		if err != nil {
			return nil, err
		}
		views[post.Identifier] = &PostView{
			Identifier:   post.Identifier,
			Title:        post.Title,
			Slug:         slug,
			Route:        route,
			Permalink:    absoluteURL(site.BaseURL, route),
			Date:         post.Date,
			LastModified: post.LastModified,
			Author:       author,
			Tags:         tags,
			Description:  post.Description,
		}
	}
	return views, nil
}

// tagRefs resolves the tag listing route for every tag on a post. Routes go
// through the same tag slug the listing pages are written under, so links on
// post pages cannot drift from the emitted paths.
func tagRefs(tags []string) ([]TagRef, error) {
	normalized := content.NormalizeTags(tags)
	refs := make([]TagRef, 0, len(normalized))
	for _, tag := range normalized {
		tagSlug, err := content.TagSlug(tag)
		if err != nil {
			return nil, err
		}
		refs = append(refs, TagRef{
			Name:  tag,
			Route: routeForOutput(tagOutputPath(tagSlug)),
		})
	}
	return refs, nil
}

// renderConcurrently fans post rendering out over a bounded worker pool. The
// first failure cancels the remaining work; a build either renders every
// page or publishes nothing.
func (s *service) renderConcurrently(
	ctx context.Context,
	siteMeta SiteMetadata,
	themeCtx ThemeContext,
	ordered []*content.Post,
	views map[string]*PostView,
) ([]RenderedPage, []RenderDiagnostic, error) {
	workers := s.effectiveWorkerCount(len(ordered))

	var (
		mu          sync.Mutex
		rendered    = make([]RenderedPage, 0, len(ordered))
		diagnostics = make([]RenderDiagnostic, 0, len(ordered))
		firstErr    error
	)

	renderCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		diagnostics = append(diagnostics, outcome.diagnostic)
		if outcome.err != nil {
			if firstErr == nil {
				firstErr = outcome.err
			}
			cancel()
			return
		}
		rendered = append(rendered, outcome.page)
	}

	if workers <= 1 || len(ordered) <= 1 {
		for _, post := range ordered {
			if err := renderCtx.Err(); err != nil {
				break
			}
			collect(s.renderPost(renderCtx, siteMeta, themeCtx, post, views[post.Identifier]))
		}
	} else {
		jobs := make(chan *content.Post)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for post := range jobs {
					select {
					case <-renderCtx.Done():
						return
					default:
						collect(s.renderPost(renderCtx, siteMeta, themeCtx, post, views[post.Identifier]))
					}
				}
			}()
		}

	feed:
		for _, post := range ordered {
			select {
			case <-renderCtx.Done():
				break feed
			case jobs <- post:
			}
		}
		close(jobs)
		wg.Wait()
	}

	if firstErr != nil {
		return nil, diagnostics, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, diagnostics, err
	}
	return rendered, diagnostics, nil
}

func (s *service) renderPost(
	ctx context.Context,
	siteMeta SiteMetadata,
	themeCtx ThemeContext,
	post *content.Post,
	view *PostView,
) renderOutcome {
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{
			Identifier: post.Identifier,
			Target:     TargetPostPage,
			Route:      view.Route,
			Template:   postTemplateName,
		},
	}

	select {
	case <-ctx.Done():
		outcome.err = ctx.Err()
		outcome.diagnostic.Err = ctx.Err()
		return outcome
	default:
	}

	logger := logging.WithPostContext(s.deps.Logger, post.Identifier, view.Slug, "render")

	start := time.Now()
	body, err := s.deps.Converter.Convert(post.Body)
	if err != nil {
		wrapped := &content.RenderError{Identifier: post.Identifier, Cause: err}
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		logger.Error("markdown conversion failed", "error", err)
		return outcome
	}
	view.HTML = template.HTML(body)

	html, err := s.deps.Renderer.Render(postTemplateName, TemplateContext{
		Site:    siteMeta,
		Post:    view,
		Theme:   themeCtx,
		Helpers: newTemplateHelpers(siteMeta.BaseURL),
	})
	duration := time.Since(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		wrapped := &content.RenderError{Identifier: post.Identifier, Cause: err}
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		logger.Error("template render failed", "error", err)
		return outcome
	}

	outcome.page = RenderedPage{
		Identifier:   post.Identifier,
		Target:       TargetPostPage,
		Route:        view.Route,
		Output:       postOutputPath(view.Slug),
		Template:     postTemplateName,
		HTML:         html,
		Checksum:     computeHashFromString(html),
		Date:         post.Date,
		LastModified: post.LastModified,
		Duration:     duration,
	}
	logger.Debug("post rendered", "duration", duration.String())
	return outcome
}

// renderIndexes produces the home page listing, one listing per tag and the
// tag overview page. Indexes render after posts so they see final routes.
func (s *service) renderIndexes(
	ctx context.Context,
	siteMeta SiteMetadata,
	themeCtx ThemeContext,
	ordered []*content.Post,
	views map[string]*PostView,
	buildTime time.Time,
) ([]RenderedPage, error) {
	helpers := newTemplateHelpers(siteMeta.BaseURL)

	orderedViews := make([]PostView, 0, len(ordered))
	for _, post := range ordered {
		orderedViews = append(orderedViews, *views[post.Identifier])
	}

	renderIndex := func(target RenderTarget, templateName, output, identifier string, view IndexView) (RenderedPage, error) {
		if err := ctx.Err(); err != nil {
			return RenderedPage{}, err
		}
		html, err := s.deps.Renderer.Render(templateName, TemplateContext{
			Site:    siteMeta,
			Index:   &view,
			Theme:   themeCtx,
			Helpers: helpers,
		})
		if err != nil {
			return RenderedPage{}, &content.RenderError{Identifier: identifier, Cause: err}
		}
		return RenderedPage{
			Identifier:   identifier,
			Target:       target,
			Route:        routeForOutput(output),
			Output:       output,
			Template:     templateName,
			HTML:         html,
			Checksum:     computeHashFromString(html),
			LastModified: buildTime,
		}, nil
	}

	pages := make([]RenderedPage, 0, 2)

	home, err := renderIndex(TargetDateIndexPage, dateIndexTemplateName, homeIndexFile, "index", IndexView{
		Title: siteMeta.Title,
		Posts: orderedViews,
	})
	if err != nil {
		return nil, err
	}
	pages = append(pages, home)

	grouped := index.ByTag(byDateSeq(ordered))
	tags := index.Tags(grouped)

	tagSlugs := make(map[string]string, len(tags))
	summaries := make([]TagSummary, 0, len(tags))
	for _, tag := range tags {
		tagSlug, err := content.TagSlug(tag)
		if err != nil {
			return nil, err
		}
		tagSlugs[tag] = tagSlug
		summaries = append(summaries, TagSummary{
			Tag:   tag,
			Route: routeForOutput(tagOutputPath(tagSlug)),
			Count: len(grouped[tag]),
		})
	}

	if len(tags) > 0 {
		overview, err := renderIndex(TargetTagIndexPage, tagIndexTemplateName, tagsRootPath(), "tags", IndexView{
			Title: "Tags",
			Tags:  summaries,
		})
		if err != nil {
			return nil, err
		}
		pages = append(pages, overview)
	}

	for _, tag := range tags {
		tagViews := make([]PostView, 0, len(grouped[tag]))
		for _, post := range grouped[tag] {
			tagViews = append(tagViews, *views[post.Identifier])
		}
		page, err := renderIndex(TargetTagIndexPage, tagIndexTemplateName, tagOutputPath(tagSlugs[tag]), "tags/"+tagSlugs[tag], IndexView{
			Title: "Tag: " + tag,
			Tag:   tag,
			Posts: tagViews,
		})
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, nil
}

func (s *service) publish(
	ctx context.Context,
	writer artifactWriter,
	siteMeta SiteMetadata,
	rendered []RenderedPage,
	views map[string]*PostView,
	selection *gotheme.Selection,
	manifest *buildManifest,
	buildTime time.Time,
	result *BuildResult,
) error {
	dirCache := map[string]struct{}{}

	for _, page := range rendered {
		category := categoryPage
		if page.Target != TargetPostPage {
			category = categoryIndex
		}
		if err := ensureDir(ctx, writer, dirCache, path.Dir(page.Output)); err != nil {
			return err
		}
		if err := writer.WriteFile(ctx, writeFileRequest{
			Path:        page.Output,
			Content:     strings.NewReader(page.HTML),
			Size:        int64(len(page.HTML)),
			Category:    category,
			ContentType: "text/html",
			Checksum:    page.Checksum,
		}); err != nil {
			return err
		}
	}

	copied, err := s.copyThemeAssets(ctx, writer, dirCache, selection, manifest)
	if err != nil {
		return err
	}
	result.AssetsCopied = copied

	if s.cfg.GenerateSitemap {
		sitemap := buildSitemap(siteMeta.BaseURL, rendered, buildTime)
		if err := writer.WriteFile(ctx, writeFileRequest{
			Path:        "sitemap.xml",
			Content:     strings.NewReader(sitemap),
			Size:        int64(len(sitemap)),
			Category:    categorySitemap,
			ContentType: "application/xml",
			Checksum:    computeHashFromString(sitemap),
		}); err != nil {
			return err
		}
	}

	if s.cfg.GenerateRobots {
		robots := buildRobots(siteMeta.BaseURL, s.cfg.GenerateSitemap)
		if err := writer.WriteFile(ctx, writeFileRequest{
			Path:        "robots.txt",
			Content:     strings.NewReader(robots),
			Size:        int64(len(robots)),
			Category:    categoryRobots,
			ContentType: "text/plain",
			Checksum:    computeHashFromString(robots),
		}); err != nil {
			return err
		}
	}

	if s.cfg.GenerateFeeds {
		postViews := make([]PostView, 0, len(views))
		for _, page := range rendered {
			if page.Target != TargetPostPage {
				continue
			}
			if view, ok := views[page.Identifier]; ok {
				postViews = append(postViews, *view)
			}
		}
		items := buildFeedItems(siteMeta, postViews, buildTime)
		for file, feed := range map[string]string{
			rssFeedFile:  buildRSSFeed(siteMeta, items, buildTime),
			atomFeedFile: buildAtomFeed(siteMeta, items, buildTime),
		} {
			contentType := "application/rss+xml"
			if file == atomFeedFile {
				contentType = "application/atom+xml"
			}
			if err := writer.WriteFile(ctx, writeFileRequest{
				Path:        file,
				Content:     strings.NewReader(feed),
				Size:        int64(len(feed)),
				Category:    categoryFeed,
				ContentType: contentType,
				Checksum:    computeHashFromString(feed),
			}); err != nil {
				return err
			}
		}
	}

	data, err := manifest.marshal()
	if err != nil {
		return err
	}
	return writer.WriteFile(ctx, writeFileRequest{
		Path:        manifestFileName,
		Content:     strings.NewReader(string(data)),
		Size:        int64(len(data)),
		Category:    categoryManifest,
		ContentType: "application/json",
		Checksum:    computeHash(data),
	})
}

func (s *service) copyThemeAssets(
	ctx context.Context,
	writer artifactWriter,
	dirCache map[string]struct{},
	selection *gotheme.Selection,
	manifest *buildManifest,
) (int, error) {
	assets := collectThemeAssets(selection)
	if len(assets) == 0 {
		return 0, nil
	}

	themeFS := os.DirFS(s.cfg.Theming.Dir)
	copied := 0
	for _, asset := range assets {
		if err := ctx.Err(); err != nil {
			return copied, err
		}
		data, err := fs.ReadFile(themeFS, asset)
		if err != nil {
			return copied, fmt.Errorf("generator: read theme asset %s: %w", asset, err)
		}
		target := path.Join("assets", asset)
		if err := ensureDir(ctx, writer, dirCache, path.Dir(target)); err != nil {
			return copied, err
		}
		if err := writer.WriteFile(ctx, writeFileRequest{
			Path:        target,
			Content:     strings.NewReader(string(data)),
			Size:        int64(len(data)),
			Category:    categoryAsset,
			ContentType: detectAssetContentType(asset),
			Checksum:    computeHash(data),
		}); err != nil {
			return copied, err
		}
		manifest.addAsset(target)
		copied++
	}
	return copied, nil
}

func (s *service) effectiveWorkerCount(jobCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if jobCount > 0 && workers > jobCount {
		workers = jobCount
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

func byDateSeq(ordered []*content.Post) func(yield func(*content.Post) bool) {
	return func(yield func(*content.Post) bool) {
		for _, post := range ordered {
			if !yield(post) {
				return
			}
		}
	}
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}
