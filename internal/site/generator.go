// Package site builds the static export: it composes every page from the
// content store, renders it inside the shell and writes it out together with
// the static files and images.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/commanderxa/alphalabs/internal/compose"
	"github.com/commanderxa/alphalabs/internal/config"
	"github.com/commanderxa/alphalabs/internal/content"
	"github.com/commanderxa/alphalabs/internal/nav"
	"github.com/commanderxa/alphalabs/internal/progress"
	"github.com/commanderxa/alphalabs/internal/render"
	"github.com/commanderxa/alphalabs/internal/walker"
)

// AssetDir is the export subdirectory images are copied into.
const AssetDir = "assets"

var (
	// ErrOutboundLink is returned when a rendered page has an external link
	// that would navigate away from the site in the same tab.
	ErrOutboundLink = errors.New("outbound link does not open in a new tab")
	// ErrUnknownRoute is returned when a nav entry points at no page.
	ErrUnknownRoute = errors.New("nav entry points to an unknown page")
)

// Options configures a Generator.
type Options struct {
	OutputDir string
	Base      compose.Base
	// Assets is the image tree referenced by simulation cards. It is copied
	// to OutputDir/assets.
	Assets fs.FS
	// AssetRoot and ContentRoot name the directories Assets and the content
	// documents are read from. OutputDir may not be or contain either one.
	// An OutputDir inside AssetRoot is left out of asset discovery.
	AssetRoot   string
	ContentRoot string
	// Exclude lists asset globs left out of the export.
	Exclude []string
	// LiveReload is embedded in every page when set. Only the dev server
	// sets it.
	LiveReload string
	Logger     *slog.Logger
	Reporter   progress.Reporter
}

// Generator writes the static export.
type Generator struct {
	opts     Options
	exclude  []string
	renderer *render.Renderer
	logger   *slog.Logger
	reporter progress.Reporter
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts Options) (*Generator, error) {
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.Assets == nil {
		return nil, fmt.Errorf("asset file system is required")
	}
	abs, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if abs == filepath.Dir(abs) {
		return nil, fmt.Errorf("refusing to use %s as output directory", abs)
	}
	if err := config.CheckOutputDir(opts.OutputDir, opts.AssetRoot, opts.ContentRoot); err != nil {
		return nil, err
	}
	exclude := slices.Clone(opts.Exclude)
	if opts.AssetRoot != "" {
		nested, err := walker.Within(opts.AssetRoot, opts.OutputDir)
		if err != nil {
			return nil, err
		}
		if nested {
			root, _ := filepath.Abs(opts.AssetRoot)
			rel, err := filepath.Rel(root, abs)
			if err != nil {
				return nil, err
			}
			exclude = append(exclude, filepath.ToSlash(rel)+"/**")
		}
	}

	r, err := render.New()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Generator{opts: opts, exclude: exclude, renderer: r, logger: logger, reporter: reporter}, nil
}

// Result summarizes one build.
type Result struct {
	BuildID string
	// Pages are the written HTML files relative to the output directory.
	Pages  []string
	Assets []walker.FileInfo
	// Unreferenced lists asset files no simulation card points at.
	Unreferenced []string
	Duration     time.Duration
}

// Build writes the complete export for store. Everything is written to a
// staging directory next to OutputDir, which then replaces OutputDir in one
// rename. A failed build leaves the previous export untouched.
func (g *Generator) Build(ctx context.Context, store *content.Store) (*Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pages, assets, err := g.prepare(store)
	if err != nil {
		return nil, err
	}

	stage, err := g.stageDir()
	if err != nil {
		return nil, err
	}
	// A no-op once the stage has been swapped in.
	defer os.RemoveAll(stage)

	total := len(pages) + len(assets) + 2
	g.reporter.Start(total)
	defer g.reporter.Finish()
	step := 0

	static := render.Static()
	for _, name := range []string{render.Stylesheet, render.Script} {
		data, err := fs.ReadFile(static, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if err := write(stage, name, data); err != nil {
			return nil, err
		}
		step++
		g.reporter.Update(step, name)
	}

	res := &Result{BuildID: uuid.NewString()}
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := write(stage, p.file, p.html); err != nil {
			return nil, err
		}
		res.Pages = append(res.Pages, p.file)
		step++
		g.reporter.Update(step, p.file)
	}

	for _, a := range assets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(g.opts.Assets, a.RelPath)
		if err != nil {
			return nil, fmt.Errorf("reading asset %s: %w", a.RelPath, err)
		}
		if err := write(stage, path.Join(AssetDir, a.RelPath), data); err != nil {
			return nil, err
		}
		step++
		g.reporter.Update(step, a.RelPath)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.replaceOutput(stage); err != nil {
		return nil, err
	}

	res.Assets = assets
	res.Unreferenced = unreferenced(assets, store.ImageRefs())
	for _, name := range res.Unreferenced {
		g.logger.Warn("asset is not referenced by any simulation", "asset", name)
	}

	res.Duration = time.Since(start)
	g.logger.Info("site built",
		"build_id", res.BuildID,
		"pages", len(res.Pages),
		"assets", len(res.Assets),
		"output", g.opts.OutputDir,
		"duration", res.Duration)
	return res, nil
}

// Check renders and verifies every page and the asset set without writing
// anything. It returns the files a build would produce.
func (g *Generator) Check(store *content.Store) ([]string, error) {
	pages, _, err := g.prepare(store)
	if err != nil {
		return nil, err
	}
	files := make([]string, len(pages))
	for i, p := range pages {
		files[i] = p.file
	}
	return files, nil
}

// prepare does every check a build needs before anything is written.
func (g *Generator) prepare(store *content.Store) ([]renderedPage, []walker.FileInfo, error) {
	if err := CheckRoutes(store.Nav()); err != nil {
		return nil, nil, err
	}
	pages, err := g.renderPages(store)
	if err != nil {
		return nil, nil, err
	}
	assets, err := walker.Walk(g.opts.Assets, walker.Config{Include: walker.ImagePatterns, Exclude: g.exclude})
	if err != nil {
		return nil, nil, fmt.Errorf("discovering assets: %w", err)
	}
	if err := CheckImages(store.ImageRefs(), assets); err != nil {
		return nil, nil, err
	}
	return pages, assets, nil
}

// CheckImages reports image references that asset discovery did not pick
// up: excluded, oversized or not an image. The export would link them
// without shipping them.
func CheckImages(refs []string, assets []walker.FileInfo) error {
	exported := make(map[string]bool, len(assets))
	for _, a := range assets {
		exported[a.RelPath] = true
	}
	var problems []content.Problem
	for _, ref := range refs {
		if !exported[normalizeRef(ref)] {
			problems = append(problems, content.Problem{
				Path:    "assets/" + ref,
				Message: "referenced image is not exported (excluded, too large or not an image)",
			})
		}
	}
	if len(problems) > 0 {
		return &content.ValidationError{Problems: problems}
	}
	return nil
}

type renderedPage struct {
	file string
	html []byte
}

// renderPages renders every route in memory and verifies its outbound links.
func (g *Generator) renderPages(store *content.Store) ([]renderedPage, error) {
	ctrl := nav.NewController(store.Nav())
	identity := store.Site()

	var out []renderedPage
	for _, page := range compose.Pages(store, g.opts.Base) {
		var buf bytes.Buffer
		shell := render.Shell{
			Site:       identity,
			Session:    ctrl.NewSession(page.Path),
			Base:       g.opts.Base,
			LiveReload: g.opts.LiveReload,
		}
		if err := g.renderer.Page(&buf, page, shell); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", page.Path, err)
		}

		problems, err := render.CheckOutbound(bytes.NewReader(buf.Bytes()))
		if err != nil {
			return nil, fmt.Errorf("verifying %s: %w", page.Path, err)
		}
		if len(problems) > 0 {
			msgs := make([]string, len(problems))
			for i, p := range problems {
				msgs[i] = p.String()
			}
			return nil, fmt.Errorf("%w: %s: %s", ErrOutboundLink, page.Path, strings.Join(msgs, "; "))
		}

		g.logger.Debug("page rendered", "path", page.Path, "bytes", buf.Len())
		out = append(out, renderedPage{file: OutputFile(page.Path), html: buf.Bytes()})
	}
	return out, nil
}

// OutputFile maps a route to its file in the export: "/" is index.html and
// every other route is a directory with its own index.html.
func OutputFile(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return "index.html"
	}
	return path.Join(trimmed, "index.html")
}

// CheckRoutes reports nav entries whose path is not a composed page.
func CheckRoutes(entries []content.NavEntry) error {
	var bad []string
	for _, e := range entries {
		if !slices.Contains(compose.Routes, e.Path) {
			bad = append(bad, fmt.Sprintf("%s (%s)", e.Path, e.Label))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRoute, strings.Join(bad, ", "))
	}
	return nil
}

// stageDir creates an empty hidden directory beside OutputDir, on the same
// file system so the final rename is atomic.
func (g *Generator) stageDir() (string, error) {
	abs, err := filepath.Abs(g.opts.OutputDir)
	if err != nil {
		return "", err
	}
	parent := filepath.Dir(abs)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", parent, err)
	}
	stage, err := os.MkdirTemp(parent, "."+filepath.Base(abs)+".build-")
	if err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}
	if err := os.Chmod(stage, 0o755); err != nil {
		os.RemoveAll(stage)
		return "", err
	}
	return stage, nil
}

// replaceOutput swaps stage in as OutputDir. The previous export is moved
// aside first and restored if the swap fails.
func (g *Generator) replaceOutput(stage string) error {
	out := g.opts.OutputDir
	prev := stage + ".prev"
	hadPrev := true
	if err := os.Rename(out, prev); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("moving previous export aside: %w", err)
		}
		hadPrev = false
	}
	if err := os.Rename(stage, out); err != nil {
		if hadPrev {
			_ = os.Rename(prev, out)
		}
		return fmt.Errorf("replacing export: %w", err)
	}
	if hadPrev {
		if err := os.RemoveAll(prev); err != nil {
			g.logger.Warn("could not remove previous export", "path", prev, "error", err)
		}
	}
	return nil
}

func write(dir, rel string, data []byte) error {
	out := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// normalizeRef strips leading slashes and dot segments from an image ref.
func normalizeRef(ref string) string {
	return strings.TrimPrefix(path.Clean("/"+ref), "/")
}

func unreferenced(assets []walker.FileInfo, refs []string) []string {
	used := make(map[string]bool, len(refs))
	for _, r := range refs {
		used[normalizeRef(r)] = true
	}
	var out []string
	for _, a := range assets {
		if !used[a.RelPath] {
			out = append(out, a.RelPath)
		}
	}
	return out
}
