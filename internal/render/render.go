// Package render turns composed page trees into HTML documents wrapped in the
// site shell.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/commanderxa/alphalabs/internal/compose"
	"github.com/commanderxa/alphalabs/internal/content"
	"github.com/commanderxa/alphalabs/internal/nav"
)

// Stylesheet and Script are the static files every page links to, relative
// to the site root.
const (
	Stylesheet = "style.css"
	Script     = "script.js"
)

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and script served next to the pages.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer renders page trees. It is safe for concurrent use once created.
type Renderer struct {
	md    goldmark.Markdown
	nodes *template.Template
	shell *template.Template
}

// New parses the templates and configures the Markdown pipeline used for
// prose nodes. Raw HTML in prose is not passed through.
func New() (*Renderer, error) {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithASTTransformers(util.Prioritized(externalLinks{}, 999)),
			),
		),
	}

	funcs := template.FuncMap{
		"prose":   r.prose,
		"slug":    slug,
		"unknown": func(k compose.Kind) (string, error) { return "", fmt.Errorf("unknown node kind %q", k) },
	}
	nodes, err := template.New("nodes").Funcs(funcs).Parse(nodeTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing node template: %w", err)
	}
	shell, err := template.New("shell").Parse(shellTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing shell template: %w", err)
	}
	r.nodes, r.shell = nodes, shell
	return r, nil
}

// Shell carries what the page frame needs besides the page itself.
type Shell struct {
	Site    content.SiteIdentity
	Session *nav.Session
	Base    compose.Base
	// LiveReload is the websocket path pages connect to for reload
	// notifications. Empty in exported builds.
	LiveReload string
}

type navLink struct {
	Label  string
	Href   string
	Active bool
}

type shellData struct {
	Title       string
	SiteName    string
	Description string
	Brand       string
	Home        string
	Stylesheet  string
	Script      string
	Items       []navLink
	Links       []content.ExternalLink
	MenuOpen    bool
	MenuLabel   string
	Body        template.HTML
	LiveReload  string
}

// Node renders a tree fragment without the shell.
func (r *Renderer) Node(w io.Writer, n *compose.Node) error {
	if n == nil {
		return nil
	}
	if err := r.nodes.ExecuteTemplate(w, "node", n); err != nil {
		return fmt.Errorf("rendering %s node: %w", n.Kind, err)
	}
	return nil
}

// Page renders a complete HTML document for page. Both navigation menus are
// built from the same session entries, so they agree on the active entry.
func (r *Renderer) Page(w io.Writer, page compose.Page, shell Shell) error {
	var body bytes.Buffer
	if err := r.Node(&body, page.Body); err != nil {
		return fmt.Errorf("page %s: %w", page.Path, err)
	}

	data := shellData{
		Title:       page.Title,
		SiteName:    shell.Site.Name,
		Description: shell.Site.Description,
		Brand:       shell.Site.Brand,
		Home:        shell.Base.Page(compose.HomePath),
		Stylesheet:  shell.Base.Page("/" + Stylesheet),
		Script:      shell.Base.Page("/" + Script),
		Body:        template.HTML(body.String()),
		LiveReload:  shell.LiveReload,
	}
	if data.Brand == "" {
		data.Brand = data.SiteName
	}
	if shell.Session != nil {
		for _, it := range shell.Session.Items() {
			data.Items = append(data.Items, navLink{
				Label:  it.Label,
				Href:   shell.Base.Page(it.Path),
				Active: it.Active,
			})
		}
		data.MenuOpen = shell.Session.MenuOpen()
		data.MenuLabel = shell.Session.MenuLabel()
	}
	for _, l := range shell.Site.Links() {
		data.Links = append(data.Links, content.ExternalLink{Label: linkLabel(l.Label), URL: l.URL})
	}

	if err := r.shell.Execute(w, data); err != nil {
		return fmt.Errorf("page %s: executing shell: %w", page.Path, err)
	}
	return nil
}

func (r *Renderer) prose(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

var knownLabels = map[string]string{
	"github": "GitHub",
	"mujoco": "MuJoCo",
}

func linkLabel(key string) string {
	if l, ok := knownLabels[strings.ToLower(key)]; ok {
		return l
	}
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// slug turns a key into an HTML id.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
