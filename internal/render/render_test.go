package render

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/commanderxa/alphalabs/internal/compose"
	"github.com/commanderxa/alphalabs/internal/content"
	"github.com/commanderxa/alphalabs/internal/nav"
)

var testNav = []content.NavEntry{
	{Label: "Home", Path: "/"},
	{Label: "Collection", Path: "/collection"},
	{Label: "About", Path: "/about"},
}

func testSite() content.SiteIdentity {
	return content.SiteIdentity{
		Name:        "AlphaLabs",
		Brand:       "AlphaLabs",
		Description: "Simulations of classical mechanics.",
		Hero:        content.Hero{Title: "Explore", Highlight: "Physics Concepts", Tail: "Through Simulations"},
		Publication: content.Unpublished{},
		ExternalLinks: map[string]string{
			"github": "https://github.com/commanderxa/alphalabs",
			"mujoco": "https://mujoco.org/",
		},
	}
}

func testAbout() content.About {
	return content.About{
		Groups: []content.AboutGroup{
			{Name: "Project", Text: "Built on [MuJoCo](https://mujoco.org/) and *Colab*.\n\nSee [the collection](/collection)."},
		},
		PublicationsTitle: "Publications",
		Publications: []content.PublicationEntry{
			{Name: "Paper X", Link: content.Published{URL: "https://doi.org/10.1/x"}},
			{Name: "Coming soon!", Link: content.Unpublished{}},
		},
		FAQTitle: "FAQ",
		FAQ: []content.FAQEntry{
			{Question: "Is it free?", Answer: "Yes."},
			{Question: "Do I need Python?", Answer: "No."},
		},
	}
}

func renderPage(t *testing.T, page compose.Page, location string, menuOpen bool) *html.Node {
	t.Helper()
	r, err := New()
	require.NoError(t, err)

	session := nav.NewController(testNav).NewSession(location)
	session.SetMenuOpen(menuOpen)

	var buf bytes.Buffer
	err = r.Page(&buf, page, Shell{Site: testSite(), Session: session, Base: compose.Base{Root: "/alphalabs"}})
	require.NoError(t, err)

	problems, err := CheckOutbound(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, problems, "every outbound link must open in a new tab")

	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func element(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// activeIn returns the labels marked active inside the element with class.
func activeIn(doc *html.Node, class string) []string {
	var labels []string
	for _, container := range findAll(doc, func(n *html.Node) bool { return hasClass(n, class) }) {
		for _, a := range findAll(container, element("a")) {
			if v, _ := attr(a, "data-active"); v == "true" {
				labels = append(labels, textOf(a))
			}
		}
	}
	return labels
}

func TestPageNavigationAgrees(t *testing.T) {
	page := compose.Page{Path: "/collection", Title: "Collection", Body: compose.Collection(nil, compose.Base{})}
	doc := renderPage(t, page, "/collection", false)

	assert.Equal(t, []string{"Collection"}, activeIn(doc, "nav-primary"))
	assert.Equal(t, []string{"Collection"}, activeIn(doc, "nav-menu"))

	links := findAll(doc, func(n *html.Node) bool { return n.Data == "a" && hasClass(n.Parent, "nav-item") })
	require.Len(t, links, 3)
	href, _ := attr(links[0], "href")
	assert.Equal(t, "/alphalabs/", href)
	href, _ = attr(links[2], "href")
	assert.Equal(t, "/alphalabs/about", href)
}

func TestPageUnknownLocationHasNoActiveEntry(t *testing.T) {
	page := compose.Page{Path: "/missing", Title: "Missing", Body: &compose.Node{Kind: compose.KindPage}}
	doc := renderPage(t, page, "/missing", false)

	assert.Empty(t, activeIn(doc, "nav-primary"))
	assert.Empty(t, activeIn(doc, "nav-menu"))
}

func TestMenuToggleState(t *testing.T) {
	page := compose.Page{Path: "/", Title: "Home", Body: compose.Landing(testSite(), compose.Base{Root: "/alphalabs"})}

	closed := renderPage(t, page, "/", false)
	toggle := findAll(closed, func(n *html.Node) bool { return hasClass(n, "menu-toggle") })
	require.Len(t, toggle, 1)
	v, _ := attr(toggle[0], "aria-expanded")
	assert.Equal(t, "false", v)
	v, _ = attr(toggle[0], "aria-label")
	assert.Equal(t, "Open menu", v)
	menu := findAll(closed, func(n *html.Node) bool { id, _ := attr(n, "id"); return id == "nav-menu" })
	require.Len(t, menu, 1)
	_, hidden := attr(menu[0], "hidden")
	assert.True(t, hidden)

	open := renderPage(t, page, "/", true)
	toggle = findAll(open, func(n *html.Node) bool { return hasClass(n, "menu-toggle") })
	v, _ = attr(toggle[0], "aria-label")
	assert.Equal(t, "Close menu", v)
	menu = findAll(open, func(n *html.Node) bool { id, _ := attr(n, "id"); return id == "nav-menu" })
	_, hidden = attr(menu[0], "hidden")
	assert.False(t, hidden)
}

func TestCollectionCards(t *testing.T) {
	groups := []content.TopicGroup{
		{
			Name:        "Kinematics",
			Description: "Motion.",
			Simulations: []content.SimulationEntry{
				{Name: "1D Motion", Description: "Along a line.", ImageRef: "kinematics_1.png", Href: "https://colab.research.google.com/k1.ipynb"},
			},
		},
		{Name: "Optics", Description: "Later."},
	}
	base := compose.Base{Root: "/alphalabs"}
	doc := renderPage(t, compose.Page{Path: "/collection", Title: "Collection", Body: compose.Collection(groups, base)}, "/collection", false)

	cards := findAll(doc, element("article"))
	require.Len(t, cards, 1)
	img := findAll(cards[0], element("img"))
	require.Len(t, img, 1)
	src, _ := attr(img[0], "src")
	assert.Equal(t, "/alphalabs/assets/kinematics_1.png", src)
	alt, _ := attr(img[0], "alt")
	assert.Equal(t, "1D Motion", alt)

	open := findAll(cards[0], element("a"))
	require.Len(t, open, 1)
	assert.Equal(t, compose.OpenAction, textOf(open[0]))
	target, _ := attr(open[0], "target")
	assert.Equal(t, "_blank", target)

	sections := findAll(doc, element("section"))
	require.Len(t, sections, 2)
	id, _ := attr(sections[1], "id")
	assert.Equal(t, "optics", id)
	assert.Equal(t, "Optics", textOf(findAll(sections[1], element("h2"))[0]))
}

func TestAboutPage(t *testing.T) {
	doc := renderPage(t, compose.Page{Path: "/about", Title: "About", Body: compose.About(testAbout())}, "/about", false)

	details := findAll(doc, element("details"))
	require.Len(t, details, 2)
	for _, d := range details {
		_, open := attr(d, "open")
		assert.False(t, open, "FAQ entries render collapsed")
	}
	assert.Equal(t, "Is it free?", textOf(findAll(details[0], element("summary"))[0]))

	items := findAll(doc, element("li"))
	var pubs []*html.Node
	for _, li := range items {
		if li.Parent != nil && hasClass(li.Parent, "list-ordered") {
			pubs = append(pubs, li)
		}
	}
	require.Len(t, pubs, 2)
	assert.Len(t, findAll(pubs[0], element("a")), 1)
	assert.Empty(t, findAll(pubs[1], element("a")), "unpublished entries are not links")
	assert.Equal(t, "Coming soon!", textOf(pubs[1]))

	// Prose is rendered as Markdown, with absolute links opening a new tab
	// and site links left alone.
	prose := findAll(doc, func(n *html.Node) bool { return hasClass(n, "prose") })
	require.Len(t, prose, 1)
	assert.NotEmpty(t, findAll(prose[0], element("em")))
	anchors := findAll(prose[0], element("a"))
	require.Len(t, anchors, 2)
	target, _ := attr(anchors[0], "target")
	assert.Equal(t, "_blank", target)
	_, hasTarget := attr(anchors[1], "target")
	assert.False(t, hasTarget)
}

func TestLandingNotice(t *testing.T) {
	page := compose.Page{Path: "/", Title: "Home", Body: compose.Landing(testSite(), compose.Base{Root: "/alphalabs"})}
	doc := renderPage(t, page, "/", false)

	notices := findAll(doc, func(n *html.Node) bool { return hasClass(n, "notice") })
	require.Len(t, notices, 1)
	assert.Contains(t, textOf(notices[0]), "Coming soon!")

	h1 := findAll(doc, element("h1"))
	require.Len(t, h1, 1)
	assert.Len(t, findAll(h1[0], func(n *html.Node) bool { return hasClass(n, "highlight") }), 1)

	externals := findAll(doc, func(n *html.Node) bool { return hasClass(n, "nav-external") })
	require.Len(t, externals, 2)
	assert.Equal(t, "GitHub", textOf(externals[0]))
	assert.Equal(t, "MuJoCo", textOf(externals[1]))
}

func TestRawHTMLInProseIsDropped(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Node(&buf, &compose.Node{Kind: compose.KindProse, Text: "Hi <script>alert(1)</script>"}))
	assert.NotContains(t, buf.String(), "<script>")
}

func TestUnknownKindFails(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Node(&buf, &compose.Node{Kind: "marquee"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marquee")
}

func TestCheckOutbound(t *testing.T) {
	doc := `<html><body>
<a href="https://example.com/a" target="_blank" rel="noopener noreferrer">ok</a>
<a href="https://example.com/b">no target</a>
<a href="https://example.com/c" target="_blank" rel="noopener">half rel</a>
<a href="/collection">internal</a>
<a href="#top">anchor</a>
</body></html>`

	problems, err := CheckOutbound(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, "https://example.com/b", problems[0].Href)
	assert.Equal(t, "https://example.com/c", problems[1].Href)
	assert.Contains(t, problems[1].String(), "noreferrer")
}

func TestStaticFiles(t *testing.T) {
	for _, name := range []string{Stylesheet, Script} {
		data, err := fs.ReadFile(Static(), name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Kinematics":        "kinematics",
		"Conservation Laws": "conservation-laws",
		"faq-0":             "faq-0",
		"  Edge  case!! ":   "edge-case",
	}
	for in, want := range tests {
		assert.Equal(t, want, slug(in), in)
	}
}
