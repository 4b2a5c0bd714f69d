package compose

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/commanderxa/alphalabs/internal/content"
)

// The three addressable pages of the site.
const (
	HomePath       = "/"
	CollectionPath = "/collection"
	AboutPath      = "/about"
)

// Routes lists the addressable pages in build order.
var Routes = []string{HomePath, CollectionPath, AboutPath}

// Fixed action labels.
const (
	OpenAction        = "Open in Colab"
	PublicationAction = "Publication"
	StartAction       = "Get started by viewing the collection"
	pendingTitle      = "Coming soon!"
	pendingText       = "A paper will be linked once published."
)

// Pages composes every route from the store.
func Pages(store *content.Store, base Base) []Page {
	nav := store.Nav()
	return []Page{
		{Path: HomePath, Title: pageTitle(HomePath, nav), Body: Landing(store.Site(), base)},
		{Path: CollectionPath, Title: pageTitle(CollectionPath, nav), Body: Collection(store.Groups(), base)},
		{Path: AboutPath, Title: pageTitle(AboutPath, nav), Body: About(store.About())},
	}
}

// ComposePage composes the page at path, or reports false for an unknown
// route.
func ComposePage(store *content.Store, base Base, path string) (Page, bool) {
	for _, p := range Pages(store, base) {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

// pageTitle prefers the nav label for path and falls back to the route name.
func pageTitle(path string, nav []content.NavEntry) string {
	for _, e := range nav {
		if e.Path == path {
			return e.Label
		}
	}
	name := strings.Trim(path, "/")
	if name == "" {
		return "Home"
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(name)
}

// Collection lays out every topic group in store order: a header, the
// description and one card per simulation. A group without simulations keeps
// its header and gets an empty grid.
func Collection(groups []content.TopicGroup, base Base) *Node {
	page := &Node{Kind: KindPage, Key: "collection"}
	for _, g := range groups {
		grid := &Node{Kind: KindGrid}
		for _, s := range g.Simulations {
			grid.Children = append(grid.Children, simulationCard(s, base))
		}
		page.Children = append(page.Children, &Node{
			Kind:     KindSection,
			Key:      g.Name,
			Children: []*Node{heading(2, g.Name), text(g.Description), grid},
		})
	}
	return page
}

func simulationCard(s content.SimulationEntry, base Base) *Node {
	open := externalLink(OpenAction, s.Href)
	open.Role = "action"
	return &Node{
		Kind: KindCard,
		Key:  s.Name,
		Children: []*Node{
			{Kind: KindImage, Src: base.Asset(s.ImageRef), Alt: s.Name},
			heading(3, s.Name),
			text(s.Description),
			open,
		},
	}
}

// About lays out the prose sections, then the numbered publications list,
// then the FAQ as independently collapsible entries, all collapsed.
func About(a content.About) *Node {
	page := &Node{Kind: KindPage, Key: "about"}
	for _, g := range a.Groups {
		page.Children = append(page.Children, &Node{
			Kind:     KindSection,
			Key:      g.Name,
			Children: []*Node{heading(2, g.Name), {Kind: KindProse, Text: g.Text}},
		})
	}

	list := &Node{Kind: KindList, Ordered: true}
	for i, p := range a.Publications {
		list.Children = append(list.Children, &Node{
			Kind:     KindListItem,
			Key:      fmt.Sprintf("publication-%d", i),
			Children: []*Node{publication(p)},
		})
	}
	page.Children = append(page.Children, &Node{
		Kind:     KindSection,
		Key:      "publications",
		Children: []*Node{heading(2, a.PublicationsTitle), list},
	})

	faq := &Node{Kind: KindSection, Key: "faq", Role: "aside", Children: []*Node{heading(2, a.FAQTitle)}}
	for i, q := range a.FAQ {
		faq.Children = append(faq.Children, &Node{
			Kind:     KindCollapsible,
			Key:      fmt.Sprintf("faq-%d", i),
			Text:     q.Question,
			Children: []*Node{text(q.Answer)},
		})
	}
	page.Children = append(page.Children, faq)
	return page
}

// publication renders a published paper as an outbound link and an
// unpublished one as plain text.
func publication(p content.PublicationEntry) *Node {
	switch l := p.Link.(type) {
	case content.Published:
		return externalLink(p.Name, l.URL)
	case content.Unpublished:
		n := text(p.Name)
		n.Role = "muted"
		return n
	default:
		panic(fmt.Sprintf("compose: unknown publication link %T", p.Link))
	}
}

// Landing shows the headline, the site identity and the calls to action.
// Without a published paper the publication action degrades to a notice.
func Landing(site content.SiteIdentity, base Base) *Node {
	headline := &Node{Kind: KindHeading, Level: 1}
	for _, part := range []struct{ text, role string }{
		{site.Hero.Title, ""},
		{site.Hero.Highlight, "highlight"},
		{site.Hero.Tail, ""},
	} {
		if part.text == "" {
			continue
		}
		n := text(part.text)
		n.Role = part.role
		headline.Children = append(headline.Children, n)
	}
	if len(headline.Children) == 0 {
		headline.Text = site.Name
	}

	hero := &Node{Kind: KindSection, Key: "hero", Children: []*Node{headline}}
	if site.Hero.Subtitle != "" {
		hero.Children = append(hero.Children, text(site.Hero.Subtitle))
	}

	identity := &Node{
		Kind:     KindSection,
		Key:      "identity",
		Children: []*Node{heading(2, site.Name), text(site.Description)},
	}

	actions := &Node{Kind: KindActions, Key: "actions"}
	switch l := site.Publication.(type) {
	case content.Published:
		a := externalLink(PublicationAction, l.URL)
		a.Role = "primary"
		actions.Children = append(actions.Children, a)
	case content.Unpublished, nil:
		actions.Children = append(actions.Children, &Node{
			Kind:     KindNotice,
			Key:      "publication",
			Text:     pendingTitle,
			Children: []*Node{text(pendingText)},
		})
	default:
		panic(fmt.Sprintf("compose: unknown publication link %T", l))
	}
	if gh, ok := site.Link("github"); ok {
		a := externalLink("GitHub", gh)
		a.Role = "secondary"
		actions.Children = append(actions.Children, a)
	}

	start := internalLink(StartAction, base.Page(CollectionPath))
	return &Node{
		Kind:     KindPage,
		Key:      "landing",
		Children: []*Node{hero, identity, actions, {Kind: KindSection, Key: "start", Children: []*Node{start}}},
	}
}
