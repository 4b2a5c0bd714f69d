package render

import (
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// IsExternal reports whether href leaves the site.
func IsExternal(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// externalLinks marks absolute links in prose so they open in a new tab.
type externalLinks struct{}

func (externalLinks) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	src := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest []byte
		switch l := n.(type) {
		case *ast.Link:
			dest = l.Destination
		case *ast.AutoLink:
			if l.AutoLinkType != ast.AutoLinkURL {
				return ast.WalkContinue, nil
			}
			dest = l.URL(src)
		default:
			return ast.WalkContinue, nil
		}
		if IsExternal(string(dest)) {
			n.SetAttributeString("target", []byte("_blank"))
			n.SetAttributeString("rel", []byte("noopener noreferrer"))
		}
		return ast.WalkContinue, nil
	})
}

// LinkProblem is an outbound anchor that would replace the site in the
// current tab.
type LinkProblem struct {
	Href   string
	Reason string
}

func (p LinkProblem) String() string { return fmt.Sprintf("%s: %s", p.Href, p.Reason) }

// CheckOutbound parses an HTML document and reports every external anchor
// that does not open in a new tab with opener isolation.
func CheckOutbound(r io.Reader) ([]LinkProblem, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	var problems []LinkProblem
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if p, bad := checkAnchor(n); bad {
				problems = append(problems, p)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return problems, nil
}

func checkAnchor(n *html.Node) (LinkProblem, bool) {
	var href, target, rel string
	for _, a := range n.Attr {
		switch a.Key {
		case "href":
			href = a.Val
		case "target":
			target = a.Val
		case "rel":
			rel = a.Val
		}
	}
	if !IsExternal(href) {
		return LinkProblem{}, false
	}
	if target != "_blank" {
		return LinkProblem{Href: href, Reason: "missing target=_blank"}, true
	}
	fields := strings.Fields(rel)
	for _, want := range []string{"noopener", "noreferrer"} {
		if !slices.Contains(fields, want) {
			return LinkProblem{Href: href, Reason: "rel lacks " + want}, true
		}
	}
	return LinkProblem{}, false
}
