// Package compose maps content to renderable page trees. Every function here
// is pure: the same content always yields a structurally identical tree, and
// nothing in the content store is modified.
package compose

// Kind identifies what a Node represents to a rendering backend.
type Kind string

const (
	KindPage        Kind = "page"
	KindSection     Kind = "section"
	KindHeading     Kind = "heading"
	KindText        Kind = "text"
	KindProse       Kind = "prose" // Markdown source, rendered by the backend.
	KindGrid        Kind = "grid"
	KindCard        Kind = "card"
	KindImage       Kind = "image"
	KindLink        Kind = "link"
	KindList        Kind = "list"
	KindListItem    Kind = "list-item"
	KindCollapsible Kind = "collapsible"
	KindNotice      Kind = "notice"
	KindActions     Kind = "actions"
)

// Node is one element of a composed page. The tree carries no HTML; any
// backend can walk it.
type Node struct {
	Kind  Kind   `json:"kind"`
	Key   string `json:"key,omitempty"`   // Stable rendering key, unique among siblings.
	Text  string `json:"text,omitempty"`  // Heading, text, link label, notice title, collapsible summary.
	Level int    `json:"level,omitempty"` // Heading level.
	Href  string `json:"href,omitempty"`
	Src   string `json:"src,omitempty"`
	Alt   string `json:"alt,omitempty"`
	// External links open in a new browsing context.
	External bool `json:"external,omitempty"`
	// Ordered lists are numbered.
	Ordered bool `json:"ordered,omitempty"`
	// Expanded is the initial state of a collapsible node.
	Expanded bool   `json:"expanded,omitempty"`
	Role     string `json:"role,omitempty"` // Presentation hint, e.g. "primary" for an action link.

	Children []*Node `json:"children,omitempty"`
}

// Page is a composed page: its route, title and body tree.
type Page struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	Body  *Node  `json:"body"`
}

func node(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

func heading(level int, text string) *Node {
	return &Node{Kind: KindHeading, Level: level, Text: text}
}

func text(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

// externalLink builds a link that must not replace the current page.
func externalLink(label, href string) *Node {
	return &Node{Kind: KindLink, Text: label, Href: href, External: true}
}

func internalLink(label, href string) *Node {
	return &Node{Kind: KindLink, Text: label, Href: href}
}

// Walk calls fn for n and each descendant in document order. It stops
// descending into a subtree when fn returns false.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Find returns every node of the given kind in document order.
func Find(n *Node, kind Kind) []*Node {
	var out []*Node
	Walk(n, func(c *Node) bool {
		if c.Kind == kind {
			out = append(out, c)
		}
		return true
	})
	return out
}
