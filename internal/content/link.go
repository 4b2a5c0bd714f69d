package content

import (
	"fmt"
	"net/url"
	"strings"
)

// Link is the state of a publication reference: either Unpublished or
// Published. The interface is sealed so a type switch over the two variants
// is exhaustive.
type Link interface {
	isLink()
}

// Unpublished marks a paper that has no public URL yet. It renders as plain
// text, never as a link.
type Unpublished struct{}

// Published is a paper with a resolvable URL.
type Published struct {
	URL string
}

func (Unpublished) isLink() {}
func (Published) isLink()   {}

// ParseLink maps the raw document value to a Link. An empty or blank string
// means the paper is not yet published.
func ParseLink(raw string) Link {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Unpublished{}
	}
	return Published{URL: raw}
}

// IsPublished reports whether l carries a URL.
func IsPublished(l Link) bool {
	_, ok := l.(Published)
	return ok
}

// checkURL reports why raw is not an absolute http(s) URL, or nil.
func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("malformed URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}
