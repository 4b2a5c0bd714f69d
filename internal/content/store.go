package content

import (
	"maps"
	"slices"
	"sort"
)

// Store is the immutable, validated catalogue. It is built once by Load or
// Default and only exposes read accessors; slices handed out are copies.
type Store struct {
	site   SiteIdentity
	nav    []NavEntry
	groups []TopicGroup
	about  About
}

// Site returns the site identity.
func (s *Store) Site() SiteIdentity {
	site := s.site
	site.ExternalLinks = maps.Clone(s.site.ExternalLinks)
	return site
}

// Nav returns the navigation entries in display order.
func (s *Store) Nav() []NavEntry {
	return slices.Clone(s.nav)
}

// Groups returns the topic groups in store order.
func (s *Store) Groups() []TopicGroup {
	out := make([]TopicGroup, len(s.groups))
	for i, g := range s.groups {
		g.Simulations = slices.Clone(g.Simulations)
		out[i] = g
	}
	return out
}

// About returns the about page content.
func (s *Store) About() About {
	a := s.about
	a.Groups = slices.Clone(a.Groups)
	a.Publications = slices.Clone(a.Publications)
	a.FAQ = slices.Clone(a.FAQ)
	return a
}

// AboutGroups returns the about page prose sections in order.
func (s *Store) AboutGroups() []AboutGroup { return slices.Clone(s.about.Groups) }

// Publications returns the publications list in order.
func (s *Store) Publications() []PublicationEntry { return slices.Clone(s.about.Publications) }

// FAQ returns the FAQ entries in display order.
func (s *Store) FAQ() []FAQEntry { return slices.Clone(s.about.FAQ) }

// ImageRefs returns every image reference used by the catalogue, in order of
// appearance and without duplicates.
func (s *Store) ImageRefs() []string {
	seen := make(map[string]bool)
	var refs []string
	for _, g := range s.groups {
		for _, sim := range g.Simulations {
			if !seen[sim.ImageRef] {
				seen[sim.ImageRef] = true
				refs = append(refs, sim.ImageRef)
			}
		}
	}
	return refs
}

// Link returns the external link registered under label.
func (si SiteIdentity) Link(label string) (string, bool) {
	u, ok := si.ExternalLinks[label]
	return u, ok
}

// Links returns all external links sorted by label.
func (si SiteIdentity) Links() []ExternalLink {
	out := make([]ExternalLink, 0, len(si.ExternalLinks))
	for label, u := range si.ExternalLinks {
		out = append(out, ExternalLink{Label: label, URL: u})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
