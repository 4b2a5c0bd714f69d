package content

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrInvalidContent is wrapped by every ValidationError.
var ErrInvalidContent = errors.New("invalid content")

// Problem is one authoring mistake found in the content documents.
type Problem struct {
	Path    string // e.g. "collection.yaml: groups[1].simulations[0].href"
	Message string
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// ValidationError lists every problem found while loading content. The store
// is never built when one is returned.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d problem(s)", ErrInvalidContent, len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.String())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrInvalidContent }

// validator accumulates problems instead of stopping at the first one.
type validator struct {
	assets   fs.FS
	problems []Problem
}

func (v *validator) addf(path, format string, args ...any) {
	v.problems = append(v.problems, Problem{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) required(path, value string) {
	if strings.TrimSpace(value) == "" {
		v.addf(path, "is required")
	}
}

func (v *validator) url(path, value string) {
	if strings.TrimSpace(value) == "" {
		v.addf(path, "is required")
		return
	}
	if err := checkURL(value); err != nil {
		v.addf(path, "%v", err)
	}
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: v.problems}
}

func (v *validator) site(s SiteIdentity) {
	const doc = siteDocument + ": "
	v.required(doc+"name", s.Name)
	v.required(doc+"brand", s.Brand)
	v.required(doc+"description", s.Description)
	if p, ok := s.Publication.(Published); ok {
		v.url(doc+"publication", p.URL)
	}
	for _, l := range s.Links() {
		if strings.TrimSpace(l.Label) == "" {
			v.addf(doc+"links", "link label is required")
			continue
		}
		v.url(doc+"links."+l.Label, l.URL)
	}
}

func (v *validator) nav(entries []NavEntry) {
	const doc = siteDocument + ": "
	if len(entries) == 0 {
		v.addf(doc+"nav", "at least one entry is required")
	}
	seen := make(map[string]int)
	for i, e := range entries {
		path := fmt.Sprintf("%snav[%d]", doc, i)
		v.required(path+".label", e.Label)
		if !strings.HasPrefix(e.Path, "/") {
			v.addf(path+".path", "must be an absolute site path, got %q", e.Path)
			continue
		}
		if first, dup := seen[e.Path]; dup {
			v.addf(path+".path", "duplicates nav[%d] path %q", first, e.Path)
			continue
		}
		seen[e.Path] = i
	}
}

func (v *validator) groups(groups []TopicGroup) {
	const doc = collectionDocument + ": "
	seen := make(map[string]int)
	for i, g := range groups {
		path := fmt.Sprintf("%sgroups[%d]", doc, i)
		v.required(path+".name", g.Name)
		if first, dup := seen[g.Name]; dup && g.Name != "" {
			v.addf(path+".name", "duplicates groups[%d] name %q", first, g.Name)
		} else {
			seen[g.Name] = i
		}

		sims := make(map[string]int)
		for j, s := range g.Simulations {
			sp := fmt.Sprintf("%s.simulations[%d]", path, j)
			v.required(sp+".name", s.Name)
			v.required(sp+".description", s.Description)
			v.url(sp+".href", s.Href)
			v.image(sp+".image", s.ImageRef)
			if first, dup := sims[s.Name]; dup && s.Name != "" {
				v.addf(sp+".name", "duplicates simulations[%d] name %q", first, s.Name)
			} else {
				sims[s.Name] = j
			}
		}
	}
}

// image checks that ref names an existing file under the asset root.
func (v *validator) image(path, ref string) {
	if strings.TrimSpace(ref) == "" {
		v.addf(path, "is required")
		return
	}
	if !fs.ValidPath(ref) {
		v.addf(path, "%q is not a relative asset name", ref)
		return
	}
	info, err := fs.Stat(v.assets, ref)
	if err != nil {
		v.addf(path, "asset %q not found under the asset root", ref)
		return
	}
	if info.IsDir() {
		v.addf(path, "asset %q is a directory", ref)
	}
}

func (v *validator) about(a About) {
	const doc = aboutDocument + ": "
	seen := make(map[string]int)
	for i, g := range a.Groups {
		path := fmt.Sprintf("%sgroups[%d]", doc, i)
		v.required(path+".name", g.Name)
		v.required(path+".text", g.Text)
		if first, dup := seen[g.Name]; dup && g.Name != "" {
			v.addf(path+".name", "duplicates groups[%d] name %q", first, g.Name)
		} else {
			seen[g.Name] = i
		}
	}

	v.required(doc+"publications.name", a.PublicationsTitle)
	for i, p := range a.Publications {
		path := fmt.Sprintf("%spublications.content[%d]", doc, i)
		v.required(path+".name", p.Name)
		switch l := p.Link.(type) {
		case Published:
			v.url(path+".link", l.URL)
		case Unpublished:
		default:
			v.addf(path+".link", "unknown link state %T", l)
		}
	}

	v.required(doc+"faq.name", a.FAQTitle)
	for i, q := range a.FAQ {
		path := fmt.Sprintf("%sfaq.content[%d]", doc, i)
		v.required(path+".question", q.Question)
		v.required(path+".answer", q.Answer)
	}
}
