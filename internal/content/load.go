package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Content document names, relative to the content root.
const (
	siteDocument       = "site.yaml"
	collectionDocument = "collection.yaml"
	aboutDocument      = "about.yaml"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

// siteDoc mirrors site.yaml.
type siteDoc struct {
	Name        string            `yaml:"name"`
	Brand       string            `yaml:"brand"`
	Description string            `yaml:"description"`
	Hero        heroDoc           `yaml:"hero"`
	Publication string            `yaml:"publication"`
	Nav         []navDoc          `yaml:"nav"`
	Links       map[string]string `yaml:"links"`
}

type heroDoc struct {
	Title     string `yaml:"title"`
	Highlight string `yaml:"highlight"`
	Tail      string `yaml:"tail"`
	Subtitle  string `yaml:"subtitle"`
}

type navDoc struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

// collectionDoc mirrors collection.yaml.
type collectionDoc struct {
	Groups []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Simulations []struct {
			Name        string `yaml:"name"`
			Description string `yaml:"description"`
			Image       string `yaml:"image"`
			Href        string `yaml:"href"`
		} `yaml:"simulations"`
	} `yaml:"groups"`
}

// aboutDoc mirrors about.yaml.
type aboutDoc struct {
	Groups []struct {
		Name string `yaml:"name"`
		Text string `yaml:"text"`
	} `yaml:"groups"`
	Publications struct {
		Name    string `yaml:"name"`
		Content []struct {
			Name string `yaml:"name"`
			Link string `yaml:"link"`
		} `yaml:"content"`
	} `yaml:"publications"`
	FAQ struct {
		Name    string `yaml:"name"`
		Content []struct {
			Question string `yaml:"question"`
			Answer   string `yaml:"answer"`
		} `yaml:"content"`
	} `yaml:"faq"`
}

// Default loads the catalogue embedded in the binary. Image references are
// checked against assets.
func Default(assets fs.FS) (*Store, error) {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("opening embedded content: %w", err)
	}
	return Load(sub, assets)
}

// Load reads site.yaml, collection.yaml and about.yaml from docs, validates
// them and returns the store. Unknown fields are rejected. Any problem,
// including an image reference that does not exist in assets, fails the
// whole load with a *ValidationError.
func Load(docs, assets fs.FS) (*Store, error) {
	if docs == nil {
		return nil, errors.New("content root is required")
	}
	if assets == nil {
		return nil, errors.New("asset root is required")
	}

	var sd siteDoc
	if err := decodeDocument(docs, siteDocument, &sd); err != nil {
		return nil, err
	}
	var cd collectionDoc
	if err := decodeDocument(docs, collectionDocument, &cd); err != nil {
		return nil, err
	}
	var ad aboutDoc
	if err := decodeDocument(docs, aboutDocument, &ad); err != nil {
		return nil, err
	}

	s := &Store{
		site: SiteIdentity{
			Name:          sd.Name,
			Brand:         sd.Brand,
			Description:   sd.Description,
			Hero:          Hero(sd.Hero),
			Publication:   ParseLink(sd.Publication),
			ExternalLinks: sd.Links,
		},
	}
	for _, n := range sd.Nav {
		s.nav = append(s.nav, NavEntry(n))
	}
	for _, g := range cd.Groups {
		group := TopicGroup{Name: g.Name, Description: g.Description}
		for _, sim := range g.Simulations {
			group.Simulations = append(group.Simulations, SimulationEntry{
				Name:        sim.Name,
				Description: sim.Description,
				ImageRef:    sim.Image,
				Href:        sim.Href,
			})
		}
		s.groups = append(s.groups, group)
	}
	for _, g := range ad.Groups {
		s.about.Groups = append(s.about.Groups, AboutGroup{Name: g.Name, Text: g.Text})
	}
	s.about.PublicationsTitle = ad.Publications.Name
	for _, p := range ad.Publications.Content {
		s.about.Publications = append(s.about.Publications, PublicationEntry{Name: p.Name, Link: ParseLink(p.Link)})
	}
	s.about.FAQTitle = ad.FAQ.Name
	for _, q := range ad.FAQ.Content {
		s.about.FAQ = append(s.about.FAQ, FAQEntry{Question: q.Question, Answer: q.Answer})
	}

	v := &validator{assets: assets}
	v.site(s.site)
	v.nav(s.nav)
	v.groups(s.groups)
	v.about(s.about)
	if err := v.err(); err != nil {
		return nil, err
	}
	return s, nil
}

// decodeDocument strictly decodes the YAML document name into out.
func decodeDocument(docs fs.FS, name string, out any) error {
	data, err := fs.ReadFile(docs, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return &ValidationError{Problems: []Problem{{Path: name, Message: "document is empty"}}}
		}
		return &ValidationError{Problems: []Problem{{Path: name, Message: err.Error()}}}
	}
	return nil
}
