package content

// SiteIdentity is the site-wide metadata shown in the header and on the
// landing page.
type SiteIdentity struct {
	Name          string
	Brand         string // Short name shown in the header.
	Description   string
	Hero          Hero
	Publication   Link              // Target of the landing page's "Publication" action.
	ExternalLinks map[string]string // Label to URL.
}

// Hero is the headline block of the landing page.
type Hero struct {
	Title     string
	Highlight string // Emphasised part of the headline.
	Tail      string
	Subtitle  string
}

// ExternalLink is a labelled outbound URL such as the project's GitHub page.
type ExternalLink struct {
	Label string
	URL   string
}

// NavEntry is one item of the navigation bar. The same sequence feeds the
// primary bar and the mobile menu.
type NavEntry struct {
	Label string
	Path  string
}

// TopicGroup is one subject area of the catalogue, e.g. Kinematics.
type TopicGroup struct {
	Name        string
	Description string
	Simulations []SimulationEntry
}

// SimulationEntry is one catalogue item linking to an external notebook.
type SimulationEntry struct {
	Name        string
	Description string
	ImageRef    string // Asset name relative to the asset root, e.g. "kinematics_1.png".
	Href        string
}

// PublicationEntry is one paper in the about page's publications list.
type PublicationEntry struct {
	Name string
	Link Link
}

// FAQEntry is one question of the about page. Order is display order.
type FAQEntry struct {
	Question string
	Answer   string
}

// AboutGroup is one prose section of the about page. Text is Markdown.
type AboutGroup struct {
	Name string
	Text string
}

// About collects everything the about page shows.
type About struct {
	Groups            []AboutGroup
	PublicationsTitle string
	Publications      []PublicationEntry
	FAQTitle          string
	FAQ               []FAQEntry
}
