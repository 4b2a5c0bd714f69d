package compose

import (
	"path"
	"strings"
)

// assetDir is the directory, below the deployment root, that holds images.
const assetDir = "assets"

// Base is the deployment root the site is served under, e.g. "/alphalabs"
// on a project page host or "" at a domain root. It is applied exactly once
// to every asset reference and internal page link.
type Base struct {
	Root string
}

func (b Base) assetPrefix() string {
	return path.Join("/", b.Root, assetDir) + "/"
}

// Asset returns the URL path of an image reference. A ref that already
// carries the asset prefix is returned cleaned but otherwise unchanged, so
// resolving twice never duplicates the prefix.
func (b Base) Asset(ref string) string {
	p := b.assetPrefix()
	if strings.HasPrefix(ref, p) {
		return path.Clean(ref)
	}
	return path.Join(p, strings.TrimLeft(ref, "/"))
}

// Page returns the URL of the site path p. The root page keeps a trailing
// slash so static hosts serve its index.
func (b Base) Page(p string) string {
	joined := path.Join("/", b.Root, p)
	if strings.Trim(p, "/") == "" && joined != "/" {
		return joined + "/"
	}
	return joined
}
