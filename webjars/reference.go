// Package webjars implements the bundled library asset resource type:
// front-end libraries (scripts, styles, fonts) published under
// /webjars/<library>/<version>/<file>.
package webjars

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/caasmo/webjarcors/resource"
)

// Type is the resource type of bundled library assets.
const Type resource.Type = "webjars"

// DefaultPrefix is the URL namespace assets are served under.
const DefaultPrefix = "/webjars"

var ErrInvalidReference = errors.New("invalid webjars reference")

// Reference identifies one file of one version of a bundled library.
type Reference struct {
	Namespace string // library name, e.g. "momentjs"
	Version   string
	Path      string // file path inside the library, no leading slash
}

var _ resource.Reference = Reference{}

func (Reference) Type() resource.Type { return Type }

// AssetPath is the location of the file relative to the asset root.
func (r Reference) AssetPath() string {
	return path.Join(r.Namespace, r.Version, r.Path)
}

// String renders the reference under DefaultPrefix.
func (r Reference) String() string {
	return DefaultPrefix + "/" + r.AssetPath()
}

// Resolver turns URL paths into references.
type Resolver struct {
	Prefix string
}

// NewResolver returns a resolver for prefix. An empty prefix means
// DefaultPrefix.
func NewResolver(prefix string) Resolver {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Resolver{Prefix: "/" + strings.Trim(prefix, "/")}
}

// Match reports whether urlPath lies under the resolver's prefix.
func (r Resolver) Match(urlPath string) bool {
	return strings.HasPrefix(urlPath, r.Prefix+"/")
}

// Resolve parses /<prefix>/<namespace>/<version>/<path...>.
func (r Resolver) Resolve(urlPath string) (Reference, error) {
	if !r.Match(urlPath) {
		return Reference{}, fmt.Errorf("%w: %q is not under %s", ErrInvalidReference, urlPath, r.Prefix)
	}
	rest := strings.TrimPrefix(urlPath, r.Prefix+"/")

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 3 {
		return Reference{}, fmt.Errorf("%w: %q needs library, version and file", ErrInvalidReference, urlPath)
	}
	for _, seg := range strings.Split(rest, "/") {
		switch seg {
		case "":
			return Reference{}, fmt.Errorf("%w: %q has an empty segment", ErrInvalidReference, urlPath)
		case ".", "..":
			return Reference{}, fmt.Errorf("%w: %q has a relative segment", ErrInvalidReference, urlPath)
		}
	}

	return Reference{Namespace: parts[0], Version: parts[1], Path: parts[2]}, nil
}
