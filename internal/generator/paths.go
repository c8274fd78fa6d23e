package generator

import (
	"path"
	"strings"
)

const (
	homeIndexFile = "index.html"
	tagsDir       = "tags"
)

// postOutputPath maps a slug onto its pretty-URL output location
// (my-post -> my-post/index.html).
func postOutputPath(slug string) string {
	clean := strings.Trim(strings.TrimSpace(slug), "/")
	if clean == "" {
		return homeIndexFile
	}
	return path.Join(clean, homeIndexFile)
}

// tagOutputPath maps an already slugged tag onto its listing page location.
// Callers fold raw tags through content.TagSlug first.
func tagOutputPath(tagSlug string) string {
	clean := strings.Trim(strings.TrimSpace(tagSlug), "/")
	if clean == "" {
		return path.Join(tagsDir, homeIndexFile)
	}
	return path.Join(tagsDir, clean, homeIndexFile)
}

// tagsRootPath locates the page listing every tag.
func tagsRootPath() string {
	return path.Join(tagsDir, homeIndexFile)
}

// routeForOutput converts an output path into the site-relative route
// (my-post/index.html -> /my-post/).
func routeForOutput(output string) string {
	clean := strings.Trim(strings.TrimSpace(output), "/")
	if clean == "" || clean == homeIndexFile {
		return "/"
	}
	clean = strings.TrimSuffix(clean, homeIndexFile)
	clean = strings.Trim(clean, "/")
	if clean == "" {
		return "/"
	}
	return "/" + clean + "/"
}

// absoluteURL joins a route onto the configured base URL.
func absoluteURL(baseURL, route string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	route = strings.TrimSpace(route)
	if route == "" {
		route = "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if base == "" {
		return route
	}
	return base + route
}
