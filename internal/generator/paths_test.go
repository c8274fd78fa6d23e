package generator

import "testing"

func TestPostOutputPath(t *testing.T) {
	cases := []struct {
		slug string
		want string
	}{
		{"my-post", "my-post/index.html"},
		{"posts/2025/my-note", "posts/2025/my-note/index.html"},
		{"/trimmed/", "trimmed/index.html"},
		{"", "index.html"},
	}
	for _, tc := range cases {
		if got := postOutputPath(tc.slug); got != tc.want {
			t.Fatalf("postOutputPath(%q) = %q, want %q", tc.slug, got, tc.want)
		}
	}
}

func TestRouteForOutput(t *testing.T) {
	cases := []struct {
		output string
		want   string
	}{
		{"my-post/index.html", "/my-post/"},
		{"index.html", "/"},
		{"tags/golang/index.html", "/tags/golang/"},
		{"", "/"},
	}
	for _, tc := range cases {
		if got := routeForOutput(tc.output); got != tc.want {
			t.Fatalf("routeForOutput(%q) = %q, want %q", tc.output, got, tc.want)
		}
	}
}

func TestTagOutputPath(t *testing.T) {
	if got := tagOutputPath("golang"); got != "tags/golang/index.html" {
		t.Fatalf("unexpected tag output path %q", got)
	}
	if got := tagsRootPath(); got != "tags/index.html" {
		t.Fatalf("unexpected tags root path %q", got)
	}
}

func TestAbsoluteURL(t *testing.T) {
	cases := []struct {
		base  string
		route string
		want  string
	}{
		{"https://example.com", "/post/", "https://example.com/post/"},
		{"https://example.com/", "/post/", "https://example.com/post/"},
		{"https://example.com", "post/", "https://example.com/post/"},
		{"", "/post/", "/post/"},
		{"https://example.com", "", "https://example.com/"},
	}
	for _, tc := range cases {
		if got := absoluteURL(tc.base, tc.route); got != tc.want {
			t.Fatalf("absoluteURL(%q, %q) = %q, want %q", tc.base, tc.route, got, tc.want)
		}
	}
}
