package content

import (
	"testing"
	"time"
)

func TestPublishable(t *testing.T) {
	buildTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		post *Post
		want bool
	}{
		{"past date", &Post{Date: buildTime.AddDate(0, -1, 0)}, true},
		{"same instant", &Post{Date: buildTime}, true},
		{"future date", &Post{Date: buildTime.AddDate(1, 0, 0)}, false},
		{"draft", &Post{Date: buildTime.AddDate(0, -1, 0), Draft: true}, false},
		{"zero date", &Post{}, false},
		{"nil post", nil, false},
	}

	for _, tc := range cases {
		if got := tc.post.Publishable(buildTime); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestHasTag(t *testing.T) {
	post := &Post{Tags: []string{"Go", "static-sites"}}

	if !post.HasTag("go") {
		t.Fatal("expected case-insensitive tag match")
	}
	if !post.HasTag(" static-sites ") {
		t.Fatal("expected trimmed tag match")
	}
	if post.HasTag("rust") {
		t.Fatal("did not expect match for absent tag")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "go", "", "Releases", "releases"})
	if len(got) != 2 {
		t.Fatalf("expected 2 tags, got %#v", got)
	}
	if got[0] != "Go" || got[1] != "Releases" {
		t.Fatalf("expected declared order preserved, got %#v", got)
	}

	if NormalizeTags(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}
