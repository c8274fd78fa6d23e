// Package index derives ordered listing views over the content store. The
// views are recomputed in full on every build; nothing here is cached or
// mutated incrementally.
package index

import (
	"iter"
	"sort"
	"strings"

	"github.com/goliatone/go-press/internal/content"
)

// ByDate returns posts sorted by publication date descending, ties broken by
// identifier ascending. The total order keeps rebuilt output byte-identical.
func ByDate(posts iter.Seq[*content.Post]) []*content.Post {
	var out []*content.Post
	for post := range posts {
		if post == nil {
			continue
		}
		out = append(out, post)
	}
	sortPosts(out)
	return out
}

// ByTag groups posts by tag. Keys are lowercased tags; each group carries the
// same date-descending order as ByDate.
func ByTag(posts iter.Seq[*content.Post]) map[string][]*content.Post {
	grouped := map[string][]*content.Post{}
	for post := range posts {
		if post == nil {
			continue
		}
		for _, tag := range post.Tags {
			key := strings.ToLower(strings.TrimSpace(tag))
			if key == "" {
				continue
			}
			grouped[key] = append(grouped[key], post)
		}
	}
	for _, group := range grouped {
		sortPosts(group)
	}
	return grouped
}

// Tags returns the sorted tag keys of a ByTag result.
func Tags(grouped map[string][]*content.Post) []string {
	out := make([]string, 0, len(grouped))
	for tag := range grouped {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func sortPosts(posts []*content.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Identifier < posts[j].Identifier
		}
		return posts[i].Date.After(posts[j].Date)
	})
}
