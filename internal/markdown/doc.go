// Package markdown turns raw content files into posts: it splits and
// validates the frontmatter block, discovers files beneath the content root,
// and provides the default goldmark-backed Markdown converter.
package markdown
