package usecase

import (
	"regexp"
	"strings"

	"linkedin-autoposter/domain/model"
)

const (
	excerptWordLimit = 450
	// CommentaryLimit is the LinkedIn commentary length in characters.
	CommentaryLimit = 3000
)

var blankLineRuns = regexp.MustCompile(`\n{3,}`)

// PostComposer renders post text from the operator template.
type PostComposer struct{}

func NewPostComposer() *PostComposer { return &PostComposer{} }

func (c *PostComposer) Render(template string, item model.ContentItem) string {
	if strings.TrimSpace(template) == "" {
		template = model.DefaultPostTemplate
	}
	excerpt := c.Excerpt(item)
	r := strings.NewReplacer(
		"{title}", item.Title,
		"{excerpt}", excerpt,
		"{author}", item.Author,
		"{url}", item.Permalink,
	)
	text := strings.ReplaceAll(r.Replace(template), "\r\n", "\n")
	text = strings.TrimSpace(blankLineRuns.ReplaceAllString(text, "\n\n"))
	if text == "" {
		text = item.Title + "\n\n" + excerpt
	}
	return limitRunes(text, CommentaryLimit)
}

// Excerpt prefers the explicit excerpt, then the trimmed plain content, then the title.
func (c *PostComposer) Excerpt(item model.ContentItem) string {
	if e := strings.TrimSpace(item.Excerpt); e != "" {
		return e
	}
	if plain := PlainText(item.Content); plain != "" {
		return TrimWords(plain, excerptWordLimit)
	}
	return item.Title
}

func limitRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
