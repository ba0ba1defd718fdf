package usecase

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var shortcodePattern = regexp.MustCompile(`\[/?[A-Za-z][\w-]*[^\]]*\]`)

// PlainText strips shortcodes and markup and collapses whitespace.
func PlainText(content string) string {
	content = shortcodePattern.ReplaceAllString(content, " ")
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(content))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			if isInvisible(z) {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			if isInvisible(z) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isInvisible(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	a := atom.Lookup(name)
	return a == atom.Script || a == atom.Style
}

// FirstImageSrc returns the src of the first <img> in content.
func FirstImageSrc(content string) string {
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return ""
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if atom.Lookup(name) != atom.Img {
			continue
		}
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			if string(key) == "src" && len(val) > 0 {
				return string(val)
			}
		}
	}
}

// TrimWords keeps the first n words, appending "..." only when words were dropped.
func TrimWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "..."
}
