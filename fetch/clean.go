package fetch

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// allowedChars keeps alphanumerics, Hangul (jamo and syllables), basic
// punctuation and whitespace; everything else becomes a space.
var allowedChars = regexp.MustCompile(`[^a-zA-Z0-9ㄱ-ㅎ가-힣.?!,%\s]`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanText is the normalization pass applied to all free text before
// it leaves content extraction: entity decoding, residual tag stripping,
// character allowlisting, whitespace collapsing and lower-casing.
func CleanText(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = strings.ReplaceAll(text, string(rune(0xFFFD)), " ")
	text = stripTags(text)
	text = allowedChars.ReplaceAllString(text, " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// stripTags removes any residual markup, decoding entities along the way.
func stripTags(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			return b.String()
		}
		if tt == html.TextToken {
			b.WriteString(tokenizer.Token().Data)
			b.WriteByte(' ')
		}
	}
}
