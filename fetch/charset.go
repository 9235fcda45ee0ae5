package fetch

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
)

// decodeHTML converts raw page bytes to a UTF-8 string. Korean outlets
// routinely mislabel EUC-KR pages as UTF-8, so the declared encoding is
// only one candidate: each candidate is tried in turn and a decode that
// produces replacement characters is rejected in favor of the next one.
// Candidate order matches observed breakage: utf-8, the header/meta
// declared encoding, euc-kr (which also covers cp949 pages), latin-1.
func decodeHTML(body []byte, contentType string) string {
	candidates := []encoding.Encoding{unicode.UTF8}
	if declared, _, _ := charset.DetermineEncoding(body, contentType); declared != nil {
		candidates = append(candidates, declared)
	}
	candidates = append(candidates, korean.EUCKR, charmap.ISO8859_1)

	for _, enc := range candidates {
		decoded, err := enc.NewDecoder().Bytes(body)
		if err != nil {
			continue
		}
		text := string(decoded)
		if !strings.ContainsRune(text, utf8.RuneError) {
			return text
		}
	}

	// Every candidate produced replacement characters; fall back to a
	// lossy utf-8 interpretation rather than dropping the page.
	return strings.ToValidUTF8(string(body), " ")
}
