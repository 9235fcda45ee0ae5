package openai

// truncateRunes caps text at n runes. Byte-level truncation would split
// multi-byte Hangul sequences, so limits are applied per rune.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
