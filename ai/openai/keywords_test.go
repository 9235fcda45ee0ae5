package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeywordList(t *testing.T) {
	keywords := parseKeywordList("반도체, 수출 규제, 삼성전자, 공급망", 10)
	assert.Equal(t, []string{"반도체", "수출 규제", "삼성전자", "공급망"}, keywords)
}

func TestParseKeywordListCapsAtMax(t *testing.T) {
	keywords := parseKeywordList("a, b, c, d, e", 3)
	assert.Equal(t, []string{"a", "b", "c"}, keywords)
}

func TestParseKeywordListSkipsEmptyItems(t *testing.T) {
	keywords := parseKeywordList("금리, , 환율,, ", 10)
	assert.Equal(t, []string{"금리", "환율"}, keywords)
}

func TestParseKeywordListEmptyInput(t *testing.T) {
	assert.Empty(t, parseKeywordList("", 10))
	assert.Empty(t, parseKeywordList("  ", 10))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "가나다", truncateRunes("가나다라마", 3))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "", truncateRunes("abc", 0))
}
