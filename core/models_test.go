package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromURLDeterministic(t *testing.T) {
	url := "https://news.example.com/articles/12345"

	id1 := IDFromURL(url)
	id2 := IDFromURL(url)

	assert.Equal(t, id1, id2, "same URL must yield the same ID")
	assert.Len(t, id1, 64, "ID should be a 256-bit hex digest")
}

func TestIDFromURLDistinctURLs(t *testing.T) {
	id1 := IDFromURL("https://news.example.com/a")
	id2 := IDFromURL("https://news.example.com/b")

	assert.NotEqual(t, id1, id2)
}

func TestIDFromURLEmpty(t *testing.T) {
	id1 := IDFromURL("")
	id2 := IDFromURL("")

	assert.True(t, strings.HasPrefix(id1, "empty_url_error_"))
	assert.NotEqual(t, id1, id2, "empty URLs must not collide")
}

func TestEnsureIDAssignsOnce(t *testing.T) {
	doc := &Document{URL: "https://news.example.com/a"}

	doc.EnsureID()
	first := doc.ID
	require.NotEmpty(t, first)

	doc.EnsureID()
	assert.Equal(t, first, doc.ID, "ID must never change once assigned")
}

func TestCheckedHelpers(t *testing.T) {
	doc := &Document{}

	doc.SetCheckBool("initial_checks", true)
	doc.SetCheck("initial_checks_reason", "")
	doc.SetCheckBool("categorization", false)

	assert.True(t, doc.CheckIsTrue("initial_checks"))
	assert.False(t, doc.CheckIsTrue("categorization"))
	assert.False(t, doc.CheckIsTrue("never_set"))

	v, ok := doc.Check("categorization")
	require.True(t, ok)
	assert.Equal(t, "false", v)

	_, ok = doc.Check("never_set")
	assert.False(t, ok)
}

func TestIsDisclosure(t *testing.T) {
	assert.True(t, (&Document{Source: SourceDisclosure}).IsDisclosure())
	assert.False(t, (&Document{Source: "RSS"}).IsDisclosure())
}

func TestParseStage(t *testing.T) {
	for _, st := range Stages {
		parsed, err := ParseStage(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, parsed)
	}

	_, err := ParseStage("stage7_profit")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStage)
}

func TestOutcomeConstructors(t *testing.T) {
	adv := Advance(StageContentExtraction)
	assert.Equal(t, ActionAdvance, adv.Kind)
	assert.Equal(t, StageContentExtraction, adv.Next)

	drop := Drop("INSUFFICIENT_CONTENT_LENGTH")
	assert.Equal(t, ActionDrop, drop.Kind)
	assert.Equal(t, "INSUFFICIENT_CONTENT_LENGTH", drop.Reason)

	bl := Blacklist("duplicate_content_similarity")
	assert.Equal(t, ActionBlacklist, bl.Kind)
	assert.Equal(t, "duplicate_content_similarity", bl.Reason)

	done := Complete()
	assert.Equal(t, ActionComplete, done.Kind)

	retry := Retry(assert.AnError)
	assert.Equal(t, ActionRetry, retry.Kind)
	assert.Equal(t, assert.AnError, retry.Err)
}

func TestRetryableClassification(t *testing.T) {
	err := Retryable(assert.AnError)
	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, assert.AnError)

	assert.False(t, IsRetryable(assert.AnError))
	assert.Nil(t, Retryable(nil))
}
