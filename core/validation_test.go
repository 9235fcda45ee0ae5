package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	doc := &Document{URL: "https://news.example.com/a"}
	doc.EnsureID()
	require.NoError(t, doc.Validate())

	noURL := &Document{ID: "abc"}
	err := noURL.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.ErrorIs(t, err, ErrMissingURL)

	noID := &Document{URL: "https://news.example.com/a"}
	err = noID.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingID)
}
