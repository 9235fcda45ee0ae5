package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestReadCandidates(t *testing.T) {
	t.Run("parses a candidate array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "candidates.json")
		content := `[
  {"title": "기준금리 동결", "url": "https://news.example.com/1", "source": "연합뉴스", "published_at": "2026-08-30 09:00:00"},
  {"title": "주요사항보고서", "url": "https://dart.fss.or.kr/report/1", "source": "DART", "summary": "유상증자 결정"}
]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		docs, err := readCandidates(path)
		require.NoError(t, err)
		require.Len(t, docs, 2)

		assert.Equal(t, "기준금리 동결", docs[0].Title)
		assert.Equal(t, "https://news.example.com/1", docs[0].URL)
		assert.NotEmpty(t, docs[0].ID)
		assert.True(t, docs[1].IsDisclosure())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readCandidates(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		_, err := readCandidates(path)
		assert.Error(t, err)
	})
}

func TestSetupLogger(t *testing.T) {
	newContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	t.Run("accepts known levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
			assert.NoError(t, setupLogger(newContext(level)), level)
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		assert.Error(t, setupLogger(newContext("verbose")))
	})
}
