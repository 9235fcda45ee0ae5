package core

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// IDFromURL generates a deterministic document ID from a source URL using
// BLAKE2b hashing. The same URL always yields the same ID, which is what
// makes storage upserts idempotent across pipeline retries.
func IDFromURL(url string) string {
	if url == "" {
		// An ID is still required so the record can land somewhere
		// observable; a random suffix keeps collisions out of the stores.
		buf := make([]byte, 16)
		_, _ = rand.Read(buf)
		return "empty_url_error_" + hex.EncodeToString(buf)
	}
	h, _ := blake2b.New(32, nil)
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))
}

// SourceDisclosure tags records coming from the regulatory-disclosure feed.
// Their title and summary already constitute the content, so they bypass
// the scraping chain and keyword extraction.
const SourceDisclosure = "DART"

// Document is the unit of work flowing through the pipeline. A collector
// creates it with the raw payload fields populated; each stage enriches it
// and records its verdict in Checked.
type Document struct {
	ID          string
	Title       string
	Content     string
	Summary     string
	URL         string
	Source      string
	PublishedAt string // ISO-8601 timestamp as delivered by the collector, or empty

	Keywords          []string
	Embedding         []float32
	KeywordEmbeddings [][]float32

	// Checked is the record's execution trace: one entry per stage verdict
	// plus reason codes on failure. Stages only ever write their own keys,
	// so the trace survives end to end for diagnostics.
	Checked map[string]string
}

// EnsureID assigns the deterministic ID if it is not set yet. The ID never
// changes once assigned.
func (d *Document) EnsureID() {
	if d.ID == "" {
		d.ID = IDFromURL(d.URL)
	}
}

// SetCheck records a verdict or reason code in the execution trace.
func (d *Document) SetCheck(key, value string) {
	if d.Checked == nil {
		d.Checked = make(map[string]string)
	}
	d.Checked[key] = value
}

// SetCheckBool records a boolean stage verdict.
func (d *Document) SetCheckBool(key string, v bool) {
	if v {
		d.SetCheck(key, "true")
	} else {
		d.SetCheck(key, "false")
	}
}

// Check returns the recorded value for a trace key.
func (d *Document) Check(key string) (string, bool) {
	v, ok := d.Checked[key]
	return v, ok
}

// CheckIsTrue reports whether a trace key holds a "true" verdict.
func (d *Document) CheckIsTrue(key string) bool {
	return d.Checked[key] == "true"
}

// IsDisclosure reports whether the record came from the disclosure feed.
func (d *Document) IsDisclosure() bool {
	return d.Source == SourceDisclosure
}
