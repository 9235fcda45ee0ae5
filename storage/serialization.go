// Copyright 2026 Seorim Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"

	"github.com/seorim/newsgate/core"
)

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, core.DocumentMUS.Size(*doc))
	core.DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := core.DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// vectorEntry is what the vector index persists per document: the
// (normalized) embedding plus its metadata snapshot.
type vectorEntry struct {
	Vector []float32
	Meta   VectorMeta
}

var keywordsSer = ord.NewSliceSer[string](ord.String)

var vectorEntryMUS vectorEntrySer

type vectorEntrySer struct{}

var _ mus.Serializer[vectorEntry] = vectorEntryMUS

func (vectorEntrySer) Marshal(e vectorEntry, bs []byte) (n int) {
	n = core.Float32SliceMUS.Marshal(e.Vector, bs)
	n += ord.String.Marshal(e.Meta.URL, bs[n:])
	n += ord.String.Marshal(e.Meta.Title, bs[n:])
	n += ord.String.Marshal(e.Meta.PublishedAt, bs[n:])
	n += ord.String.Marshal(e.Meta.Source, bs[n:])
	n += ord.String.Marshal(e.Meta.Summary, bs[n:])
	n += ord.String.Marshal(e.Meta.Content, bs[n:])
	n += keywordsSer.Marshal(e.Meta.Keywords, bs[n:])
	return n
}

func (vectorEntrySer) Unmarshal(bs []byte) (e vectorEntry, n int, err error) {
	var n1 int
	if e.Vector, n, err = core.Float32SliceMUS.Unmarshal(bs); err != nil {
		return
	}
	if e.Meta.URL, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if e.Meta.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if e.Meta.PublishedAt, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if e.Meta.Source, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if e.Meta.Summary, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if e.Meta.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if e.Meta.Keywords, n1, err = keywordsSer.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (vectorEntrySer) Size(e vectorEntry) (size int) {
	size = core.Float32SliceMUS.Size(e.Vector)
	size += ord.String.Size(e.Meta.URL)
	size += ord.String.Size(e.Meta.Title)
	size += ord.String.Size(e.Meta.PublishedAt)
	size += ord.String.Size(e.Meta.Source)
	size += ord.String.Size(e.Meta.Summary)
	size += ord.String.Size(e.Meta.Content)
	size += keywordsSer.Size(e.Meta.Keywords)
	return size
}

func (vectorEntrySer) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = core.Float32SliceMUS.Skip(bs); err != nil {
		return
	}
	for i := 0; i < 6; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if n1, err = keywordsSer.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

// MarshalVectorEntry serializes a vector-index entry to bytes.
func MarshalVectorEntry(vector []float32, meta VectorMeta) []byte {
	e := vectorEntry{Vector: vector, Meta: meta}
	buf := make([]byte, vectorEntryMUS.Size(e))
	vectorEntryMUS.Marshal(e, buf)
	return buf
}

// UnmarshalVectorEntry deserializes a vector-index entry from bytes.
func UnmarshalVectorEntry(data []byte) ([]float32, VectorMeta, error) {
	e, _, err := vectorEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, VectorMeta{}, err
	}
	return e.Vector, e.Meta, nil
}
