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


package core

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
)

// MUS serializers for the wire format used by both the durable stores and
// the task queue payloads. Composed by hand from mus-go primitives; field
// order is the struct declaration order and must not change once records
// are persisted.
var (
	Float32SliceMUS = ord.NewSliceSer[float32](raw.Float32)
	float32Matrix   = ord.NewSliceSer[[]float32](Float32SliceMUS)
	stringSlice     = ord.NewSliceSer[string](ord.String)
	stringMap       = ord.NewMapSer[string, string](ord.String, ord.String)
)

// DocumentMUS serializes Document values.
var DocumentMUS documentSer

type documentSer struct{}

var _ mus.Serializer[Document] = DocumentMUS

func (documentSer) Marshal(d Document, bs []byte) (n int) {
	n = ord.String.Marshal(d.ID, bs)
	n += ord.String.Marshal(d.Title, bs[n:])
	n += ord.String.Marshal(d.Content, bs[n:])
	n += ord.String.Marshal(d.Summary, bs[n:])
	n += ord.String.Marshal(d.URL, bs[n:])
	n += ord.String.Marshal(d.Source, bs[n:])
	n += ord.String.Marshal(d.PublishedAt, bs[n:])
	n += stringSlice.Marshal(d.Keywords, bs[n:])
	n += Float32SliceMUS.Marshal(d.Embedding, bs[n:])
	n += float32Matrix.Marshal(d.KeywordEmbeddings, bs[n:])
	n += stringMap.Marshal(d.Checked, bs[n:])
	return n
}

func (documentSer) Unmarshal(bs []byte) (d Document, n int, err error) {
	var n1 int
	if d.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if d.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.Summary, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.URL, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.Source, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.PublishedAt, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.Keywords, n1, err = stringSlice.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.Embedding, n1, err = Float32SliceMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.KeywordEmbeddings, n1, err = float32Matrix.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.Checked, n1, err = stringMap.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (documentSer) Size(d Document) (size int) {
	size = ord.String.Size(d.ID)
	size += ord.String.Size(d.Title)
	size += ord.String.Size(d.Content)
	size += ord.String.Size(d.Summary)
	size += ord.String.Size(d.URL)
	size += ord.String.Size(d.Source)
	size += ord.String.Size(d.PublishedAt)
	size += stringSlice.Size(d.Keywords)
	size += Float32SliceMUS.Size(d.Embedding)
	size += float32Matrix.Size(d.KeywordEmbeddings)
	size += stringMap.Size(d.Checked)
	return size
}

func (documentSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 7; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if n1, err = stringSlice.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	if n1, err = Float32SliceMUS.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	if n1, err = float32Matrix.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	if n1, err = stringMap.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}
