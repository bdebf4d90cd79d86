// Copyright 2025 Poiesic Systems
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
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/jobwire/core"
)

// CountCache is the cached total posting count with its last refresh time.
type CountCache struct {
	Total       int64
	RefreshedAt int64 // epoch seconds
}

// Hand-written MUS serializers for the stored types. The layouts are flat
// field sequences; any layout change requires reindexing the store.
var (
	IDMUS         = idMUS{}
	PostingMUS    = postingMUS{}
	TagMUS        = tagMUS{}
	CountCacheMUS = countCacheMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id core.ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (core.ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return core.ID(v), n, err
}

func (idMUS) Size(id core.ID) int {
	return varint.Uint64.Size(uint64(id))
}

type postingMUS struct{}

func (postingMUS) Marshal(p core.Posting, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(p.Id), bs)
	n += ord.String.Marshal(p.GUID, bs[n:])
	n += ord.String.Marshal(p.Source, bs[n:])
	n += ord.String.Marshal(p.Title, bs[n:])
	n += ord.String.Marshal(p.Company, bs[n:])
	n += ord.String.Marshal(p.Summary, bs[n:])
	n += ord.String.Marshal(p.BodyHTML, bs[n:])
	n += ord.String.Marshal(p.URL, bs[n:])
	n += varint.Int64.Marshal(p.PublishedAt, bs[n:])
	n += ord.String.Marshal(p.Slug, bs[n:])
	n += ord.String.Marshal(p.TagLine, bs[n:])
	n += varint.Int64.Marshal(p.InsertedAt, bs[n:])
	return n
}

func (postingMUS) Unmarshal(bs []byte) (p core.Posting, n int, err error) {
	var (
		n1 int
		id uint64
	)
	if id, n1, err = varint.Uint64.Unmarshal(bs); err != nil {
		return p, n + n1, err
	}
	p.Id = core.ID(id)
	n += n1
	if p.GUID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Source, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Company, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Summary, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.BodyHTML, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.URL, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.PublishedAt, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Slug, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.TagLine, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.InsertedAt, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	return p, n, nil
}

func (postingMUS) Size(p core.Posting) (n int) {
	n = varint.Uint64.Size(uint64(p.Id))
	n += ord.String.Size(p.GUID)
	n += ord.String.Size(p.Source)
	n += ord.String.Size(p.Title)
	n += ord.String.Size(p.Company)
	n += ord.String.Size(p.Summary)
	n += ord.String.Size(p.BodyHTML)
	n += ord.String.Size(p.URL)
	n += varint.Int64.Size(p.PublishedAt)
	n += ord.String.Size(p.Slug)
	n += ord.String.Size(p.TagLine)
	n += varint.Int64.Size(p.InsertedAt)
	return n
}

type tagMUS struct{}

func (tagMUS) Marshal(t core.Tag, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(t.Id), bs)
	n += ord.String.Marshal(t.Name, bs[n:])
	n += ord.String.Marshal(t.Slug, bs[n:])
	n += varint.Int64.Marshal(t.InsertedAt, bs[n:])
	return n
}

func (tagMUS) Unmarshal(bs []byte) (t core.Tag, n int, err error) {
	var (
		n1 int
		id uint64
	)
	if id, n1, err = varint.Uint64.Unmarshal(bs); err != nil {
		return t, n + n1, err
	}
	t.Id = core.ID(id)
	n += n1
	if t.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	if t.Slug, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	if t.InsertedAt, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	return t, n, nil
}

func (tagMUS) Size(t core.Tag) (n int) {
	n = varint.Uint64.Size(uint64(t.Id))
	n += ord.String.Size(t.Name)
	n += ord.String.Size(t.Slug)
	n += varint.Int64.Size(t.InsertedAt)
	return n
}

type countCacheMUS struct{}

func (countCacheMUS) Marshal(c CountCache, bs []byte) (n int) {
	n = varint.Int64.Marshal(c.Total, bs)
	n += varint.Int64.Marshal(c.RefreshedAt, bs[n:])
	return n
}

func (countCacheMUS) Unmarshal(bs []byte) (c CountCache, n int, err error) {
	var n1 int
	if c.Total, n1, err = varint.Int64.Unmarshal(bs); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.RefreshedAt, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	return c, n, nil
}

func (countCacheMUS) Size(c CountCache) (n int) {
	n = varint.Int64.Size(c.Total)
	n += varint.Int64.Size(c.RefreshedAt)
	return n
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := IDMUS.Unmarshal(data)
	return id, err
}

// MarshalPosting serializes a Posting to bytes.
func MarshalPosting(p *core.Posting) []byte {
	buf := make([]byte, PostingMUS.Size(*p))
	PostingMUS.Marshal(*p, buf)
	return buf
}

// UnmarshalPosting deserializes a Posting from bytes.
func UnmarshalPosting(data []byte) (*core.Posting, error) {
	p, _, err := PostingMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarshalTag serializes a Tag to bytes.
func MarshalTag(t *core.Tag) []byte {
	buf := make([]byte, TagMUS.Size(*t))
	TagMUS.Marshal(*t, buf)
	return buf
}

// UnmarshalTag deserializes a Tag from bytes.
func UnmarshalTag(data []byte) (*core.Tag, error) {
	t, _, err := TagMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MarshalCountCache serializes a CountCache to bytes.
func MarshalCountCache(c *CountCache) []byte {
	buf := make([]byte, CountCacheMUS.Size(*c))
	CountCacheMUS.Marshal(*c, buf)
	return buf
}

// UnmarshalCountCache deserializes a CountCache from bytes.
func UnmarshalCountCache(data []byte) (*CountCache, error) {
	c, _, err := CountCacheMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
