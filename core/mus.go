// Copyright 2025 Transcout
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
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
)

// MUS serializers for the persisted record shapes. Written directly
// against the mus-go primitive serializers; the layout is
// field-sequential with no framing, matching the storage key's record
// kind.

var (
	embeddingMUS = ord.NewSliceSer[float32](raw.Float32)
	propsMUS     = ord.NewMapSer[string, string](ord.String, ord.String)
)

// TicketMUS serializes Ticket records.
var TicketMUS = ticketMUS{}

type ticketMUS struct{}

func (ticketMUS) Marshal(t Ticket, bs []byte) (n int) {
	n = ord.String.Marshal(t.TicketID, bs)
	n += ord.String.Marshal(t.Title, bs[n:])
	n += ord.String.Marshal(t.Type, bs[n:])
	n += embeddingMUS.Marshal(t.TitleEmbedding, bs[n:])
	return
}

func (ticketMUS) Unmarshal(bs []byte) (t Ticket, n int, err error) {
	var n1 int
	t.TicketID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	t.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	t.Type, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	t.TitleEmbedding, n1, err = embeddingMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (ticketMUS) Size(t Ticket) (size int) {
	size = ord.String.Size(t.TicketID)
	size += ord.String.Size(t.Title)
	size += ord.String.Size(t.Type)
	size += embeddingMUS.Size(t.TitleEmbedding)
	return
}

func (ticketMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = embeddingMUS.Skip(bs[n:])
	n += n1
	return
}

// EntityNodeMUS serializes satellite EntityNode records.
var EntityNodeMUS = entityNodeMUS{}

type entityNodeMUS struct{}

func (entityNodeMUS) Marshal(e EntityNode, bs []byte) (n int) {
	n = ord.String.Marshal(e.TicketID, bs)
	n += ord.String.Marshal(e.Kind, bs[n:])
	n += propsMUS.Marshal(e.Props, bs[n:])
	return
}

func (entityNodeMUS) Unmarshal(bs []byte) (e EntityNode, n int, err error) {
	var n1 int
	e.TicketID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	e.Kind, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Props, n1, err = propsMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (entityNodeMUS) Size(e EntityNode) (size int) {
	size = ord.String.Size(e.TicketID)
	size += ord.String.Size(e.Kind)
	size += propsMUS.Size(e.Props)
	return
}

func (entityNodeMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = propsMUS.Skip(bs[n:])
	n += n1
	return
}
