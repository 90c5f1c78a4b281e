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


package storage

import (
	"github.com/mus-format/mus-go/varint"
	"github.com/transcout/transcout/core"
)

// MarshalTicket serializes a Ticket to bytes.
func MarshalTicket(ticket *core.Ticket) []byte {
	buf := make([]byte, core.TicketMUS.Size(*ticket))
	core.TicketMUS.Marshal(*ticket, buf)
	return buf
}

// UnmarshalTicket deserializes a Ticket from bytes.
func UnmarshalTicket(data []byte) (*core.Ticket, error) {
	ticket, _, err := core.TicketMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// MarshalNode serializes an EntityNode to bytes.
func MarshalNode(node *core.EntityNode) []byte {
	buf := make([]byte, core.EntityNodeMUS.Size(*node))
	core.EntityNodeMUS.Marshal(*node, buf)
	return buf
}

// UnmarshalNode deserializes an EntityNode from bytes.
func UnmarshalNode(data []byte) (*core.EntityNode, error) {
	node, _, err := core.EntityNodeMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// MarshalDimension serializes the corpus embedding dimension.
func MarshalDimension(dim int) []byte {
	buf := make([]byte, varint.Int.Size(dim))
	varint.Int.Marshal(dim, buf)
	return buf
}

// UnmarshalDimension deserializes the corpus embedding dimension.
func UnmarshalDimension(data []byte) (int, error) {
	dim, _, err := varint.Int.Unmarshal(data)
	return dim, err
}
