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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTicket indicates a Ticket failed validation.
	ErrInvalidTicket = errors.New("invalid ticket")

	// ErrInvalidNode indicates an EntityNode failed validation.
	ErrInvalidNode = errors.New("invalid entity node")

	// ErrEmptyTicketID indicates the TicketID field is empty.
	ErrEmptyTicketID = errors.New("ticket id cannot be empty")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrUnknownNodeKind indicates an EntityNode kind outside the known set.
	ErrUnknownNodeKind = errors.New("unknown node kind")

	// ErrEmptyTagName indicates a tag node without a name property.
	ErrEmptyTagName = errors.New("tag name cannot be empty")
)
