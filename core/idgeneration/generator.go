// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package idgeneration

import "fmt"

// DefaultSpan is the width of an id range handed to one agent. A finite run
// cannot realistically exhaust it.
const DefaultSpan = uint64(10_000_000)

// Allocator hands out disjoint order-id ranges, one per registered agent, so
// that ids are globally unique without any runtime coordination. No mutex
// required, registration is deterministic and sequential.
type Allocator struct {
	next uint64
	span uint64
}

// NewAllocator creates an allocator carving ranges of the given span.
// A zero span falls back to DefaultSpan.
func NewAllocator(span uint64) *Allocator {
	if span == 0 {
		span = DefaultSpan
	}
	return &Allocator{
		// id zero is reserved for anonymised order ids
		next: 1,
		span: span,
	}
}

// NextRange carves the next disjoint id range off the allocator.
func (a *Allocator) NextRange() *Sequence {
	seq := &Sequence{
		next: a.next,
		end:  a.next + a.span,
	}
	a.next += a.span
	return seq
}

// Sequence is a private, monotonically increasing id counter within one
// allocated range.
type Sequence struct {
	next uint64
	end  uint64
}

// NextID returns the next unused id of the range. Exhausting the range is a
// programming error.
func (s *Sequence) NextID() uint64 {
	if s == nil {
		panic("id sequence is not initialised")
	}
	if s.next >= s.end {
		panic(fmt.Sprintf("id range exhausted at %d", s.end))
	}
	id := s.next
	s.next++
	return id
}
