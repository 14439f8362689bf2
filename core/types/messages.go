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

package types

// MessageType discriminates the intents an agent can emit in one turn.
type MessageType int8

const (
	MessageTypeUnspecified MessageType = iota
	// MessageTypeOrder submits a new limit order.
	MessageTypeOrder
	// MessageTypeCancel removes a previously submitted resting order.
	MessageTypeCancel
	// MessageTypeConversion requests an instrument conversion.
	MessageTypeConversion
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeOrder:
		return "ORDER"
	case MessageTypeCancel:
		return "REMOVE"
	case MessageTypeConversion:
		return "CONVERSION"
	}
	return "UNSPECIFIED"
}

// Message is a single agent intent; exactly one payload field is set,
// discriminated by Type.
type Message struct {
	Type       MessageType
	Order      *Order
	CancelID   uint64
	Conversion *ConversionRequest
}

// NewOrderMessage wraps an order intent.
func NewOrderMessage(o *Order) Message {
	return Message{Type: MessageTypeOrder, Order: o}
}

// NewCancelMessage wraps a cancellation intent for the given order id.
func NewCancelMessage(id uint64) Message {
	return Message{Type: MessageTypeCancel, CancelID: id}
}

// NewConversionMessage wraps a conversion request.
func NewConversionMessage(req *ConversionRequest) Message {
	return Message{Type: MessageTypeConversion, Conversion: req}
}

// ConversionRequest asks the conversion collaborator to turn quantity units
// of one instrument into another.
type ConversionRequest struct {
	FromTicker string
	ToTicker   string
	Quantity   uint64
}

// ConversionResult reports the outcome of a conversion request back to the
// requesting agent.
type ConversionResult struct {
	Request  ConversionRequest
	Accepted bool
}
