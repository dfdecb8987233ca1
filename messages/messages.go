/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package messages holds the Flex messaging classes every mapper knows about
// out of the box, and the default mappings between their remote and local
// class names.
package messages

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is implemented by every message class through AbstractMessage.
type Message interface {
	Abstract() *AbstractMessage
}

// AbstractMessage carries the fields shared by all Flex messages.
type AbstractMessage struct {
	ClientID    any            `amf:"clientId"`
	Destination string         `amf:"destination"`
	MessageID   string         `amf:"messageId"`
	Timestamp   int64          `amf:"timestamp"`
	TimeToLive  int64          `amf:"timeToLive"`
	Headers     map[string]any `amf:"headers"`
	Body        any            `amf:"body"`
}

// Abstract returns m itself.
func (m *AbstractMessage) Abstract() *AbstractMessage { return m }

// AsyncMessage is a message that may be correlated to another one.
type AsyncMessage struct {
	AbstractMessage
	CorrelationID string `amf:"correlationId"`
}

// RemotingMessage is a remote procedure call.
type RemotingMessage struct {
	AbstractMessage
	Source    string `amf:"source"`
	Operation string `amf:"operation"`
}

// CommandMessage is a control message sent by the Flex messaging framework.
type CommandMessage struct {
	AsyncMessage
	Operation Operation `amf:"operation"`
}

// AcknowledgeMessage is the successful response to a request.
type AcknowledgeMessage struct {
	AsyncMessage
}

// ErrorMessage is the failure response to a request.
type ErrorMessage struct {
	AcknowledgeMessage
	FaultCode    string `amf:"faultCode"`
	FaultString  string `amf:"faultString"`
	FaultDetail  string `amf:"faultDetail"`
	RootCause    any    `amf:"rootCause"`
	ExtendedData any    `amf:"extendedData"`
}

// AsyncMessageExt is the short-name (DSA) form of AsyncMessage.
type AsyncMessageExt struct {
	AsyncMessage
}

// CommandMessageExt is the short-name (DSC) form of CommandMessage.
type CommandMessageExt struct {
	CommandMessage
}

// AcknowledgeMessageExt is the short-name (DSK) form of AcknowledgeMessage.
type AcknowledgeMessageExt struct {
	AcknowledgeMessage
}

// now returns the current time in milliseconds, as Flex expects.
func now() int64 { return time.Now().UnixMilli() }

// NewAcknowledgeMessage returns an acknowledgement of req. req may be nil.
func NewAcknowledgeMessage(req Message) *AcknowledgeMessage {
	ack := &AcknowledgeMessage{}
	ack.MessageID = uuid.NewString()
	ack.Timestamp = now()
	ack.Headers = map[string]any{}
	ack.ClientID = uuid.NewString()
	if req != nil {
		in := req.Abstract()
		ack.CorrelationID = in.MessageID
		if in.ClientID != nil && in.ClientID != "" {
			ack.ClientID = in.ClientID
		}
	}
	return ack
}

// NewErrorMessage returns a fault response to req describing err. req may be nil.
func NewErrorMessage(req Message, err error) *ErrorMessage {
	msg := &ErrorMessage{AcknowledgeMessage: *NewAcknowledgeMessage(req)}
	if err == nil {
		return msg
	}
	msg.FaultCode = fmt.Sprintf("%T", err)
	msg.FaultString = err.Error()

	var chain []string
	root := err
	for e := err; e != nil; e = errors.Unwrap(e) {
		chain = append(chain, e.Error())
		root = e
	}
	msg.FaultDetail = strings.Join(chain, "\n")
	if root != err {
		msg.RootCause = root.Error()
	}
	return msg
}
