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

package messages

import "github.com/mrpin/mrpin-rocketamf/apis"

// Local class names of the built-in messages.
const (
	AbstractMessageClass       = "messages.AbstractMessage"
	AsyncMessageClass          = "messages.AsyncMessage"
	AsyncMessageExtClass       = "messages.AsyncMessageExt"
	RemotingMessageClass       = "messages.RemotingMessage"
	CommandMessageClass        = "messages.CommandMessage"
	CommandMessageExtClass     = "messages.CommandMessageExt"
	AcknowledgeMessageClass    = "messages.AcknowledgeMessage"
	AcknowledgeMessageExtClass = "messages.AcknowledgeMessageExt"
	ErrorMessageClass          = "messages.ErrorMessage"
)

// Classes returns the catalog entries of the built-in messages.
func Classes() []apis.Class {
	return []apis.Class{
		apis.ClassOf[AbstractMessage](AbstractMessageClass),
		apis.ClassOf[AsyncMessage](AsyncMessageClass),
		apis.ClassOf[AsyncMessageExt](AsyncMessageExtClass),
		apis.ClassOf[RemotingMessage](RemotingMessageClass),
		apis.ClassOf[CommandMessage](CommandMessageClass),
		apis.ClassOf[CommandMessageExt](CommandMessageExtClass),
		apis.ClassOf[AcknowledgeMessage](AcknowledgeMessageClass),
		apis.ClassOf[AcknowledgeMessageExt](AcknowledgeMessageExtClass),
		apis.ClassOf[ErrorMessage](ErrorMessageClass),
	}
}

// Mappings returns the default remote to local class mappings.
func Mappings() []apis.Mapping {
	return []apis.Mapping{
		{Remote: "flex.messaging.messages.AbstractMessage", Local: AbstractMessageClass},
		{Remote: "flex.messaging.messages.RemotingMessage", Local: RemotingMessageClass},
		{Remote: "flex.messaging.messages.AsyncMessage", Local: AsyncMessageClass},
		{Remote: "DSA", Local: AsyncMessageExtClass},
		{Remote: "flex.messaging.messages.CommandMessage", Local: CommandMessageClass},
		{Remote: "DSC", Local: CommandMessageExtClass},
		{Remote: "flex.messaging.messages.AcknowledgeMessage", Local: AcknowledgeMessageClass},
		{Remote: "DSK", Local: AcknowledgeMessageExtClass},
		{Remote: "flex.messaging.messages.ErrorMessage", Local: ErrorMessageClass},
	}
}
