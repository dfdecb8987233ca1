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

import "strconv"

// Operation is the operation code of a CommandMessage.
type Operation int

// Flex command operations.
const (
	SubscribeOperation              Operation = 0
	UnsubscribeOperation            Operation = 1
	PollOperation                   Operation = 2
	ClientSyncOperation             Operation = 4
	ClientPingOperation             Operation = 5
	ClusterRequestOperation         Operation = 7
	LoginOperation                  Operation = 8
	LogoutOperation                 Operation = 9
	SubscriptionInvalidateOperation Operation = 10
	MultiSubscribeOperation         Operation = 11
	DisconnectOperation             Operation = 12
	TriggerConnectOperation         Operation = 13
	UnknownOperation                Operation = 10000
)

var operationNames = map[Operation]string{
	SubscribeOperation:              "subscribe",
	UnsubscribeOperation:            "unsubscribe",
	PollOperation:                   "poll",
	ClientSyncOperation:             "client-sync",
	ClientPingOperation:             "client-ping",
	ClusterRequestOperation:         "cluster-request",
	LoginOperation:                  "login",
	LogoutOperation:                 "logout",
	SubscriptionInvalidateOperation: "subscription-invalidate",
	MultiSubscribeOperation:         "multi-subscribe",
	DisconnectOperation:             "disconnect",
	TriggerConnectOperation:         "trigger-connect",
	UnknownOperation:                "unknown",
}

// String returns a readable token for op.
func (op Operation) String() string {
	if s, ok := operationNames[op]; ok {
		return s
	}
	return "Operation(" + strconv.Itoa(int(op)) + ")"
}
