// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package events delivers the events of committed transactions to
// observers. Observers subscribe to a single event name or to all events.
package events

import (
	evbus "github.com/asaskevich/EventBus"
	"github.com/lumen-chain/lumen/go/lumen"
	"github.com/lumen-chain/lumen/go/metrics"
)

// All is the name under which observers receive every event.
const All = "*"

const topicPrefix = "lumen.event:"

// Handler observes published events.
type Handler func(lumen.Event)

// Bus fans out events of committed transactions. Events are delivered in
// emission order, first to the observers of the event name and then to the
// observers of All.
type Bus struct {
	bus evbus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: evbus.New()}
}

func topic(name string) string {
	return topicPrefix + name
}

// Subscribe registers a handler invoked synchronously during Publish.
func (b *Bus) Subscribe(name string, handler Handler) error {
	return b.bus.Subscribe(topic(name), handler)
}

// SubscribeAsync registers a handler running in its own goroutine. Events
// reach the handler one at a time and in order. Use WaitAsync to wait for
// pending deliveries.
func (b *Bus) SubscribeAsync(name string, handler Handler) error {
	return b.bus.SubscribeAsync(topic(name), handler, true)
}

func (b *Bus) Unsubscribe(name string, handler Handler) error {
	return b.bus.Unsubscribe(topic(name), handler)
}

// HasSubscribers reports whether any handler observes the given name.
func (b *Bus) HasSubscribers(name string) bool {
	return b.bus.HasCallback(topic(name))
}

// Publish delivers the events of a receipt. Receipts of failed
// transactions carry no effects and are ignored. Callers publish only after
// the state of the transaction was committed.
func (b *Bus) Publish(receipt lumen.Receipt) {
	if !receipt.Success {
		return
	}
	for _, event := range receipt.Events {
		event.Args = append(lumen.Data(nil), event.Args...)
		b.bus.Publish(topic(event.Name), event)
		b.bus.Publish(topic(All), event)
		metrics.RecordPublishedEvent(event.Name)
	}
}

// WaitAsync blocks until all asynchronous handlers are done.
func (b *Bus) WaitAsync() {
	b.bus.WaitAsync()
}
