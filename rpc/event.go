// Package rpc connects to a chain node over JSON-RPC websockets and
// republishes its finalized headers as tagged events for in-process
// consumers.
package rpc

import (
	"time"

	"github.com/availproject/avail-crawler/block"
)

// Event is a tagged notification published on the node event stream.
// Consumers type-switch on the variant and ignore those they do not handle.
type Event interface {
	isEvent()
}

// HeaderUpdate announces a newly finalized block header.
type HeaderUpdate struct {
	Header *block.RawHeader
	// ReceivedAt is the local receipt time of the header, used to pace
	// sampling behind block production.
	ReceivedAt time.Time
}

func (HeaderUpdate) isEvent() {}

// ConnectedHost announces a (re)connection to a chain node.
type ConnectedHost struct {
	Host string
}

func (ConnectedHost) isEvent() {}
