// Package session wraps the remote-call and topic-subscribe primitives of
// the game server connection and exposes the named per-player operations
// built on top of them.
package session

import (
	"context"
	"encoding/json"
	"fmt"
)

// ErrConnection reports that the transport is unavailable. The UI shows a
// blocked/connecting state; nothing in this package reconnects on its own.
var ErrConnection = fmt.Errorf("connection unavailable")

// ErrRejected reports that the server refused an operation. The attempted
// action is a no-op from the user's perspective.
var ErrRejected = fmt.Errorf("rejected by server")

// Handler receives the raw payload of one topic message. Handlers for a
// single topic are invoked in publish order; no ordering holds across
// topics or between topics and call responses.
type Handler func(data []byte)

// Unsubscribe tears down one subscription.
type Unsubscribe func() error

// Transport is the pair of primitives the session is built from: a
// request/response call and a topic subscription. Calls are never retried
// here; failures go back to the caller.
type Transport interface {
	Call(ctx context.Context, endpoint string, args []any) (json.RawMessage, error)
	Subscribe(topic string, h Handler) (Unsubscribe, error)
	Publish(topic string, payload any) error
}
