package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Conn is the NATS-backed Transport: calls map onto request/reply on the
// endpoint subject, topics onto plain subscriptions.
type Conn struct {
	nc      *nats.Conn
	timeout time.Duration
}

// Dial connects to the NATS server at url. Calls issued through the
// returned Conn time out after callTimeout unless their context already
// carries a deadline.
func Dial(url string, callTimeout time.Duration) (*Conn, error) {
	opts := []nats.Option{
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to %s: %v", ErrConnection, url, err)
	}
	return &Conn{nc: nc, timeout: callTimeout}, nil
}

// NewConn wraps an existing NATS connection.
func NewConn(nc *nats.Conn, callTimeout time.Duration) *Conn {
	return &Conn{nc: nc, timeout: callTimeout}
}

func (c *Conn) Call(ctx context.Context, endpoint string, args []any) (json.RawMessage, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if args == nil {
		args = []any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode args for %s: %w", endpoint, err)
	}

	msg, err := c.nc.RequestWithContext(ctx, endpoint, data)
	if err != nil {
		if errors.Is(err, nats.ErrConnectionClosed) ||
			errors.Is(err, nats.ErrNoResponders) ||
			errors.Is(err, nats.ErrTimeout) ||
			errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: call %s: %v", ErrConnection, endpoint, err)
		}
		return nil, fmt.Errorf("call %s: %w", endpoint, err)
	}
	return json.RawMessage(msg.Data), nil
}

func (c *Conn) Subscribe(topic string, h Handler) (Unsubscribe, error) {
	sub, err := c.nc.Subscribe(topic, func(msg *nats.Msg) {
		h(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return sub.Unsubscribe, nil
}

func (c *Conn) Publish(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload for %s: %w", topic, err)
	}
	if err := c.nc.Publish(topic, data); err != nil {
		return fmt.Errorf("%w: publish %s: %v", ErrConnection, topic, err)
	}
	return nil
}

// Close drains and closes the underlying connection.
func (c *Conn) Close() {
	c.nc.Close()
}
