package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/leviroth/euchre/internal/deck"
	"github.com/leviroth/euchre/internal/layout"
)

// Move names understood by the server's perform_move endpoint. The play
// and discard moves reuse the phase name.
const (
	MoveCallOne = "call_one"
	MoveCallTwo = "call_two"
	MovePassBid = "pass_bid"
	MovePlay    = "play"
	MoveDiscard = "discard"
)

// ChatMessage is one chat transcript entry as published on the chat
// topic.
type ChatMessage struct {
	ID     string `json:"id,omitempty"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
	When   int64  `json:"when"` // unix milliseconds
}

// Client is the per-player facade over a Transport. Endpoints live in the
// player's own RPC namespace (player<id>.<endpoint>) and topics under the
// lobby prefix (lobby<n>.<topic>).
type Client struct {
	transport Transport
	player    int
	lobby     int
	name      string
}

// JoinServer registers with the server and binds the returned player id
// to a new Client for the given lobby. The server replies with the
// assigned [id, name] pair.
func JoinServer(ctx context.Context, transport Transport, lobby int, name string) (*Client, error) {
	raw, err := transport.Call(ctx, "join_server", []any{name})
	if err != nil {
		return nil, fmt.Errorf("join server: %w", err)
	}

	var reply []json.RawMessage
	if err := json.Unmarshal(raw, &reply); err != nil || len(reply) < 1 {
		return nil, fmt.Errorf("join server: bad reply %q", raw)
	}
	var id int
	if err := json.Unmarshal(reply[0], &id); err != nil {
		return nil, fmt.Errorf("join server: bad player id in %q", raw)
	}
	assigned := name
	if len(reply) > 1 {
		if err := json.Unmarshal(reply[1], &assigned); err != nil {
			return nil, fmt.Errorf("join server: bad player name in %q", raw)
		}
	}

	log.Info().Str("component", "session").Int("player", id).Str("name", assigned).Msg("joined server")
	return &Client{transport: transport, player: id, lobby: lobby, name: assigned}, nil
}

func (c *Client) Player() int  { return c.player }
func (c *Client) Lobby() int   { return c.lobby }
func (c *Client) Name() string { return c.name }

func (c *Client) endpoint(name string) string {
	return fmt.Sprintf("player%d.%s", c.player, name)
}

func (c *Client) topic(name string) string {
	return fmt.Sprintf("lobby%d.%s", c.lobby, name)
}

// truthy mirrors the server's convention of replying false (or nothing)
// to a refused operation.
func truthy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "false", "0":
		return false
	}
	return true
}

func (c *Client) call(ctx context.Context, endpoint string, args ...any) error {
	raw, err := c.transport.Call(ctx, c.endpoint(endpoint), args)
	if err != nil {
		return err
	}
	if !truthy(raw) {
		return fmt.Errorf("%w: %s", ErrRejected, endpoint)
	}
	return nil
}

// JoinSeat claims one of the four seats.
func (c *Client) JoinSeat(ctx context.Context, seat layout.Seat) error {
	if !seat.Valid() {
		return fmt.Errorf("no such seat %d", seat)
	}
	return c.call(ctx, "join_seat", int(seat))
}

// ChangeSeat moves to another seat before the game starts.
func (c *Client) ChangeSeat(ctx context.Context, seat layout.Seat) error {
	if !seat.Valid() {
		return fmt.Errorf("no such seat %d", seat)
	}
	return c.call(ctx, "change_seat", int(seat))
}

// StartGame asks the server to deal once four seats are taken.
func (c *Client) StartGame(ctx context.Context) error {
	return c.call(ctx, "start_game")
}

// SetName renames the player.
func (c *Client) SetName(ctx context.Context, name string) error {
	if err := c.call(ctx, "set_name", name); err != nil {
		return err
	}
	c.name = name
	return nil
}

func (c *Client) performMove(ctx context.Context, move string, args ...any) error {
	return c.call(ctx, "perform_move", append([]any{move}, args...)...)
}

// PlayCard submits a play or discard move for the given card. The move
// name is the current phase.
func (c *Client) PlayCard(ctx context.Context, move string, card deck.Card) error {
	if move != MovePlay && move != MoveDiscard {
		return fmt.Errorf("cannot play a card with move %q", move)
	}
	return c.performMove(ctx, move, card.String())
}

// BidOne submits a first-round bid: call_one with the alone flag, or
// pass_bid.
func (c *Client) BidOne(ctx context.Context, call, alone bool) error {
	if !call {
		return c.performMove(ctx, MovePassBid)
	}
	return c.performMove(ctx, MoveCallOne, alone)
}

// BidTwo submits a second-round bid: call_two naming trump with the alone
// flag, or pass_bid.
func (c *Client) BidTwo(ctx context.Context, call, alone bool, trump *deck.Suit) error {
	if !call {
		return c.performMove(ctx, MovePassBid)
	}
	if trump == nil {
		return fmt.Errorf("second-round call requires a trump suit")
	}
	return c.performMove(ctx, MoveCallTwo, alone, string(*trump))
}

// SendChat publishes a chat message on the lobby's chat topic. Chat is
// fire-and-forget; there is no response to wait on.
func (c *Client) SendChat(msg ChatMessage) error {
	return c.transport.Publish(c.topic("chat"), []ChatMessage{msg})
}

// SubscribePublicState delivers raw public-state deltas.
func (c *Client) SubscribePublicState(h func(delta []byte)) (Unsubscribe, error) {
	return c.transport.Subscribe(c.topic("publicstate"), Handler(h))
}

// SubscribeHand delivers wholesale replacements of the local hand from
// the player-private hand topic.
func (c *Client) SubscribeHand(h func(cards []deck.Card)) (Unsubscribe, error) {
	topic := c.topic(fmt.Sprintf("hands.player%d", c.player))
	return c.transport.Subscribe(topic, func(data []byte) {
		var encoded []string
		if err := json.Unmarshal(data, &encoded); err != nil {
			log.Error().Str("component", "session").Err(err).Msg("bad hand push")
			return
		}
		cards, err := deck.ParseAll(encoded)
		if err != nil {
			log.Error().Str("component", "session").Err(err).Msg("bad card in hand push")
			return
		}
		h(cards)
	})
}

// SubscribeChat delivers chat messages. The wire payload is a
// single-element array around the message.
func (c *Client) SubscribeChat(h func(ChatMessage)) (Unsubscribe, error) {
	return c.transport.Subscribe(c.topic("chat"), func(data []byte) {
		var msgs []ChatMessage
		if err := json.Unmarshal(data, &msgs); err != nil || len(msgs) == 0 {
			log.Error().Str("component", "session").Err(err).Msg("bad chat push")
			return
		}
		h(msgs[0])
	})
}

type cardPlayedEvent struct {
	Seat int    `json:"seat"`
	Card string `json:"card"`
}

// SubscribeCardPlayed delivers per-card trick events.
func (c *Client) SubscribeCardPlayed(h func(seat layout.Seat, card deck.Card)) (Unsubscribe, error) {
	return c.transport.Subscribe(c.topic("card_played"), func(data []byte) {
		var ev cardPlayedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Error().Str("component", "session").Err(err).Msg("bad card_played push")
			return
		}
		card, err := deck.Parse(ev.Card)
		if err != nil {
			log.Error().Str("component", "session").Err(err).Msg("bad card in card_played push")
			return
		}
		h(layout.Seat(ev.Seat), card)
	})
}

// SubscribeNewTrick signals trick boundaries.
func (c *Client) SubscribeNewTrick(h func()) (Unsubscribe, error) {
	return c.transport.Subscribe(c.topic("new_trick"), func([]byte) { h() })
}

// SubscribeNewHand signals the start of a new deal.
func (c *Client) SubscribeNewHand(h func()) (Unsubscribe, error) {
	return c.transport.Subscribe(c.topic("new_hand"), func([]byte) { h() })
}
