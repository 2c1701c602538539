package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leviroth/euchre/internal/deck"
	"github.com/leviroth/euchre/internal/layout"
)

type call struct {
	endpoint string
	args     []any
}

type fakeTransport struct {
	calls   []call
	replies map[string]json.RawMessage
	errs    map[string]error
	subs    map[string]Handler
	pubs    map[string][]any
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		replies: map[string]json.RawMessage{},
		errs:    map[string]error{},
		subs:    map[string]Handler{},
		pubs:    map[string][]any{},
	}
}

func (f *fakeTransport) Call(_ context.Context, endpoint string, args []any) (json.RawMessage, error) {
	f.calls = append(f.calls, call{endpoint: endpoint, args: args})
	if err := f.errs[endpoint]; err != nil {
		return nil, err
	}
	if reply, ok := f.replies[endpoint]; ok {
		return reply, nil
	}
	return json.RawMessage(`true`), nil
}

func (f *fakeTransport) Subscribe(topic string, h Handler) (Unsubscribe, error) {
	f.subs[topic] = h
	return func() error { delete(f.subs, topic); return nil }, nil
}

func (f *fakeTransport) Publish(topic string, payload any) error {
	f.pubs[topic] = append(f.pubs[topic], payload)
	return nil
}

func (f *fakeTransport) push(t *testing.T, topic string, payload string) {
	t.Helper()
	h, ok := f.subs[topic]
	require.True(t, ok, "no subscription on %s", topic)
	h([]byte(payload))
}

func join(t *testing.T, ft *fakeTransport) *Client {
	t.Helper()
	ft.replies["join_server"] = json.RawMessage(`[2, "anon"]`)
	c, err := JoinServer(context.Background(), ft, 0, "anon")
	require.NoError(t, err)
	return c
}

func TestJoinServer(t *testing.T) {
	ft := newFakeTransport()
	c := join(t, ft)

	assert.Equal(t, 2, c.Player())
	assert.Equal(t, 0, c.Lobby())
	assert.Equal(t, "anon", c.Name())
	require.Len(t, ft.calls, 1)
	assert.Equal(t, "join_server", ft.calls[0].endpoint)
}

func TestJoinServerBadReply(t *testing.T) {
	ft := newFakeTransport()
	ft.replies["join_server"] = json.RawMessage(`"what"`)
	_, err := JoinServer(context.Background(), ft, 0, "anon")
	assert.Error(t, err)
}

func TestEndpointNamespace(t *testing.T) {
	ft := newFakeTransport()
	c := join(t, ft)

	require.NoError(t, c.JoinSeat(context.Background(), 3))
	require.Len(t, ft.calls, 2)
	assert.Equal(t, "player2.join_seat", ft.calls[1].endpoint)
	assert.Equal(t, []any{3}, ft.calls[1].args)

	assert.Error(t, c.JoinSeat(context.Background(), 4))
	assert.Len(t, ft.calls, 2, "invalid seat must not hit the network")
}

func TestBidOne(t *testing.T) {
	ft := newFakeTransport()
	c := join(t, ft)

	require.NoError(t, c.BidOne(context.Background(), true, true))
	require.NoError(t, c.BidOne(context.Background(), false, false))

	require.Len(t, ft.calls, 3)
	assert.Equal(t, "player2.perform_move", ft.calls[1].endpoint)
	assert.Equal(t, []any{MoveCallOne, true}, ft.calls[1].args)
	assert.Equal(t, []any{MovePassBid}, ft.calls[2].args)
}

func TestBidTwo(t *testing.T) {
	ft := newFakeTransport()
	c := join(t, ft)

	hearts := deck.Hearts
	require.NoError(t, c.BidTwo(context.Background(), true, false, &hearts))
	require.NoError(t, c.BidTwo(context.Background(), false, false, nil))
	assert.Error(t, c.BidTwo(context.Background(), true, false, nil))

	require.Len(t, ft.calls, 3)
	assert.Equal(t, []any{MoveCallTwo, false, "H"}, ft.calls[1].args)
	assert.Equal(t, []any{MovePassBid}, ft.calls[2].args)
}

func TestPlayCard(t *testing.T) {
	ft := newFakeTransport()
	c := join(t, ft)

	card := deck.Card{Rank: deck.Ten, Suit: deck.Spades}
	require.NoError(t, c.PlayCard(context.Background(), MovePlay, card))
	assert.Equal(t, []any{MovePlay, "10.S"}, ft.calls[1].args)

	require.NoError(t, c.PlayCard(context.Background(), MoveDiscard, card))
	assert.Equal(t, []any{MoveDiscard, "10.S"}, ft.calls[2].args)

	assert.Error(t, c.PlayCard(context.Background(), "bid1", card))
}

func TestRejectedMove(t *testing.T) {
	ft := newFakeTransport()
	c := join(t, ft)

	ft.replies["player2.perform_move"] = json.RawMessage(`false`)
	err := c.BidOne(context.Background(), false, false)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestSetName(t *testing.T) {
	ft := newFakeTransport()
	c := join(t, ft)

	require.NoError(t, c.SetName(context.Background(), "alice"))
	assert.Equal(t, "alice", c.Name())
	assert.Equal(t, "player2.set_name", ft.calls[1].endpoint)

	ft.errs["player2.set_name"] = ErrConnection
	assert.Error(t, c.SetName(context.Background(), "bob"))
	assert.Equal(t, "alice", c.Name(), "name keeps its old value on failure")
}

func TestSendChat(t *testing.T) {
	ft := newFakeTransport()
	c := join(t, ft)

	msg := ChatMessage{Sender: "anon", Text: "hi", When: 12345}
	require.NoError(t, c.SendChat(msg))
	require.Len(t, ft.pubs["lobby0.chat"], 1)
	assert.Equal(t, []ChatMessage{msg}, ft.pubs["lobby0.chat"][0])
}

func TestSubscribeHand(t *testing.T) {
	ft := newFakeTransport()
	c := join(t, ft)

	var got []deck.Card
	_, err := c.SubscribeHand(func(cards []deck.Card) { got = cards })
	require.NoError(t, err)

	ft.push(t, "lobby0.hands.player2", `["A.S", "9.C"]`)
	require.Len(t, got, 2)
	assert.Equal(t, "A.S", got[0].String())

	// Malformed pushes are dropped, not delivered.
	got = nil
	ft.push(t, "lobby0.hands.player2", `["banana"]`)
	assert.Nil(t, got)
}

func TestSubscribeCardPlayed(t *testing.T) {
	ft := newFakeTransport()
	c := join(t, ft)

	var seat layout.Seat
	var card deck.Card
	_, err := c.SubscribeCardPlayed(func(s layout.Seat, c deck.Card) { seat, card = s, c })
	require.NoError(t, err)

	ft.push(t, "lobby0.card_played", `{"seat": 2, "card": "Q.H"}`)
	assert.Equal(t, layout.Seat(2), seat)
	assert.Equal(t, "Q.H", card.String())
}

func TestSubscribeChat(t *testing.T) {
	ft := newFakeTransport()
	c := join(t, ft)

	var got ChatMessage
	_, err := c.SubscribeChat(func(m ChatMessage) { got = m })
	require.NoError(t, err)

	ft.push(t, "lobby0.chat", `[{"sender": "bob", "text": "hello", "when": 7}]`)
	assert.Equal(t, "bob", got.Sender)
	assert.Equal(t, "hello", got.Text)
}

func TestSubscribeEventsAndUnsubscribe(t *testing.T) {
	ft := newFakeTransport()
	c := join(t, ft)

	trick, hand := 0, 0
	_, err := c.SubscribeNewTrick(func() { trick++ })
	require.NoError(t, err)
	unsub, err := c.SubscribeNewHand(func() { hand++ })
	require.NoError(t, err)

	ft.push(t, "lobby0.new_trick", `{}`)
	ft.push(t, "lobby0.new_hand", `{}`)
	assert.Equal(t, 1, trick)
	assert.Equal(t, 1, hand)

	require.NoError(t, unsub())
	_, still := ft.subs["lobby0.new_hand"]
	assert.False(t, still)
}
