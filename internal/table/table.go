// Package table runs the client-side interaction machine for one seat at
// one lobby's table. All mutable state — the mirrored game snapshot, the
// local hand, the trick in progress, the bidding dialog, the chat
// transcript — is owned by a single event loop: topic pushes, RPC
// completions, and user input are posted onto one channel and applied
// serially, so no state ever has two writers. RPC calls are the only
// suspension points; each runs in its own goroutine and posts its
// completion back to the loop.
package table

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/leviroth/euchre/internal/bid"
	"github.com/leviroth/euchre/internal/deck"
	"github.com/leviroth/euchre/internal/hand"
	"github.com/leviroth/euchre/internal/layout"
	"github.com/leviroth/euchre/internal/session"
	"github.com/leviroth/euchre/internal/state"
	"github.com/leviroth/euchre/internal/trick"
)

const defaultChatLimit = 200

// bidTurn identifies one bidding turn. A fresh wizard is created when the
// identity changes and never reused across turns.
type bidTurn struct {
	phase state.Phase
	turn  layout.Seat
}

// Table is the interaction machine. Construct with New, drive with Run,
// and feed user input through the exported input methods, which are safe
// to call from other goroutines.
type Table struct {
	sess *session.Client

	game   *state.Game
	hand   *hand.Reconciler
	trick  *trick.Assembler
	local  layout.Seat
	wizard bid.Wizard
	curBid bidTurn
	chat   []session.ChatMessage

	events    chan func()
	done      chan struct{}
	ctx       context.Context
	clock     clockwork.Clock
	onUpdate  func(View)
	chatLimit int
	subs      []session.Unsubscribe
}

// Option configures a Table.
type Option func(*Table)

// WithClock substitutes the clock used for chat timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(t *Table) { t.clock = clock }
}

// WithOnUpdate registers the view sink. It is invoked from the event loop
// after every state change with a self-contained snapshot.
func WithOnUpdate(fn func(View)) Option {
	return func(t *Table) { t.onUpdate = fn }
}

// WithChatLimit caps the retained chat transcript.
func WithChatLimit(n int) Option {
	return func(t *Table) { t.chatLimit = n }
}

func New(sess *session.Client, opts ...Option) *Table {
	t := &Table{
		sess:      sess,
		game:      state.New(),
		hand:      hand.NewReconciler(),
		trick:     trick.NewAssembler(),
		local:     layout.NoSeat,
		events:    make(chan func(), 128),
		done:      make(chan struct{}),
		clock:     clockwork.NewRealClock(),
		chatLimit: defaultChatLimit,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run subscribes to the lobby's topics and processes events until ctx is
// cancelled.
func (t *Table) Run(ctx context.Context) error {
	t.ctx = ctx
	if err := t.subscribeAll(); err != nil {
		return err
	}
	defer func() {
		close(t.done)
		for _, unsub := range t.subs {
			if err := unsub(); err != nil {
				log.Debug().Str("component", "table").Err(err).Msg("unsubscribe failed")
			}
		}
	}()

	log.Info().
		Str("component", "table").
		Int("player", t.sess.Player()).
		Int("lobby", t.sess.Lobby()).
		Msg("table loop started")
	t.publish()

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-t.events:
			fn()
		}
	}
}

func (t *Table) subscribeAll() error {
	for _, subscribe := range []func() (session.Unsubscribe, error){
		func() (session.Unsubscribe, error) {
			return t.sess.SubscribePublicState(func(delta []byte) {
				t.post(func() { t.onPublicState(delta) })
			})
		},
		func() (session.Unsubscribe, error) {
			return t.sess.SubscribeHand(func(cards []deck.Card) {
				t.post(func() { t.onHand(cards) })
			})
		},
		func() (session.Unsubscribe, error) {
			return t.sess.SubscribeChat(func(msg session.ChatMessage) {
				t.post(func() { t.onChat(msg) })
			})
		},
		func() (session.Unsubscribe, error) {
			return t.sess.SubscribeCardPlayed(func(seat layout.Seat, card deck.Card) {
				t.post(func() { t.onCardPlayed(seat, card) })
			})
		},
		func() (session.Unsubscribe, error) {
			return t.sess.SubscribeNewTrick(func() {
				t.post(func() { t.trick.NewTrick(); t.publish() })
			})
		},
		func() (session.Unsubscribe, error) {
			return t.sess.SubscribeNewHand(func() {
				t.post(func() { t.trick.NewHand(); t.publish() })
			})
		},
	} {
		unsub, err := subscribe()
		if err != nil {
			return err
		}
		t.subs = append(t.subs, unsub)
	}
	return nil
}

// post hands fn to the event loop.
func (t *Table) post(fn func()) {
	select {
	case t.events <- fn:
	case <-t.done:
	}
}

func (t *Table) publish() {
	if t.onUpdate != nil {
		t.onUpdate(t.buildView())
	}
}

// submit runs one RPC off the loop and posts its completion back.
func (t *Table) submit(op string, call func(context.Context) error, done func(err error)) {
	ctx := t.ctx
	go func() {
		err := call(ctx)
		t.post(func() {
			if err != nil {
				log.Warn().Str("component", "table").Str("op", op).Err(err).Msg("request failed")
			}
			if done != nil {
				done(err)
			}
			t.publish()
		})
	}()
}

// --- pushed events (run on the loop) ---

func (t *Table) onPublicState(delta []byte) {
	if err := t.game.ApplyDelta(delta); err != nil {
		log.Error().Str("component", "table").Err(err).Msg("bad public state push")
		return
	}
	t.syncWizard()
	t.publish()
}

func (t *Table) onHand(cards []deck.Card) {
	t.hand.Replace(cards)
	t.publish()
}

func (t *Table) onCardPlayed(seat layout.Seat, card deck.Card) {
	if err := t.trick.CardPlayed(seat, card); err != nil {
		log.Error().Str("component", "table").Err(err).Msg("bad card_played push")
		return
	}
	t.publish()
}

// syncWizard keeps the bidding dialog in step with the authoritative
// phase and turn. A dialog exists only while it is the local player's
// turn in a bidding phase, and a new identity always gets a fresh one.
func (t *Table) syncWizard() {
	if !t.game.Phase.Bidding() || !t.local.Valid() || t.game.Turn != t.local {
		t.wizard = nil
		t.curBid = bidTurn{}
		return
	}
	key := bidTurn{phase: t.game.Phase, turn: t.game.Turn}
	if key == t.curBid {
		// Same bidding turn: keep the dialog where the user left it
		// (or emitted, in which case it stays dismissed).
		return
	}
	t.curBid = key
	if t.game.Phase == state.PhaseBid1 {
		t.wizard = bid.NewOneRound(t.emitBidOne)
	} else {
		t.wizard = bid.NewTwoRound(t.emitBidTwo)
	}
}

func (t *Table) emitBidOne(d bid.Decision) {
	t.wizard = nil
	t.submit("bid1", func(ctx context.Context) error {
		return t.sess.BidOne(ctx, d.Call, d.Alone)
	}, func(err error) {
		if err != nil {
			t.systemMessage("Your bid was not accepted.")
		}
	})
}

func (t *Table) emitBidTwo(d bid.Decision) {
	t.wizard = nil
	t.submit("bid2", func(ctx context.Context) error {
		return t.sess.BidTwo(ctx, d.Call, d.Alone, d.Trump)
	}, func(err error) {
		if err != nil {
			t.systemMessage("Your bid was not accepted.")
		}
	})
}

// --- user input (safe from any goroutine) ---

// ClickCard plays or discards the card at index i of the local hand. The
// click is ignored outside the local player's play or discard turn.
func (t *Table) ClickCard(i int) {
	t.post(func() { t.clickCard(i) })
}

// ChooseSeat claims a seat while unseated.
func (t *Table) ChooseSeat(seat layout.Seat) {
	t.post(func() { t.chooseSeat(seat) })
}

// BidCall advances the bidding dialog from CALL: pick up the upcard in
// the first round, move on to naming trump in the second.
func (t *Table) BidCall() {
	t.post(func() { t.bidAction("call", func(w bid.Wizard) error { return w.Call() }) })
}

// BidPass passes the current bidding turn.
func (t *Table) BidPass() {
	t.post(func() { t.bidAction("pass", func(w bid.Wizard) error { return w.Pass() }) })
}

// BidTrump names the trump suit in the second-round dialog.
func (t *Table) BidTrump(suit deck.Suit) {
	t.post(func() { t.bidAction("trump", func(w bid.Wizard) error { return w.NameTrump(suit) }) })
}

// BidAlone answers the go-alone question, completing the dialog.
func (t *Table) BidAlone(alone bool) {
	t.post(func() { t.bidAction("alone", func(w bid.Wizard) error { return w.Alone(alone) }) })
}

// Input handles one line of chat input, which may be a /command.
func (t *Table) Input(text string) {
	t.post(func() { t.input(text) })
}

// --- input handlers (run on the loop) ---

func (t *Table) clickCard(i int) {
	if !t.local.Valid() || t.game.Turn != t.local {
		return
	}
	phase := t.game.Phase
	if phase != state.PhasePlay && phase != state.PhaseDiscard {
		return
	}
	staged, err := t.hand.Stage(i)
	if err != nil {
		log.Debug().Str("component", "table").Err(err).Msg("ignoring card click")
		return
	}
	t.submit("play_card", func(ctx context.Context) error {
		return t.sess.PlayCard(ctx, string(phase), staged.Card)
	}, func(err error) {
		if err != nil {
			t.systemMessage("That move was rejected.")
			return
		}
		t.hand.Confirm(staged)
	})
}

func (t *Table) chooseSeat(seat layout.Seat) {
	if t.local.Valid() {
		return
	}
	if !seat.Valid() {
		t.systemMessage("No such seat.")
		t.publish()
		return
	}
	t.submit("join_seat", func(ctx context.Context) error {
		return t.sess.JoinSeat(ctx, seat)
	}, func(err error) {
		if err != nil {
			t.systemMessage("That seat is not available.")
			return
		}
		t.local = seat
		t.syncWizard()
	})
}

func (t *Table) bidAction(name string, action func(bid.Wizard) error) {
	if t.wizard == nil {
		return
	}
	if err := action(t.wizard); err != nil {
		log.Debug().Str("component", "table").Str("action", name).Err(err).Msg("bid action ignored")
		return
	}
	t.publish()
}
