package table

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/leviroth/euchre/internal/layout"
	"github.com/leviroth/euchre/internal/session"
)

// systemSender marks transcript entries generated locally rather than
// received on the chat topic.
const systemSender = "*"

// ErrUnknownCommand reports a /command that did not parse. It is shown
// inline in the transcript; no network call is made.
var ErrUnknownCommand = fmt.Errorf("unrecognized command")

// input dispatches one line of user input: slash commands act on the
// session, anything else is chat.
func (t *Table) input(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if !strings.HasPrefix(text, "/") {
		t.sendChat(text)
		return
	}

	command, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)
	if err := t.runCommand(command, rest); err != nil {
		log.Debug().Str("component", "table").Str("command", command).Err(err).Msg("command failed")
		t.systemMessage(err.Error())
		t.publish()
	}
}

func (t *Table) runCommand(command, rest string) error {
	switch command {
	case "/say":
		t.sendChat(rest)
		return nil
	case "/name", "/setname":
		if rest == "" {
			return fmt.Errorf("usage: %s [name]", command)
		}
		t.submit("set_name", func(ctx context.Context) error {
			return t.sess.SetName(ctx, rest)
		}, func(err error) {
			if err != nil {
				t.systemMessage("Could not change your name.")
			}
		})
		return nil
	case "/seat":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("usage: /seat [0-3]")
		}
		t.chooseSeat(layout.Seat(n))
		return nil
	case "/play":
		i, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("usage: /play [card index]")
		}
		t.clickCard(i)
		return nil
	case "/start":
		t.submit("start_game", func(ctx context.Context) error {
			return t.sess.StartGame(ctx)
		}, func(err error) {
			if err != nil {
				t.systemMessage("Could not start the game.")
			}
		})
		return nil
	}
	return fmt.Errorf("%w %q. To start a message with '/', use '/say [message]'", ErrUnknownCommand, command)
}

func (t *Table) sendChat(text string) {
	if text == "" {
		return
	}
	msg := session.ChatMessage{
		ID:     uuid.NewString(),
		Sender: t.sess.Name(),
		Text:   text,
		When:   t.clock.Now().UnixMilli(),
	}
	if err := t.sess.SendChat(msg); err != nil {
		log.Warn().Str("component", "table").Err(err).Msg("chat send failed")
		t.systemMessage("Could not send your message.")
		t.publish()
		return
	}
	// Shown immediately; the loopback copy from the topic is deduplicated
	// by id in onChat.
	t.appendChat(msg)
	t.publish()
}

func (t *Table) onChat(msg session.ChatMessage) {
	if msg.ID != "" {
		for _, seen := range t.chat {
			if seen.ID == msg.ID {
				return
			}
		}
	}
	t.appendChat(msg)
	t.publish()
}

func (t *Table) systemMessage(text string) {
	t.appendChat(session.ChatMessage{
		Sender: systemSender,
		Text:   text,
		When:   t.clock.Now().UnixMilli(),
	})
}

func (t *Table) appendChat(msg session.ChatMessage) {
	t.chat = append(t.chat, msg)
	if over := len(t.chat) - t.chatLimit; over > 0 {
		t.chat = append(t.chat[:0:0], t.chat[over:]...)
	}
}
