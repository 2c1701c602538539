// Package bid holds the local multi-step bidding dialogs. A wizard
// accumulates one bid decision across its stages and emits it exactly
// once; the table creates a fresh wizard for every bidding turn and
// never reuses one across turns.
package bid

import (
	"fmt"

	"github.com/leviroth/euchre/internal/deck"
)

// Stage is the dialog step a wizard is currently showing.
type Stage string

const (
	StageCall  Stage = "CALL"
	StageTrump Stage = "TRUMP"
	StageAlone Stage = "ALONE"
	StageDone  Stage = "DONE"
)

// Decision is the accumulated outcome of one bidding turn. Trump is set
// only by the two-round dialog.
type Decision struct {
	Call  bool
	Alone bool
	Trump *deck.Suit
}

// EmitFunc receives the final decision. Each wizard calls its EmitFunc
// exactly once.
type EmitFunc func(Decision)

// ErrStage reports a dialog action taken from the wrong stage.
var ErrStage = fmt.Errorf("action not available in this stage")

// Wizard is the surface shared by the one- and two-round dialogs.
type Wizard interface {
	Stage() Stage
	TwoRound() bool

	// Call advances from CALL: "pick it up" in the first round,
	// "name trump" in the second.
	Call() error
	// Pass emits a pass decision and finishes the dialog.
	Pass() error
	// NameTrump picks the suit in the TRUMP stage (two-round only).
	NameTrump(deck.Suit) error
	// Alone emits the final calling decision from the ALONE stage.
	Alone(bool) error
}

// OneRound is the bid1 dialog: the upcard's suit is implied, so the only
// stages are CALL and ALONE.
type OneRound struct {
	stage Stage
	emit  EmitFunc
}

func NewOneRound(emit EmitFunc) *OneRound {
	return &OneRound{stage: StageCall, emit: emit}
}

func (w *OneRound) Stage() Stage   { return w.stage }
func (w *OneRound) TwoRound() bool { return false }

func (w *OneRound) Call() error {
	if w.stage != StageCall {
		return fmt.Errorf("%w: pick up from %s", ErrStage, w.stage)
	}
	w.stage = StageAlone
	return nil
}

func (w *OneRound) Pass() error {
	if w.stage != StageCall {
		return fmt.Errorf("%w: pass from %s", ErrStage, w.stage)
	}
	w.stage = StageDone
	w.emit(Decision{})
	return nil
}

func (w *OneRound) NameTrump(deck.Suit) error {
	return fmt.Errorf("%w: no trump stage in the first bidding round", ErrStage)
}

func (w *OneRound) Alone(alone bool) error {
	if w.stage != StageAlone {
		return fmt.Errorf("%w: alone from %s", ErrStage, w.stage)
	}
	w.stage = StageDone
	w.emit(Decision{Call: true, Alone: alone})
	return nil
}

// TwoRound is the bid2 dialog: calling also names trump, so a TRUMP
// stage sits between CALL and ALONE and the chosen suit is carried into
// the decision.
type TwoRound struct {
	stage Stage
	trump deck.Suit
	emit  EmitFunc
}

func NewTwoRound(emit EmitFunc) *TwoRound {
	return &TwoRound{stage: StageCall, emit: emit}
}

func (w *TwoRound) Stage() Stage   { return w.stage }
func (w *TwoRound) TwoRound() bool { return true }

func (w *TwoRound) Call() error {
	if w.stage != StageCall {
		return fmt.Errorf("%w: name trump from %s", ErrStage, w.stage)
	}
	w.stage = StageTrump
	return nil
}

func (w *TwoRound) Pass() error {
	if w.stage != StageCall {
		return fmt.Errorf("%w: pass from %s", ErrStage, w.stage)
	}
	w.stage = StageDone
	w.emit(Decision{})
	return nil
}

func (w *TwoRound) NameTrump(suit deck.Suit) error {
	if w.stage != StageTrump {
		return fmt.Errorf("%w: trump from %s", ErrStage, w.stage)
	}
	if !suit.Valid() {
		return fmt.Errorf("unknown suit %q", suit)
	}
	w.trump = suit
	w.stage = StageAlone
	return nil
}

func (w *TwoRound) Alone(alone bool) error {
	if w.stage != StageAlone {
		return fmt.Errorf("%w: alone from %s", ErrStage, w.stage)
	}
	w.stage = StageDone
	trump := w.trump
	w.emit(Decision{Call: true, Alone: alone, Trump: &trump})
	return nil
}
