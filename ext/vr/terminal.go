package vr

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kursarscript/kspl/ext/economy"
	"github.com/kursarscript/kspl/kspl"
)

// Terminal is a fixed interaction point in the world. Scripts read id
// and location, show messages on it, and charge VirtuCards through it.
type Terminal struct {
	ID       string
	Location string

	env Environment
}

// NewTerminal creates a terminal bound to env. An empty id gets a
// generated one.
func NewTerminal(env Environment, id, location string) *Terminal {
	if id == "" {
		id = uuid.NewString()
	}
	return &Terminal{ID: id, Location: location, env: env}
}

// Show displays a message prefixed with the terminal location.
func (t *Terminal) Show(msg string) {
	if t.env == nil {
		return
	}
	t.env.DisplayMessage(fmt.Sprintf("[%s] %s", t.Location, msg))
}

// Charge debits a card at this terminal.
func (t *Terminal) Charge(card *economy.VirtuCard, amount economy.Credits) error {
	if err := card.Withdraw(amount); err != nil {
		return err
	}
	t.Show(fmt.Sprintf("charged %s to %s", economy.FormatCredits(amount), card.Owner))
	return nil
}

// TypeName implements kspl.HostValue.
func (t *Terminal) TypeName() string { return "VirtualTerminal" }

// Property implements kspl.HostValue.
func (t *Terminal) Property(name string) (kspl.Value, bool) {
	switch name {
	case "id":
		return kspl.NewString(t.ID), true
	case "location":
		return kspl.NewString(t.Location), true
	case "show":
		return kspl.NewBuiltin("VirtualTerminal.show", t.callShow), true
	case "charge":
		return kspl.NewBuiltin("VirtualTerminal.charge", t.callCharge), true
	}
	return kspl.NewNull(), false
}

// SetProperty implements kspl.HostValue. Terminals are placed by the
// host, not by scripts.
func (t *Terminal) SetProperty(name string, val kspl.Value) bool {
	return false
}

func (t *Terminal) callShow(args []kspl.Value) (kspl.Value, error) {
	if len(args) != 1 || args[0].Kind() != kspl.KindString {
		return kspl.NewNull(), &kspl.TypeError{Message: "show expects a message string"}
	}
	t.Show(args[0].Text())
	return kspl.NewNull(), nil
}

func (t *Terminal) callCharge(args []kspl.Value) (kspl.Value, error) {
	if len(args) != 2 {
		return kspl.NewNull(), &kspl.TypeError{Message: fmt.Sprintf("charge expects 2 arguments, got %d", len(args))}
	}
	card, err := economy.CardArg("charge", args[0])
	if err != nil {
		return kspl.NewNull(), err
	}
	if args[1].Kind() != kspl.KindInt {
		return kspl.NewNull(), &kspl.TypeError{Message: fmt.Sprintf("charge expects an int amount, got %s", args[1].Kind())}
	}
	if err := t.Charge(card, economy.Credits(args[1].Int())); err != nil {
		return kspl.NewNull(), err
	}
	return kspl.NewInt(int64(card.Balance)), nil
}
