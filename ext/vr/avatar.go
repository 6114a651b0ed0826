package vr

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kursarscript/kspl/ext/economy"
	"github.com/kursarscript/kspl/kspl"
)

// Avatar is a user presence in the world. Scripts read id, name, and
// card, assign name or card, and call say to speak through the
// environment display.
type Avatar struct {
	ID   string
	Name string
	Card *economy.VirtuCard

	env Environment
}

// NewAvatar creates an avatar bound to env. An empty id gets a
// generated one.
func NewAvatar(env Environment, id, name string) *Avatar {
	if id == "" {
		id = uuid.NewString()
	}
	return &Avatar{ID: id, Name: name, env: env}
}

// Say routes a message through the environment display.
func (a *Avatar) Say(msg string) {
	if a.env == nil {
		return
	}
	a.env.DisplayMessage(fmt.Sprintf("%s says: %s", a.Name, msg))
}

// TypeName implements kspl.HostValue.
func (a *Avatar) TypeName() string { return "Avatar" }

// Property implements kspl.HostValue.
func (a *Avatar) Property(name string) (kspl.Value, bool) {
	switch name {
	case "id":
		return kspl.NewString(a.ID), true
	case "name":
		return kspl.NewString(a.Name), true
	case "card":
		if a.Card == nil {
			return kspl.NewNull(), true
		}
		return kspl.NewHost(a.Card), true
	case "say":
		return kspl.NewBuiltin("Avatar.say", a.callSay), true
	}
	return kspl.NewNull(), false
}

// SetProperty implements kspl.HostValue. Scripts may rename an avatar
// or hand it a card.
func (a *Avatar) SetProperty(name string, val kspl.Value) bool {
	switch name {
	case "name":
		if val.Kind() != kspl.KindString {
			return false
		}
		a.Name = val.Text()
		return true
	case "card":
		card, ok := val.Host().(*economy.VirtuCard)
		if !ok {
			return false
		}
		a.Card = card
		return true
	}
	return false
}

func (a *Avatar) callSay(args []kspl.Value) (kspl.Value, error) {
	if len(args) != 1 || args[0].Kind() != kspl.KindString {
		return kspl.NewNull(), &kspl.TypeError{Message: "say expects a message string"}
	}
	a.Say(args[0].Text())
	return kspl.NewNull(), nil
}
