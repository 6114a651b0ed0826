// Package vr provides the virtual-reality host objects for
// KursarScript: an Environment that scripts talk to through print,
// get_avatar, and create_portal, plus Avatar and Terminal host values
// that dispatch script method calls back into the world. A
// LocalEnvironment keeps everything in memory; a RemoteEnvironment
// mirrors world events to a VR server over a websocket.
package vr

import (
	"github.com/google/uuid"

	"github.com/kursarscript/kspl/kspl"
)

// Environment is the world a script runs inside. LocalEnvironment
// implements it in memory and RemoteEnvironment decorates one with a
// websocket mirror.
type Environment interface {
	// DisplayMessage shows a message to the world. The interpreter's
	// print routes here when an environment is registered.
	DisplayMessage(msg string)
	// GetAvatar looks up an avatar by ID.
	GetAvatar(id string) (*Avatar, bool)
	// AddAvatar places an avatar into the world.
	AddAvatar(a *Avatar)
	// AddTerminal places a terminal into the world.
	AddTerminal(t *Terminal)
	// CreatePortal links two terminals.
	CreatePortal(from, to *Terminal) (*Portal, error)
}

// Portal is a one-way link between two terminals. Scripts read id,
// from, and to.
type Portal struct {
	ID   string
	From *Terminal
	To   *Terminal
}

func newPortal(from, to *Terminal) *Portal {
	return &Portal{ID: uuid.NewString(), From: from, To: to}
}

// TypeName implements kspl.HostValue.
func (p *Portal) TypeName() string { return "Portal" }

// Property implements kspl.HostValue.
func (p *Portal) Property(name string) (kspl.Value, bool) {
	switch name {
	case "id":
		return kspl.NewString(p.ID), true
	case "from":
		return kspl.NewHost(p.From), true
	case "to":
		return kspl.NewHost(p.To), true
	}
	return kspl.NewNull(), false
}

// SetProperty implements kspl.HostValue.
func (p *Portal) SetProperty(name string, val kspl.Value) bool {
	return false
}
