package vr

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// LocalEnvironment is an in-memory world. Display messages go to an
// io.Writer, avatars and terminals live in maps, portals accumulate
// as they are created. Safe for use from multiple goroutines.
type LocalEnvironment struct {
	mu        sync.Mutex
	out       io.Writer
	avatars   map[string]*Avatar
	terminals map[string]*Terminal
	portals   []*Portal
}

// NewLocalEnvironment creates an empty world writing to out, or to
// stdout when out is nil.
func NewLocalEnvironment(out io.Writer) *LocalEnvironment {
	if out == nil {
		out = os.Stdout
	}
	return &LocalEnvironment{
		out:       out,
		avatars:   make(map[string]*Avatar),
		terminals: make(map[string]*Terminal),
	}
}

// DisplayMessage implements Environment.
func (env *LocalEnvironment) DisplayMessage(msg string) {
	env.mu.Lock()
	defer env.mu.Unlock()
	fmt.Fprintln(env.out, msg)
}

// AddAvatar implements Environment.
func (env *LocalEnvironment) AddAvatar(a *Avatar) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.avatars[a.ID] = a
}

// GetAvatar implements Environment.
func (env *LocalEnvironment) GetAvatar(id string) (*Avatar, bool) {
	env.mu.Lock()
	defer env.mu.Unlock()
	a, ok := env.avatars[id]
	return a, ok
}

// AddTerminal implements Environment.
func (env *LocalEnvironment) AddTerminal(t *Terminal) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.terminals[t.ID] = t
}

// Terminal looks up a terminal by ID.
func (env *LocalEnvironment) Terminal(id string) (*Terminal, bool) {
	env.mu.Lock()
	defer env.mu.Unlock()
	t, ok := env.terminals[id]
	return t, ok
}

// CreatePortal implements Environment.
func (env *LocalEnvironment) CreatePortal(from, to *Terminal) (*Portal, error) {
	if from == nil || to == nil {
		return nil, errors.New("portal requires two terminals")
	}
	portal := newPortal(from, to)
	env.mu.Lock()
	defer env.mu.Unlock()
	env.portals = append(env.portals, portal)
	return portal, nil
}

// Portals returns the portals created so far.
func (env *LocalEnvironment) Portals() []*Portal {
	env.mu.Lock()
	defer env.mu.Unlock()
	out := make([]*Portal, len(env.portals))
	copy(out, env.portals)
	return out
}
