package vr

import (
	"fmt"

	"github.com/kursarscript/kspl/kspl"
)

// Register binds an environment into an interpreter:
//
//	Avatar(id, name)              -> Avatar, added to the world
//	VirtualTerminal(id, location) -> Terminal, added to the world
//	get_avatar(id)                -> Avatar or null
//	create_portal(from, to)       -> Portal
//	get_environment()             -> the environment itself
//
// print output is rerouted through env.DisplayMessage.
func Register(interp *kspl.Interp, env Environment) {
	interp.SetDisplay(env.DisplayMessage)

	interp.RegisterFunc("Avatar", func(args []kspl.Value) (kspl.Value, error) {
		id, name, err := twoStringArgs("Avatar", "id", "name", args)
		if err != nil {
			return kspl.NewNull(), err
		}
		avatar := NewAvatar(env, id, name)
		env.AddAvatar(avatar)
		return kspl.NewHost(avatar), nil
	})

	interp.RegisterFunc("VirtualTerminal", func(args []kspl.Value) (kspl.Value, error) {
		id, location, err := twoStringArgs("VirtualTerminal", "id", "location", args)
		if err != nil {
			return kspl.NewNull(), err
		}
		terminal := NewTerminal(env, id, location)
		env.AddTerminal(terminal)
		return kspl.NewHost(terminal), nil
	})

	interp.RegisterFunc("get_avatar", func(args []kspl.Value) (kspl.Value, error) {
		if len(args) != 1 || args[0].Kind() != kspl.KindString {
			return kspl.NewNull(), &kspl.TypeError{Message: "get_avatar expects an avatar id"}
		}
		avatar, ok := env.GetAvatar(args[0].Text())
		if !ok {
			return kspl.NewNull(), nil
		}
		return kspl.NewHost(avatar), nil
	})

	interp.RegisterFunc("create_portal", func(args []kspl.Value) (kspl.Value, error) {
		if len(args) != 2 {
			return kspl.NewNull(), &kspl.TypeError{Message: fmt.Sprintf("create_portal expects 2 terminals, got %d arguments", len(args))}
		}
		from, err := terminalArg("create_portal", args[0])
		if err != nil {
			return kspl.NewNull(), err
		}
		to, err := terminalArg("create_portal", args[1])
		if err != nil {
			return kspl.NewNull(), err
		}
		portal, err := env.CreatePortal(from, to)
		if err != nil {
			return kspl.NewNull(), err
		}
		return kspl.NewHost(portal), nil
	})

	interp.RegisterFunc("get_environment", func(args []kspl.Value) (kspl.Value, error) {
		return kspl.NewHost(&environmentHost{env: env}), nil
	})
}

func twoStringArgs(fnName, first, second string, args []kspl.Value) (string, string, error) {
	if len(args) != 2 || args[0].Kind() != kspl.KindString || args[1].Kind() != kspl.KindString {
		return "", "", &kspl.TypeError{Message: fmt.Sprintf("%s expects (%s, %s)", fnName, first, second)}
	}
	return args[0].Text(), args[1].Text(), nil
}

func terminalArg(fnName string, v kspl.Value) (*Terminal, error) {
	if terminal, ok := v.Host().(*Terminal); ok {
		return terminal, nil
	}
	return nil, &kspl.TypeError{Message: fmt.Sprintf("%s expects a VirtualTerminal, got %s", fnName, v.Kind())}
}

// environmentHost exposes the environment itself to scripts.
type environmentHost struct {
	env Environment
}

// TypeName implements kspl.HostValue.
func (h *environmentHost) TypeName() string { return "Environment" }

// Property implements kspl.HostValue.
func (h *environmentHost) Property(name string) (kspl.Value, bool) {
	if name == "display" {
		return kspl.NewBuiltin("Environment.display", func(args []kspl.Value) (kspl.Value, error) {
			if len(args) != 1 || args[0].Kind() != kspl.KindString {
				return kspl.NewNull(), &kspl.TypeError{Message: "display expects a message string"}
			}
			h.env.DisplayMessage(args[0].Text())
			return kspl.NewNull(), nil
		}), true
	}
	return kspl.NewNull(), false
}

// SetProperty implements kspl.HostValue.
func (h *environmentHost) SetProperty(name string, val kspl.Value) bool {
	return false
}
