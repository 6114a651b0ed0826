package economy

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kursarscript/kspl/kspl"
)

// Register installs the economy builtins into an interpreter:
//
//	create_virtucard(owner, balance) -> VirtuCard
//	transfer(from, to, amount)       -> remaining balance of from
//	VirtualItem(name, price, owner)  -> VirtualItem
//	uuid()                           -> fresh ID string
//
// ledger may be nil; when present, cards created here persist through
// it and transfers land in its history.
func Register(interp *kspl.Interp, ledger *Ledger) {
	interp.RegisterFunc("create_virtucard", func(args []kspl.Value) (kspl.Value, error) {
		if len(args) < 1 || len(args) > 2 || args[0].Kind() != kspl.KindString {
			return kspl.NewNull(), &kspl.TypeError{Message: "create_virtucard expects an owner name and an optional starting balance"}
		}
		balance := Credits(0)
		if len(args) == 2 {
			if args[1].Kind() != kspl.KindInt {
				return kspl.NewNull(), &kspl.TypeError{Message: fmt.Sprintf("create_virtucard expects an int balance, got %s", args[1].Kind())}
			}
			balance = Credits(args[1].Int())
		}
		card := NewVirtuCard(args[0].Text(), balance)
		card.AttachLedger(ledger)
		if err := card.record(); err != nil {
			return kspl.NewNull(), err
		}
		return kspl.NewHost(card), nil
	})

	interp.RegisterFunc("transfer", func(args []kspl.Value) (kspl.Value, error) {
		if len(args) != 3 {
			return kspl.NewNull(), &kspl.TypeError{Message: fmt.Sprintf("transfer expects 3 arguments, got %d", len(args))}
		}
		from, err := CardArg("transfer", args[0])
		if err != nil {
			return kspl.NewNull(), err
		}
		to, err := CardArg("transfer", args[1])
		if err != nil {
			return kspl.NewNull(), err
		}
		if args[2].Kind() != kspl.KindInt {
			return kspl.NewNull(), &kspl.TypeError{Message: fmt.Sprintf("transfer expects an int amount, got %s", args[2].Kind())}
		}
		if err := Transfer(from, to, Credits(args[2].Int())); err != nil {
			return kspl.NewNull(), err
		}
		return kspl.NewInt(int64(from.Balance)), nil
	})

	interp.RegisterFunc("VirtualItem", func(args []kspl.Value) (kspl.Value, error) {
		if len(args) != 3 || args[0].Kind() != kspl.KindString ||
			args[1].Kind() != kspl.KindInt || args[2].Kind() != kspl.KindString {
			return kspl.NewNull(), &kspl.TypeError{Message: "VirtualItem expects (name, price, owner)"}
		}
		item := NewVirtualItem(args[0].Text(), Credits(args[1].Int()), args[2].Text())
		return kspl.NewHost(item), nil
	})

	interp.RegisterFunc("uuid", func(args []kspl.Value) (kspl.Value, error) {
		return kspl.NewString(uuid.NewString()), nil
	})
}

// CardArg extracts a *VirtuCard from a script value, for builtins that
// take cards as arguments.
func CardArg(fnName string, v kspl.Value) (*VirtuCard, error) {
	if host := v.Host(); host != nil {
		if card, ok := host.(*VirtuCard); ok {
			return card, nil
		}
	}
	return nil, &kspl.TypeError{Message: fmt.Sprintf("%s expects a VirtuCard, got %s", fnName, v.Kind())}
}
