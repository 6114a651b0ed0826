package economy

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kursarscript/kspl/kspl"
)

// VirtuCard is a spendable credit card in the virtual economy.
// Scripts see it as a host value with the read-only properties id,
// owner, and balance and the methods deposit, withdraw, and statement.
type VirtuCard struct {
	ID      string
	Owner   string
	Balance Credits

	ledger *Ledger
}

// NewVirtuCard issues a card with a fresh ID.
func NewVirtuCard(owner string, balance Credits) *VirtuCard {
	return &VirtuCard{ID: uuid.NewString(), Owner: owner, Balance: balance}
}

// AttachLedger makes the card persist its state after every mutation.
func (c *VirtuCard) AttachLedger(l *Ledger) {
	c.ledger = l
}

// Deposit adds amount to the balance.
func (c *VirtuCard) Deposit(amount Credits) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	c.Balance += amount
	return c.record()
}

// Withdraw removes amount from the balance, failing without effect
// when the card does not hold enough.
func (c *VirtuCard) Withdraw(amount Credits) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if c.Balance < amount {
		return fmt.Errorf("%w: card %s holds %s, needs %s",
			ErrInsufficientFunds, c.ID, FormatCredits(c.Balance), FormatCredits(amount))
	}
	c.Balance -= amount
	return c.record()
}

// Statement renders a one-line balance summary.
func (c *VirtuCard) Statement() string {
	return fmt.Sprintf("card %s (%s): %s", c.ID, c.Owner, FormatCredits(c.Balance))
}

func (c *VirtuCard) String() string {
	return c.Statement()
}

func (c *VirtuCard) record() error {
	if c.ledger == nil {
		return nil
	}
	return c.ledger.SaveCard(c)
}

// TypeName implements kspl.HostValue.
func (c *VirtuCard) TypeName() string { return "VirtuCard" }

// Property implements kspl.HostValue.
func (c *VirtuCard) Property(name string) (kspl.Value, bool) {
	switch name {
	case "id":
		return kspl.NewString(c.ID), true
	case "owner":
		return kspl.NewString(c.Owner), true
	case "balance":
		return kspl.NewInt(int64(c.Balance)), true
	case "deposit":
		return kspl.NewBuiltin("VirtuCard.deposit", c.callDeposit), true
	case "withdraw":
		return kspl.NewBuiltin("VirtuCard.withdraw", c.callWithdraw), true
	case "statement":
		return kspl.NewBuiltin("VirtuCard.statement", c.callStatement), true
	}
	return kspl.NewNull(), false
}

// SetProperty implements kspl.HostValue. Card state only changes
// through deposit, withdraw, and transfer, so every property is
// read-only from scripts.
func (c *VirtuCard) SetProperty(name string, val kspl.Value) bool {
	return false
}

func (c *VirtuCard) callDeposit(args []kspl.Value) (kspl.Value, error) {
	amount, err := creditsArg("deposit", args)
	if err != nil {
		return kspl.NewNull(), err
	}
	if err := c.Deposit(amount); err != nil {
		return kspl.NewNull(), err
	}
	return kspl.NewInt(int64(c.Balance)), nil
}

func (c *VirtuCard) callWithdraw(args []kspl.Value) (kspl.Value, error) {
	amount, err := creditsArg("withdraw", args)
	if err != nil {
		return kspl.NewNull(), err
	}
	if err := c.Withdraw(amount); err != nil {
		return kspl.NewNull(), err
	}
	return kspl.NewInt(int64(c.Balance)), nil
}

func (c *VirtuCard) callStatement(args []kspl.Value) (kspl.Value, error) {
	return kspl.NewString(c.Statement()), nil
}

// creditsArg extracts a single positive integer credit amount from
// builtin arguments.
func creditsArg(method string, args []kspl.Value) (Credits, error) {
	if len(args) != 1 {
		return 0, &kspl.TypeError{Message: fmt.Sprintf("%s expects 1 argument, got %d", method, len(args))}
	}
	if args[0].Kind() != kspl.KindInt {
		return 0, &kspl.TypeError{Message: fmt.Sprintf("%s expects an int amount, got %s", method, args[0].Kind())}
	}
	return Credits(args[0].Int()), nil
}
