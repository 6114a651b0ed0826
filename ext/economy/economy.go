// Package economy provides the virtual-economy host objects for
// KursarScript: VirtuCards, virtual items, transfers between cards,
// and an optional sqlite-backed ledger. Everything here reaches the
// interpreter through the public registry and the HostValue interface,
// so scripts manipulate cards and items without the core language
// knowing anything about credits.
package economy

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// Credits is the virtual currency unit. Balances are whole credits.
type Credits int64

var (
	// ErrInsufficientFunds reports a withdrawal or transfer larger
	// than the card balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount reports a zero or negative amount.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// FormatCredits renders an amount with thousands grouping and the
// CR suffix, e.g. "12,500 CR".
func FormatCredits(amount Credits) string {
	return humanize.Comma(int64(amount)) + " CR"
}

// Transfer moves amount from one card to another. The debit and the
// credit happen together or not at all; a failed transfer leaves both
// balances untouched. When either card carries a ledger the transfer
// is recorded there as well.
func Transfer(from, to *VirtuCard, amount Credits) error {
	if from == nil || to == nil {
		return errors.New("transfer requires two cards")
	}
	if amount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if from.Balance < amount {
		return fmt.Errorf("%w: card %s holds %s, needs %s",
			ErrInsufficientFunds, from.ID, FormatCredits(from.Balance), FormatCredits(amount))
	}
	from.Balance -= amount
	to.Balance += amount
	if err := from.record(); err != nil {
		return err
	}
	if err := to.record(); err != nil {
		return err
	}
	if from.ledger != nil {
		return from.ledger.RecordTransfer(from.ID, to.ID, amount)
	}
	if to.ledger != nil {
		return to.ledger.RecordTransfer(from.ID, to.ID, amount)
	}
	return nil
}
