package economy

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kursarscript/kspl/kspl"
)

func TestFormatCredits(t *testing.T) {
	if got := FormatCredits(12500); got != "12,500 CR" {
		t.Fatalf("expected 12,500 CR, got %q", got)
	}
	if got := FormatCredits(0); got != "0 CR" {
		t.Fatalf("expected 0 CR, got %q", got)
	}
}

func TestCardDepositWithdraw(t *testing.T) {
	card := NewVirtuCard("ada", 100)
	if card.ID == "" {
		t.Fatal("expected a generated card ID")
	}
	if err := card.Deposit(50); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if err := card.Withdraw(30); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if card.Balance != 120 {
		t.Fatalf("expected balance 120, got %d", card.Balance)
	}

	err := card.Withdraw(1000)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if card.Balance != 120 {
		t.Fatalf("failed withdraw changed balance: %d", card.Balance)
	}

	if err := card.Deposit(0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestTransferRules(t *testing.T) {
	from := NewVirtuCard("ada", 100)
	to := NewVirtuCard("bob", 10)

	if err := Transfer(from, to, 40); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if from.Balance != 60 || to.Balance != 50 {
		t.Fatalf("unexpected balances after transfer: %d, %d", from.Balance, to.Balance)
	}

	err := Transfer(from, to, 500)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if from.Balance != 60 || to.Balance != 50 {
		t.Fatalf("failed transfer changed balances: %d, %d", from.Balance, to.Balance)
	}

	if err := Transfer(from, to, -5); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestScriptCardFlow(t *testing.T) {
	var buf bytes.Buffer
	interp := kspl.New(kspl.Config{Output: &buf})
	Register(interp, nil)

	err := interp.Run(context.Background(), `
let card = create_virtucard("ada", 100)
card.deposit(50)
card.withdraw(30)
balance = card.balance
owner = card.owner
print(card.statement())
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	balance, ok := interp.Global("balance")
	if !ok || balance.Int() != 120 {
		t.Fatalf("expected balance 120, got %v", balance)
	}
	owner, _ := interp.Global("owner")
	if owner.Text() != "ada" {
		t.Fatalf("expected owner ada, got %q", owner.Text())
	}
	if !strings.Contains(buf.String(), "120 CR") {
		t.Fatalf("statement output missing balance: %q", buf.String())
	}
}

func TestScriptInsufficientFunds(t *testing.T) {
	interp := kspl.New(kspl.Config{Output: &bytes.Buffer{}})
	Register(interp, nil)

	err := interp.Run(context.Background(), `
let card = create_virtucard("ada", 10)
card.withdraw(999)
`)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds through the script error, got %v", err)
	}

	var scriptErr *kspl.ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("expected a ScriptError, got %T", err)
	}
}

func TestScriptTransferBuiltin(t *testing.T) {
	interp := kspl.New(kspl.Config{Output: &bytes.Buffer{}})
	Register(interp, nil)

	err := interp.Run(context.Background(), `
let a = create_virtucard("ada", 100)
let b = create_virtucard("bob", 0)
remaining = transfer(a, b, 75)
received = b.balance
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	remaining, _ := interp.Global("remaining")
	if remaining.Int() != 25 {
		t.Fatalf("expected remaining 25, got %d", remaining.Int())
	}
	received, _ := interp.Global("received")
	if received.Int() != 75 {
		t.Fatalf("expected received 75, got %d", received.Int())
	}
}

func TestScriptVirtualItem(t *testing.T) {
	interp := kspl.New(kspl.Config{Output: &bytes.Buffer{}})
	Register(interp, nil)

	err := interp.Run(context.Background(), `
let sword = VirtualItem("sword", 250, "ada")
sword.transfer_to("bob")
after_transfer = sword.owner
sword.owner = "eve"
after_assign = sword.owner
price = sword.price
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	afterTransfer, _ := interp.Global("after_transfer")
	if afterTransfer.Text() != "bob" {
		t.Fatalf("expected owner bob, got %q", afterTransfer.Text())
	}
	afterAssign, _ := interp.Global("after_assign")
	if afterAssign.Text() != "eve" {
		t.Fatalf("expected owner eve, got %q", afterAssign.Text())
	}
	price, _ := interp.Global("price")
	if price.Int() != 250 {
		t.Fatalf("expected price 250, got %d", price.Int())
	}
}

func TestScriptItemReadOnlyProperty(t *testing.T) {
	interp := kspl.New(kspl.Config{Output: &bytes.Buffer{}})
	Register(interp, nil)

	err := interp.Run(context.Background(), `
let sword = VirtualItem("sword", 250, "ada")
sword.price = 1
`)
	var propErr *kspl.PropertyNotFoundError
	if !errors.As(err, &propErr) {
		t.Fatalf("expected property error for read-only assign, got %v", err)
	}
}

func TestUUIDBuiltin(t *testing.T) {
	interp := kspl.New(kspl.Config{Output: &bytes.Buffer{}})
	Register(interp, nil)

	if err := interp.Run(context.Background(), `id = uuid()`); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	id, _ := interp.Global("id")
	if _, err := uuid.Parse(id.Text()); err != nil {
		t.Fatalf("uuid builtin produced %q: %v", id.Text(), err)
	}
}
