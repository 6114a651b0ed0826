package economy

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/kursarscript/kspl/kspl"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	ledger, err := OpenLedger(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func TestLedgerCardRoundTrip(t *testing.T) {
	ledger := openTestLedger(t)

	card := NewVirtuCard("ada", 100)
	card.AttachLedger(ledger)
	if err := ledger.SaveCard(card); err != nil {
		t.Fatalf("save card: %v", err)
	}
	if err := card.Deposit(50); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	loaded, err := ledger.LoadCard(card.ID)
	if err != nil {
		t.Fatalf("load card: %v", err)
	}
	if loaded.Owner != "ada" || loaded.Balance != 150 {
		t.Fatalf("unexpected loaded card: %s", loaded.Statement())
	}

	// The loaded card carries the ledger, so its mutations persist too.
	if err := loaded.Withdraw(150); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	again, err := ledger.LoadCard(card.ID)
	if err != nil {
		t.Fatalf("reload card: %v", err)
	}
	if again.Balance != 0 {
		t.Fatalf("expected persisted balance 0, got %d", again.Balance)
	}
}

func TestLedgerTransferHistory(t *testing.T) {
	ledger := openTestLedger(t)

	from := NewVirtuCard("ada", 100)
	to := NewVirtuCard("bob", 0)
	from.AttachLedger(ledger)
	to.AttachLedger(ledger)

	if err := Transfer(from, to, 30); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if err := Transfer(to, from, 10); err != nil {
		t.Fatalf("transfer back: %v", err)
	}

	records, err := ledger.Transfers(from.ID)
	if err != nil {
		t.Fatalf("transfers: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].From != from.ID || records[0].To != to.ID || records[0].Amount != 30 {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].From != to.ID || records[1].Amount != 10 {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
	if records[0].At.IsZero() {
		t.Fatal("expected a transfer timestamp")
	}
}

func TestScriptPersistsThroughLedger(t *testing.T) {
	ledger := openTestLedger(t)
	interp := kspl.New(kspl.Config{Output: &bytes.Buffer{}})
	Register(interp, ledger)

	err := interp.Run(context.Background(), `
a = create_virtucard("ada", 100)
b = create_virtucard("bob", 0)
transfer(a, b, 60)
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	aVal, ok := interp.Global("a")
	if !ok {
		t.Fatal("script card binding missing")
	}
	card, ok := aVal.Host().(*VirtuCard)
	if !ok {
		t.Fatalf("expected a VirtuCard host, got %T", aVal.Host())
	}

	persisted, err := ledger.LoadCard(card.ID)
	if err != nil {
		t.Fatalf("load card: %v", err)
	}
	if persisted.Balance != 40 {
		t.Fatalf("expected persisted balance 40, got %d", persisted.Balance)
	}

	records, err := ledger.Transfers(card.ID)
	if err != nil {
		t.Fatalf("transfers: %v", err)
	}
	if len(records) != 1 || records[0].Amount != 60 {
		t.Fatalf("unexpected transfer history: %+v", records)
	}
}

func TestNilLedgerIsInert(t *testing.T) {
	var ledger *Ledger
	card := NewVirtuCard("ada", 10)
	card.AttachLedger(ledger)
	if err := card.Deposit(5); err != nil {
		t.Fatalf("deposit with nil ledger: %v", err)
	}
	if err := ledger.RecordTransfer("x", "y", 1); err != nil {
		t.Fatalf("record on nil ledger: %v", err)
	}
	if err := ledger.Close(); err != nil {
		t.Fatalf("close nil ledger: %v", err)
	}
}
