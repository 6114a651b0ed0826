package economy

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure Go sqlite driver
)

// Ledger persists cards and transfers in a sqlite database. A nil
// *Ledger is valid everywhere and records nothing, so hosts can wire
// persistence in or leave it out with the same code path.
type Ledger struct {
	db *sql.DB
}

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS cards (
	id      TEXT PRIMARY KEY,
	owner   TEXT NOT NULL,
	balance INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS transfers (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	from_card TEXT NOT NULL,
	to_card   TEXT NOT NULL,
	amount    INTEGER NOT NULL,
	at        TEXT NOT NULL
);`

// OpenLedger opens (and if needed creates) a ledger database at path.
func OpenLedger(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.Exec(ledgerSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close releases the underlying database.
func (l *Ledger) Close() error {
	if l == nil {
		return nil
	}
	return l.db.Close()
}

// SaveCard upserts the card's current state.
func (l *Ledger) SaveCard(c *VirtuCard) error {
	if l == nil {
		return nil
	}
	_, err := l.db.Exec(
		`INSERT INTO cards (id, owner, balance) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET owner = excluded.owner, balance = excluded.balance`,
		c.ID, c.Owner, int64(c.Balance),
	)
	if err != nil {
		return fmt.Errorf("save card %s: %w", c.ID, err)
	}
	return nil
}

// LoadCard reads a card by ID. The returned card carries this ledger,
// so later mutations persist.
func (l *Ledger) LoadCard(id string) (*VirtuCard, error) {
	if l == nil {
		return nil, fmt.Errorf("load card %s: no ledger", id)
	}
	card := &VirtuCard{ledger: l}
	var balance int64
	err := l.db.QueryRow(`SELECT id, owner, balance FROM cards WHERE id = ?`, id).
		Scan(&card.ID, &card.Owner, &balance)
	if err != nil {
		return nil, fmt.Errorf("load card %s: %w", id, err)
	}
	card.Balance = Credits(balance)
	return card, nil
}

// Cards returns every stored card, ordered by owner then ID. The
// returned cards carry this ledger.
func (l *Ledger) Cards() ([]*VirtuCard, error) {
	if l == nil {
		return nil, nil
	}
	rows, err := l.db.Query(`SELECT id, owner, balance FROM cards ORDER BY owner, id`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []*VirtuCard
	for rows.Next() {
		card := &VirtuCard{ledger: l}
		var balance int64
		if err := rows.Scan(&card.ID, &card.Owner, &balance); err != nil {
			return nil, fmt.Errorf("list cards: %w", err)
		}
		card.Balance = Credits(balance)
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// RecordTransfer appends a transfer to the history.
func (l *Ledger) RecordTransfer(fromID, toID string, amount Credits) error {
	if l == nil {
		return nil
	}
	_, err := l.db.Exec(
		`INSERT INTO transfers (from_card, to_card, amount, at) VALUES (?, ?, ?, ?)`,
		fromID, toID, int64(amount), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record transfer: %w", err)
	}
	return nil
}

// TransferRecord is one row of transfer history.
type TransferRecord struct {
	From   string
	To     string
	Amount Credits
	At     time.Time
}

// Transfers returns the history involving a card, oldest first.
func (l *Ledger) Transfers(cardID string) ([]TransferRecord, error) {
	if l == nil {
		return nil, nil
	}
	rows, err := l.db.Query(
		`SELECT from_card, to_card, amount, at FROM transfers
		 WHERE from_card = ? OR to_card = ? ORDER BY id`,
		cardID, cardID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var records []TransferRecord
	for rows.Next() {
		var rec TransferRecord
		var amount int64
		var at string
		if err := rows.Scan(&rec.From, &rec.To, &amount, &at); err != nil {
			return nil, fmt.Errorf("list transfers: %w", err)
		}
		rec.Amount = Credits(amount)
		if parsed, err := time.Parse(time.RFC3339, at); err == nil {
			rec.At = parsed
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
