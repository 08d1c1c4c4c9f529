package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cardbook/internal/core"

	_ "modernc.org/sqlite"
)

// ErrCardNotFound is returned when an operation references a card id that is
// not in the store.
var ErrCardNotFound = errors.New("card not found")

// SQLiteRepository persists cards and transactions. Balance updates are
// applied with relative UPDATEs inside the same SQL transaction as the
// inserted row, so the read-modify-write race never reaches the application.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateCard inserts a new card and returns it with its assigned id.
func (r *SQLiteRepository) CreateCard(ctx context.Context, c core.Card) (core.Card, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (name, card_type, balance_cents) VALUES (?, ?, ?)`,
		c.Name, string(c.Type), c.Balance.Cents)
	if err != nil {
		return core.Card{}, fmt.Errorf("insert card: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Card{}, fmt.Errorf("card insert id: %w", err)
	}
	c.ID = id

	slog.InfoContext(ctx, "Card saved",
		"id", c.ID,
		"name", c.Name,
		"card_type", c.Type,
		"balance_cents", c.Balance.Cents)

	return c, nil
}

// GetCard returns a single card by id.
func (r *SQLiteRepository) GetCard(ctx context.Context, id int64) (core.Card, error) {
	var c core.Card
	var cardType string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, card_type, balance_cents FROM cards WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &cardType, &c.Balance.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Card{}, ErrCardNotFound
	}
	if err != nil {
		return core.Card{}, fmt.Errorf("select card: %w", err)
	}
	c.Type = core.CardType(cardType)
	return c, nil
}

// ListCards returns all cards in creation order.
func (r *SQLiteRepository) ListCards(ctx context.Context) ([]core.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, card_type, balance_cents FROM cards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select cards: %w", err)
	}
	defer rows.Close()

	var cards []core.Card
	for rows.Next() {
		var c core.Card
		var cardType string
		if err := rows.Scan(&c.ID, &c.Name, &cardType, &c.Balance.Cents); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		c.Type = core.CardType(cardType)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

// CreateTransaction inserts the transaction and applies deltaCents to the
// owning card's balance in one SQL transaction. Either both happen or
// neither does.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction, deltaCents int64) (core.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE cards SET balance_cents = balance_cents + ? WHERE id = ?`,
		deltaCents, t.CardID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update card balance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("balance update result: %w", err)
	}
	if affected == 0 {
		return core.Transaction{}, ErrCardNotFound
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (card_id, transaction_type, amount_cents, description, category, tx_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.CardID, string(t.Type), t.Amount.Cents, t.Description, t.Category, t.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction insert id: %w", err)
	}
	t.ID = id

	if err := tx.Commit(); err != nil {
		return core.Transaction{}, fmt.Errorf("commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"card_id", t.CardID,
		"transaction_type", t.Type,
		"amount_cents", t.Amount.Cents,
		"balance_delta_cents", deltaCents)

	return t, nil
}

// DeleteCard removes a card and every transaction it owns in one SQL
// transaction. The explicit child delete keeps the cascade independent of the
// foreign_keys pragma.
func (r *SQLiteRepository) DeleteCard(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE card_id = ?`, id); err != nil {
		return fmt.Errorf("delete card transactions: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("card delete result: %w", err)
	}
	if affected == 0 {
		return ErrCardNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	slog.InfoContext(ctx, "Card deleted with its transactions", "id", id)
	return nil
}

// ListTransactions returns every transaction, newest first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT id, card_id, transaction_type, amount_cents, description, category, tx_date
		 FROM transactions ORDER BY tx_date DESC, id DESC`)
}

// ListTransactionsByCard returns one card's transactions, newest first.
func (r *SQLiteRepository) ListTransactionsByCard(ctx context.Context, cardID int64) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT id, card_id, transaction_type, amount_cents, description, category, tx_date
		 FROM transactions WHERE card_id = ? ORDER BY tx_date DESC, id DESC`, cardID)
}

func (r *SQLiteRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var txType string
		if err := rows.Scan(&t.ID, &t.CardID, &txType, &t.Amount.Cents, &t.Description, &t.Category, &t.Date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = core.TransactionType(txType)
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// CountCards returns the number of cards in the store.
func (r *SQLiteRepository) CountCards(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}
