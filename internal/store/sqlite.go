package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"shopsphere/internal/model"

	_ "modernc.org/sqlite"
)

// DocStore is the per-user shop document table backing the sync server.
// Each row is one shop document; writes replace the whole lists payload
// (last-writer-wins at the document level).
type DocStore struct {
	db *sql.DB
}

// OpenDocStore opens (and migrates) the document db at path.
func OpenDocStore(ctx context.Context, path string) (*DocStore, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas for one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness under concurrent connections.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS shops (
		user_id    TEXT NOT NULL,
		shop_id    TEXT NOT NULL,
		name       TEXT NOT NULL,
		icon       TEXT NOT NULL,
		lists_json TEXT NOT NULL,
		ord        INTEGER NOT NULL,
		PRIMARY KEY (user_id, shop_id)
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_shops_user_ord ON shops(user_id, ord);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DocStore{db: db}, nil
}

func (d *DocStore) Close() error {
	return d.db.Close()
}

// ListShops returns one user's collection ordered by ord ascending (the
// order the live channel promises). Rows with unparseable lists payloads are
// returned with empty lists rather than failing the whole load.
func (d *DocStore) ListShops(ctx context.Context, userID string) ([]model.Shop, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT shop_id, name, icon, lists_json, ord FROM shops WHERE user_id = ? ORDER BY ord ASC`,
		strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := []model.Shop{}
	for rows.Next() {
		var s model.Shop
		var listsJSON string
		if err := rows.Scan(&s.ID, &s.Name, &s.Icon, &listsJSON, &s.Order); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(listsJSON), &s.Lists)
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

// PutShop upserts one shop document. The whole lists payload is replaced;
// the later of two concurrent writes wins entirely.
func (d *DocStore) PutShop(ctx context.Context, userID string, s model.Shop) error {
	listsJSON, err := json.Marshal(s.Lists)
	if err != nil {
		return err
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO shops (user_id, shop_id, name, icon, lists_json, ord) VALUES (?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(userID), s.ID, s.Name, s.Icon, string(listsJSON), s.Order)
	return err
}

// DeleteShop removes one document and re-densifies the remaining orders to
// 0..n-1 in one transaction, so repeated deletions can't drift order values.
func (d *DocStore) DeleteShop(ctx context.Context, userID, shopID string) error {
	userID = strings.TrimSpace(userID)

	tx, err := d.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM shops WHERE user_id = ? AND shop_id = ?`, userID, shopID); err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT shop_id FROM shops WHERE user_id = ? ORDER BY ord ASC`, userID)
	if err != nil {
		return err
	}
	remaining := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return err
		}
		remaining = append(remaining, id)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	_ = rows.Close()

	for i, id := range remaining {
		if _, err := tx.ExecContext(ctx,
			`UPDATE shops SET ord = ? WHERE user_id = ? AND shop_id = ?`, i, userID, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ReplaceAll writes one user's full collection, dropping documents that are
// no longer present. Used for store-level reorders, which touch every ord.
func (d *DocStore) ReplaceAll(ctx context.Context, userID string, shops []model.Shop) error {
	userID = strings.TrimSpace(userID)

	tx, err := d.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shops WHERE user_id = ?`, userID); err != nil {
		return err
	}
	for _, s := range shops {
		listsJSON, err := json.Marshal(s.Lists)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shops (user_id, shop_id, name, icon, lists_json, ord) VALUES (?, ?, ?, ?, ?, ?)`,
			userID, s.ID, s.Name, s.Icon, string(listsJSON), s.Order); err != nil {
			return err
		}
	}
	return tx.Commit()
}
