// Package cache keeps a last-known-good copy of fetched portal data in a
// local SQLite file. It lets list screens open instantly and keeps `--cached`
// CLI reads working when the portal is unreachable. It is a read cache only:
// the snapshot store and ledger of the sync core are never persisted.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"portal-cli/internal/config"
	"portal-cli/internal/model"

	_ "modernc.org/sqlite"
)

const (
	kindTask = "task"
	kindNews = "news"
)

type Cache struct {
	db *sql.DB
}

// DefaultPath places the cache next to the config file.
func DefaultPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.sqlite"), nil
}

func Open(ctx context.Context, path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout: CLI and TUI may hit the cache concurrently.
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
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS entries (
		kind TEXT NOT NULL,
		id TEXT NOT NULL,
		pos INTEGER NOT NULL DEFAULT 0,
		payload_json TEXT NOT NULL,
		fetched_at_unixms INTEGER NOT NULL,
		PRIMARY KEY (kind, id)
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Cache) put(ctx context.Context, kind, id string, pos int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO entries(kind, id, pos, payload_json, fetched_at_unixms) VALUES(?, ?, ?, ?, ?)`,
		kind, id, pos, string(b), time.Now().UnixMilli())
	return err
}

func (c *Cache) get(ctx context.Context, kind, id string, out any) (time.Time, bool, error) {
	var payload string
	var fetchedMS int64
	err := c.db.QueryRowContext(ctx,
		`SELECT payload_json, fetched_at_unixms FROM entries WHERE kind = ? AND id = ?`,
		kind, id).Scan(&payload, &fetchedMS)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(fetchedMS), true, nil
}

// replaceKind swaps the whole list for a kind in one transaction so a
// partially-written list is never observable.
func (c *Cache) replaceKind(ctx context.Context, kind string, ids []string, payloads []any) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE kind = ?`, kind); err != nil {
		return err
	}
	now := time.Now().UnixMilli()
	for i, id := range ids {
		b, err := json.Marshal(payloads[i])
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entries(kind, id, pos, payload_json, fetched_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			kind, id, i, string(b), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (c *Cache) listKind(ctx context.Context, kind string, each func(payload []byte) error) error {
	rows, err := c.db.QueryContext(ctx,
		`SELECT payload_json FROM entries WHERE kind = ? ORDER BY pos`, kind)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return err
		}
		if err := each([]byte(payload)); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (c *Cache) PutTask(ctx context.Context, t model.Task) error {
	return c.put(ctx, kindTask, t.ID, 0, t)
}

func (c *Cache) GetTask(ctx context.Context, id string) (model.Task, time.Time, bool, error) {
	var t model.Task
	at, ok, err := c.get(ctx, kindTask, id, &t)
	return t, at, ok, err
}

func (c *Cache) PutTasks(ctx context.Context, tasks []model.Task) error {
	ids := make([]string, len(tasks))
	payloads := make([]any, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
		payloads[i] = t
	}
	return c.replaceKind(ctx, kindTask, ids, payloads)
}

func (c *Cache) ListTasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	err := c.listKind(ctx, kindTask, func(payload []byte) error {
		var t model.Task
		if err := json.Unmarshal(payload, &t); err != nil {
			return err
		}
		out = append(out, t)
		return nil
	})
	return out, err
}

func (c *Cache) PutNews(ctx context.Context, posts []model.NewsPost) error {
	ids := make([]string, len(posts))
	payloads := make([]any, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		payloads[i] = p
	}
	return c.replaceKind(ctx, kindNews, ids, payloads)
}

func (c *Cache) ListNews(ctx context.Context) ([]model.NewsPost, error) {
	var out []model.NewsPost
	err := c.listKind(ctx, kindNews, func(payload []byte) error {
		var p model.NewsPost
		if err := json.Unmarshal(payload, &p); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}
