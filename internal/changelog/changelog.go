package changelog

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"repair-backend/internal/metrics"
	"repair-backend/internal/models"
)

// Appender is the audit sink the core writes to after every finalized
// mutation. Appends are best-effort: a failed append loses the audit entry
// but never blocks or rolls back the mutation it describes.
type Appender interface {
	Append(ctx context.Context, entry models.ChangeLogEntry)
}

// PostgresLog appends entries to the change_log table.
type PostgresLog struct {
	DB *pgxpool.Pool
}

func NewPostgresLog(db *pgxpool.Pool) *PostgresLog {
	return &PostgresLog{DB: db}
}

func (l *PostgresLog) Append(ctx context.Context, entry models.ChangeLogEntry) {
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now()
	}
	_, err := l.DB.Exec(ctx,
		`INSERT INTO change_log(action, record_type, record_id, field_changed, old_value, new_value, logged_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7)`,
		entry.Action, entry.RecordType, entry.RecordID,
		entry.FieldChanged, entry.OldValue, entry.NewValue, entry.LoggedAt)
	if err != nil {
		metrics.ChangeLogAppendFailures.Inc()
		log.Printf("[ChangeLog] append failed for %s %s: %v", entry.RecordType, entry.RecordID, err)
	}
}

// List returns recent entries, newest first. Used only by the audit view,
// never by the core.
func (l *PostgresLog) List(ctx context.Context, limit int) ([]models.ChangeLogEntry, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := l.DB.Query(ctx,
		`SELECT id, action, record_type, record_id, field_changed, old_value, new_value, logged_at
		 FROM change_log ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ChangeLogEntry
	for rows.Next() {
		var e models.ChangeLogEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.RecordType, &e.RecordID,
			&e.FieldChanged, &e.OldValue, &e.NewValue, &e.LoggedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MemoryLog keeps entries in memory. Used in memory-only mode and in tests.
type MemoryLog struct {
	mu      sync.Mutex
	nextID  int
	Entries []models.ChangeLogEntry
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{nextID: 1}
}

func (l *MemoryLog) Append(ctx context.Context, entry models.ChangeLogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.ID = l.nextID
	l.nextID++
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now()
	}
	l.Entries = append(l.Entries, entry)
}

func (l *MemoryLog) List(ctx context.Context, limit int) ([]models.ChangeLogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.Entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]models.ChangeLogEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, l.Entries[i])
	}
	return out, nil
}

// Lister is the audit-view read contract (external collaborator surface).
type Lister interface {
	List(ctx context.Context, limit int) ([]models.ChangeLogEntry, error)
}
