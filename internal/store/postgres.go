package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"repair-backend/internal/models"
)

// Record families as stored in the records table
const (
	familyService = "service"
	familyLaptop  = "laptop"
	familyVendor  = "vendor"
)

// PostgresStore persists snapshots in a single generic records table with
// jsonb payloads. Save clears the table and reinserts every record inside
// one transaction, so a reader never observes a half-cleared store.
type PostgresStore struct {
	DB *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (p *PostgresStore) Save(ctx context.Context, snap models.Snapshot) error {
	tx, err := p.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	insert := func(family, id string, pos int, record interface{}) error {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", family, id, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO records(family, record_id, position, payload) VALUES($1, $2, $3, $4)`,
			family, id, pos, payload)
		if err != nil {
			return fmt.Errorf("insert %s %s: %w", family, id, err)
		}
		return nil
	}

	for i, r := range snap.Services {
		if err := insert(familyService, r.ServiceID, i, r); err != nil {
			return err
		}
	}
	for i, r := range snap.Laptops {
		if err := insert(familyLaptop, r.LaptopID, i, r); err != nil {
			return err
		}
	}
	for i, r := range snap.Vendors {
		if err := insert(familyVendor, r.VendorID, i, r); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (p *PostgresStore) Load(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot

	rows, err := p.DB.Query(ctx,
		`SELECT family, payload FROM records ORDER BY family, position`)
	if err != nil {
		return snap, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var family string
		var payload []byte
		if err := rows.Scan(&family, &payload); err != nil {
			return snap, fmt.Errorf("scan record: %w", err)
		}

		switch family {
		case familyService:
			var r models.ServiceRecord
			if err := json.Unmarshal(payload, &r); err != nil {
				return snap, fmt.Errorf("unmarshal service record: %w", err)
			}
			snap.Services = append(snap.Services, r)
		case familyLaptop:
			var r models.LaptopRecord
			if err := json.Unmarshal(payload, &r); err != nil {
				return snap, fmt.Errorf("unmarshal laptop record: %w", err)
			}
			snap.Laptops = append(snap.Laptops, r)
		case familyVendor:
			var r models.VendorRecord
			if err := json.Unmarshal(payload, &r); err != nil {
				return snap, fmt.Errorf("unmarshal vendor record: %w", err)
			}
			snap.Vendors = append(snap.Vendors, r)
		}
	}

	return snap, rows.Err()
}
