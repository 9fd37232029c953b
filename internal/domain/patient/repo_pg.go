package patient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// -- Postgres Repository --

// PGRepository keeps each patient body as a JSONB row in patient_record.
// The position column preserves collection order.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Load(ctx context.Context) (*Collection, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, body FROM patient_record ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query patient_record: %w", err)
	}
	defer rows.Close()

	c := NewCollection()
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scan patient_record: %w", err)
		}
		var rec Record
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, fmt.Errorf("decode patient %s: %w", id, err)
		}
		c.Put(id, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patient_record: %w", err)
	}
	return c, nil
}

// Save replaces the table contents with c inside one transaction.
func (r *PGRepository) Save(ctx context.Context, c *Collection) error {
	ids := c.IDs()
	bodies := make([]string, len(ids))
	for i, id := range ids {
		rec, _ := c.Get(id)
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode patient %s: %w", id, err)
		}
		bodies[i] = string(b)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM patient_record`); err != nil {
		return fmt.Errorf("clear patient_record: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"patient_record"},
		[]string{"id", "position", "body"},
		pgx.CopyFromSlice(len(ids), func(i int) ([]any, error) {
			return []any{ids[i], int32(i), bodies[i]}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy patient_record: %w", err)
	}

	return tx.Commit(ctx)
}
