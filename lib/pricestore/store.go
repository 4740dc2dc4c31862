// Package pricestore keeps every fetched historical series in a local
// sqlite database, so repeated runs build up a record instead of
// overwriting same-second CSV exports.
package pricestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"investing-crawler/lib/investing"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return Store{}, fmt.Errorf("apply schema: %w", err)
	}
	return Store{db: db}, nil
}

func (s Store) Close() error {
	return s.db.Close()
}

// Record persists one fetched series under the instrument name and fetch
// timestamp, preserving row order.
func (s Store) Record(ctx context.Context, instrument string, at time.Time, series investing.Series) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO fetches (instrument, fetched_at) VALUES (?, ?)`,
		instrument, at.Unix(),
	)
	if err != nil {
		return err
	}
	fetchId, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, o := range series {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO observations
				(fetch_id, position, date, price, open, high, low, volume, change_pct)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			fetchId, i, o.Date, o.Price, o.Open, o.High, o.Low, o.Volume, o.ChangePct,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

type Fetch struct {
	FetchedAt time.Time
	Series    investing.Series
}

// History returns every recorded fetch for the instrument, oldest first,
// each with its series in recorded order.
func (s Store) History(ctx context.Context, instrument string) ([]Fetch, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT f.id, f.fetched_at,
			o.date, o.price, o.open, o.high, o.low, o.volume, o.change_pct
			FROM fetches f
			JOIN observations o ON o.fetch_id = f.id
			WHERE f.instrument = ?
			ORDER BY f.fetched_at ASC, f.id ASC, o.position ASC`,
		instrument,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Fetch
	lastId := int64(-1)
	for rows.Next() {
		var id, fetchedAt int64
		var o investing.Observation
		err := rows.Scan(
			&id, &fetchedAt,
			&o.Date, &o.Price, &o.Open, &o.High, &o.Low, &o.Volume, &o.ChangePct,
		)
		if err != nil {
			return nil, err
		}

		if id != lastId {
			result = append(result, Fetch{FetchedAt: time.Unix(fetchedAt, 0)})
			lastId = id
		}
		last := &result[len(result)-1]
		last.Series = append(last.Series, o)
	}

	return result, rows.Err()
}
