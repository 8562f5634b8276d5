package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

type DB struct {
	sdb *sql.DB
}

func Open(ctx context.Context, path string) (*DB, error) {
	sdb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer; serializing through one connection
	// avoids SQLITE_BUSY during a run.
	sdb.SetMaxOpenConns(1)

	if err := sdb.PingContext(ctx); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &DB{sdb: sdb}, nil
}

func (d *DB) Close() {
	_ = d.sdb.Close()
}

func (d *DB) Exec(ctx context.Context, query string, args ...any) error {
	_, err := d.sdb.ExecContext(ctx, query, args...)
	return err
}

func (d *DB) ExecID(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := d.sdb.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (d *DB) QueryRow(ctx context.Context, query string, args ...any) Row {
	return d.sdb.QueryRowContext(ctx, query, args...)
}

func (d *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.sdb.QueryContext(ctx, query, args...)
}

type Row interface {
	Scan(dest ...any) error
}

var ErrNotFound = errors.New("not found")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

func WrapNotFound(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("db: %w", err)
}
