package db

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return conn
}

func TestWithTxCommits(t *testing.T) {
	client := FromGorm(openSQLite(t))

	if err := client.DB().Exec(`CREATE TABLE IF NOT EXISTS tx_probe (id INTEGER PRIMARY KEY, val TEXT)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec(`INSERT INTO tx_probe (val) VALUES ('committed')`).Error
	})
	if err != nil {
		t.Fatalf("WithTx returned error: %v", err)
	}

	var count int64
	if err := client.DB().Raw(`SELECT COUNT(*) FROM tx_probe WHERE val = 'committed'`).Scan(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected committed row, got %d", count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := FromGorm(openSQLite(t))

	if err := client.DB().Exec(`CREATE TABLE IF NOT EXISTS tx_probe2 (id INTEGER PRIMARY KEY, val TEXT)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	boom := errors.New("boom")
	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO tx_probe2 (val) VALUES ('doomed')`).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int64
	if err := client.DB().Raw(`SELECT COUNT(*) FROM tx_probe2`).Scan(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, found %d rows", count)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(gorm.ErrRecordNotFound) {
		t.Fatal("expected true for gorm.ErrRecordNotFound")
	}
	if IsNotFound(errors.New("other")) {
		t.Fatal("expected false for unrelated error")
	}
}
