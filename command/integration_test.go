package command

import (
	"bytes"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sqlbind/sqlbind/convert"
	"github.com/sqlbind/sqlbind/entity"
	"github.com/sqlbind/sqlbind/statement"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE [Account] (
		[Avatar] BLOB,
		[CreatedAt] TIMESTAMP,
		[Id] INTEGER PRIMARY KEY,
		[Level] TEXT,
		[Name] TEXT
	)`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func insertAccount(t *testing.T, db *sql.DB, meta *entity.Metadata, record Account) {
	t.Helper()
	cmd, slots, err := BuildInsert(db, meta)
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}
	if err := Populate(meta, slots, record, convert.ModeStrings); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if _, err := cmd.Conn().ExecContext(cmd.Context(), cmd.Text, cmd.Args()...); err != nil {
		t.Fatalf("exec insert: %v", err)
	}
}

func TestIntegration_InsertAndQuery(t *testing.T) {
	db := openTestDB(t)
	meta := entity.MustOf[Account]()

	record := Account{
		Id:        1,
		Name:      "ada",
		Avatar:    []byte{0xCA, 0xFE},
		CreatedAt: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
		Level:     LevelAdmin,
	}
	insertAccount(t, db, meta, record)

	var (
		name, level string
		avatar      []byte
	)
	row := db.QueryRow("SELECT [Name], [Level], [Avatar] FROM [Account] WHERE [Id] = @Id", sql.Named("Id", int64(1)))
	if err := row.Scan(&name, &level, &avatar); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if name != "ada" {
		t.Errorf("Name: got %q", name)
	}
	if level != "Admin" {
		t.Errorf("Level: got %q, want the serialized member name", level)
	}
	if !bytes.Equal(avatar, []byte{0xCA, 0xFE}) {
		t.Errorf("Avatar: got %x", avatar)
	}
}

func TestIntegration_Update(t *testing.T) {
	db := openTestDB(t)
	meta := entity.MustOf[Account]()
	insertAccount(t, db, meta, Account{Id: 2, Name: "before", Level: LevelBasic})

	cmd, slots, err := BuildUpdate(db, meta)
	if err != nil {
		t.Fatalf("build update: %v", err)
	}
	changed := Account{Id: 2, Name: "after", Level: LevelBasic}
	if err := Populate(meta, slots, changed, convert.ModeStrings); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if _, err := cmd.Conn().ExecContext(cmd.Context(), cmd.Text, cmd.Args()...); err != nil {
		t.Fatalf("exec update: %v", err)
	}

	var name string
	if err := db.QueryRow("SELECT [Name] FROM [Account] WHERE [Id] = 2").Scan(&name); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if name != "after" {
		t.Errorf("Name: got %q", name)
	}
}

func TestIntegration_Delete(t *testing.T) {
	db := openTestDB(t)
	meta := entity.MustOf[Account]()
	insertAccount(t, db, meta, Account{Id: 3, Name: "gone", Level: LevelBasic})

	cmd, slot, err := BuildDelete(db, meta)
	if err != nil {
		t.Fatalf("build delete: %v", err)
	}
	if err := PopulateKey(meta, slot, Account{Id: 3}, convert.ModeStrings); err != nil {
		t.Fatalf("populate key: %v", err)
	}
	if _, err := cmd.Conn().ExecContext(cmd.Context(), cmd.Text, cmd.Args()...); err != nil {
		t.Fatalf("exec delete: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM [Account] WHERE [Id] = 3").Scan(&count); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if count != 0 {
		t.Errorf("got %d rows, want 0", count)
	}
}

func TestIntegration_FromStatement(t *testing.T) {
	db := openTestDB(t)
	meta := entity.MustOf[Account]()
	insertAccount(t, db, meta, Account{Id: 4, Name: "query-me", Level: LevelBasic})

	s, err := statement.Compose("SELECT [Name] FROM [Account] WHERE [Id] = {id}", statement.P(int64(4)))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	cmd, err := FromStatement(db, s)
	if err != nil {
		t.Fatalf("from statement: %v", err)
	}

	rows, err := cmd.Conn().QueryContext(cmd.Context(), cmd.Text, cmd.Args()...)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	if !rows.Next() {
		t.Fatalf("expected a row, err=%v", rows.Err())
	}
	var name string
	if err := rows.Scan(&name); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if name != "query-me" {
		t.Errorf("Name: got %q", name)
	}
}
