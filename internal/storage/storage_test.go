package storage

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csift/csift/internal/extract"
	"github.com/csift/csift/internal/preproc"
)

// openTestDB creates an in-memory database with the schema applied.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	require.NoError(t, CreateSchema(db))
	return db
}

func TestCreateSchema_TablesExist(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	expected := []string{
		"scans", "files", "defines", "magic_numbers", "structs",
		"struct_members", "struct_values", "table_decls", "call_edges",
		"switch_cases", "scan_metadata",
	}
	for _, table := range expected {
		var count int
		err := db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}
}

func TestGetSchemaVersion(t *testing.T) {
	t.Parallel()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	version, err := GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, "0", version, "empty database reports version 0")

	require.NoError(t, CreateSchema(db))

	version, err = GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, "1.0", version)
}

func TestStore_ScanLifecycle(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	store := NewStore(db)

	scanID, err := store.BeginScan("/src/project")
	require.NoError(t, err)
	require.NotEmpty(t, scanID)

	require.NoError(t, store.FinishScan(scanID, 3))

	var finished sql.NullString
	var count int
	err = db.QueryRow("SELECT finished_at, file_count FROM scans WHERE scan_id = ?", scanID).
		Scan(&finished, &count)
	require.NoError(t, err)
	assert.True(t, finished.Valid)
	assert.Equal(t, 3, count)

	last, err := store.LastScanID()
	require.NoError(t, err)
	assert.Equal(t, scanID, last)
}

func TestStore_WriteFileFacts(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	store := NewStore(db)

	scanID, err := store.BeginScan("/src/project")
	require.NoError(t, err)

	facts := &FileFacts{
		RelPath:   "drivers/uart.c",
		Encoding:  "utf-8",
		LineCount: 120,
		SizeBytes: 4096,
		Defines: []extract.Define{
			{Name: "BAUD_RATE", Text: "#define BAUD_RATE 115200", Line: 3},
		},
		Macros: []extract.Define{
			{Name: "MIN", Text: "#define MIN(a,b) ((a)<(b)?(a):(b))", Line: 5, IsMacro: true},
		},
		MagicNumbers: []extract.MagicNumber{
			{Line: 10, Column: 14, Literal: "0x1A", Context: "reg = 0x1A;"},
		},
		Structs: []extract.StructDecl{
			{Name: "UartConf", Line: 20, Members: []extract.StructMember{
				{Type: "int", Name: "baud"},
				{Type: "char", Name: "parity"},
			}},
		},
		Values: []extract.ValueBinding{
			{StructName: "UartConf", VarName: "conf", MemberName: "baud",
				Value: "9600", DeclarationID: 1, ElementIndex: -1},
		},
		Tables: []extract.TableDecl{
			{Name: "dividers", Line: 30, Text: "int dividers[4] = {1, 2, 4, 8};"},
		},
		CallEdges: []extract.CallEdge{
			{Caller: "uart_init", Callee: "set_baud"},
			{Caller: "uart_init", Callee: "set_baud"},
		},
		Cases: []preproc.CaseAssignment{
			{Number: 1, Label: "Case_01", Assignment: map[string]bool{"DEBUG": true}},
		},
	}

	fileID, err := store.WriteFileFacts(scanID, facts)
	require.NoError(t, err)
	require.NotEmpty(t, fileID)

	counts := map[string]int{
		"defines":        2,
		"magic_numbers":  1,
		"structs":        1,
		"struct_members": 2,
		"struct_values":  1,
		"table_decls":    1,
		"call_edges":     2,
		"switch_cases":   1,
	}
	for table, want := range counts {
		var got int
		err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&got)
		require.NoError(t, err)
		assert.Equal(t, want, got, "row count for %s", table)
	}

	var isMacro bool
	err = db.QueryRow("SELECT is_macro FROM defines WHERE name = 'MIN'").Scan(&isMacro)
	require.NoError(t, err)
	assert.True(t, isMacro)
}

func TestStore_RewriteReplacesFacts(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	store := NewStore(db)

	scanID, err := store.BeginScan("/src/project")
	require.NoError(t, err)

	first := &FileFacts{
		RelPath:  "main.c",
		Encoding: "utf-8",
		Defines:  []extract.Define{{Name: "OLD", Text: "#define OLD 1", Line: 1}},
	}
	_, err = store.WriteFileFacts(scanID, first)
	require.NoError(t, err)

	second := &FileFacts{
		RelPath:  "main.c",
		Encoding: "utf-8",
		Defines:  []extract.Define{{Name: "NEW", Text: "#define NEW 2", Line: 1}},
	}
	_, err = store.WriteFileFacts(scanID, second)
	require.NoError(t, err)

	// Cascade from the replaced file row removes the stale define.
	var names []string
	rows, err := db.Query("SELECT name FROM defines")
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"NEW"}, names)
}

func TestStore_LoadCallEdges(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	store := NewStore(db)

	scanID, err := store.BeginScan("/src/project")
	require.NoError(t, err)

	_, err = store.WriteFileFacts(scanID, &FileFacts{
		RelPath:  "a.c",
		Encoding: "utf-8",
		CallEdges: []extract.CallEdge{
			{Caller: "main", Callee: "run"},
			{Caller: "run", Callee: "step"},
		},
	})
	require.NoError(t, err)

	edges, err := store.LoadCallEdges(scanID)
	require.NoError(t, err)
	require.Len(t, edges, 2)
	assert.Equal(t, extract.CallEdge{Caller: "main", Callee: "run"}, edges[0])
	assert.Equal(t, extract.CallEdge{Caller: "run", Callee: "step"}, edges[1])
}
