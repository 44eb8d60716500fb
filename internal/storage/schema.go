package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateSchema creates all tables and indexes for the fact store.
// Uses a transaction for atomicity - all schema creation succeeds or fails
// together.
//
// Must be called with SQLite PRAGMA foreign_keys = ON.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	// Enable foreign keys (must be set for each connection)
	if _, err := tx.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create all tables in dependency order
	tables := []struct {
		name string
		ddl  string
	}{
		{"scans", createScansTable},
		{"files", createFilesTable},
		{"defines", createDefinesTable},
		{"magic_numbers", createMagicNumbersTable},
		{"structs", createStructsTable},
		{"struct_members", createStructMembersTable},
		{"struct_values", createStructValuesTable},
		{"table_decls", createTableDeclsTable},
		{"call_edges", createCallEdgesTable},
		{"switch_cases", createSwitchCasesTable},
		{"scan_metadata", createScanMetadataTable},
	}

	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range getAllIndexes() {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	bootstrapSQL := `
		INSERT INTO scan_metadata (key, value, updated_at) VALUES
			('schema_version', '1.0', ?),
			('last_scan_id', '', ?)
	`
	if _, err := tx.Exec(bootstrapSQL, now, now); err != nil {
		return fmt.Errorf("failed to bootstrap scan_metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}

	return nil
}

// GetSchemaVersion retrieves the schema version from scan_metadata.
// Returns "0" if the table doesn't exist (new database).
func GetSchemaVersion(db *sql.DB) (string, error) {
	var tableExists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='scan_metadata'").Scan(&tableExists)
	if err != nil {
		return "", fmt.Errorf("failed to check scan_metadata existence: %w", err)
	}
	if tableExists == 0 {
		return "0", nil // New database
	}

	var version string
	query := "SELECT value FROM scan_metadata WHERE key = 'schema_version'"
	err = db.QueryRow(query).Scan(&version)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("schema_version key not found in scan_metadata")
	}
	if err != nil {
		return "", fmt.Errorf("failed to query schema version: %w", err)
	}
	return version, nil
}

// SetMetadata sets or updates one key in scan_metadata.
func SetMetadata(db *sql.DB, key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	query := `
		INSERT INTO scan_metadata (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := db.Exec(query, key, value, now); err != nil {
		return fmt.Errorf("failed to update metadata %s: %w", key, err)
	}
	return nil
}

// Table DDL constants

const createScansTable = `
CREATE TABLE scans (
    scan_id TEXT PRIMARY KEY,                    -- UUID
    root_path TEXT NOT NULL,                     -- Absolute path the scan ran over
    started_at TEXT NOT NULL,                    -- ISO 8601
    finished_at TEXT,                            -- ISO 8601, NULL while running
    file_count INTEGER NOT NULL DEFAULT 0
)
`

const createFilesTable = `
CREATE TABLE files (
    file_id TEXT PRIMARY KEY,                    -- UUID
    scan_id TEXT NOT NULL,
    rel_path TEXT NOT NULL,                      -- Relative to the scan root
    encoding TEXT NOT NULL,                      -- utf-8 or shift-jis
    line_count INTEGER NOT NULL DEFAULT 0,
    size_bytes INTEGER NOT NULL DEFAULT 0,
    scanned_at TEXT NOT NULL,                    -- ISO 8601
    FOREIGN KEY (scan_id) REFERENCES scans(scan_id) ON DELETE CASCADE,
    UNIQUE(scan_id, rel_path)
)
`

const createDefinesTable = `
CREATE TABLE defines (
    define_id TEXT PRIMARY KEY,                  -- UUID
    file_id TEXT NOT NULL,
    name TEXT NOT NULL,
    text TEXT NOT NULL,                          -- Normalized directive text
    line INTEGER NOT NULL,
    is_macro INTEGER NOT NULL DEFAULT 0,         -- Boolean: function-like macro
    FOREIGN KEY (file_id) REFERENCES files(file_id) ON DELETE CASCADE
)
`

const createMagicNumbersTable = `
CREATE TABLE magic_numbers (
    number_id TEXT PRIMARY KEY,                  -- UUID
    file_id TEXT NOT NULL,
    line INTEGER NOT NULL,
    col INTEGER NOT NULL,
    literal TEXT NOT NULL,
    context TEXT NOT NULL,                       -- The source line the literal sits on
    FOREIGN KEY (file_id) REFERENCES files(file_id) ON DELETE CASCADE
)
`

const createStructsTable = `
CREATE TABLE structs (
    struct_id TEXT PRIMARY KEY,                  -- UUID
    file_id TEXT NOT NULL,
    name TEXT NOT NULL,
    tag TEXT NOT NULL DEFAULT '',                -- struct tag when distinct from the typedef name
    line INTEGER NOT NULL,
    FOREIGN KEY (file_id) REFERENCES files(file_id) ON DELETE CASCADE
)
`

const createStructMembersTable = `
CREATE TABLE struct_members (
    member_id TEXT PRIMARY KEY,                  -- UUID
    struct_id TEXT NOT NULL,
    position INTEGER NOT NULL,                   -- 0-indexed declaration order
    member_type TEXT NOT NULL,
    name TEXT NOT NULL,
    FOREIGN KEY (struct_id) REFERENCES structs(struct_id) ON DELETE CASCADE
)
`

const createStructValuesTable = `
CREATE TABLE struct_values (
    value_id TEXT PRIMARY KEY,                   -- UUID
    file_id TEXT NOT NULL,
    struct_name TEXT NOT NULL,
    var_name TEXT NOT NULL,                      -- name, or name[] for arrays
    member_name TEXT NOT NULL,
    value TEXT NOT NULL DEFAULT '',
    array_size TEXT NOT NULL DEFAULT '',
    declaration_id INTEGER NOT NULL,             -- Ordinal per (struct, variable) pair
    element_index INTEGER NOT NULL,              -- -1 for scalars
    FOREIGN KEY (file_id) REFERENCES files(file_id) ON DELETE CASCADE
)
`

const createTableDeclsTable = `
CREATE TABLE table_decls (
    table_id TEXT PRIMARY KEY,                   -- UUID
    file_id TEXT NOT NULL,
    name TEXT NOT NULL,
    line INTEGER NOT NULL,
    text TEXT NOT NULL,                          -- Declaration through the closing semicolon
    FOREIGN KEY (file_id) REFERENCES files(file_id) ON DELETE CASCADE
)
`

const createCallEdgesTable = `
CREATE TABLE call_edges (
    edge_id TEXT PRIMARY KEY,                    -- UUID
    file_id TEXT NOT NULL,
    caller TEXT NOT NULL,
    callee TEXT NOT NULL,
    FOREIGN KEY (file_id) REFERENCES files(file_id) ON DELETE CASCADE
)
`

const createSwitchCasesTable = `
CREATE TABLE switch_cases (
    case_id TEXT PRIMARY KEY,                    -- UUID
    file_id TEXT NOT NULL,
    case_number INTEGER NOT NULL,                -- 1-based
    label TEXT NOT NULL,                         -- Case_01, Case_02, ...
    switch_name TEXT NOT NULL,
    enabled INTEGER NOT NULL,                    -- Boolean: macro defined in this case
    FOREIGN KEY (file_id) REFERENCES files(file_id) ON DELETE CASCADE
)
`

const createScanMetadataTable = `
CREATE TABLE scan_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
)
`

// getAllIndexes returns all index creation statements.
func getAllIndexes() []string {
	return []string{
		"CREATE INDEX idx_files_scan_id ON files(scan_id)",
		"CREATE INDEX idx_files_rel_path ON files(rel_path)",

		"CREATE INDEX idx_defines_file_id ON defines(file_id)",
		"CREATE INDEX idx_defines_name ON defines(name)",

		"CREATE INDEX idx_magic_numbers_file_id ON magic_numbers(file_id)",
		"CREATE INDEX idx_magic_numbers_literal ON magic_numbers(literal)",

		"CREATE INDEX idx_structs_file_id ON structs(file_id)",
		"CREATE INDEX idx_structs_name ON structs(name)",
		"CREATE INDEX idx_struct_members_struct_id ON struct_members(struct_id)",
		"CREATE INDEX idx_struct_values_file_id ON struct_values(file_id)",
		"CREATE INDEX idx_struct_values_struct_name ON struct_values(struct_name)",

		"CREATE INDEX idx_table_decls_file_id ON table_decls(file_id)",
		"CREATE INDEX idx_table_decls_name ON table_decls(name)",

		"CREATE INDEX idx_call_edges_file_id ON call_edges(file_id)",
		"CREATE INDEX idx_call_edges_caller ON call_edges(caller)",
		"CREATE INDEX idx_call_edges_callee ON call_edges(callee)",

		"CREATE INDEX idx_switch_cases_file_id ON switch_cases(file_id)",
		"CREATE INDEX idx_switch_cases_switch_name ON switch_cases(switch_name)",
	}
}
