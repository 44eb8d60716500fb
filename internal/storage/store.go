// Package storage persists extracted facts to SQLite, one row per fact,
// keyed by scan and file.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/csift/csift/internal/extract"
	"github.com/csift/csift/internal/preproc"
)

// Open opens or creates the fact database at dbPath and makes sure the
// schema exists. Pass ":memory:" for an ephemeral store.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys (off by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	version, err := GetSchemaVersion(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if version == "0" {
		if err := CreateSchema(db); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

// Store writes scan results. The underlying DB is owned by the caller.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store instance.
// DB must have schema already created via CreateSchema().
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// BeginScan records a new scan over rootPath and returns its id.
func (s *Store) BeginScan(rootPath string) (string, error) {
	scanID := uuid.NewString()
	_, err := sq.Insert("scans").
		Columns("scan_id", "root_path", "started_at").
		Values(scanID, rootPath, time.Now().UTC().Format(time.RFC3339)).
		RunWith(s.db).
		Exec()
	if err != nil {
		return "", fmt.Errorf("failed to record scan start: %w", err)
	}
	return scanID, nil
}

// FinishScan stamps the scan's end time and file count and marks it as the
// most recent scan.
func (s *Store) FinishScan(scanID string, fileCount int) error {
	_, err := sq.Update("scans").
		Set("finished_at", time.Now().UTC().Format(time.RFC3339)).
		Set("file_count", fileCount).
		Where(sq.Eq{"scan_id": scanID}).
		RunWith(s.db).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to record scan end: %w", err)
	}
	return SetMetadata(s.db, "last_scan_id", scanID)
}

// FileFacts bundles everything extracted from one source file.
type FileFacts struct {
	RelPath   string
	Encoding  string
	LineCount int
	SizeBytes int64

	Defines      []extract.Define
	Macros       []extract.Define
	MagicNumbers []extract.MagicNumber
	Structs      []extract.StructDecl
	Values       []extract.ValueBinding
	Tables       []extract.TableDecl
	CallEdges    []extract.CallEdge
	Cases        []preproc.CaseAssignment
}

// WriteFileFacts writes one file's facts in a single transaction and returns
// the new file id. A file already recorded for this scan is replaced
// wholesale; the cascade clears its old fact rows.
func (s *Store) WriteFileFacts(scanID string, facts *FileFacts) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	_, err = sq.Delete("files").
		Where(sq.Eq{"scan_id": scanID, "rel_path": facts.RelPath}).
		RunWith(tx).
		Exec()
	if err != nil {
		return "", fmt.Errorf("failed to clear old facts for %s: %w", facts.RelPath, err)
	}

	fileID := uuid.NewString()
	_, err = sq.Insert("files").
		Columns("file_id", "scan_id", "rel_path", "encoding", "line_count", "size_bytes", "scanned_at").
		Values(fileID, scanID, facts.RelPath, facts.Encoding, facts.LineCount, facts.SizeBytes,
			time.Now().UTC().Format(time.RFC3339)).
		RunWith(tx).
		Exec()
	if err != nil {
		return "", fmt.Errorf("failed to insert file %s: %w", facts.RelPath, err)
	}

	if err := writeDefines(tx, fileID, facts.Defines, false); err != nil {
		return "", err
	}
	if err := writeDefines(tx, fileID, facts.Macros, true); err != nil {
		return "", err
	}
	if err := writeMagicNumbers(tx, fileID, facts.MagicNumbers); err != nil {
		return "", err
	}
	if err := writeStructs(tx, fileID, facts.Structs); err != nil {
		return "", err
	}
	if err := writeValues(tx, fileID, facts.Values); err != nil {
		return "", err
	}
	if err := writeTables(tx, fileID, facts.Tables); err != nil {
		return "", err
	}
	if err := writeCallEdges(tx, fileID, facts.CallEdges); err != nil {
		return "", err
	}
	if err := writeSwitchCases(tx, fileID, facts.Cases); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit facts for %s: %w", facts.RelPath, err)
	}
	return fileID, nil
}

func writeDefines(tx *sql.Tx, fileID string, defines []extract.Define, isMacro bool) error {
	if len(defines) == 0 {
		return nil
	}

	sqlStr, _, err := sq.Insert("defines").
		Columns("define_id", "file_id", "name", "text", "line", "is_macro").
		Values("", "", "", "", 0, false).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build define SQL: %w", err)
	}

	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		return fmt.Errorf("failed to prepare define statement: %w", err)
	}
	defer stmt.Close()

	for _, d := range defines {
		if _, err := stmt.Exec(uuid.NewString(), fileID, d.Name, d.Text, d.Line, isMacro); err != nil {
			return fmt.Errorf("failed to insert define %s: %w", d.Name, err)
		}
	}
	return nil
}

func writeMagicNumbers(tx *sql.Tx, fileID string, numbers []extract.MagicNumber) error {
	if len(numbers) == 0 {
		return nil
	}

	sqlStr, _, err := sq.Insert("magic_numbers").
		Columns("number_id", "file_id", "line", "col", "literal", "context").
		Values("", "", 0, 0, "", "").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build magic number SQL: %w", err)
	}

	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		return fmt.Errorf("failed to prepare magic number statement: %w", err)
	}
	defer stmt.Close()

	for _, n := range numbers {
		if _, err := stmt.Exec(uuid.NewString(), fileID, n.Line, n.Column, n.Literal, n.Context); err != nil {
			return fmt.Errorf("failed to insert magic number %s: %w", n.Literal, err)
		}
	}
	return nil
}

func writeStructs(tx *sql.Tx, fileID string, structs []extract.StructDecl) error {
	if len(structs) == 0 {
		return nil
	}

	structSQL, _, err := sq.Insert("structs").
		Columns("struct_id", "file_id", "name", "tag", "line").
		Values("", "", "", "", 0).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build struct SQL: %w", err)
	}
	memberSQL, _, err := sq.Insert("struct_members").
		Columns("member_id", "struct_id", "position", "member_type", "name").
		Values("", "", 0, "", "").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build member SQL: %w", err)
	}

	structStmt, err := tx.Prepare(structSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare struct statement: %w", err)
	}
	defer structStmt.Close()

	memberStmt, err := tx.Prepare(memberSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare member statement: %w", err)
	}
	defer memberStmt.Close()

	for _, st := range structs {
		structID := uuid.NewString()
		if _, err := structStmt.Exec(structID, fileID, st.Name, st.Tag, st.Line); err != nil {
			return fmt.Errorf("failed to insert struct %s: %w", st.Name, err)
		}
		for i, m := range st.Members {
			if _, err := memberStmt.Exec(uuid.NewString(), structID, i, m.Type, m.Name); err != nil {
				return fmt.Errorf("failed to insert member %s.%s: %w", st.Name, m.Name, err)
			}
		}
	}
	return nil
}

func writeValues(tx *sql.Tx, fileID string, values []extract.ValueBinding) error {
	if len(values) == 0 {
		return nil
	}

	sqlStr, _, err := sq.Insert("struct_values").
		Columns("value_id", "file_id", "struct_name", "var_name", "member_name",
			"value", "array_size", "declaration_id", "element_index").
		Values("", "", "", "", "", "", "", 0, 0).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build value SQL: %w", err)
	}

	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		return fmt.Errorf("failed to prepare value statement: %w", err)
	}
	defer stmt.Close()

	for _, v := range values {
		_, err := stmt.Exec(uuid.NewString(), fileID, v.StructName, v.VarName, v.MemberName,
			v.Value, v.ArraySize, v.DeclarationID, v.ElementIndex)
		if err != nil {
			return fmt.Errorf("failed to insert value %s.%s: %w", v.StructName, v.MemberName, err)
		}
	}
	return nil
}

func writeTables(tx *sql.Tx, fileID string, tables []extract.TableDecl) error {
	if len(tables) == 0 {
		return nil
	}

	sqlStr, _, err := sq.Insert("table_decls").
		Columns("table_id", "file_id", "name", "line", "text").
		Values("", "", "", 0, "").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build table SQL: %w", err)
	}

	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		return fmt.Errorf("failed to prepare table statement: %w", err)
	}
	defer stmt.Close()

	for _, tb := range tables {
		if _, err := stmt.Exec(uuid.NewString(), fileID, tb.Name, tb.Line, tb.Text); err != nil {
			return fmt.Errorf("failed to insert table %s: %w", tb.Name, err)
		}
	}
	return nil
}

func writeCallEdges(tx *sql.Tx, fileID string, edges []extract.CallEdge) error {
	if len(edges) == 0 {
		return nil
	}

	sqlStr, _, err := sq.Insert("call_edges").
		Columns("edge_id", "file_id", "caller", "callee").
		Values("", "", "", "").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build edge SQL: %w", err)
	}

	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		return fmt.Errorf("failed to prepare edge statement: %w", err)
	}
	defer stmt.Close()

	// Duplicate call sites are kept as distinct rows.
	for _, e := range edges {
		if _, err := stmt.Exec(uuid.NewString(), fileID, e.Caller, e.Callee); err != nil {
			return fmt.Errorf("failed to insert edge %s->%s: %w", e.Caller, e.Callee, err)
		}
	}
	return nil
}

func writeSwitchCases(tx *sql.Tx, fileID string, cases []preproc.CaseAssignment) error {
	if len(cases) == 0 {
		return nil
	}

	sqlStr, _, err := sq.Insert("switch_cases").
		Columns("case_id", "file_id", "case_number", "label", "switch_name", "enabled").
		Values("", "", 0, "", "", false).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build case SQL: %w", err)
	}

	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		return fmt.Errorf("failed to prepare case statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range cases {
		for name, enabled := range c.Assignment {
			if _, err := stmt.Exec(uuid.NewString(), fileID, c.Number, c.Label, name, enabled); err != nil {
				return fmt.Errorf("failed to insert case %s: %w", c.Label, err)
			}
		}
	}
	return nil
}

// LoadCallEdges reads every call edge of a scan, in insertion order, for
// graph queries over the whole code base.
func (s *Store) LoadCallEdges(scanID string) ([]extract.CallEdge, error) {
	rows, err := sq.Select("c.caller", "c.callee").
		From("call_edges c").
		Join("files f ON f.file_id = c.file_id").
		Where(sq.Eq{"f.scan_id": scanID}).
		OrderBy("c.rowid").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query call edges: %w", err)
	}
	defer rows.Close()

	var edges []extract.CallEdge
	for rows.Next() {
		var e extract.CallEdge
		if err := rows.Scan(&e.Caller, &e.Callee); err != nil {
			return nil, fmt.Errorf("failed to scan call edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// LastScanID returns the id of the most recently finished scan, or "" when
// the store has never been written.
func (s *Store) LastScanID() (string, error) {
	var id string
	err := s.db.QueryRow("SELECT value FROM scan_metadata WHERE key = 'last_scan_id'").Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query last scan: %w", err)
	}
	return id, nil
}
