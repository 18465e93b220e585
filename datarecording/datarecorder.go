// Package datarecording stores simulation records in a SQLite database.
package datarecording

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"sort"
	"strings"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that can record and store data
type DataRecorder interface {
	// CreateTable creates a table whose columns are the fields of the sample
	// entry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers an entry of the same type as the sample entry of
	// the table.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all the tables, sorted.
	ListTables() []string

	// Flush writes all the buffered entries into the database.
	Flush()

	// Close flushes and closes the database.
	Close() error
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// New creates a DataRecorder that writes into path + ".sqlite3". A random
// name is used if path is empty. The file must not exist yet. Buffered
// entries are flushed when the program exits through atexit.
func New(path string) (DataRecorder, error) {
	if path == "" {
		path = "pagingsim_recording_" + xid.New().String()
	}

	filename := path + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		return nil, fmt.Errorf("file %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}

	w := newSQLiteWriter(db)
	w.filename = filename

	atexit.Register(func() { w.Flush() })

	return w, nil
}

// NewWithDB creates a DataRecorder over an open database. Closing the
// recorder closes the database.
func NewWithDB(db *sql.DB) DataRecorder {
	return newSQLiteWriter(db)
}

type table struct {
	structType reflect.Type
	columns    []string
	entries    []any
}

// sqliteWriter is the writer that writes data into SQLite database
type sqliteWriter struct {
	*sql.DB

	filename   string
	tables     map[string]*table
	batchSize  int
	entryCount int
	closed     bool
}

func newSQLiteWriter(db *sql.DB) *sqliteWriter {
	return &sqliteWriter{
		DB:        db,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}
}

func (t *sqliteWriter) isAllowedType(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func (t *sqliteWriter) columnsOf(entry any) ([]string, error) {
	types := reflect.TypeOf(entry)
	if types == nil || types.Kind() != reflect.Struct {
		return nil, errors.New("entry must be a struct")
	}

	columns := make([]string, 0, types.NumField())

	for i := 0; i < types.NumField(); i++ {
		field := types.Field(i)

		if !field.IsExported() {
			return nil, fmt.Errorf("field %s is not exported", field.Name)
		}

		if !t.isAllowedType(field.Type.Kind()) {
			return nil, fmt.Errorf("field %s has unsupported type %s",
				field.Name, field.Type)
		}

		columns = append(columns, field.Name)
	}

	return columns, nil
}

func (t *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	if !tableNamePattern.MatchString(tableName) {
		panic(fmt.Sprintf("invalid table name %q", tableName))
	}

	if _, exists := t.tables[tableName]; exists {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}

	columns, err := t.columnsOf(sampleEntry)
	if err != nil {
		panic(err)
	}

	createTableSQL := `CREATE TABLE ` + tableName +
		` (` + "\n\t" + strings.Join(columns, ", \n\t") + "\n" + `);`
	t.mustExecute(createTableSQL)

	t.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
		columns:    columns,
	}
}

func (t *sqliteWriter) InsertData(tableName string, entry any) {
	table, exists := t.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != table.structType {
		panic(fmt.Sprintf("entry of type %T does not match table %s",
			entry, tableName))
	}

	table.entries = append(table.entries, entry)

	t.entryCount++
	if t.entryCount >= t.batchSize {
		t.Flush()
	}
}

func (t *sqliteWriter) ListTables() []string {
	tables := make([]string, 0, len(t.tables))
	for table := range t.tables {
		tables = append(tables, table)
	}

	sort.Strings(tables)

	return tables
}

func (t *sqliteWriter) Flush() {
	if t.entryCount == 0 || t.closed {
		return
	}

	tx, err := t.Begin()
	if err != nil {
		panic(err)
	}

	for tableName, table := range t.tables {
		if len(table.entries) == 0 {
			continue
		}

		stmt := t.prepareStatement(tx, tableName, table)

		for _, entry := range table.entries {
			values := reflect.ValueOf(entry)

			v := make([]any, 0, values.NumField())
			for i := 0; i < values.NumField(); i++ {
				v = append(v, values.Field(i).Interface())
			}

			_, err := stmt.Exec(v...)
			if err != nil {
				panic(err)
			}
		}

		table.entries = nil

		stmt.Close()
	}

	err = tx.Commit()
	if err != nil {
		panic(err)
	}

	t.entryCount = 0
}

func (t *sqliteWriter) Close() error {
	if t.closed {
		return nil
	}

	t.Flush()
	t.closed = true

	return t.DB.Close()
}

func (t *sqliteWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}

func (t *sqliteWriter) prepareStatement(
	tx *sql.Tx,
	tableName string,
	table *table,
) *sql.Stmt {
	marks := make([]string, len(table.columns))
	for i := range marks {
		marks[i] = "?"
	}

	sqlStr := "INSERT INTO " + tableName +
		" (" + strings.Join(table.columns, ", ") + ")" +
		" VALUES (" + strings.Join(marks, ", ") + ")"

	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		panic(err)
	}

	return stmt
}
