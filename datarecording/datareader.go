package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// QueryParams selects the entries returned by a query.
type QueryParams struct {
	// Where is an SQL condition without the WHERE keyword, for example
	// "RunID = ? AND Name = ?".
	Where string

	// Args fill the placeholders of Where.
	Args []any

	// OrderBy lists the sort columns without the ORDER BY keywords. Entries
	// come back in insertion order if it is empty.
	OrderBy string

	// Limit caps the number of entries returned; 0 returns all of them.
	// Offset skips entries and only applies together with Limit.
	Limit  int
	Offset int
}

func (p QueryParams) filter() string {
	if p.Where == "" {
		return ""
	}

	return " WHERE " + p.Where
}

func (p QueryParams) order() string {
	if p.OrderBy == "" {
		return " ORDER BY rowid"
	}

	return " ORDER BY " + p.OrderBy
}

func (p QueryParams) page() string {
	switch {
	case p.Limit <= 0:
		return ""
	case p.Offset > 0:
		return fmt.Sprintf(" LIMIT %d OFFSET %d", p.Limit, p.Offset)
	default:
		return fmt.Sprintf(" LIMIT %d", p.Limit)
	}
}

// DataReader reads the tables written by a DataRecorder.
type DataReader interface {
	// MapTable tells the reader which struct the rows of a table are read
	// into. A table must be mapped before it is queried.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns the mapped tables, sorted.
	ListTables() []string

	// Query returns pointers to the entries that match the parameters, and
	// the number of matching entries regardless of the limit.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	// Close closes the database.
	Close() error
}

type sqliteReader struct {
	*sql.DB

	mapped map[string]reflect.Type
}

// NewReader opens a database file for reading.
func NewReader(filename string) (DataReader, error) {
	db, err := sql.Open("sqlite3", "file:"+filename+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB reads from an open database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		DB:     db,
		mapped: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	if err := checkStructFields(sampleEntry); err != nil {
		panic(err)
	}

	r.mapped[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	names := make([]string, 0, len(r.mapped))
	for name := range r.mapped {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	entryType, found := r.mapped[tableName]
	if !found {
		return nil, 0, fmt.Errorf("table %s is not mapped", tableName)
	}

	var total int

	countSQL := "SELECT COUNT(*) FROM " + tableName + params.filter()
	err := r.QueryRowContext(ctx, countSQL, params.Args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", tableName, err)
	}

	columns := columnsOf(entryType)
	selectSQL := "SELECT " + strings.Join(columns, ", ") +
		" FROM " + tableName + params.filter() + params.order() + params.page()

	rows, err := r.QueryContext(ctx, selectSQL, params.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying %s: %w", tableName, err)
	}
	defer rows.Close()

	var results []any

	for rows.Next() {
		entry := reflect.New(entryType)

		targets := make([]any, len(columns))
		for i := range columns {
			targets[i] = entry.Elem().Field(i).Addr().Interface()
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, 0, fmt.Errorf("scanning %s: %w", tableName, err)
		}

		results = append(results, entry.Interface())
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", tableName, err)
	}

	return results, total, nil
}

// columnsOf returns the column names of an entry type, in field order.
func columnsOf(entryType reflect.Type) []string {
	columns := make([]string, entryType.NumField())
	for i := range columns {
		columns[i] = entryType.Field(i).Name
	}

	return columns
}
