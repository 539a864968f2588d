// Package query builds portable SELECT statements from a projection of
// view field names onto aliased columns. Placeholders use $N numbering,
// which both pgx and modernc sqlite bind by ordinal.
package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a caller-supplied field has no projected column.
var ErrUnknownField = errors.New("unknown field")

type join struct {
	kind  string
	table string
	alias string
	on    string
}

// ProjectionMap maps view field names to qualified column references (alias.column).
// Columns projected after a Join are qualified with the joined alias.
type ProjectionMap struct {
	table      string
	alias      string
	current    string
	joins      []join
	columns    map[string]string
	columnList []string
}

// NewProjectionMap creates a ProjectionMap rooted at table with the given alias.
func NewProjectionMap(table, alias string) *ProjectionMap {
	return &ProjectionMap{
		table:      table,
		alias:      alias,
		current:    alias,
		columns:    make(map[string]string),
		columnList: make([]string, 0),
	}
}

// Project adds a column mapping from database column to view field name.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.current, column)
	p.columns[viewName] = qualified
	p.columnList = append(p.columnList, qualified)
	return p
}

// ProjectExpr maps a raw SQL expression (an aggregate, a COALESCE) to a view field name.
func (p *ProjectionMap) ProjectExpr(expr, viewName string) *ProjectionMap {
	p.columns[viewName] = expr
	p.columnList = append(p.columnList, expr)
	return p
}

// Join adds a joined table. kind is the join keyword ("JOIN", "LEFT JOIN").
// Subsequent Project calls qualify columns with alias.
func (p *ProjectionMap) Join(table, alias, kind, on string) *ProjectionMap {
	p.joins = append(p.joins, join{kind: kind, table: table, alias: alias, on: on})
	p.current = alias
	return p
}

// Alias returns the root table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the root table reference with alias.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s %s", p.table, p.alias)
}

// From returns the root table followed by every join clause.
func (p *ProjectionMap) From() string {
	if len(p.joins) == 0 {
		return p.Table()
	}

	var sb strings.Builder
	sb.WriteString(p.Table())
	for _, j := range p.joins {
		fmt.Fprintf(&sb, " %s %s %s ON %s", j.kind, j.table, j.alias, j.on)
	}
	return sb.String()
}

// Column returns the qualified column for a view field name, or the input if not mapped.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Lookup returns the qualified column for a view field name and whether it is mapped.
func (p *ProjectionMap) Lookup(viewName string) (string, bool) {
	col, ok := p.columns[viewName]
	return col, ok
}

// ValidateSort reports ErrUnknownField for the first sort field that is not projected.
func (p *ProjectionMap) ValidateSort(fields []SortField) error {
	for _, f := range fields {
		if _, ok := p.columns[f.Field]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, f.Field)
		}
	}
	return nil
}

// Columns returns all mapped columns as a comma-separated string.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columnList, ", ")
}

// ColumnList returns all mapped columns as a slice.
func (p *ProjectionMap) ColumnList() []string {
	return p.columnList
}
