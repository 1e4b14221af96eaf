package display

import (
	"io"

	"github.com/rodaine/table"
)

// NewTable returns a table that prints to w.
func NewTable(w io.Writer, headers ...any) table.Table {
	return table.New(headers...).WithWriter(w)
}
