/*
  table.go
  Description: the row/cell matrix every command reads from or writes to
  -----------------------------------------------------------------------------

  Started on  <Fri Jul 31 2026 Carlos Linares Lopez>
  -----------------------------------------------------------------------------

  $Id::                                                                      $
  $Date::                                                                    $
  $Revision::                                                                $
  -----------------------------------------------------------------------------

  Made by Carlos Linares Lopez
  Login   <clinares@atlas>
*/

// Package table implements the row/cell matrix that every command in this
// tool ultimately reads from or writes to. It owns the rectangularity
// invariant (every row has the same number of cells once an operation
// returns) and the handful of dynamic-resizing primitives the dispatcher
// builds every mutation command out of: row and column insertion and
// deletion, alignment, trimming, and in-place cell replacement.
//
// Coordinates are 1-based at every exported function; the 0-based interior
// never escapes this package.
package table

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/clinaresl/sps/errs"
)

// maxDimension bounds how large a single axis of the table is allowed to
// grow. Go slices do not expose a recoverable allocation-failure signal the
// way the systems-language original this tool is modelled on does (a true
// out-of-memory condition is not a panic Go code can catch), so this bound
// is the practical stand-in for it: a request that would blow past it is
// rejected up front with ErrAllocationFailed instead of being attempted.
const maxDimension = 1 << 24

// Table is the row/cell matrix. The zero value is an empty table with no
// rows and no columns.
type Table struct {
	rows [][][]byte
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// Rows returns the current number of rows.
func (t *Table) Rows() int {
	return len(t.rows)
}

// Cols returns the current number of columns, i.e. the width shared by
// every row. A table with no rows has zero columns.
func (t *Table) Cols() int {
	if len(t.rows) == 0 {
		return 0
	}
	return len(t.rows[0])
}

// inBounds reports whether the 1-based coordinate (r,c) names an existing
// cell.
func (t *Table) inBounds(r, c int) bool {
	return r >= 1 && r <= t.Rows() && c >= 1 && c <= t.Cols()
}

// GetCell returns a copy of the bytes held at (r,c), both 1-based. If the
// coordinate lies outside the current dimensions it returns
// errs.ErrNoSuchCell, the "no such cell" signal described in the table
// model's query contract.
func (t *Table) GetCell(r, c int) ([]byte, error) {
	if !t.inBounds(r, c) {
		return nil, fmt.Errorf("cell (%d,%d): %w", r, c, errs.ErrNoSuchCell)
	}

	src := t.rows[r-1][c-1]
	out := make([]byte, len(src))
	copy(out, src)
	return out, nil
}

// SetCell replaces the content of (r,c), both 1-based, with a copy of b.
func (t *Table) SetCell(r, c int, b []byte) error {
	if !t.inBounds(r, c) {
		return fmt.Errorf("cell (%d,%d): %w", r, c, errs.ErrNoSuchCell)
	}

	cp := make([]byte, len(b))
	copy(cp, b)
	t.rows[r-1][c-1] = cp
	return nil
}

// emptyRow returns a new row of n empty cells.
func emptyRow(n int) [][]byte {
	row := make([][]byte, n)
	for i := range row {
		row[i] = []byte{}
	}
	return row
}

// checkGrowth rejects a resulting dimension that would exceed maxDimension,
// the stand-in for a genuine allocation failure (see maxDimension).
func checkGrowth(n int) error {
	if n < 0 || n > maxDimension {
		return fmt.Errorf("requested size %d: %w", n, errs.ErrAllocationFailed)
	}
	return nil
}

// InsertRow inserts an empty row immediately before the 1-based position
// pos, which may equal Rows()+1 to append. The new row is aligned to the
// table's current width before the call returns, so rectangularity is
// never violated at the boundary.
func (t *Table) InsertRow(pos int) error {
	if pos < 1 || pos > t.Rows()+1 {
		return fmt.Errorf("InsertRow: position %d out of bounds (size %d): %w", pos, t.Rows(), errs.ErrBadArgumentCell)
	}
	if err := checkGrowth(t.Rows() + 1); err != nil {
		return err
	}

	t.rows = slices.Insert(t.rows, pos-1, emptyRow(t.Cols()))
	t.AlignRowSizes()
	return nil
}

// DeleteRow removes the row at the 1-based position pos.
func (t *Table) DeleteRow(pos int) error {
	if pos < 1 || pos > t.Rows() {
		return fmt.Errorf("DeleteRow: position %d out of bounds (size %d): %w", pos, t.Rows(), errs.ErrBadArgumentCell)
	}

	t.rows = slices.Delete(t.rows, pos-1, pos)
	return nil
}

// InsertColumn appends one empty cell at the 1-based position pos of every
// row. pos may equal Cols()+1 to append a column at the right edge.
func (t *Table) InsertColumn(pos int) error {
	if pos < 1 || pos > t.Cols()+1 {
		return fmt.Errorf("InsertColumn: position %d out of bounds (width %d): %w", pos, t.Cols(), errs.ErrBadArgumentCell)
	}
	if err := checkGrowth(t.Cols() + 1); err != nil {
		return err
	}

	for i := range t.rows {
		t.rows[i] = slices.Insert(t.rows[i], pos-1, []byte{})
	}
	return nil
}

// DeleteColumn removes the cell at the 1-based position pos from every row.
func (t *Table) DeleteColumn(pos int) error {
	if pos < 1 || pos > t.Cols() {
		return fmt.Errorf("DeleteColumn: position %d out of bounds (width %d): %w", pos, t.Cols(), errs.ErrBadArgumentCell)
	}

	for i := range t.rows {
		t.rows[i] = slices.Delete(t.rows[i], pos-1, pos)
	}
	return nil
}

// AlignRowSizes pads every row shorter than the widest row with empty
// cells, so that every row ends up with the same width. It is idempotent:
// calling it twice in a row leaves the table unchanged after the first call.
func (t *Table) AlignRowSizes() {
	widest := 0
	for _, row := range t.rows {
		widest = maxOf(widest, len(row))
	}

	for i, row := range t.rows {
		for len(row) < widest {
			row = append(row, []byte{})
		}
		t.rows[i] = row
	}
}

// TrimRows computes, per row, the index of its last non-empty cell, takes
// the maximum of those indices across all rows, and deletes every column to
// the right of it. A table whose cells are all empty becomes zero-wide, but
// keeps its rows. TrimRows is idempotent.
//
// Per the design notes this is a write-time cosmetic step performed by the
// codec before encoding; it is not otherwise invoked by the dispatcher, so a
// mutation command that inserts columns does not see them trimmed away mid
// script.
func (t *Table) TrimRows() {
	last := -1
	for _, row := range t.rows {
		for i := len(row) - 1; i > last; i-- {
			if len(row[i]) > 0 {
				last = i
				break
			}
		}
	}

	width := last + 1
	for i := range t.rows {
		if len(t.rows[i]) > width {
			t.rows[i] = t.rows[i][:width]
		}
	}
}

// Resize grows the table to have at least rows rows and cols columns. It
// never shrinks either dimension: a request smaller than the current size
// along an axis is a no-op for that axis.
func (t *Table) Resize(rows, cols int) error {
	if err := checkGrowth(rows); err != nil {
		return err
	}
	if err := checkGrowth(cols); err != nil {
		return err
	}

	for t.Rows() < rows {
		if err := t.InsertRow(t.Rows() + 1); err != nil {
			return err
		}
	}

	if cols > t.Cols() {
		if t.Rows() == 0 {
			// There is no row to widen yet; growing a columns-only
			// empty table is observable only once a row exists, so
			// nothing more to do here.
			return nil
		}
		for len(t.rows[0]) < cols {
			t.rows[0] = append(t.rows[0], []byte{})
		}
		t.AlignRowSizes()
	}

	return nil
}

// maxOf returns the larger of a and b.
func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
