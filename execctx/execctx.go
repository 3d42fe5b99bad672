/*
  execctx.go
  Description: the state a command script shares across every command of one run
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

// Package execctx holds the state a command script shares across every
// command of one run: the current selection, a single saved-selection slot,
// ten scratch string variables, and the running accumulator used by the
// multi-cell numeric reductions sum and avg.
package execctx

import (
	"fmt"

	"github.com/clinaresl/sps/errs"
)

// Selection is a closed rectangle over the table, 1-based and inclusive on
// every edge, plus the iteration cursor the dispatcher sets before every
// per-cell invocation of a mutation command.
type Selection struct {
	RowFrom, RowTo int
	ColFrom, ColTo int

	CurRow, CurCol int
}

// numVars is the number of scratch string slots, named _0 through _9.
const numVars = 10

// Context is the execution context threaded through one dispatch run.
type Context struct {
	live  Selection
	saved Selection // RowFrom == 0 means "never set"

	vars [numVars]string

	// Accum is the running numeric accumulator a single multi-cell
	// mutation command (sum, avg) uses across the cells of its
	// invocation. The sum/avg handler resets it on the first cell of such
	// a command.
	Accum float64
}

// New returns a context with the initial live selection (1,1,1,1), no saved
// selection, and ten empty scratch variables.
func New() *Context {
	return &Context{
		live: Selection{RowFrom: 1, RowTo: 1, ColFrom: 1, ColTo: 1, CurRow: 1, CurCol: 1},
	}
}

// Selection returns the live selection.
func (c *Context) Selection() Selection {
	return c.live
}

// SetSelection replaces the live selection.
func (c *Context) SetSelection(sel Selection) {
	c.live = sel
}

// SetCursor moves the live selection's iteration cursor without touching
// its bounds. The dispatcher calls this before every per-cell invocation of
// a mutation command.
func (c *Context) SetCursor(row, col int) {
	c.live.CurRow = row
	c.live.CurCol = col
}

// SaveSelection copies the live selection into the saved slot.
func (c *Context) SaveSelection() {
	c.saved = c.live
}

// LoadSelection copies the saved selection into the live slot. Loading an
// unset saved selection is ErrNoSavedSelection.
func (c *Context) LoadSelection() error {
	if c.saved.RowFrom == 0 {
		return fmt.Errorf("no selection has been saved yet: %w", errs.ErrNoSavedSelection)
	}
	c.live = c.saved
	return nil
}

// GetVar returns scratch slot i (0..9).
func (c *Context) GetVar(i int) string {
	return c.vars[i]
}

// PutVar writes value into scratch slot i (0..9).
func (c *Context) PutVar(i int, value string) {
	c.vars[i] = value
}

// ResetAccum zeroes the running accumulator. The sum/avg handler calls this
// once, on the first cell of its invocation.
func (c *Context) ResetAccum() {
	c.Accum = 0
}
