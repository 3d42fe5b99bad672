/*
  dispatch.go
  Description: walking a parsed command list against a table and an execution context
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

// Package dispatch walks a parsed command list against a table and an
// execution context, one command at a time, in script order. A selection
// command runs exactly once; a mutation command runs once per cell of the
// current selection, row-major, stopping at the first error.
//
// Grounded on pfparser.Parse's token-driven dispatch loop, generalized here
// to a name-keyed handler table (map[string]catalogEntry) the way the
// original C source keys commands by name string rather than by a type
// switch.
package dispatch

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/expr-lang/expr"

	"github.com/clinaresl/sps/errs"
	"github.com/clinaresl/sps/execctx"
	"github.com/clinaresl/sps/script"
	"github.com/clinaresl/sps/table"
)

// handlerFunc implements one cataloged command. It reads and writes the
// dispatcher's table and context directly; for a mutation command the
// dispatcher has already set the context's cursor to the cell this
// invocation applies to.
type handlerFunc func(d *Dispatcher, cmd *script.Command) error

// catalogEntry pairs a handler with the Kind the command dispatches as,
// independent of whatever Kind the parser assigned the token (see the
// script package's "set"/"set-v" rename note).
type catalogEntry struct {
	kind    script.Kind
	handler handlerFunc
}

// catalog is the fixed command table. It is the single source of truth for
// whether a command runs once (Selection) or once per selected cell
// (Mutation); the parser's own Kind tag only disambiguates "set" from
// "set-v" by name during parsing.
var catalog = map[string]catalogEntry{
	"select": {script.Selection, selectHandler},
	"min":    {script.Selection, minMaxHandler(false)},
	"max":    {script.Selection, minMaxHandler(true)},
	"find":   {script.Selection, findHandler},

	"irow": {script.Mutation, irowHandler},
	"arow": {script.Mutation, arowHandler},
	"drow": {script.Mutation, drowHandler},
	"icol": {script.Mutation, icolHandler},
	"acol": {script.Mutation, acolHandler},
	"dcol": {script.Mutation, dcolHandler},

	"set":   {script.Mutation, setHandler},
	"clear": {script.Mutation, clearHandler},
	"swap":  {script.Mutation, swapHandler},

	"sum":   {script.Mutation, sumAvgHandler(false)},
	"avg":   {script.Mutation, sumAvgHandler(true)},
	"count": {script.Mutation, countHandler},
	"len":   {script.Mutation, lenHandler},

	"def": {script.Mutation, defHandler},
	"use": {script.Mutation, useHandler},
	"inc": {script.Mutation, incHandler},

	// set-v is cataloged as a Mutation per its own entry, so it runs once
	// per cell of whatever is currently selected; saving the same
	// selection on every one of those invocations is harmless, just
	// redundant.
	"set-v": {script.Mutation, setVHandler},
}

// Dispatcher runs a parsed command list against one table, threading one
// execution context across every command.
type Dispatcher struct {
	table *table.Table
	ctx   *execctx.Context

	// curIdx and total describe the current mutation command's iteration,
	// so handlers that need to know whether they are seeing the first or
	// last cell of their own invocation (sum, avg, count) can ask.
	curIdx, total int
}

// New returns a dispatcher over t, with a fresh execution context.
func New(t *table.Table) *Dispatcher {
	return &Dispatcher{table: t, ctx: execctx.New()}
}

// Run executes cmds in order against the dispatcher's table, stopping and
// returning the first error any command produces.
func (d *Dispatcher) Run(cmds []*script.Command) error {
	for _, cmd := range cmds {
		entry, ok := catalog[cmd.Name]
		if !ok {
			return fmt.Errorf("%q: %w", cmd.Name, errs.ErrUnknownCommand)
		}

		if entry.kind == script.Selection {
			if err := entry.handler(d, cmd); err != nil {
				return fmt.Errorf("%s: %w", cmd.Name, err)
			}
			continue
		}

		if err := d.runMutation(cmd, entry.handler); err != nil {
			return fmt.Errorf("%s: %w", cmd.Name, err)
		}
	}
	return nil
}

// runMutation iterates entry.handler once per cell of the live selection,
// row outermost, column innermost, setting the context's cursor before each
// invocation and stopping at the first error.
func (d *Dispatcher) runMutation(cmd *script.Command, handler handlerFunc) error {
	sel := d.ctx.Selection()
	d.curIdx = 0
	d.total = (sel.RowTo - sel.RowFrom + 1) * (sel.ColTo - sel.ColFrom + 1)

	for r := sel.RowFrom; r <= sel.RowTo; r++ {
		for c := sel.ColFrom; c <= sel.ColTo; c++ {
			d.ctx.SetCursor(r, c)
			if err := handler(d, cmd); err != nil {
				return err
			}
			d.curIdx++
		}
	}
	return nil
}

func (d *Dispatcher) isFirstCell() bool { return d.curIdx == 0 }
func (d *Dispatcher) isLastCell() bool  { return d.curIdx == d.total-1 }

// resolveAxis resolves one select/cell-reference coordinate: the Last
// sentinel becomes the table's current last row or column "at the moment of
// use", per the glossary; any other value passes through unchanged (a
// caller validates it is a genuine positive coordinate).
func resolveAxis(intVal int, last int) int {
	if intVal == script.Last {
		return last
	}
	return intVal
}

// resolveCellRefParam resolves the embedded "[R,C]" parameter at cmd.Params[idx]
// against the dispatcher's table, returning ErrBadArgumentCell for a missing
// parameter, a malformed reference, or a coordinate that is not a positive
// integer once resolved.
func (d *Dispatcher) resolveCellRefParam(cmd *script.Command, idx int) (r, c int, err error) {
	if idx >= len(cmd.Params) {
		return 0, 0, fmt.Errorf("missing \"[R,C]\" parameter: %w", errs.ErrBadArgumentCell)
	}

	rText, cText, err := script.ParseCellRef(cmd.Params[idx].Text)
	if err != nil {
		return 0, 0, err
	}

	r = resolveAxis(script.ResolveInt(rText), d.table.Rows())
	c = resolveAxis(script.ResolveInt(cText), d.table.Cols())
	if r < 1 || c < 1 {
		return 0, 0, fmt.Errorf("cell reference (%s,%s) resolves to (%d,%d): %w", rText, cText, r, c, errs.ErrBadArgumentCell)
	}
	return r, c, nil
}

// setTargetCell writes value into the "[R,C]" target a swap/sum/avg/count/len
// command resolved, remapping the table's native ErrNoSuchCell to
// ErrBadArgumentCell: from a "[R,C]" parameter's point of view, a coordinate
// outside the table is a bad argument, not the table model's own
// out-of-bounds signal.
func setTargetCell(d *Dispatcher, r, c int, value []byte) error {
	if err := d.table.SetCell(r, c, value); err != nil {
		return fmt.Errorf("target (%d,%d): %w", r, c, errs.ErrBadArgumentCell)
	}
	return nil
}

// applySelection installs [r1,r2]x[c1,c2] as the live selection, growing the
// table first if the selection reaches beyond its current dimensions. It
// never shrinks the table.
func (d *Dispatcher) applySelection(r1, r2, c1, c2 int) error {
	if r1 < 1 || c1 < 1 || r1 > r2 || c1 > c2 {
		return fmt.Errorf("selection [%d,%d,%d,%d] is not a valid rectangle: %w", r1, c1, r2, c2, errs.ErrBadSelection)
	}

	if r2 > d.table.Rows() || c2 > d.table.Cols() {
		if err := d.table.Resize(maxInt(r2, d.table.Rows()), maxInt(c2, d.table.Cols())); err != nil {
			return err
		}
	}

	d.ctx.SetSelection(execctx.Selection{
		RowFrom: r1, RowTo: r2,
		ColFrom: c1, ColTo: c2,
		CurRow: r1, CurCol: c1,
	})
	return nil
}

// selectHandler implements "select": [R,C], [R1,C1,R2,C2], or [_] to
// restore the saved selection. A Last item ("_" or "-") resolves to the
// table's current last row or column, which is how a whole-table selection
// such as [1,1,_,_] is written.
func selectHandler(d *Dispatcher, cmd *script.Command) error {
	switch len(cmd.Params) {
	case 1:
		if cmd.Params[0].Int != script.Last {
			return fmt.Errorf("a single-item selection must be \"_\": %w", errs.ErrBadSelection)
		}
		return d.ctx.LoadSelection()

	case 2:
		r := resolveAxis(cmd.Params[0].Int, d.table.Rows())
		c := resolveAxis(cmd.Params[1].Int, d.table.Cols())
		return d.applySelection(r, r, c, c)

	case 4:
		r1 := resolveAxis(cmd.Params[0].Int, d.table.Rows())
		c1 := resolveAxis(cmd.Params[1].Int, d.table.Cols())
		r2 := resolveAxis(cmd.Params[2].Int, d.table.Rows())
		c2 := resolveAxis(cmd.Params[3].Int, d.table.Cols())
		return d.applySelection(r1, r2, c1, c2)

	default:
		return fmt.Errorf("selection with %d items: %w", len(cmd.Params), errs.ErrBadSelection)
	}
}

// minMaxHandler returns the "min"/"max" handler: scan the live selection in
// row-major order for numeric cells and reduce the selection to the single
// cell holding the smallest (or largest) value, first occurrence wins ties.
func minMaxHandler(wantMax bool) handlerFunc {
	return func(d *Dispatcher, cmd *script.Command) error {
		sel := d.ctx.Selection()

		found := false
		var best float64
		bestR, bestC := 0, 0

		for r := sel.RowFrom; r <= sel.RowTo; r++ {
			for c := sel.ColFrom; c <= sel.ColTo; c++ {
				cell, err := d.table.GetCell(r, c)
				if err != nil {
					return err
				}
				v, ok := parseNumeric(string(cell))
				if !ok {
					continue
				}
				better := !found || (wantMax && v > best) || (!wantMax && v < best)
				if better {
					found, best, bestR, bestC = true, v, r, c
				}
			}
		}

		if !found {
			return fmt.Errorf("no numeric cell in the current selection: %w", errs.ErrBadSelection)
		}
		return d.applySelection(bestR, bestR, bestC, bestC)
	}
}

// findHandler implements "find STR": reduce the live selection to the first
// cell, in row-major order, whose content contains STR as a substring. A
// miss leaves the selection unchanged.
func findHandler(d *Dispatcher, cmd *script.Command) error {
	if len(cmd.Params) == 0 || cmd.Params[0].Text == "" {
		return fmt.Errorf("find needs a non-empty search string: %w", errs.ErrBadSelection)
	}
	needle := []byte(cmd.Params[0].Text)

	sel := d.ctx.Selection()
	for r := sel.RowFrom; r <= sel.RowTo; r++ {
		for c := sel.ColFrom; c <= sel.ColTo; c++ {
			cell, err := d.table.GetCell(r, c)
			if err != nil {
				return err
			}
			if bytes.Contains(cell, needle) {
				return d.applySelection(r, r, c, c)
			}
		}
	}
	return nil
}

func irowHandler(d *Dispatcher, cmd *script.Command) error {
	sel := d.ctx.Selection()
	return d.table.InsertRow(sel.CurRow)
}

func arowHandler(d *Dispatcher, cmd *script.Command) error {
	sel := d.ctx.Selection()
	return d.table.InsertRow(sel.CurRow + 1)
}

func drowHandler(d *Dispatcher, cmd *script.Command) error {
	sel := d.ctx.Selection()
	return d.table.DeleteRow(sel.CurRow)
}

func icolHandler(d *Dispatcher, cmd *script.Command) error {
	sel := d.ctx.Selection()
	return d.table.InsertColumn(sel.CurCol)
}

func acolHandler(d *Dispatcher, cmd *script.Command) error {
	sel := d.ctx.Selection()
	return d.table.InsertColumn(sel.CurCol + 1)
}

func dcolHandler(d *Dispatcher, cmd *script.Command) error {
	sel := d.ctx.Selection()
	return d.table.DeleteColumn(sel.CurCol)
}

func setHandler(d *Dispatcher, cmd *script.Command) error {
	value := ""
	if len(cmd.Params) > 0 {
		value = cmd.Params[0].Text
	}
	sel := d.ctx.Selection()
	return d.table.SetCell(sel.CurRow, sel.CurCol, []byte(value))
}

func clearHandler(d *Dispatcher, cmd *script.Command) error {
	sel := d.ctx.Selection()
	return d.table.SetCell(sel.CurRow, sel.CurCol, []byte{})
}

// swapHandler implements "swap [R,C]": exchange the current cell's content
// with the cell named by the embedded reference.
func swapHandler(d *Dispatcher, cmd *script.Command) error {
	r, c, err := d.resolveCellRefParam(cmd, 0)
	if err != nil {
		return err
	}

	sel := d.ctx.Selection()
	cur, err := d.table.GetCell(sel.CurRow, sel.CurCol)
	if err != nil {
		return err
	}
	other, err := d.table.GetCell(r, c)
	if err != nil {
		return fmt.Errorf("swap target (%d,%d): %w", r, c, errs.ErrBadArgumentCell)
	}

	if err := d.table.SetCell(sel.CurRow, sel.CurCol, other); err != nil {
		return err
	}
	return setTargetCell(d, r, c, cur)
}

// sumAvgHandler returns the "sum"/"avg" handler. Both accumulate the
// selection's numeric cells (a non-numeric cell contributes zero) across
// every iteration of their own invocation, and on the last iteration write
// the reduced value to the embedded "[R,C]" target; avg additionally divides
// by the selection's area. The running accumulation itself, and avg's final
// division, are both evaluated through expr.Eval rather than Go's own
// arithmetic operators.
func sumAvgHandler(isAvg bool) handlerFunc {
	return func(d *Dispatcher, cmd *script.Command) error {
		if d.isFirstCell() {
			d.ctx.ResetAccum()
		}

		sel := d.ctx.Selection()
		cell, err := d.table.GetCell(sel.CurRow, sel.CurCol)
		if err != nil {
			return err
		}
		v, _ := parseNumeric(string(cell))

		acc, err := evalNumeric("acc + v", map[string]float64{"acc": d.ctx.Accum, "v": v})
		if err != nil {
			return err
		}
		d.ctx.Accum = acc

		if !d.isLastCell() {
			return nil
		}

		result := d.ctx.Accum
		if isAvg {
			area := float64((sel.RowTo - sel.RowFrom + 1) * (sel.ColTo - sel.ColFrom + 1))
			result, err = evalNumeric("total / area", map[string]float64{"total": result, "area": area})
			if err != nil {
				return err
			}
		}

		r, c, err := d.resolveCellRefParam(cmd, 0)
		if err != nil {
			return err
		}
		return setTargetCell(d, r, c, []byte(formatNumber(result)))
	}
}

// countHandler implements "count [R,C]": zero the target on the first
// iteration, then increment it by one for every selected cell that is not
// empty. If the target itself lies inside the selection, the zeroing and
// the read-back it is immediately subject to happen in that fixed order,
// which makes the self-referential case deterministic rather than undefined.
func countHandler(d *Dispatcher, cmd *script.Command) error {
	r, c, err := d.resolveCellRefParam(cmd, 0)
	if err != nil {
		return err
	}

	if d.isFirstCell() {
		if err := setTargetCell(d, r, c, []byte("0")); err != nil {
			return err
		}
	}

	sel := d.ctx.Selection()
	cur, err := d.table.GetCell(sel.CurRow, sel.CurCol)
	if err != nil {
		return err
	}
	if len(cur) == 0 {
		return nil
	}

	countCell, err := d.table.GetCell(r, c)
	if err != nil {
		return err
	}
	n, _ := parseNumeric(string(countCell))
	next, err := evalNumeric("n + 1", map[string]float64{"n": n})
	if err != nil {
		return err
	}
	return setTargetCell(d, r, c, []byte(formatNumber(next)))
}

// lenHandler implements "len [R,C]": write the byte length of the current
// cell into the target.
func lenHandler(d *Dispatcher, cmd *script.Command) error {
	r, c, err := d.resolveCellRefParam(cmd, 0)
	if err != nil {
		return err
	}
	sel := d.ctx.Selection()
	cur, err := d.table.GetCell(sel.CurRow, sel.CurCol)
	if err != nil {
		return err
	}
	return setTargetCell(d, r, c, []byte(strconv.Itoa(len(cur))))
}

// varIndex validates a scratch-variable parameter's raw text: exactly two
// bytes, "_" followed by one decimal digit.
func varIndex(text string) (int, error) {
	if len(text) != 2 || text[0] != '_' || text[1] < '0' || text[1] > '9' {
		return 0, fmt.Errorf("%q is not a scratch variable name of the form \"_N\": %w", text, errs.ErrMalformedScript)
	}
	return int(text[1] - '0'), nil
}

func defHandler(d *Dispatcher, cmd *script.Command) error {
	if len(cmd.Params) == 0 {
		return fmt.Errorf("def needs a scratch variable name: %w", errs.ErrMalformedScript)
	}
	idx, err := varIndex(cmd.Params[0].Text)
	if err != nil {
		return err
	}
	sel := d.ctx.Selection()
	cur, err := d.table.GetCell(sel.CurRow, sel.CurCol)
	if err != nil {
		return err
	}
	d.ctx.PutVar(idx, string(cur))
	return nil
}

func useHandler(d *Dispatcher, cmd *script.Command) error {
	if len(cmd.Params) == 0 {
		return fmt.Errorf("use needs a scratch variable name: %w", errs.ErrMalformedScript)
	}
	idx, err := varIndex(cmd.Params[0].Text)
	if err != nil {
		return err
	}
	sel := d.ctx.Selection()
	return d.table.SetCell(sel.CurRow, sel.CurCol, []byte(d.ctx.GetVar(idx)))
}

// incHandler implements "inc _d": parse scratch slot d as a number, add one
// through expr.Eval, and write the result back in %g form.
func incHandler(d *Dispatcher, cmd *script.Command) error {
	if len(cmd.Params) == 0 {
		return fmt.Errorf("inc needs a scratch variable name: %w", errs.ErrMalformedScript)
	}
	idx, err := varIndex(cmd.Params[0].Text)
	if err != nil {
		return err
	}
	v, _ := parseNumeric(d.ctx.GetVar(idx))
	result, err := evalNumeric("x + 1", map[string]float64{"x": v})
	if err != nil {
		return err
	}
	d.ctx.PutVar(idx, formatNumber(result))
	return nil
}

// setVHandler implements the selection-context "set" (spelled "[set]",
// renamed to "set-v" by the parser): save the current selection.
func setVHandler(d *Dispatcher, cmd *script.Command) error {
	d.ctx.SaveSelection()
	return nil
}

// evalNumeric evaluates expression against env through expr.Eval, for the
// arithmetic the numeric commands need.
func evalNumeric(expression string, env map[string]float64) (float64, error) {
	out, err := expr.Eval(expression, env)
	if err != nil {
		return 0, fmt.Errorf("evaluating %q: %v: %w", expression, err, errs.ErrBadArgumentCell)
	}
	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("expression %q did not evaluate to a number: %w", expression, errs.ErrBadArgumentCell)
	}
	return v, nil
}

// formatNumber renders a float64 the way every numeric-writing command
// spells its result: the shortest decimal string that round-trips.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// parseNumeric reports whether s is numeric per the tightened grammar
// (see isNumeric) and, if so, its value.
func parseNumeric(s string) (float64, bool) {
	if !isNumeric(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isNumeric implements the tightened numeric-cell grammar: an optional
// leading '-', then digits and at most one '.', with at least one digit
// somewhere. This rejects "-", "." and "1.2.3", which a looser
// "-?[0-9]*\.?[0-9]*" pattern would accept; see DESIGN.md for the decision.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}

	i := 0
	if s[0] == '-' {
		i = 1
	}
	if i >= len(s) {
		return false
	}

	dotSeen := false
	digitSeen := false
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digitSeen = true
		case s[i] == '.' && !dotSeen:
			dotSeen = true
		default:
			return false
		}
	}
	return digitSeen
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
