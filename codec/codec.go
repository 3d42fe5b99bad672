/*
  codec.go
  Description: encoding and decoding of the on-disk delimited text format
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

// Package codec decodes the on-disk delimited text format into a
// table.Table and re-encodes a table.Table back into that format.
//
// The decoder is a small per-byte state machine, not a regexp-per-token
// scanner: quoting and backslash-escaping need byte-exact control that a
// regular expression cannot give cheaply (see pfparser.nextToken in the
// reference lexer this package is modelled on, which trades that precision
// for throwaway tokens where it does not matter).
package codec

import (
	"bytes"
	"fmt"

	"github.com/clinaresl/sps/errs"
	"github.com/clinaresl/sps/table"
)

// special reports whether b is one of the two bytes that require
// backslash-escaping in the on-disk format.
func special(b byte) bool {
	return b == '"' || b == '\\'
}

func containsByte(set []byte, b byte) bool {
	return bytes.IndexByte(set, b) >= 0
}

// Decode parses src, the full contents of a table file, into a table.Table
// using delims as the delimiter set (at least one byte; the caller, not this
// function, is responsible for substituting the default single-space set
// when none was given on the command line).
//
// After decoding, the table is aligned with table.AlignRowSizes so that it
// is rectangular even if the input had ragged rows.
func Decode(src []byte, delims []byte) (*table.Table, error) {
	if len(delims) == 0 {
		return nil, fmt.Errorf("empty delimiter set: %w", errs.ErrBadDelimiterSet)
	}

	t := table.New()
	isDelim := func(b byte) bool { return containsByte(delims, b) }

	pos := 0
	for pos < len(src) {
		cells, next, err := decodeRow(src, pos, isDelim)
		if err != nil {
			return nil, err
		}
		pos = next

		r := t.Rows() + 1
		if err := t.InsertRow(r); err != nil {
			return nil, err
		}
		for i, cell := range cells {
			c := i + 1
			if c > t.Cols() {
				if err := t.InsertColumn(c); err != nil {
					return nil, err
				}
			}
			if err := t.SetCell(r, c, cell); err != nil {
				return nil, err
			}
		}
	}

	t.AlignRowSizes()
	return t, nil
}

// decodeRow decodes exactly one row starting at pos (which must be a valid
// index into src), returning the cells found and the position immediately
// after the row's terminating LF, or immediately after the last byte of src
// if the row ends at EOF without one.
func decodeRow(src []byte, pos int, isDelim func(byte) bool) (cells [][]byte, next int, err error) {
	cell := []byte{}
	first := true // true until the first byte of the current cell is consumed
	quoted := false

	finish := func() {
		cells = append(cells, cell)
		cell = []byte{}
		first = true
	}

	for {
		if pos >= len(src) {
			if quoted {
				return nil, 0, fmt.Errorf("unterminated quote at end of input: %w", errs.ErrMalformedQuoting)
			}
			finish()
			return cells, pos, nil
		}

		b := src[pos]

		if quoted {
			switch {
			case b == '\\':
				if pos+1 >= len(src) {
					return nil, 0, fmt.Errorf("dangling escape inside a quoted cell: %w", errs.ErrMalformedQuoting)
				}
				cell = append(cell, src[pos+1])
				pos += 2

			case b == '"':
				if pos+1 >= len(src) {
					// closing quote immediately at EOF
					finish()
					return cells, pos + 1, nil
				}
				switch next := src[pos+1]; {
				case isDelim(next):
					finish()
					pos += 2
					quoted = false
				case next == '\n':
					finish()
					return cells, pos + 2, nil
				default:
					return nil, 0, fmt.Errorf("quote not immediately followed by a delimiter, newline or end of input: %w", errs.ErrMalformedQuoting)
				}

			default:
				cell = append(cell, b)
				pos++
			}
			continue
		}

		switch {
		case first && b == '"':
			quoted = true
			first = false
			pos++

		case b == '\\':
			if pos+1 >= len(src) {
				// a trailing lone backslash escapes nothing; drop it
				pos++
				continue
			}
			cell = append(cell, src[pos+1])
			first = false
			pos += 2

		case b == '"':
			// a border marker found in the middle of an unquoted cell: discarded
			pos++

		case isDelim(b):
			finish()
			pos++

		case b == '\n':
			finish()
			return cells, pos + 1, nil

		default:
			cell = append(cell, b)
			first = false
			pos++
		}
	}
}

// Encode re-encodes t into the on-disk format, using the first byte of
// delims as the primary (cell-separating) delimiter. Before encoding,
// table.TrimRows removes trailing empty columns from t; this is a
// write-time cosmetic step and does not otherwise affect t.
func Encode(t *table.Table, delims []byte) []byte {
	t.TrimRows()

	var out bytes.Buffer
	primary := delims[0]

	for r := 1; r <= t.Rows(); r++ {
		for c := 1; c <= t.Cols(); c++ {
			if c > 1 {
				out.WriteByte(primary)
			}
			cell, _ := t.GetCell(r, c)
			encodeCell(&out, cell, delims)
		}
		out.WriteByte('\n')
	}

	return out.Bytes()
}

// encodeCell writes one cell's on-disk representation to out: the cell is
// bordered with quotes only when its bytes contain one of the delimiter-set
// bytes, and every '"' or '\' in the body is always prefixed with '\',
// border or not.
func encodeCell(out *bytes.Buffer, cell []byte, delims []byte) {
	needsBorder := false
	for _, b := range cell {
		if containsByte(delims, b) {
			needsBorder = true
			break
		}
	}

	if needsBorder {
		out.WriteByte('"')
	}
	for _, b := range cell {
		if special(b) {
			out.WriteByte('\\')
		}
		out.WriteByte(b)
	}
	if needsBorder {
		out.WriteByte('"')
	}
}
