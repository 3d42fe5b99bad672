/*
  table_test.go
  Description: Unit tests for the row/cell matrix
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

package table

import "testing"

func cellStr(t *Table, r, c int) string {
	b, err := t.GetCell(r, c)
	if err != nil {
		return "<err>"
	}
	return string(b)
}

func TestInsertRowAligns(t *testing.T) {
	tbl := New()
	for _, err := range []error{
		tbl.InsertRow(1),
		tbl.InsertColumn(1),
		tbl.InsertColumn(2),
		tbl.InsertColumn(3),
	} {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := tbl.SetCell(1, 1, []byte("a")); err != nil {
		t.Fatal(err)
	}

	if err := tbl.InsertRow(2); err != nil {
		t.Fatal(err)
	}

	if tbl.Rows() != 2 || tbl.Cols() != 3 {
		t.Fatalf("got %dx%d, want 2x3", tbl.Rows(), tbl.Cols())
	}
	if got := cellStr(tbl, 2, 1); got != "" {
		t.Fatalf("inserted row should start empty, got %q", got)
	}
}

func TestInsertRowThenDeleteRowIsIdentity(t *testing.T) {
	tbl := New()
	for i := 0; i < 3; i++ {
		if err := tbl.InsertRow(tbl.Rows() + 1); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 3; i++ {
		if err := tbl.InsertColumn(tbl.Cols() + 1); err != nil {
			t.Fatal(err)
		}
	}
	for r := 1; r <= 3; r++ {
		for c := 1; c <= 3; c++ {
			if err := tbl.SetCell(r, c, []byte{byte('0' + r*3 + c)}); err != nil {
				t.Fatal(err)
			}
		}
	}

	before := snapshot(tbl)

	if err := tbl.InsertRow(2); err != nil {
		t.Fatal(err)
	}
	if err := tbl.DeleteRow(2); err != nil {
		t.Fatal(err)
	}

	after := snapshot(tbl)
	if before != after {
		t.Fatalf("insert+delete at the same position changed the table:\nbefore=%q\nafter=%q", before, after)
	}
}

func snapshot(t *Table) string {
	out := ""
	for r := 1; r <= t.Rows(); r++ {
		for c := 1; c <= t.Cols(); c++ {
			out += cellStr(t, r, c) + "|"
		}
		out += "\n"
	}
	return out
}

func TestAlignRowSizesIdempotent(t *testing.T) {
	tbl := New()
	tbl.InsertRow(1)
	tbl.InsertRow(2)
	tbl.InsertColumn(1)
	tbl.rows[0] = append(tbl.rows[0], []byte("x"))

	tbl.AlignRowSizes()
	w1 := tbl.Cols()
	tbl.AlignRowSizes()
	w2 := tbl.Cols()

	if w1 != w2 {
		t.Fatalf("AlignRowSizes is not idempotent: %d then %d", w1, w2)
	}
	for r := 1; r <= tbl.Rows(); r++ {
		if got := len(tbl.rows[r-1]); got != w1 {
			t.Fatalf("row %d has width %d, want %d", r, got, w1)
		}
	}
}

func TestTrimRowsThenAlignRestoresRectangularity(t *testing.T) {
	tbl := New()
	tbl.InsertRow(1)
	tbl.InsertRow(2)
	for i := 0; i < 4; i++ {
		tbl.InsertColumn(tbl.Cols() + 1)
	}
	tbl.SetCell(1, 1, []byte("x"))

	tbl.TrimRows()
	if tbl.Cols() != 1 {
		t.Fatalf("got width %d after trimming, want 1", tbl.Cols())
	}

	tbl.AlignRowSizes()
	for r := 1; r <= tbl.Rows(); r++ {
		if len(tbl.rows[r-1]) != tbl.Cols() {
			t.Fatalf("row %d not realigned", r)
		}
	}
}

func TestTrimRowsAllEmptyBecomesZeroWide(t *testing.T) {
	tbl := New()
	tbl.InsertRow(1)
	tbl.InsertColumn(1)
	tbl.InsertColumn(2)

	tbl.TrimRows()
	if tbl.Cols() != 0 {
		t.Fatalf("got width %d, want 0", tbl.Cols())
	}
	if tbl.Rows() != 1 {
		t.Fatalf("trimming must not remove rows, got %d rows", tbl.Rows())
	}
}

func TestResizeNeverShrinks(t *testing.T) {
	tbl := New()
	if err := tbl.Resize(3, 3); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Resize(1, 1); err != nil {
		t.Fatal(err)
	}
	if tbl.Rows() != 3 || tbl.Cols() != 3 {
		t.Fatalf("Resize shrank the table to %dx%d", tbl.Rows(), tbl.Cols())
	}
}

func TestGetCellOutOfBounds(t *testing.T) {
	tbl := New()
	tbl.InsertRow(1)
	tbl.InsertColumn(1)

	if _, err := tbl.GetCell(2, 1); err == nil {
		t.Fatal("expected an error for an out-of-bounds row")
	}
	if _, err := tbl.GetCell(1, 2); err == nil {
		t.Fatal("expected an error for an out-of-bounds column")
	}
}

func TestDeleteColumn(t *testing.T) {
	tbl := New()
	tbl.InsertRow(1)
	tbl.InsertColumn(1)
	tbl.InsertColumn(2)
	tbl.InsertColumn(3)
	tbl.SetCell(1, 1, []byte("a"))
	tbl.SetCell(1, 2, []byte("b"))
	tbl.SetCell(1, 3, []byte("c"))

	if err := tbl.DeleteColumn(2); err != nil {
		t.Fatal(err)
	}
	if got := cellStr(tbl, 1, 2); got != "c" {
		t.Fatalf("got %q, want %q", got, "c")
	}
	if tbl.Cols() != 2 {
		t.Fatalf("got width %d, want 2", tbl.Cols())
	}
}
