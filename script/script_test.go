/*
  script_test.go
  Description: Unit tests for the command-script parser
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

package script

import "testing"

func TestParseBracketSelectionTwoItems(t *testing.T) {
	cmds, err := Parse("[2,2]")
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	c := cmds[0]
	if c.Kind != Selection || c.Name != "select" {
		t.Fatalf("got %+v", c)
	}
	if len(c.Params) != 2 || c.Params[0].Int != 2 || c.Params[1].Int != 2 {
		t.Fatalf("got params %+v", c.Params)
	}
}

func TestParseBracketSelectionFourItems(t *testing.T) {
	cmds, err := Parse("[1,1,2,3]")
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds[0].Params) != 4 {
		t.Fatalf("got %d params, want 4", len(cmds[0].Params))
	}
}

func TestParseBracketSelectionRestoreSaved(t *testing.T) {
	cmds, err := Parse("[_]")
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds[0].Params) != 1 || cmds[0].Params[0].Int != Last {
		t.Fatalf("got %+v", cmds[0].Params)
	}
}

func TestParseScriptFromSpecExample3(t *testing.T) {
	cmds, err := Parse("[2,2];irow;set Z")
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3", len(cmds))
	}
	if cmds[1].Name != "irow" || cmds[1].Kind != Mutation {
		t.Fatalf("got %+v", cmds[1])
	}
	if cmds[2].Name != "set" || cmds[2].Kind != Mutation || cmds[2].Params[0].Text != "Z" {
		t.Fatalf("got %+v", cmds[2])
	}
}

func TestParseSetVsSetV(t *testing.T) {
	cmds, err := Parse("set Z;[set]")
	if err != nil {
		t.Fatal(err)
	}
	if cmds[0].Name != "set" {
		t.Fatalf("mutation set renamed unexpectedly: %+v", cmds[0])
	}
	if cmds[1].Name != "set-v" {
		t.Fatalf("selection set not renamed to set-v: %+v", cmds[1])
	}
}

func TestParseNamedCommandFramedIsSelection(t *testing.T) {
	cmds, err := Parse("[min]")
	if err != nil {
		t.Fatal(err)
	}
	if cmds[0].Name != "min" || cmds[0].Kind != Selection {
		t.Fatalf("got %+v", cmds[0])
	}
}

func TestParseUnclosedBracketIsMalformed(t *testing.T) {
	if _, err := Parse("[1,1;irow"); err == nil {
		t.Fatal("expected a malformed-script error")
	}
	if _, err := Parse("[1,1"); err == nil {
		t.Fatal("expected a malformed-script error")
	}
}

func TestTokenizeEscapedSpace(t *testing.T) {
	cmds, err := Parse(`set a\ b`)
	if err != nil {
		t.Fatal(err)
	}
	if cmds[0].Params[0].Text != "a b" {
		t.Fatalf("got %q, want %q", cmds[0].Params[0].Text, "a b")
	}
}

func TestResolveIntSentinels(t *testing.T) {
	cases := map[string]int{
		"_":  Last,
		"-":  Last,
		"5":  5,
		"0":  Unset,
		"x":  Unset,
		"-3": -3,
	}
	for text, want := range cases {
		if got := ResolveInt(text); got != want {
			t.Errorf("ResolveInt(%q) = %d, want %d", text, got, want)
		}
	}
}

func TestParseCellRef(t *testing.T) {
	r, c, err := ParseCellRef("[1,2]")
	if err != nil {
		t.Fatal(err)
	}
	if r != "1" || c != "2" {
		t.Fatalf("got (%q,%q)", r, c)
	}
}

func TestParseVariableRoundTripScript(t *testing.T) {
	cmds, err := Parse("[1,1];def _3;inc _3;[1,2];use _3")
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 5 {
		t.Fatalf("got %d commands, want 5", len(cmds))
	}
	if cmds[1].Name != "def" || cmds[1].Params[0].Text != "_3" {
		t.Fatalf("got %+v", cmds[1])
	}
}
