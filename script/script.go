/*
  script.go
  Description: tokenizing a command-script string into an ordered command list
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

// Package script tokenizes a command-script string into an ordered list of
// command records the dispatcher can walk once, in order.
//
// Grounded on pfparser.nextToken's token-at-a-time scanning (pointer into a
// string, consumed or merely peeked) and pfparser.Parse's job of folding a
// token stream into structured records; unlike pfparser, there is no
// recursive grammar here; a script is a flat, ';'-separated list, so the
// parser is a single pass rather than a recursive descent.
package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clinaresl/sps/errs"
)

// Kind distinguishes a selection command (run exactly once per script step)
// from a mutation command (run once per cell of the current selection).
type Kind int

const (
	Selection Kind = iota
	Mutation
)

// Sentinel integer values a Param's Int field can hold once every command's
// string parameters have been resolved. Unset also doubles as "this
// parameter parsed to zero, or did not parse as an integer at all", per the
// command record's own contract: the handler picks whichever of Text or Int
// applies.
const (
	Last  = -1
	Unset = 0
)

// Param is one parameter slot of a command: the raw token captured at parse
// time (Text) plus, once resolveParams has run over the whole command list,
// the integer that token resolves to (Int), which is Last, Unset, or a
// genuine nonzero value.
type Param struct {
	Text string
	Int  int
}

// Command is one parsed script step.
type Command struct {
	Kind   Kind
	Name   string
	Params []Param
}

// Parse tokenizes src into an ordered command list. Commands are separated
// by ';'; a '[' opened and never matched by a ']' before either the next
// ';' or the end of the string is ErrMalformedScript.
func Parse(src string) ([]*Command, error) {
	segments, err := splitCommands(src)
	if err != nil {
		return nil, err
	}

	var cmds []*Command
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		cmd, err := parseSegment(seg)
		if err != nil {
			return nil, err
		}

		// The name collision rule: the mutation "set" (write a cell) and
		// the selection-context "set" (save the current selection,
		// spelled "[set]" in a script) share a name. Rewriting the
		// selection-tagged one here lets the dispatcher key its handler
		// table purely by name.
		if cmd.Name == "set" && cmd.Kind == Selection {
			cmd.Name = "set-v"
		}

		cmds = append(cmds, cmd)
	}

	resolveParams(cmds)
	return cmds, nil
}

// splitCommands breaks src into raw, untrimmed command segments on every
// top-level ';' (one not nested inside an unmatched '[').
func splitCommands(src string) ([]string, error) {
	var segments []string
	depth := 0
	start := 0

	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth > 0 {
				return nil, fmt.Errorf("';' inside an unclosed '[' at byte %d: %w", i, errs.ErrMalformedScript)
			}
			segments = append(segments, src[start:i])
			start = i + 1
		}
	}
	if depth > 0 {
		return nil, fmt.Errorf("unclosed '[': %w", errs.ErrMalformedScript)
	}
	segments = append(segments, src[start:])

	return segments, nil
}

// parseSegment parses one ';'-delimited segment into a single command
// record, following the two syntactic shapes described in the script
// grammar: a bracket selection, or a named command optionally framed in
// brackets.
func parseSegment(seg string) (*Command, error) {
	if len(seg) > 0 && seg[0] == '[' && len(seg) > 1 && isBracketSelectionLead(seg[1]) {
		return parseBracketSelection(seg)
	}

	framed := false
	body := seg
	if len(seg) > 0 && seg[0] == '[' {
		end, err := matchingBracket(seg)
		if err != nil {
			return nil, err
		}
		framed = true
		body = seg[1:end]
	}

	toks := tokenize(body)
	if len(toks) == 0 {
		return nil, fmt.Errorf("empty command: %w", errs.ErrMalformedScript)
	}

	kind := Mutation
	if framed {
		kind = Selection
	}

	params := make([]Param, 0, len(toks)-1)
	for _, tok := range toks[1:] {
		params = append(params, Param{Text: tok})
	}

	return &Command{Kind: kind, Name: toks[0], Params: params}, nil
}

func isBracketSelectionLead(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9')
}

// matchingBracket returns the index, within seg, of the ']' matching the
// '[' at seg[0]. seg[0] must be '['.
func matchingBracket(seg string) (int, error) {
	depth := 0
	for i := 0; i < len(seg); i++ {
		switch seg[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unclosed '[' in %q: %w", seg, errs.ErrMalformedScript)
}

// parseBracketSelection parses the "[R,C]" / "[R1,C1,R2,C2]" / "[_]" shape
// into a selection-type "select" command.
func parseBracketSelection(seg string) (*Command, error) {
	end, err := matchingBracket(seg)
	if err != nil {
		return nil, err
	}
	inner := seg[1:end]

	var items []string
	for _, item := range strings.Split(inner, ",") {
		items = append(items, strings.TrimSpace(item))
	}

	switch len(items) {
	case 1, 2, 4:
		// valid shapes
	default:
		return nil, fmt.Errorf("selection %q needs 1, 2 or 4 items, got %d: %w", seg, len(items), errs.ErrMalformedScript)
	}

	params := make([]Param, len(items))
	for i, item := range items {
		params[i] = Param{Text: item}
	}

	return &Command{Kind: Selection, Name: "select", Params: params}, nil
}

// tokenize splits body on spaces that are not preceded by an unescaped '\'.
// A '\' directly before a space or another '\' is consumed, and the
// following byte becomes a literal part of the current token.
func tokenize(body string) []string {
	var toks []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(body); i++ {
		b := body[i]
		switch {
		case b == '\\' && i+1 < len(body) && (body[i+1] == ' ' || body[i+1] == '\\'):
			cur.WriteByte(body[i+1])
			i++
		case b == ' ':
			flush()
		default:
			cur.WriteByte(b)
		}
	}
	flush()

	return toks
}

// resolveParams converts every parameter's raw text into its integer
// sentinel, per the command record's contract: "_" or "-" becomes Last;
// text that parses as a nonzero base-10 integer becomes that value;
// anything else (including "0") leaves Int at Unset.
func resolveParams(cmds []*Command) {
	for _, cmd := range cmds {
		for i := range cmd.Params {
			cmd.Params[i].Int = resolveOne(cmd.Params[i].Text)
		}
	}
}

func resolveOne(text string) int {
	return ResolveInt(text)
}

// ResolveInt applies the command record's string-to-integer contract to a
// single raw token: "_" or "-" resolves to Last; text that parses as a
// nonzero base-10 integer resolves to that value; anything else (including
// "0") resolves to Unset. Exported so that command parameters which embed a
// "[R,C]" cell reference (swap, sum, avg, count, len) can be resolved the
// same way the top-level bracket-selection shape is.
func ResolveInt(text string) int {
	if text == "_" || text == "-" {
		return Last
	}
	n, err := strconv.Atoi(text)
	if err != nil || n == 0 {
		return Unset
	}
	return n
}

// ParseCellRef parses an embedded "[R,C]" cell-reference parameter, as used
// by the swap, sum, avg, count and len commands, into its two raw item
// texts. It does not itself resolve them to integers; call ResolveInt on
// each.
func ParseCellRef(s string) (rText, cText string, err error) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", "", fmt.Errorf("%q is not a \"[R,C]\" cell reference: %w", s, errs.ErrBadArgumentCell)
	}
	items := strings.Split(s[1:len(s)-1], ",")
	if len(items) != 2 {
		return "", "", fmt.Errorf("%q is not a \"[R,C]\" cell reference: %w", s, errs.ErrBadArgumentCell)
	}
	return strings.TrimSpace(items[0]), strings.TrimSpace(items[1]), nil
}
