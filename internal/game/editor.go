package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxDescriptionLines caps editable description bodies.
const MaxDescriptionLines = 40

var (
	// ErrEditorLineCount indicates the edit would exceed the line cap.
	ErrEditorLineCount = errors.New("maximum line count exceeded")
	// ErrEditorBadLine indicates a malformed line reference.
	ErrEditorBadLine = errors.New("bad line reference")
)

// EditOutcome is the result of one line-editor operation.
type EditOutcome struct {
	Text    string
	Dirty   bool
	Listing string // non-empty when the caller should show the buffer
}

// EditText applies one line-editing operation to source. The leading
// character of args selects the operation: "+N text" inserts text as line N,
// "-N" removes line N, "-N..M" removes lines N through M, and "=" followed by
// text replaces the whole buffer. Empty args lists the buffer; anything else
// appends args as a new final line.
func EditText(args, source string) (EditOutcome, error) {
	args = strings.TrimRight(args, " ")
	if strings.TrimSpace(args) == "" {
		return EditOutcome{Text: source, Listing: listBuffer(source)}, nil
	}

	switch args[0] {
	case '+':
		rest := strings.TrimSpace(args[1:])
		numStr, text, _ := strings.Cut(rest, " ")
		lno, err := strconv.Atoi(numStr)
		if err != nil || lno < 1 {
			return EditOutcome{}, fmt.Errorf("%w: %q", ErrEditorBadLine, numStr)
		}
		if lno > MaxDescriptionLines {
			return EditOutcome{}, ErrEditorLineCount
		}
		return EditOutcome{Text: insertLine(source, lno, text), Dirty: true}, nil
	case '-':
		from, to, err := parseLineRange(strings.TrimSpace(args[1:]))
		if err != nil {
			return EditOutcome{}, err
		}
		text, removed := removeLines(source, from, to)
		return EditOutcome{Text: text, Dirty: removed}, nil
	case '=':
		return EditOutcome{Text: strings.TrimSpace(args[1:]), Dirty: true}, nil
	}

	lines := splitLines(source)
	if len(lines)+1 > MaxDescriptionLines {
		return EditOutcome{}, ErrEditorLineCount
	}
	lines = append(lines, args)
	return EditOutcome{Text: strings.Join(lines, "\n"), Dirty: true}, nil
}

func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	return strings.Split(source, "\n")
}

func listBuffer(source string) string {
	lines := splitLines(source)
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%3d| %s\r\n", i+1, line)
	}
	if len(lines) == 0 {
		b.WriteString("  (empty)\r\n")
	}
	return b.String()
}

func insertLine(source string, lno int, text string) string {
	lines := splitLines(source)
	for len(lines) < lno-1 {
		lines = append(lines, "")
	}
	if lno-1 >= len(lines) {
		lines = append(lines, text)
	} else {
		lines = append(lines[:lno-1], append([]string{text}, lines[lno-1:]...)...)
	}
	return strings.Join(lines, "\n")
}

func parseLineRange(ref string) (int, int, error) {
	fromStr, toStr, ranged := strings.Cut(ref, "..")
	from, err := strconv.Atoi(strings.TrimSpace(fromStr))
	if err != nil || from < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrEditorBadLine, ref)
	}
	to := from
	if ranged {
		to, err = strconv.Atoi(strings.TrimSpace(toStr))
		if err != nil || to < from {
			return 0, 0, fmt.Errorf("%w: %q", ErrEditorBadLine, ref)
		}
	}
	return from, to, nil
}

func removeLines(source string, from, to int) (string, bool) {
	lines := splitLines(source)
	if from > len(lines) {
		return source, false
	}
	if to > len(lines) {
		to = len(lines)
	}
	lines = append(lines[:from-1], lines[to:]...)
	return strings.Join(lines, "\n"), true
}
