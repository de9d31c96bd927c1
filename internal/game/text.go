package game

import "strings"

// minWrapWidth keeps output readable when a client negotiates an absurdly
// narrow window.
const minWrapWidth = 20

// WrapText folds text to the given column width for terminal display. Blank
// lines between paragraphs survive, and a word longer than the width is
// split rather than overflowing the line.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	if width < minWrapWidth {
		width = minWrapWidth
	}
	paragraphs := strings.Split(text, "\n")
	for i, para := range paragraphs {
		paragraphs[i] = foldParagraph(strings.TrimSpace(para), width)
	}
	return strings.Join(paragraphs, "\n")
}

func foldParagraph(para string, width int) string {
	var b strings.Builder
	col := 0
	for _, word := range strings.Fields(para) {
		runes := []rune(word)
		for len(runes) > width {
			if col > 0 {
				b.WriteByte('\n')
				col = 0
			}
			b.WriteString(string(runes[:width]))
			b.WriteByte('\n')
			runes = runes[width:]
		}
		switch n := len(runes); {
		case col == 0:
			b.WriteString(string(runes))
			col = n
		case col+1+n > width:
			b.WriteByte('\n')
			b.WriteString(string(runes))
			col = n
		default:
			b.WriteByte(' ')
			b.WriteString(string(runes))
			col += 1 + n
		}
	}
	return b.String()
}
