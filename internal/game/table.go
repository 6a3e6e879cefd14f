package game

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"
)

const TableCorner = `v PC/User >`

// HelpTable lays out every pairing: rows are the computer's move, columns the
// user's move, cells the result for the user.
func HelpTable(e *RuleEngine) [][]string {
	names := e.moves.Names()

	header := append([]string{TableCorner}, names...)
	grid := [][]string{header}

	for pc := range names {
		row := []string{names[pc]}
		for user := range names {
			row = append(row, e.decide(user, pc).Title())
		}
		grid = append(grid, row)
	}
	return grid
}

// RenderTable draws grid as an ASCII box table.
func RenderTable(w io.Writer, grid [][]string) error {
	if len(grid) == 0 {
		return nil
	}

	widths := make([]int, len(grid[0]))
	for _, row := range grid {
		for i, cell := range row {
			if n := displayWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder
	separator := func() {
		sb.WriteByte('+')
		for _, n := range widths {
			sb.WriteString(strings.Repeat("-", n+2))
			sb.WriteByte('+')
		}
		sb.WriteByte('\n')
	}

	separator()
	for _, row := range grid {
		sb.WriteByte('|')
		for i, cell := range row {
			sb.WriteByte(' ')
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", widths[i]-displayWidth(cell)+1))
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
		separator()
	}

	_, err := fmt.Fprint(w, sb.String())
	return err
}

// displayWidth counts terminal columns; wide and fullwidth runes take two.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
