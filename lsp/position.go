package lsp

import (
	"sort"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// lineIndex maps between rune offsets and line/character positions.
// Characters in a position are UTF-16 code units, as LSP counts them.
type lineIndex struct {
	text   []rune
	starts []int
}

func newLineIndex(text string) lineIndex {
	idx := lineIndex{text: []rune(text), starts: []int{0}}
	for i, r := range idx.text {
		if r == '\n' {
			idx.starts = append(idx.starts, i+1)
		}
	}
	return idx
}

func (idx lineIndex) offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(idx.starts) {
		return len(idx.text)
	}
	end := len(idx.text)
	if line+1 < len(idx.starts) {
		end = idx.starts[line+1] - 1
	}
	offset := idx.starts[line]
	for units := 0; offset < end && units < int(pos.Character); offset++ {
		units += utf16.RuneLen(idx.text[offset])
	}
	return offset
}

func (idx lineIndex) position(offset int) protocol.Position {
	if offset > len(idx.text) {
		offset = len(idx.text)
	}
	line := sort.Search(len(idx.starts), func(i int) bool {
		return idx.starts[i] > offset
	}) - 1
	units := 0
	for _, r := range idx.text[idx.starts[line]:offset] {
		units += utf16.RuneLen(r)
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(units),
	}
}

func (idx lineIndex) span(begin, end int) protocol.Range {
	return protocol.Range{Start: idx.position(begin), End: idx.position(end)}
}
