package tally

import "unicode/utf8"

// buffer is a rune cursor over one statement of source text. It tracks the
// 1-based column of the cursor so tokens can carry positions for diagnostics.
type buffer struct {
	src string
	off int
	col int
}

func newBuffer(src string) *buffer {
	return &buffer{src: src, col: 1}
}

// current returns the rune under the cursor without consuming it. ok is false
// once the input is exhausted.
func (b *buffer) current() (r rune, ok bool) {
	if b.off >= len(b.src) {
		return 0, false
	}
	r, _ = utf8.DecodeRuneInString(b.src[b.off:])
	return r, true
}

// advance consumes the rune under the cursor. Advancing past the end of the
// input does nothing.
func (b *buffer) advance() {
	if b.off >= len(b.src) {
		return
	}
	_, sz := utf8.DecodeRuneInString(b.src[b.off:])
	b.off += sz
	b.col++
}
