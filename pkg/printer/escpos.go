package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Align is a text justification mode
type Align byte

const (
	AlignLeft   Align = 0
	AlignCenter Align = 1
	AlignRight  Align = 2
)

// Size is a GS ! character size selector
type Size byte

const (
	SizeNormal Size = 0x00
	SizeDouble Size = 0x11
	SizeWide   Size = 0x10
	SizeTall   Size = 0x01
)

// Paper widths in characters for the common roll sizes
const (
	Width58mm = 32
	Width80mm = 48
)

// Document builds an ESC/POS byte stream. Widths are counted in runes so
// multi-byte names line up with their amounts.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document for a paper width in characters.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = Width58mm
	}
	d := &Document{width: width}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

func (d *Document) Width() int {
	return d.width
}

func (d *Document) Align(a Align) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(a)})
	return d
}

func (d *Document) Bold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) Size(s Size) *Document {
	d.buf.Write([]byte{GS, '!', byte(s)})
	return d
}

// Line writes s and a line feed. Lines longer than the paper wrap.
func (d *Document) Line(s string) *Document {
	for _, part := range wrap(s, d.width) {
		d.buf.WriteString(part)
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) Linef(format string, args ...any) *Document {
	return d.Line(fmt.Sprintf(format, args...))
}

// Rule prints a full-width line of c.
func (d *Document) Rule(c rune) *Document {
	d.buf.WriteString(strings.Repeat(string(c), d.width))
	d.buf.WriteByte(LF)
	return d
}

// Pair prints left and right justified text on one line, truncating the
// left side if both do not fit.
func (d *Document) Pair(left, right string) *Document {
	room := d.width - utf8.RuneCountInString(right) - 1
	if room < 1 {
		return d.Line(left).Line(right)
	}
	left = truncate(left, room)
	gap := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", gap))
	d.buf.WriteString(right)
	d.buf.WriteByte(LF)
	return d
}

// Item prints "<qty>x <name>" with a right-aligned amount. A name too long
// for the first line continues, indented, on the following lines.
func (d *Document) Item(qty int, name, amount string) *Document {
	prefix := fmt.Sprintf("%dx ", qty)
	room := d.width - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(amount) - 1
	if room < 1 {
		return d.Line(prefix + name).Pair("", amount)
	}
	head, rest := splitAt(name, room)
	d.Pair(prefix+head, amount)
	if rest != "" {
		indent := strings.Repeat(" ", utf8.RuneCountInString(prefix))
		for _, part := range wrap(rest, d.width-len(indent)) {
			d.Line(indent + part)
		}
	}
	return d
}

func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// Cut sends a partial cut, which every supported printer accepts.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func splitAt(s string, n int) (string, string) {
	r := []rune(s)
	if len(r) <= n {
		return s, ""
	}
	return string(r[:n]), strings.TrimLeft(string(r[n:]), " ")
}

func wrap(s string, n int) []string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return []string{s}
	}
	var out []string
	for s != "" {
		var head string
		head, s = splitAt(s, n)
		out = append(out, head)
	}
	return out
}
