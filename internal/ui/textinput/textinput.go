// Package textinput implements a single-line popup text editor.
//
// The widget holds a UTF-8 string and a cursor that always sits on a
// grapheme-cluster boundary, so arrow keys and deletions never split a
// multi-byte sequence or a combining pair. It has no goroutines and no
// failure modes beyond bounds checks; the application owns when it is
// shown and what the entered text means.
package textinput

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Input is a single-line text entry widget.
type Input struct {
	title       string
	placeholder string
	text        string
	cursor      int // byte offset into text, always on a cluster boundary
	visible     bool
}

// New creates a hidden input with a title and placeholder text.
func New(title, placeholder string) *Input {
	return &Input{
		title:       title,
		placeholder: placeholder,
	}
}

// SetTitle sets the popup title.
func (i *Input) SetTitle(title string) {
	i.title = title
}

// SetText replaces the buffer and moves the cursor to the end.
func (i *Input) SetText(s string) {
	i.text = s
	i.cursor = len(s)
}

// Text returns the current buffer.
func (i *Input) Text() string {
	return i.text
}

// Clear empties the buffer and resets the cursor.
func (i *Input) Clear() {
	i.text = ""
	i.cursor = 0
}

// Show makes the widget visible.
func (i *Input) Show() {
	i.visible = true
}

// Hide makes the widget invisible.
func (i *Input) Hide() {
	i.visible = false
}

// IsVisible reports whether the widget is visible.
func (i *Input) IsVisible() bool {
	return i.visible
}

// HandleKey processes one key event and reports whether it consumed it.
// A hidden widget consumes nothing. Enter is deliberately not consumed:
// submission belongs to the caller.
func (i *Input) HandleKey(ev *tcell.EventKey) bool {
	if !i.visible || ev == nil {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		i.Hide()
		return true

	case tcell.KeyLeft:
		i.cursor = i.prevBoundary()
		return true

	case tcell.KeyRight:
		if next := i.nextBoundary(); next >= 0 {
			i.cursor = next
		}
		return true

	case tcell.KeyHome, tcell.KeyCtrlA:
		i.cursor = 0
		return true

	case tcell.KeyEnd, tcell.KeyCtrlE:
		i.cursor = len(i.text)
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		i.backspace()
		return true

	case tcell.KeyDelete:
		i.deleteForward()
		return true

	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return false
		}
		i.insert(string(ev.Rune()))
		return true
	}

	return false
}

// insert places s at the cursor and advances past it.
func (i *Input) insert(s string) {
	i.text = i.text[:i.cursor] + s + i.text[i.cursor:]
	i.cursor += len(s)
}

// backspace removes the cluster before the cursor.
func (i *Input) backspace() {
	if i.cursor == 0 {
		return
	}
	prev := i.prevBoundary()
	i.text = i.text[:prev] + i.text[i.cursor:]
	i.cursor = prev
}

// deleteForward removes the cluster under the cursor.
func (i *Input) deleteForward() {
	next := i.nextBoundary()
	if next < 0 {
		return
	}
	i.text = i.text[:i.cursor] + i.text[next:]
}

// nextBoundary returns the byte offset just past the cluster under the
// cursor, or -1 when the cursor is already at the end.
func (i *Input) nextBoundary() int {
	if i.cursor >= len(i.text) {
		return -1
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(i.text[i.cursor:], -1)
	return i.cursor + len(cluster)
}

// prevBoundary returns the byte offset of the cluster before the
// cursor, or 0 when the cursor is at the start.
func (i *Input) prevBoundary() int {
	prev := 0
	rest := i.text
	pos := 0
	state := -1

	for pos < i.cursor {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cluster == "" {
			break
		}
		prev = pos
		pos += len(cluster)
	}

	return prev
}

// Draw renders the widget at (x, y) within the given width: the title
// on the first row, the buffer (or placeholder) on the second with the
// glyph at the cursor underlined. A trailing space stands in for the
// cursor when it sits past the last glyph.
func (i *Input) Draw(screen tcell.Screen, x, y, width int, style tcell.Style) {
	if !i.visible || width <= 0 {
		return
	}

	drawText(screen, x, y, width, i.title, style.Bold(true))

	if i.text == "" {
		drawText(screen, x, y+1, width, i.placeholder, style.Dim(true))
		// Cursor over the first cell.
		screen.SetContent(x, y+1, ' ', nil, style.Underline(true))
		return
	}

	col := x
	rest := i.text
	pos := 0
	state := -1

	for len(rest) > 0 && col < x+width {
		var cluster string
		var cw int
		cluster, rest, cw, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cluster == "" {
			break
		}

		st := style
		if pos == i.cursor {
			st = st.Underline(true)
		}

		runes := []rune(cluster)
		screen.SetContent(col, y+1, runes[0], runes[1:], st)

		if cw < 1 {
			cw = 1
		}
		col += cw
		pos += len(cluster)
	}

	if i.cursor >= len(i.text) && col < x+width {
		screen.SetContent(col, y+1, ' ', nil, style.Underline(true))
	}
}

// drawText writes a string into one row, clipping to width.
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	col := x
	rest := s
	state := -1

	for len(rest) > 0 && col < x+width {
		var cluster string
		var cw int
		cluster, rest, cw, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cluster == "" {
			break
		}

		runes := []rune(cluster)
		screen.SetContent(col, y, runes[0], runes[1:], style)

		if cw < 1 {
			cw = 1
		}
		col += cw
	}
}
