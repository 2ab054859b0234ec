package textinput

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func keyEvent(key tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(key, 0, tcell.ModNone)
}

func runeEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func typeString(i *Input, s string) {
	for _, r := range s {
		i.HandleKey(runeEvent(r))
	}
}

func TestHiddenInputConsumesNothing(t *testing.T) {
	i := New("push", "")

	if i.HandleKey(runeEvent('a')) {
		t.Error("hidden input must not consume keys")
	}
	if i.Text() != "" {
		t.Errorf("hidden input must not mutate, got %q", i.Text())
	}
}

func TestInsertAndText(t *testing.T) {
	i := New("push", "")
	i.Show()

	typeString(i, "origin")

	if got := i.Text(); got != "origin" {
		t.Errorf("expected %q, got %q", "origin", got)
	}
}

func TestInsertAtCursor(t *testing.T) {
	i := New("push", "")
	i.Show()

	typeString(i, "man")
	i.HandleKey(keyEvent(tcell.KeyLeft))
	i.HandleKey(keyEvent(tcell.KeyLeft))
	i.HandleKey(runeEvent('i'))

	if got := i.Text(); got != "mian" {
		t.Errorf("expected %q, got %q", "mian", got)
	}
}

func TestSetTextMovesCursorToEnd(t *testing.T) {
	i := New("push", "")
	i.Show()

	i.SetText("main")
	i.HandleKey(runeEvent('!'))

	if got := i.Text(); got != "main!" {
		t.Errorf("expected %q, got %q", "main!", got)
	}
}

func TestBackspaceRemovesWholeCluster(t *testing.T) {
	// The family emoji is multiple runes joined by ZWJ; one backspace
	// removes all of it.
	i := New("push", "")
	i.Show()

	i.SetText("a\U0001F468\u200D\U0001F469\u200D\U0001F466")
	i.HandleKey(keyEvent(tcell.KeyBackspace2))

	if got := i.Text(); got != "a" {
		t.Errorf("expected %q, got %q", "a", got)
	}

	i.HandleKey(keyEvent(tcell.KeyBackspace2))
	if got := i.Text(); got != "" {
		t.Errorf("expected empty buffer, got %q", got)
	}

	// Backspace at the start is a no-op.
	i.HandleKey(keyEvent(tcell.KeyBackspace2))
	if got := i.Text(); got != "" {
		t.Errorf("expected empty buffer, got %q", got)
	}
}

func TestDeleteRemovesClusterUnderCursor(t *testing.T) {
	i := New("push", "")
	i.Show()

	i.SetText("日本語")
	i.HandleKey(keyEvent(tcell.KeyHome))
	i.HandleKey(keyEvent(tcell.KeyDelete))

	if got := i.Text(); got != "本語" {
		t.Errorf("expected %q, got %q", "本語", got)
	}

	i.HandleKey(keyEvent(tcell.KeyEnd))
	i.HandleKey(keyEvent(tcell.KeyDelete))
	if got := i.Text(); got != "本語" {
		t.Errorf("delete at end must be a no-op, got %q", got)
	}
}

func TestCursorMovesByCluster(t *testing.T) {
	i := New("push", "")
	i.Show()

	// "e" followed by a combining acute accent is one cluster.
	i.SetText("éx")
	i.HandleKey(keyEvent(tcell.KeyHome))
	i.HandleKey(keyEvent(tcell.KeyRight))
	i.HandleKey(runeEvent('-'))

	if got := i.Text(); got != "é-x" {
		t.Errorf("expected insert after combining pair, got %q", got)
	}

	i.HandleKey(keyEvent(tcell.KeyLeft))
	i.HandleKey(keyEvent(tcell.KeyLeft))
	i.HandleKey(keyEvent(tcell.KeyDelete))
	if got := i.Text(); got != "-x" {
		t.Errorf("expected whole cluster removed, got %q", got)
	}
}

func TestLeftAtStartAndRightAtEnd(t *testing.T) {
	i := New("push", "")
	i.Show()
	i.SetText("ok")

	i.HandleKey(keyEvent(tcell.KeyRight))
	i.HandleKey(runeEvent('!'))
	if got := i.Text(); got != "ok!" {
		t.Errorf("right at end must not move, got %q", got)
	}

	i.HandleKey(keyEvent(tcell.KeyHome))
	i.HandleKey(keyEvent(tcell.KeyLeft))
	i.HandleKey(runeEvent('>'))
	if got := i.Text(); got != ">ok!" {
		t.Errorf("left at start must not move, got %q", got)
	}
}

func TestEscapeHidesAndConsumes(t *testing.T) {
	i := New("push", "")
	i.Show()
	i.SetText("main")

	if !i.HandleKey(keyEvent(tcell.KeyEscape)) {
		t.Error("expected escape to be consumed")
	}
	if i.IsVisible() {
		t.Error("expected widget hidden after escape")
	}
	if got := i.Text(); got != "main" {
		t.Errorf("escape must not clear the buffer, got %q", got)
	}
}

func TestEnterNotConsumed(t *testing.T) {
	i := New("push", "")
	i.Show()

	if i.HandleKey(keyEvent(tcell.KeyEnter)) {
		t.Error("enter belongs to the caller")
	}
}

func TestClear(t *testing.T) {
	i := New("push", "")
	i.Show()
	i.SetText("main")

	i.Clear()
	if i.Text() != "" {
		t.Errorf("expected empty buffer, got %q", i.Text())
	}

	typeString(i, "x")
	if i.Text() != "x" {
		t.Errorf("expected cursor reset after clear, got %q", i.Text())
	}
}

func TestDrawRendersTextAndCursor(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 4)

	i := New("branch", "enter branch")
	i.Show()
	i.SetText("main")
	i.HandleKey(keyEvent(tcell.KeyHome))

	i.Draw(screen, 0, 0, 20, tcell.StyleDefault)
	screen.Show()

	for col, want := range []rune("branch") {
		got, _, _, _ := screen.GetContent(col, 0)
		if got != want {
			t.Fatalf("title col %d: expected %q, got %q", col, want, got)
		}
	}

	for col, want := range []rune("main") {
		got, _, style, _ := screen.GetContent(col, 1)
		if got != want {
			t.Fatalf("text col %d: expected %q, got %q", col, want, got)
		}
		_, _, attrs := style.Decompose()
		underlined := attrs&tcell.AttrUnderline != 0
		if col == 0 && !underlined {
			t.Error("expected cursor glyph underlined")
		}
		if col != 0 && underlined {
			t.Errorf("col %d unexpectedly underlined", col)
		}
	}
}

func TestDrawPlaceholderWhenEmpty(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 4)

	i := New("branch", "enter branch")
	i.Show()

	i.Draw(screen, 0, 0, 20, tcell.StyleDefault)
	screen.Show()

	// The cursor cell overwrites the first placeholder glyph.
	got, _, _, _ := screen.GetContent(0, 1)
	if got != ' ' {
		t.Errorf("expected cursor cell, got %q", got)
	}
	got, _, _, _ = screen.GetContent(1, 1)
	if got != 'n' {
		t.Errorf("expected placeholder, got %q", got)
	}
}
