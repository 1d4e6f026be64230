package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/render/live"
)

type manualTimer struct{ stopped bool }

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualScheduler never fires; tests settle the diagram explicitly.
type manualScheduler struct{ n int }

func (s *manualScheduler) AfterFunc(time.Duration, func()) live.Timer {
	s.n++
	return &manualTimer{}
}

func newTestPreview(t *testing.T) (previewModel, *live.Diagram, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	d := live.New(live.WithScheduler(sched))
	cfg := diagram.Sample()
	if err := d.Mount(cfg); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	out := filepath.Join(t.TempDir(), "preview.svg")
	return newPreviewModel(d, cfg, "sample.yaml", out), d, sched
}

func press(t *testing.T, m previewModel, key string) previewModel {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(previewModel)
}

func TestPreviewCursorHoversTiers(t *testing.T) {
	m, d, _ := newTestPreview(t)

	m = press(t, m, "up")
	if got := d.State().Hovered; got != 0 {
		t.Fatalf("hovered = %d after up, want 0", got)
	}
	m = press(t, m, "up")
	if got := d.State().Hovered; got != 1 {
		t.Fatalf("hovered = %d after second up, want 1", got)
	}
	m = press(t, m, "up")
	if got := d.State().Hovered; got != 1 {
		t.Errorf("hovered = %d past the top tier, want 1", got)
	}
	m = press(t, m, "esc")
	if got := d.State().Hovered; got != live.NoTier {
		t.Errorf("hovered = %d after esc, want none", got)
	}
	m = press(t, m, "down")
	if got := d.State().Hovered; got != 1 {
		t.Errorf("down from nothing hovered = %d, want top tier", got)
	}
}

func TestPreviewSettleAndReplay(t *testing.T) {
	m, d, sched := newTestPreview(t)

	m = press(t, m, "s")
	if !d.State().AllEntered() {
		t.Fatal("s should settle every tier")
	}
	if !strings.Contains(m.View(), "settled") {
		t.Error("view should report the settle")
	}

	before := d.State().Instance
	scheduled := sched.n
	m = press(t, m, "r")
	st := d.State()
	if st.Instance == before {
		t.Error("replay should remount with a fresh instance")
	}
	if st.AllEntered() {
		t.Error("replay should restart the entrance")
	}
	if sched.n != scheduled+2 {
		t.Errorf("replay scheduled %d timers, want 2", sched.n-scheduled)
	}
	if m.err != nil {
		t.Errorf("unexpected error %v", m.err)
	}
}

func TestPreviewWrite(t *testing.T) {
	m, _, _ := newTestPreview(t)
	m = press(t, m, "w")

	data, err := os.ReadFile(m.output)
	if err != nil {
		t.Fatalf("w did not write %s: %v", m.output, err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("written file is not SVG")
	}
	if !strings.Contains(m.View(), "wrote") {
		t.Error("view should report the write")
	}
}

func TestPreviewQuitUnmounts(t *testing.T) {
	m, d, _ := newTestPreview(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if d.State().Mounted {
		t.Error("q should unmount the diagram")
	}
	_ = next
}

func TestPreviewView(t *testing.T) {
	m, _, _ := newTestPreview(t)
	view := m.View()
	for _, want := range []string{"Preview sample.yaml", "entering", "instance"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = press(t, m, "s")
	m = press(t, m, "up")
	view = m.View()
	for _, want := range []string{"hovered", "dimmed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q after hover:\n%s", want, view)
		}
	}
}

func TestTierState(t *testing.T) {
	st := live.State{Mounted: true, Entered: []bool{true, true, false}, Hovered: 1}
	tests := []struct {
		tier int
		want string
	}{
		{0, "dimmed"},
		{1, "hovered"},
		{2, "entering"},
	}
	for _, tt := range tests {
		if got := tierState(st, tt.tier); got != tt.want {
			t.Errorf("tierState(%d) = %q, want %q", tt.tier, got, tt.want)
		}
	}
	if got := tierState(live.State{}, 0); got != "unmounted" {
		t.Errorf("unmounted state = %q", got)
	}
}
