package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/evalboard/internal/evalreport"
	"github.com/mwiater/evalboard/internal/render"
)

func fixtureCases() []evalreport.TestCase {
	return []evalreport.TestCase{
		{TestID: "COUNT-1", Category: "Algorithmic Counting", Prompt: "count", Passed: false, ActualAnswer: "2", ExpectedAnswer: "3"},
		{TestID: "BIAS-1", Category: "Bias Probe", Passed: true},
		{TestID: "HAL-1", Category: "Hallucination", Passed: false, ActualAnswer: "invented", ExpectedAnswer: "unknown"},
	}
}

// countingLoader returns a loader that serves the fixture and records calls.
func countingLoader(calls *int) Loader {
	return func(ctx context.Context) evalreport.Overview {
		*calls++
		o := evalreport.Loaded("fixture.json", evalreport.Report{Results: fixtureCases()})
		return evalreport.BuildOverview(o, evalreport.DefaultOptions())
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func loadedModel(t *testing.T, calls *int) *model {
	t.Helper()
	m := newModel(context.Background(), countingLoader(calls))
	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})

	msg := loadCmd(m.ctx, m.load)()
	m2, _ := m.Update(msg)
	return m2.(*model)
}

func TestViewBeforeSize(t *testing.T) {
	m := newModel(context.Background(), countingLoader(new(int)))
	if got := m.View(); got != "Initializing..." {
		t.Fatalf("expected initializing view, got %q", got)
	}
}

func TestLoadBuildsTabs(t *testing.T) {
	calls := 0
	m := loadedModel(t, &calls)

	if calls != 1 {
		t.Fatalf("expected one load, got %d", calls)
	}
	if m.isLoading {
		t.Fatal("expected loading to finish")
	}
	want := []string{"Overview", "Reasoning Diagnostics", "Hallucination Analysis", "Bias & Refusal Metrics"}
	if strings.Join(m.tabs, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected tabs: %v", m.tabs)
	}

	out := m.View()
	for _, s := range []string{"Overview Dashboard", "Vulnerability Radar", "fixture.json", "COUNT"} {
		if !strings.Contains(out, s) {
			t.Fatalf("overview tab missing %q:\n%s", s, out)
		}
	}
}

func TestTabNavigation(t *testing.T) {
	m := loadedModel(t, new(int))

	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = m2.(*model)
	if m.active != 1 {
		t.Fatalf("expected tab 1, got %d", m.active)
	}
	if out := m.View(); !strings.Contains(out, "Reasoning Diagnostics (1 Issues)") || !strings.Contains(out, "Actual Output: 2") {
		t.Fatalf("reasoning tab not rendered:\n%s", out)
	}

	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = m2.(*model)
	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = m2.(*model)
	if m.active != len(m.tabs)-1 {
		t.Fatalf("expected wrap to last tab, got %d", m.active)
	}
	if out := m.View(); !strings.Contains(out, render.NoFailuresMessage) {
		t.Fatalf("expected empty bias failure log:\n%s", out)
	}

	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = m2.(*model)
	if m.active != 0 {
		t.Fatalf("expected wrap to first tab, got %d", m.active)
	}
}

func TestReload(t *testing.T) {
	calls := 0
	m := loadedModel(t, &calls)

	m2, cmd := m.Update(keyRune('r'))
	m = m2.(*model)
	if !m.isLoading || cmd == nil {
		t.Fatal("expected reload to start loading")
	}
	if !strings.Contains(m.View(), "reloading") {
		t.Fatalf("expected reloading status:\n%s", m.View())
	}

	if _, again := m.Update(keyRune('r')); again != nil {
		t.Fatal("expected reload to be ignored while loading")
	}

	m2, _ = m.Update(loadCmd(m.ctx, m.load)())
	m = m2.(*model)
	if calls != 2 || m.isLoading {
		t.Fatalf("expected a second load, calls=%d loading=%v", calls, m.isLoading)
	}
}

func TestUnavailableOverview(t *testing.T) {
	load := func(ctx context.Context) evalreport.Overview {
		return evalreport.BuildOverview(evalreport.Unavailable("missing.json", errors.New("no such file")), evalreport.DefaultOptions())
	}
	m := newModel(context.Background(), load)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	m2, _ := m.Update(loadCmd(m.ctx, load)())
	m = m2.(*model)

	out := m.View()
	for _, s := range []string{render.NoDataMessage, "no such file", render.AllClearMessage} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in view:\n%s", s, out)
		}
	}
	if len(m.tabs) != 4 {
		t.Fatalf("expected default view tabs, got %v", m.tabs)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{keyRune('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := loadedModel(t, new(int))
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected tea.QuitMsg for %q", key.String())
		}
	}
}
