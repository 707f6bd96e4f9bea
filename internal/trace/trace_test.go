package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.scope); got != c.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", c.level, c.scope, got, c.want)
		}
	}
}

func TestParseLevelRoundTrip(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != s {
			t.Errorf("ParseLevel(%q).String() = %q", s, lvl.String())
		}
	}
	if _, err := ParseLevel("bogus"); err == nil {
		t.Error("ParseLevel(bogus) should have failed")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)

	sp := Begin(tr, ScopePass, "sema", 0)
	sp.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 events, got %d: %q", len(lines), buf.String())
	}
	var ev struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("unmarshal begin event: %v", err)
	}
	if ev.Kind != "begin" || ev.Name != "sema" {
		t.Errorf("begin event = %+v", ev)
	}
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("unmarshal end event: %v", err)
	}
	if ev.Kind != "end" {
		t.Errorf("end event = %+v", ev)
	}
}

func TestRingTracerWrapsAndSnapshots(t *testing.T) {
	rt := NewRingTracer(2, LevelDebug)
	for i := 0; i < 3; i++ {
		rt.Emit(&Event{Scope: ScopeDriver, Kind: KindPoint, Name: "ev"})
	}
	snap := rt.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected ring capacity 2 after wrap, got %d", len(snap))
	}
}

func TestNopTracerDisabled(t *testing.T) {
	if Nop.Enabled() {
		t.Error("Nop tracer should report disabled")
	}
	sp := Begin(Nop, ScopeDriver, "x", 0)
	if sp.ID() != 0 {
		t.Errorf("no-op span should have ID 0, got %d", sp.ID())
	}
}

func TestContextRoundTrip(t *testing.T) {
	tr := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Error("FromContext did not return the attached tracer")
	}
	if FromContext(context.Background()) != Nop {
		t.Error("FromContext on a bare context should return Nop")
	}

	sc := SpanContext{SpanID: 7, GID: 1}
	ctx = WithSpanContext(ctx, sc)
	if got := CurrentSpan(ctx); got != sc {
		t.Errorf("CurrentSpan = %+v, want %+v", got, sc)
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	a := NewRingTracer(4, LevelDebug)
	b := NewRingTracer(4, LevelDebug)
	m := NewMultiTracer(LevelDebug, a, b)

	m.Emit(&Event{Scope: ScopeDriver, Kind: KindPoint, Name: "fanout"})
	if len(a.Snapshot()) != 1 || len(b.Snapshot()) != 1 {
		t.Error("MultiTracer did not fan out to both underlying tracers")
	}
}

func TestLoggerLevelGating(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, false)
	l.Debug("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("Debug record leaked at default level: %q", buf.String())
	}
	l.With("module", "main").Info("loaded")
	if !strings.Contains(buf.String(), "module=main") {
		t.Errorf("expected module=main field, got %q", buf.String())
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if LoggerFromContext(context.Background()) == nil {
		t.Error("LoggerFromContext should never return nil")
	}
}

func TestNewBuildsRequestedMode(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tr.Close()

	sp := Begin(tr, ScopePass, "lex", 0)
	sp.End("")
	if buf.Len() == 0 {
		t.Fatal("expected New's stream tracer to write events")
	}

	tr, err = New(Config{Level: LevelPhase, Mode: ModeRing, RingSize: 8})
	if err != nil {
		t.Fatalf("New (ring): %v", err)
	}
	if _, ok := tr.(*RingTracer); !ok {
		t.Fatalf("New with ModeRing = %T, want *RingTracer", tr)
	}

	tr, err = New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("New (off): %v", err)
	}
	if tr != Tracer(Nop) {
		t.Fatalf("New with LevelOff should return Nop")
	}
}

func TestParseModeAndFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"stream", "ring", "both"} {
		m, err := ParseMode(s)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", s, err)
		}
		if m.String() != s {
			t.Errorf("ParseMode(%q).String() = %q", s, m.String())
		}
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Error("ParseMode(bogus) should have failed")
	}

	for _, s := range []string{"auto", "text", "ndjson"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("bogus"); err == nil {
		t.Error("ParseFormat(bogus) should have failed")
	}
}
