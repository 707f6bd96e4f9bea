package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"yuanc/internal/driver"
)

func TestNewProgressModelSeedsQueuedItems(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.yu", "b.yu"}, events).(*progressModel)

	if len(m.items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(m.items))
	}
	for _, item := range m.items {
		if item.status != "queued" {
			t.Fatalf("item %q status = %q, want queued", item.path, item.status)
		}
	}
}

func TestApplyEventUpdatesStatusAndProgress(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.yu", "b.yu"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.yu", Stage: driver.StageSema, Status: driver.ProgressWorking})
	if m.items[0].status != "checking" {
		t.Fatalf("items[0].status = %q, want checking", m.items[0].status)
	}

	m.applyEvent(driver.Event{File: "a.yu", Stage: driver.StageSema, Status: driver.ProgressDone})
	if m.items[0].status != "done" {
		t.Fatalf("items[0].status = %q, want done", m.items[0].status)
	}

	m.applyEvent(driver.Event{File: "b.yu", Stage: driver.StageCodegen, Status: driver.ProgressError})
	if m.items[1].status != "error" {
		t.Fatalf("items[1].status = %q, want error", m.items[1].status)
	}
}

func TestUpdateDoneMsgQuits(t *testing.T) {
	events := make(chan driver.Event)
	model := NewProgressModel("check", []string{"a.yu"}, events).(*progressModel)

	next, cmd := model.Update(doneMsg{})
	m := next.(*progressModel)
	if !m.done {
		t.Fatalf("expected done=true after doneMsg")
	}
	if cmd == nil {
		t.Fatalf("expected a tea.Quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected cmd() to produce a tea.QuitMsg")
	}
}

func TestViewRendersEachFile(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.yu", "b.yu"}, events).(*progressModel)

	view := m.View()
	if view == "" {
		t.Fatalf("expected non-empty view")
	}
}
