package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/uplift/internal/screen"
)

type stubScreen struct {
	name    string
	inited  bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.inited = true
	return nil
}

func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.name }
func (s *stubScreen) Title() string        { return s.name }

func TestPushPop(t *testing.T) {
	home := &stubScreen{name: "home"}
	r := New(home)

	if r.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", r.Depth())
	}

	next := &stubScreen{name: "events"}
	r.Update(PushScreenMsg{Screen: next})
	if r.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", r.Depth())
	}
	if !next.inited {
		t.Error("pushed screen should be initialized")
	}
	if r.Active() != next {
		t.Error("pushed screen should be active")
	}

	r.Update(PopScreenMsg{})
	if r.Active() != home {
		t.Error("pop should reveal the previous screen")
	}
}

func TestPopNeverEmptiesStack(t *testing.T) {
	r := New(&stubScreen{name: "home"})
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Errorf("Depth = %d, want 1 after popping the root", r.Depth())
	}
}

func TestReplaceSwapsInPlace(t *testing.T) {
	login := &stubScreen{name: "login"}
	r := New(login)

	home := &stubScreen{name: "home"}
	r.Update(ReplaceScreenMsg{Screen: home})

	if r.Depth() != 1 {
		t.Errorf("Depth = %d, want 1 after replace", r.Depth())
	}
	if r.Active() != home {
		t.Error("replace should make the new screen active")
	}
	if !home.inited {
		t.Error("replaced-in screen should be initialized")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{name: "home"}
	r := New(home)

	r.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if home.updates != 1 {
		t.Errorf("updates = %d, want 1", home.updates)
	}
}
