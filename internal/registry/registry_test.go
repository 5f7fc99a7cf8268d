package registry

import (
	"testing"

	"github.com/vovakirdan/lasergrid/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                             { return g.id }
func (g stubGame) Title() string                          { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig)               {}
func (g stubGame) Step(core.InputFrame) core.StepResult   { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                    {}
func (g stubGame) State() core.GameState                  { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-b", func() Game { return stubGame{"stub-b"} })
	Register("stub-a", func() Game { return stubGame{"stub-a"} })

	if !Exists("stub-a") || Exists("stub-missing") {
		t.Error("Exists returned wrong result")
	}

	g, err := Create("stub-b")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "stub-b" {
		t.Errorf("ID() = %q", g.ID())
	}
	if _, err := Create("stub-missing"); err == nil {
		t.Error("expected error for unknown game")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "stub-a" || info.ID == "stub-b" {
			ids = append(ids, info.ID)
			if info.Title != "Stub "+info.ID {
				t.Errorf("title = %q", info.Title)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "stub-a" {
		t.Errorf("List() order = %v", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return stubGame{"stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("stub-dup", func() Game { return stubGame{"stub-dup"} })
}
