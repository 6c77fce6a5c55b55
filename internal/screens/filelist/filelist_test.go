package filelist

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizz/internal/config"
	"github.com/abhisek/quizz/internal/files"
	"github.com/abhisek/quizz/internal/router"
	"github.com/abhisek/quizz/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testScreen(t *testing.T) (*FileListScreen, *store.MemoryKV, *config.Store) {
	t.Helper()
	kv := store.NewMemoryKV()
	if err := kv.Put(context.Background(), store.FileKey("Mine.csv"), "Pytanie,Odpowiedź\n\"1. Q?\",a,b,c,d,A\nbroken line"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	configs := config.NewStore(kv, func(string, ...any) {})
	s := New(files.NewService(kv), configs)
	s.Update(s.Init()())
	return s, kv, configs
}

// run executes cmd and applies any screen-local result.
func run(s *FileListScreen, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case filesLoadedMsg, checkedMsg, actionDoneMsg:
			_, cmd = s.Update(msg)
		default:
			return
		}
	}
}

func selectFile(t *testing.T, s *FileListScreen, name string) {
	t.Helper()
	for i, f := range s.files {
		if f.Name == name {
			s.selected = i
			return
		}
	}
	t.Fatalf("file %q not listed", name)
}

func TestFileList_ListsStoredAndBuiltin(t *testing.T) {
	s, _, _ := testScreen(t)

	view := s.View(100, 30)
	for _, name := range []string{"Janko.csv", "Mine.csv", "Pytania2.csv"} {
		if !strings.Contains(view, name) {
			t.Errorf("view missing %s", name)
		}
	}
	if !strings.Contains(view, "Janko.csv (active)") {
		t.Error("expected default file marked active")
	}
}

func TestFileList_Check(t *testing.T) {
	s, _, _ := testScreen(t)
	selectFile(t, s, "Mine.csv")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(s, cmd)

	if s.report == nil {
		t.Fatal("expected check report")
	}
	if s.report.Questions != 1 || len(s.report.Malformed) != 1 {
		t.Errorf("report = %+v", s.report)
	}
	if !strings.Contains(s.View(100, 30), "line 3") {
		t.Error("expected malformed line in view")
	}
}

func TestFileList_UseUpdatesConfig(t *testing.T) {
	s, _, configs := testScreen(t)
	selectFile(t, s, "Mine.csv")

	_, cmd := s.Update(keyPress('u'))
	run(s, cmd)

	cfg, err := configs.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.QuestionFile != "Mine.csv" {
		t.Errorf("QuestionFile = %q, want Mine.csv", cfg.QuestionFile)
	}
	if s.active != "Mine.csv" {
		t.Errorf("active = %q, want Mine.csv", s.active)
	}
}

func TestFileList_DeleteNeedsConfirmation(t *testing.T) {
	s, kv, _ := testScreen(t)
	selectFile(t, s, "Mine.csv")

	s.Update(keyPress('d'))
	if !s.HandlesEsc() {
		t.Fatal("expected confirmation to capture Esc")
	}
	s.Update(keyPress('n'))
	if _, err := kv.Get(context.Background(), store.FileKey("Mine.csv")); err != nil {
		t.Fatalf("file deleted without confirmation: %v", err)
	}

	selectFile(t, s, "Mine.csv")
	s.Update(keyPress('d'))
	_, cmd := s.Update(keyPress('y'))
	run(s, cmd)

	if _, err := kv.Get(context.Background(), store.FileKey("Mine.csv")); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	for _, f := range s.files {
		if f.Name == "Mine.csv" {
			t.Error("deleted file still listed")
		}
	}
}

func TestFileList_DeleteIgnoredForBuiltinOnly(t *testing.T) {
	s, _, _ := testScreen(t)
	selectFile(t, s, "Pytania2.csv")

	s.Update(keyPress('d'))
	if s.confirming {
		t.Error("built-in only file should not be deletable")
	}
}

func TestFileList_EscPops(t *testing.T) {
	s, _, _ := testScreen(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
