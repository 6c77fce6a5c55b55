package play

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizz/internal/question"
	"github.com/abhisek/quizz/internal/questionset"
	"github.com/abhisek/quizz/internal/quiz"
	"github.com/abhisek/quizz/internal/router"
	"github.com/abhisek/quizz/internal/store"
	"github.com/abhisek/quizz/internal/ui/components"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func fileText(answers ...string) string {
	lines := []string{question.Header}
	for i, a := range answers {
		lines = append(lines, fmt.Sprintf(`"%d. Question %d",w,x,y,z,%s`, i+1, i+1, a))
	}
	return strings.Join(lines, "\n")
}

func testRunner(t *testing.T, text string) *quiz.Runner {
	t.Helper()
	kv := store.NewMemoryKV()
	if err := kv.Put(context.Background(), store.FileKey("t.csv"), text); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	loader := questionset.NewLoader(questionset.Options{Cache: kv, Logger: questionset.Discard})
	return quiz.NewRunner(loader, quiz.StaticConfig{QuestionFile: "t.csv", QuestionCount: 10}, nil)
}

// drive runs cmd and feeds the resulting message back into the screen.
func drive(t *testing.T, s *QuestionScreen, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg.(type) {
	case runStartedMsg, components.ChoiceMsg:
		_, next := s.Update(msg)
		return drive(t, s, next)
	}
	return msg
}

func startedScreen(t *testing.T, text string) *QuestionScreen {
	t.Helper()
	s := New(testRunner(t, text))
	drive(t, s, s.Init())
	if s.run == nil {
		t.Fatalf("run not started: %q", s.errMsg)
	}
	return s
}

func TestQuestionScreen_LoadsRun(t *testing.T) {
	s := startedScreen(t, fileText("A", "B", "C"))

	if s.run.Session.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.run.Session.Len())
	}
	if s.Status() != "t.csv" {
		t.Errorf("Status = %q, want t.csv", s.Status())
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "Question 1/3") {
		t.Errorf("view missing question counter:\n%s", view)
	}
	if !strings.Contains(view, "Question 1") {
		t.Errorf("view missing prompt:\n%s", view)
	}
}

func TestQuestionScreen_AnswerByLetter(t *testing.T) {
	s := startedScreen(t, fileText("B", "A"))

	_, cmd := s.Update(keyPress('b'))
	drive(t, s, cmd)

	if !s.mc.Revealed {
		t.Fatal("expected answer revealed")
	}
	if !s.correct {
		t.Error("expected correct answer")
	}
	if s.run.Session.Score() != 1 {
		t.Errorf("Score = %d, want 1", s.run.Session.Score())
	}
	if !strings.Contains(s.View(80, 24), "Correct!") {
		t.Error("expected correct feedback in view")
	}
}

func TestQuestionScreen_AnswerLockedAfterChoice(t *testing.T) {
	s := startedScreen(t, fileText("A", "A"))

	_, cmd := s.Update(keyPress('c'))
	drive(t, s, cmd)
	_, cmd = s.Update(keyPress('a'))
	drive(t, s, cmd)
	s.Update(components.ChoiceMsg{ID: question.OptionA})

	if s.run.Session.Score() != 0 {
		t.Errorf("Score = %d, want 0 after locked wrong answer", s.run.Session.Score())
	}
	if s.mc.Chosen != question.OptionC {
		t.Errorf("Chosen = %q, want C", s.mc.Chosen)
	}
	if !strings.Contains(s.View(80, 24), "The answer is A)") {
		t.Error("expected correct answer shown in feedback")
	}
}

func TestQuestionScreen_CursorAndEnter(t *testing.T) {
	s := startedScreen(t, fileText("C"))

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	drive(t, s, cmd)

	if s.mc.Chosen != question.OptionC {
		t.Errorf("Chosen = %q, want C", s.mc.Chosen)
	}
	if s.run.Session.Score() != 1 {
		t.Errorf("Score = %d, want 1", s.run.Session.Score())
	}
}

func TestQuestionScreen_EnterBeforeAnswerDoesNotAdvance(t *testing.T) {
	s := startedScreen(t, fileText("A", "B"))

	s.Update(keyPress('n'))
	if s.run.Session.Index() != 0 {
		t.Errorf("Index = %d, want 0", s.run.Session.Index())
	}
}

func TestQuestionScreen_FinishShowsResults(t *testing.T) {
	s := startedScreen(t, fileText("A", "B"))

	for _, key := range []rune{'a', 'a'} {
		_, cmd := s.Update(keyPress(key))
		drive(t, s, cmd)
		_, cmd = s.Update(specialKey(tea.KeyEnter))
		msg := drive(t, s, cmd)
		if s.run.Session.Phase() != quiz.PhaseFinished {
			continue
		}
		replace, ok := msg.(router.ReplaceScreenMsg)
		if !ok {
			t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
		}
		results, ok := replace.Screen.(*ResultsScreen)
		if !ok {
			t.Fatalf("expected *ResultsScreen, got %T", replace.Screen)
		}
		view := results.View(80, 24)
		if !strings.Contains(view, "50%") {
			t.Errorf("results view missing percentage:\n%s", view)
		}
		if !strings.Contains(view, "1 of 2") {
			t.Errorf("results view missing score:\n%s", view)
		}
		return
	}
	t.Fatal("run never finished")
}

func TestQuestionScreen_LoadErrorAndRetry(t *testing.T) {
	s := New(testRunner(t, question.Header))
	drive(t, s, s.Init())

	if s.errMsg == "" {
		t.Fatal("expected load error for header-only file")
	}
	if !strings.Contains(s.View(80, 24), "no questions found") {
		t.Error("expected error message in view")
	}
	hints := s.KeyHints()
	if len(hints) != 2 || hints[0].Key != "R" {
		t.Errorf("unexpected hints %+v", hints)
	}

	_, cmd := s.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected retry command")
	}
	if !s.loading {
		t.Error("expected loading after retry")
	}
}

func TestResultsScreen_PlayAgainReplaces(t *testing.T) {
	s := startedScreen(t, fileText("A"))
	_, cmd := s.Update(keyPress('a'))
	drive(t, s, cmd)
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	msg := drive(t, s, cmd)
	results := msg.(router.ReplaceScreenMsg).Screen.(*ResultsScreen)

	_, cmd = results.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected command on r")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := replace.Screen.(*QuestionScreen); !ok {
		t.Errorf("expected *QuestionScreen, got %T", replace.Screen)
	}
}

func TestResultsScreen_HomeButton(t *testing.T) {
	s := startedScreen(t, fileText("A"))
	_, cmd := s.Update(keyPress('b'))
	drive(t, s, cmd)
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	results := drive(t, s, cmd).(router.ReplaceScreenMsg).Screen.(*ResultsScreen)

	if !strings.Contains(results.View(80, 24), "0%") {
		t.Error("expected 0% for wrong answer")
	}

	results.Update(specialKey(tea.KeyRight))
	_, cmd = results.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected command on Home")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}
