package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizz/internal/screen"
)

type resumeMsg struct{ title string }

// fakeScreen records lifecycle calls and echoes the last message it saw.
type fakeScreen struct {
	title   string
	inits   int
	resumes int
	last    tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Resume() tea.Cmd {
	s.resumes++
	title := s.title
	return func() tea.Msg { return resumeMsg{title: title} }
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.last = msg
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return "view:" + s.title }
func (s *fakeScreen) Title() string        { return s.title }

// plainScreen has no Resume method.
type plainScreen struct{ title string }

func (s *plainScreen) Init() tea.Cmd                           { return nil }
func (s *plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *plainScreen) View(int, int) string                    { return s.title }
func (s *plainScreen) Title() string                           { return s.title }

func titles(r *Router) []string {
	out := make([]string, 0, len(r.stack))
	for _, s := range r.stack {
		out = append(out, s.Title())
	}
	return out
}

func TestRouter_Navigation(t *testing.T) {
	tests := []struct {
		name       string
		msgs       []tea.Msg
		wantStack  []string
		wantResume int
	}{
		{
			name:      "push question screen",
			msgs:      []tea.Msg{PushScreenMsg{Screen: &fakeScreen{title: "question"}}},
			wantStack: []string{"home", "question"},
		},
		{
			name: "pop back home",
			msgs: []tea.Msg{
				PushScreenMsg{Screen: &fakeScreen{title: "settings"}},
				PopScreenMsg{},
			},
			wantStack:  []string{"home"},
			wantResume: 1,
		},
		{
			name:      "pop at root is a no-op",
			msgs:      []tea.Msg{PopScreenMsg{}},
			wantStack: []string{"home"},
		},
		{
			name: "question replaced by results",
			msgs: []tea.Msg{
				PushScreenMsg{Screen: &fakeScreen{title: "question"}},
				ReplaceScreenMsg{Screen: &fakeScreen{title: "results"}},
			},
			wantStack: []string{"home", "results"},
		},
		{
			name: "results back to home",
			msgs: []tea.Msg{
				PushScreenMsg{Screen: &fakeScreen{title: "files"}},
				PushScreenMsg{Screen: &fakeScreen{title: "question"}},
				PopToRootMsg{},
			},
			wantStack:  []string{"home"},
			wantResume: 1,
		},
		{
			name:      "pop to root at root is a no-op",
			msgs:      []tea.Msg{PopToRootMsg{}},
			wantStack: []string{"home"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			home := &fakeScreen{title: "home"}
			r := New(home)
			for _, msg := range tc.msgs {
				r.Update(msg)
			}
			assert.Equal(t, tc.wantStack, titles(r))
			assert.Equal(t, len(tc.wantStack), r.Depth())
			assert.Equal(t, tc.wantResume, home.resumes)
		})
	}
}

func TestRouter_InitRunsOnPushAndReplace(t *testing.T) {
	r := New(&fakeScreen{title: "home"})

	question := &fakeScreen{title: "question"}
	r.Push(question)
	results := &fakeScreen{title: "results"}
	r.Replace(results)

	assert.Equal(t, 1, question.inits)
	assert.Equal(t, 1, results.inits)
	assert.Same(t, results, r.Active())
}

func TestRouter_PopReturnsResumeCmd(t *testing.T) {
	r := New(&fakeScreen{title: "home"})
	r.Push(&fakeScreen{title: "settings"})

	cmd := r.Pop()
	require.NotNil(t, cmd)
	assert.Equal(t, resumeMsg{title: "home"}, cmd())
}

func TestRouter_PopWithoutResumer(t *testing.T) {
	r := New(&plainScreen{title: "home"})
	r.Push(&fakeScreen{title: "history"})

	assert.Nil(t, r.Pop())
	assert.Equal(t, "home", r.Active().Title())
}

func TestRouter_ForwardsOtherMessagesToActive(t *testing.T) {
	home := &fakeScreen{title: "home"}
	r := New(home)
	top := &fakeScreen{title: "question"}
	r.Push(top)

	key := tea.KeyPressMsg{Code: 'a', Text: "a"}
	r.Update(key)

	assert.Equal(t, key, top.last)
	assert.Nil(t, home.last)
	assert.Equal(t, "view:question", r.View(80, 24))
}
