// Package files manages the raw question files shared by the loader's
// cache tier, the files command and the HTTP admin API.
package files

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/abhisek/quizz/internal/question"
	"github.com/abhisek/quizz/internal/questionset"
	"github.com/abhisek/quizz/internal/questionset/builtin"
	"github.com/abhisek/quizz/internal/store"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNotFound    = errors.New("file not found")
)

// allowedExts are the accepted file name suffixes.
var allowedExts = []string{".csv", ".md"}

// ValidateName checks that name is usable as a question file name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if path.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q must not contain a path", ErrInvalidName, name)
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidName, name)
	}
	for _, ext := range allowedExts {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q must end in .csv or .md", ErrInvalidName, name)
}

// FileInfo describes one known question file.
type FileInfo struct {
	Name    string `json:"name"`
	Cached  bool   `json:"cached"`
	Builtin bool   `json:"builtin"`
}

// Service manages question files in a kv repository.
type Service struct {
	kv store.KVRepo
}

// NewService returns a Service over kv.
func NewService(kv store.KVRepo) *Service {
	return &Service{kv: kv}
}

// List returns cached and built-in files sorted by name. The default file
// is seeded into the cache first if it is missing.
func (s *Service) List(ctx context.Context) ([]FileInfo, error) {
	if err := s.seedDefault(ctx); err != nil {
		return nil, err
	}

	keys, err := s.kv.Keys(ctx, store.FileKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	byName := make(map[string]*FileInfo)
	for _, k := range keys {
		name := strings.TrimPrefix(k, store.FileKeyPrefix)
		byName[name] = &FileInfo{Name: name, Cached: true}
	}
	for _, name := range builtin.Names() {
		if fi, ok := byName[name]; ok {
			fi.Builtin = true
			continue
		}
		byName[name] = &FileInfo{Name: name, Builtin: true}
	}

	out := make([]FileInfo, 0, len(byName))
	for _, fi := range byName {
		out = append(out, *fi)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Service) seedDefault(ctx context.Context) error {
	key := store.FileKey(builtin.DefaultFile)
	_, err := s.kv.Get(ctx, key)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("check default file: %w", err)
	}
	if err := s.kv.Put(ctx, key, builtin.Default()); err != nil {
		return fmt.Errorf("seed default file: %w", err)
	}
	return nil
}

// Get returns the text of name from the cache, or its built-in copy.
func (s *Service) Get(ctx context.Context, name string) (string, error) {
	text, err := s.kv.Get(ctx, store.FileKey(name))
	if err == nil {
		return text, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if text, ok := builtin.Lookup(name); ok {
		return text, nil
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Put creates or replaces name.
func (s *Service) Put(ctx context.Context, name, text string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := s.kv.Put(ctx, store.FileKey(name), text); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Delete removes the cached copy of name. Built-in files stay available.
func (s *Service) Delete(ctx context.Context, name string) error {
	err := s.kv.Delete(ctx, store.FileKey(name))
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// CheckReport summarizes how a file parses.
type CheckReport struct {
	Name           string                  `json:"name"`
	Questions      int                     `json:"questions"`
	Skipped        int                     `json:"skipped"`
	Malformed      []questionset.LineIssue `json:"malformed,omitempty"`
	InvalidAnswers []questionset.LineIssue `json:"invalidAnswers,omitempty"`
}

// OK reports whether the file would load.
func (r CheckReport) OK() bool {
	return r.Questions > 0
}

// Check parses name and reports accepted, skipped and rejected lines.
func (s *Service) Check(ctx context.Context, name string) (*CheckReport, error) {
	text, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	rep, _ := check(name, text)
	return rep, nil
}

func check(name, text string) (*CheckReport, []question.Record) {
	rep := questionset.ParseText(text)
	return &CheckReport{
		Name:           name,
		Questions:      len(rep.Records),
		Skipped:        rep.Skipped,
		Malformed:      rep.Malformed,
		InvalidAnswers: rep.InvalidAnswers,
	}, rep.Records
}

// Tidy rewrites name in canonical form: the header line, then one quoted,
// numbered line per parsed question. Rejected lines are dropped. The
// returned report describes the file as it was before tidying.
func (s *Service) Tidy(ctx context.Context, name string) (*CheckReport, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	text, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	rep, records := check(name, text)
	if len(records) == 0 {
		return rep, fmt.Errorf("tidy %s: %w", name, questionset.ErrNoQuestions)
	}
	out, err := question.FormatFile(records)
	if err != nil {
		return rep, fmt.Errorf("tidy %s: %w", name, err)
	}
	if err := s.Put(ctx, name, out+"\n"); err != nil {
		return rep, err
	}
	return rep, nil
}

// ExampleContent is a small well-formed file to start editing from.
const ExampleContent = `Pytanie,Odpowiedź A,Odpowiedź B,Odpowiedź C,Odpowiedź D,Poprawna odpowiedź
"1. Co to jest HTML?","Hyper Text Markup Language","High Tech Multi Language","Home Tool Markup Language","Hyperlinks and Text Markup Language",A
"2. Który element HTML definiuje ważny tekst?","<important>","<strong>","<b>","<i>",B
"3. Który język programowania jest używany do stylizacji stron internetowych?",HTML,CSS,Python,Java,B
`
