// Package questionset resolves a question file through its fallback tiers,
// parses it and applies the shuffle and count policy of a QuizConfig.
package questionset

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/quizz/internal/config"
	"github.com/abhisek/quizz/internal/question"
	"github.com/abhisek/quizz/internal/questionset/builtin"
	"github.com/abhisek/quizz/internal/store"
)

// Logger receives pipeline diagnostics such as skipped lines and tier
// fall-through.
type Logger func(format string, args ...any)

// StderrLogger writes diagnostics to standard error.
func StderrLogger(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// Discard drops all diagnostics.
func Discard(string, ...any) {}

// Options configures a Loader.
type Options struct {
	// Cache enables the cache tier and write-back. Nil disables both.
	Cache store.KVRepo

	// Remote is the network tier. Nil disables it.
	Remote ContentSource

	// Logger defaults to StderrLogger.
	Logger Logger

	// Rand drives shuffling. Nil uses the global generator.
	Rand *rand.Rand
}

// Set is a loaded question set.
type Set struct {
	File    string
	Tier    string
	Records []question.Record

	// Parsed is the number of records before the count limit was applied.
	Parsed int
}

// Loader loads question sets. It is safe for concurrent use; concurrent
// loads of the same configuration share one result.
type Loader struct {
	cache  *CacheSource
	remote ContentSource
	logf   Logger

	mu   sync.Mutex
	intn func(n int) int

	group singleflight.Group
}

// NewLoader returns a Loader with the given options.
func NewLoader(opts Options) *Loader {
	l := &Loader{
		remote: opts.Remote,
		logf:   opts.Logger,
		intn:   rand.IntN,
	}
	if opts.Cache != nil {
		l.cache = &CacheSource{KV: opts.Cache}
	}
	if l.logf == nil {
		l.logf = StderrLogger
	}
	if opts.Rand != nil {
		l.intn = opts.Rand.IntN
	}
	return l
}

// Resolve returns the raw text for filename and the tier that supplied it.
// Tiers are tried in order: cache, network, built-in file, default file.
// It always yields text because the last tier cannot fail.
func (l *Loader) Resolve(ctx context.Context, filename string) (string, string) {
	if l.cache != nil {
		text, err := l.cache.Fetch(ctx, filename)
		if err == nil {
			return text, TierCache
		}
		l.logf("%v", &TierError{Tier: TierCache, Filename: filename, Err: err})
	}

	if l.remote != nil {
		text, err := l.remote.Fetch(ctx, filename)
		if err == nil {
			l.writeBack(ctx, filename, text)
			return text, TierNetwork
		}
		l.logf("%v", &TierError{Tier: TierNetwork, Filename: filename, Err: err})
	}

	if text, err := (BuiltinSource{}).Fetch(ctx, filename); err == nil {
		if filename == builtin.DefaultFile {
			l.writeBack(ctx, filename, text)
		}
		return text, TierBuiltin
	}

	l.logf("no built-in copy of %s, using %s", filename, builtin.DefaultFile)
	return builtin.Default(), TierDefault
}

func (l *Loader) writeBack(ctx context.Context, filename, text string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Store(ctx, filename, text); err != nil {
		l.logf("cache %s: %v", filename, err)
	}
}

// Load resolves the configured file, parses it and applies the shuffle and
// count policy. It fails with ErrNoQuestions when no line parses.
func (l *Loader) Load(ctx context.Context, cfg config.QuizConfig) (*Set, error) {
	key := fmt.Sprintf("%s\x00%d\x00%t", cfg.File(), cfg.Limit(), cfg.ShuffleQuestions)
	v, err, _ := l.group.Do(key, func() (any, error) {
		return l.load(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}
	set := *v.(*Set)
	set.Records = append([]question.Record(nil), set.Records...)
	return &set, nil
}

func (l *Loader) load(ctx context.Context, cfg config.QuizConfig) (*Set, error) {
	filename := cfg.File()
	text, tier := l.Resolve(ctx, filename)

	rep := ParseText(text)
	for _, issue := range rep.Malformed {
		l.logf("%s line %d skipped: %s", filename, issue.Line, issue.Reason)
	}
	if len(rep.Records) == 0 {
		return nil, fmt.Errorf("load %s from %s: %w", filename, tier, ErrNoQuestions)
	}

	records := rep.Records
	if cfg.ShuffleQuestions {
		l.shuffle(records)
	}
	parsed := len(records)
	if n := cfg.Limit(); n > 0 && n < len(records) {
		records = records[:n]
	}

	return &Set{
		File:    filename,
		Tier:    tier,
		Records: records,
		Parsed:  parsed,
	}, nil
}

// shuffle applies a Fisher-Yates permutation in place.
func (l *Loader) shuffle(records []question.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(records) - 1; i > 0; i-- {
		j := l.intn(i + 1)
		records[i], records[j] = records[j], records[i]
	}
}
