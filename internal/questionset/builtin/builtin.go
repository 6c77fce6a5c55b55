// Package builtin ships the question files compiled into the binary. They
// are the last fallback tier when neither the cache nor the network can
// supply a file.
package builtin

import (
	"embed"
	"io/fs"
	"path"
	"sort"
)

// DefaultFile is the question file used when none is configured.
const DefaultFile = "Janko.csv"

//go:embed data/*.csv
var data embed.FS

// Lookup returns the embedded text for name.
func Lookup(name string) (string, bool) {
	if name == "" || path.Base(name) != name {
		return "", false
	}
	b, err := data.ReadFile("data/" + name)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Default returns the text of DefaultFile.
func Default() string {
	text, ok := Lookup(DefaultFile)
	if !ok {
		panic("builtin: default question file missing from embed")
	}
	return text
}

// Names lists the embedded file names in sorted order.
func Names() []string {
	entries, err := fs.ReadDir(data, "data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
