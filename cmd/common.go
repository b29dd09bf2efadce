// Package cmd holds the command line tools that work on the store file
// without a running server.
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/smazurov/relaycoder/internal/config"
	"github.com/smazurov/relaycoder/internal/store"
	"github.com/smazurov/relaycoder/internal/types"
)

// DefaultStoreFile is the store used when --store is not given.
const DefaultStoreFile = "relaycoder.toml"

// loadStore loads the store file. Skills read from skillsFile, if given,
// replace the stored ones for this run only.
func loadStore(path, skillsFile string) (store.Store, error) {
	s := store.NewTOML(path)
	if err := s.Load(); err != nil {
		return nil, fmt.Errorf("failed to load store %s: %w", path, err)
	}
	if skillsFile == "" {
		return s, nil
	}

	skills, err := config.LoadSkills(skillsFile)
	if err != nil {
		return nil, err
	}
	return &skillsOverride{Store: s, skills: skills}, nil
}

// printList writes a labelled list, "-" when empty.
func printList(w io.Writer, label string, items []string) {
	value := "-"
	if len(items) > 0 {
		value = strings.Join(items, ", ")
	}
	fmt.Fprintf(w, "  %-10s %s\n", label+":", value)
}

// skillsOverride serves skills from a file instead of the store.
type skillsOverride struct {
	store.Store
	skills types.Skills
}

func (s *skillsOverride) Skills(context.Context) (types.Skills, error) {
	return s.skills, nil
}
