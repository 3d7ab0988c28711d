package config

import (
	"fmt"
	"sort"
	"strings"
)

// Profiles is a keyed set of difficulty profiles. It always contains medium.
type Profiles struct {
	byKey map[Difficulty]Profile
}

// NewProfiles builds a set from the given map. Invalid entries are rejected;
// a missing medium profile is filled from the built-in defaults.
func NewProfiles(m map[Difficulty]Profile) (*Profiles, error) {
	p := &Profiles{byKey: make(map[Difficulty]Profile, len(m)+1)}
	for key, prof := range m {
		key = Difficulty(strings.ToLower(strings.TrimSpace(string(key))))
		if err := prof.Validate(); err != nil {
			return nil, fmt.Errorf("config: profile %q: %w", key, err)
		}
		p.byKey[key] = prof
	}
	if _, ok := p.byKey[DifficultyMedium]; !ok {
		p.byKey[DifficultyMedium] = defaultProfiles()[DifficultyMedium]
	}
	return p, nil
}

// ParseDifficulty normalizes a key and reports whether a profile exists for it.
func (p *Profiles) ParseDifficulty(s string) (Difficulty, error) {
	key := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := p.byKey[key]; !ok {
		return DifficultyMedium, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
	return key, nil
}

// Lookup returns the profile for key.
func (p *Profiles) Lookup(key Difficulty) (Profile, bool) {
	prof, ok := p.byKey[key]
	return prof, ok
}

// Profile returns the profile for key, falling back to medium for unknown keys.
func (p *Profiles) Profile(key string) Profile {
	d, err := p.ParseDifficulty(key)
	if err != nil {
		return p.byKey[DifficultyMedium]
	}
	return p.byKey[d]
}

// Keys lists difficulties: easy, medium, hard first, then any custom
// profiles in alphabetical order.
func (p *Profiles) Keys() []Difficulty {
	order := map[Difficulty]int{DifficultyEasy: 0, DifficultyMedium: 1, DifficultyHard: 2}
	keys := make([]Difficulty, 0, len(p.byKey))
	for k := range p.byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := order[keys[i]]
		oj, jok := order[keys[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		}
		return keys[i] < keys[j]
	})
	return keys
}
