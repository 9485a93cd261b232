// Package track provides the Track and Catalog domain entities.
package track

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Track represents a single catalog entry.
type Track struct {
	Number int    `yaml:"number"` // 1-based catalog number, stable
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
}

// Catalog is an immutable, ordered list of tracks together with the set of
// track numbers that can never be played. Track numbers are exactly
// 1..Len(), so catalog index == number-1.
type Catalog struct {
	tracks      []Track
	unavailable map[int]bool
}

// New creates a catalog from an ordered track list and an unavailable set.
func New(tracks []Track, unavailable []int) (*Catalog, error) {
	if len(tracks) == 0 {
		return nil, errors.New("catalog is empty")
	}

	for i, t := range tracks {
		if t.Number != i+1 {
			return nil, errors.Newf("track at position %d has number %d, want %d", i, t.Number, i+1)
		}
		if t.Name == "" {
			return nil, errors.Newf("track %d has no name", t.Number)
		}
		if t.URL == "" {
			return nil, errors.Newf("track %d has no url", t.Number)
		}
	}

	return &Catalog{
		tracks:      tracks,
		unavailable: lo.SliceToMap(unavailable, func(n int) (int, bool) { return n, true }),
	}, nil
}

// Load reads a catalog from a YAML file.
func Load(path string, unavailable []int) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read catalog file")
	}

	var doc struct {
		Tracks []Track `yaml:"tracks"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog file")
	}

	return New(doc.Tracks, unavailable)
}

// Len returns the number of tracks in the catalog.
func (c *Catalog) Len() int {
	return len(c.tracks)
}

// At returns the track at the given 0-based catalog index.
func (c *Catalog) At(index int) Track {
	return c.tracks[index]
}

// IsUnavailable reports whether the track number is permanently excluded.
func (c *Catalog) IsUnavailable(number int) bool {
	return c.unavailable[number]
}

// ByNumber looks up a track by its 1-based catalog number.
func (c *Catalog) ByNumber(number int) (Track, bool) {
	if number < 1 || number > len(c.tracks) {
		return Track{}, false
	}
	return c.tracks[number-1], true
}

// ByName looks up a track by display name. Matching is intentionally
// permissive: non-word characters are stripped, the rest is lowercased and
// sorted, so "Amazing Grace" matches "amazing, GRACE!".
func (c *Catalog) ByName(name string) (Track, bool) {
	want := normalizeName(name)
	return lo.Find(c.tracks, func(t Track) bool {
		return normalizeName(t.Name) == want
	})
}

// Resolve resolves a spoken slot value to a track, by number when the slot
// is numeric and by name otherwise.
func (c *Catalog) Resolve(slot string) (Track, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(slot)); err == nil {
		return c.ByNumber(n)
	}
	return c.ByName(slot)
}

// normalizeName strips non-word characters, lowercases and sorts what is
// left. The sort makes the compare anagram-insensitive, which is part of
// the observable matching behavior.
func normalizeName(s string) string {
	var b []byte
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b = append(b, byte(r))
		}
	}
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	return string(b)
}
