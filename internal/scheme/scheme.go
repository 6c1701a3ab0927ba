// Package scheme manages colour schemes: JSON scheme files holding
// named variants, their colour slots, and derived colour profiles.
package scheme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when a scheme or variant does not exist.
var ErrNotFound = errors.New("scheme not found")

// Variant is one named colour set within a scheme: a mapping from slot
// names (background, foreground, color0..color15) to hex colours, plus
// a dark/light type tag.
type Variant struct {
	Name   string            `json:"-"`
	Type   string            `json:"type"`
	Colors map[string]string `json:"colors"`
}

// Color returns the colour bound to a slot, or "" when the slot is not
// populated.
func (v *Variant) Color(slot string) string {
	return v.Colors[slot]
}

// Background returns the background colour, falling back to color0.
func (v *Variant) Background() string {
	if c := v.Color("background"); c != "" {
		return c
	}
	return v.Color("color0")
}

// Foreground returns the foreground colour, falling back to color7.
func (v *Variant) Foreground() string {
	if c := v.Color("foreground"); c != "" {
		return c
	}
	return v.Color("color7")
}

// TargetColors builds the colour set wallpapers are ranked against:
// the background first, then the six primary accents. Empty slots are
// omitted.
func (v *Variant) TargetColors() []string {
	colors := make([]string, 0, 7)
	if bg := v.Background(); bg != "" {
		colors = append(colors, bg)
	}
	for i := 1; i <= 6; i++ {
		if c := v.Color(fmt.Sprintf("color%d", i)); c != "" {
			colors = append(colors, c)
		}
	}
	return colors
}

// Scheme is a named collection of variants.
type Scheme struct {
	Name     string
	Variants map[string]*Variant
}

// Variant resolves a variant by name, or by type when the identifier is
// "dark" or "light" (first matching variant wins, in sorted name order).
func (s *Scheme) Variant(identifier string) (*Variant, error) {
	if v, ok := s.Variants[identifier]; ok {
		return v, nil
	}
	if identifier == "dark" || identifier == "light" {
		for _, name := range s.variantNames() {
			if s.Variants[name].Type == identifier {
				return s.Variants[name], nil
			}
		}
	}
	return nil, fmt.Errorf("%w: variant %q in scheme %q", ErrNotFound, identifier, s.Name)
}

// DefaultVariant returns the first variant in sorted name order.
func (s *Scheme) DefaultVariant() (*Variant, error) {
	names := s.variantNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: scheme %q has no variants", ErrNotFound, s.Name)
	}
	return s.Variants[names[0]], nil
}

func (s *Scheme) variantNames() []string {
	names := make([]string, 0, len(s.Variants))
	for name := range s.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseIdentifier splits "scheme:variant" into its parts. The variant
// part is empty when absent.
func ParseIdentifier(identifier string) (schemeName, variantName string) {
	parts := strings.SplitN(identifier, ":", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

// schemeFile is the on-disk scheme document.
type schemeFile struct {
	Name     string              `json:"name"`
	Variants map[string]*Variant `json:"variants"`
}

// Store is a scheme library rooted at a directory of JSON scheme files.
type Store struct {
	dir string
}

// NewStore creates a store over the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads a scheme by name.
func (s *Store) Load(name string) (*Scheme, error) {
	path := filepath.Join(s.dir, name+".json")
	data, err := os.ReadFile(path) // #nosec G304 - Path is store-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read scheme %q: %w", name, err)
	}

	var file schemeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scheme %q: %w", name, err)
	}

	scheme := &Scheme{Name: file.Name, Variants: make(map[string]*Variant, len(file.Variants))}
	for variantName, v := range file.Variants {
		v.Name = variantName
		if v.Type == "" {
			v.Type = "dark"
		}
		scheme.Variants[variantName] = v
	}
	return scheme, nil
}

// Import copies a scheme JSON document into the store, keyed by the
// name declared inside the document.
func (s *Store) Import(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified scheme path, intended to be read
	if err != nil {
		return "", fmt.Errorf("failed to read scheme file: %w", err)
	}

	var file schemeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", fmt.Errorf("failed to parse scheme file: %w", err)
	}
	if file.Name == "" {
		return "", fmt.Errorf("scheme file has no name")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create schemes directory: %w", err)
	}
	out := filepath.Join(s.dir, file.Name+".json")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write scheme: %w", err)
	}
	return file.Name, nil
}

// ListNames returns the names of every stored scheme.
func (s *Store) ListNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read schemes directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
