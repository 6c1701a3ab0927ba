// Package wallpaper manages the wallpaper library: importing images,
// persisting their metadata, and looking them up by ID, name or fuzzy
// match.
package wallpaper

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/sahilm/fuzzy"

	weaveimage "github.com/jmylchreest/weave/internal/image"
)

// Type classifies a wallpaper as suited to dark schemes, light schemes
// or both.
type Type string

const (
	TypeDark  Type = "dark"
	TypeLight Type = "light"
	TypeBoth  Type = "both"
)

// ParseType validates a wallpaper type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeDark, TypeLight, TypeBoth:
		return Type(s), nil
	}
	return "", fmt.Errorf("invalid wallpaper type: %q (valid: dark, light, both)", s)
}

// Matches reports whether a wallpaper of this type suits the requested
// type. "both" matches everything.
func (t Type) Matches(requested Type) bool {
	return t == requested || t == TypeBoth
}

// Metadata is the persisted record for one imported wallpaper.
type Metadata struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        Type     `json:"type"`
	NameSource  string   `json:"name_source"`
	Resolution  string   `json:"resolution"`
	Orientation string   `json:"orientation"`
	Filesize    int64    `json:"filesize"`
	Extension   string   `json:"extension"`
	Hash        string   `json:"hash"`
	Colors      []string `json:"colors,omitempty"`
}

// Width parses the horizontal component of the stored resolution.
func (m Metadata) Width() int {
	w, _ := m.dims()
	return w
}

// Height parses the vertical component of the stored resolution.
func (m Metadata) Height() int {
	_, h := m.dims()
	return h
}

func (m Metadata) dims() (int, int) {
	var w, h int
	if _, err := fmt.Sscanf(m.Resolution, "%dx%d", &w, &h); err != nil {
		return 0, 0
	}
	return w, h
}

// ErrNotFound is returned when no wallpaper matches an identifier.
var ErrNotFound = errors.New("wallpaper not found")

// ErrDuplicate is returned when importing a file whose content hash is
// already in the library.
var ErrDuplicate = errors.New("wallpaper already exists")

// Store is a wallpaper library rooted at a directory. Each wallpaper is
// stored as <id><ext> next to a <id>.json metadata record.
type Store struct {
	dir    string
	logger hclog.Logger
}

// NewStore creates a store over the given directory.
func NewStore(dir string, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{dir: dir, logger: logger.Named("wallpaper")}
}

// Path returns the image file path for a wallpaper.
func (s *Store) Path(m Metadata) string {
	ext := "." + strings.TrimPrefix(m.Extension, ".")
	return filepath.Join(s.dir, m.ID+ext)
}

// Import copies an image into the library and writes its metadata
// record. The returned record carries a fresh UUID. Importing a file
// whose content already exists fails with ErrDuplicate.
func (s *Store) Import(path, name string, typ Type) (Metadata, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Metadata{}, fmt.Errorf("failed to create wallpaper directory: %w", err)
	}

	hash, err := fileHash(path)
	if err != nil {
		return Metadata{}, err
	}

	existing, err := s.List()
	if err != nil {
		return Metadata{}, err
	}
	for _, w := range existing {
		if w.Hash == hash {
			return Metadata{}, fmt.Errorf("%w with ID %s", ErrDuplicate, w.ID)
		}
	}

	width, height, err := weaveimage.Dimensions(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read image dimensions: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to stat wallpaper: %w", err)
	}

	nameSource := "manual"
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		nameSource = "filename"
	}

	m := Metadata{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        typ,
		NameSource:  nameSource,
		Resolution:  fmt.Sprintf("%dx%d", width, height),
		Orientation: classifyOrientation(width, height),
		Filesize:    info.Size(),
		Extension:   filepath.Ext(path),
		Hash:        hash,
	}

	if err := copyFile(path, s.Path(m)); err != nil {
		return Metadata{}, err
	}
	if err := s.save(m); err != nil {
		return Metadata{}, err
	}

	s.logger.Info("imported wallpaper", "id", m.ID, "name", m.Name, "type", m.Type)
	return m, nil
}

// List returns every metadata record in the library. Order is stable
// across calls (sorted by ID).
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read wallpaper directory: %w", err)
	}

	var wallpapers []Metadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata %s: %w", entry.Name(), err)
		}
		var m Metadata
		if err := json.Unmarshal(data, &m); err != nil {
			s.logger.Warn("skipping malformed metadata file", "file", entry.Name(), "error", err)
			continue
		}
		wallpapers = append(wallpapers, m)
	}

	sort.Slice(wallpapers, func(i, j int) bool { return wallpapers[i].ID < wallpapers[j].ID })
	return wallpapers, nil
}

// Get finds a wallpaper by ID prefix or exact name.
func (s *Store) Get(identifier string) (Metadata, error) {
	wallpapers, err := s.List()
	if err != nil {
		return Metadata{}, err
	}
	for _, w := range wallpapers {
		if strings.HasPrefix(w.ID, identifier) || w.Name == identifier {
			return w, nil
		}
	}
	return Metadata{}, fmt.Errorf("%w: %q", ErrNotFound, identifier)
}

// Random picks a random wallpaper, optionally restricted to a type.
func (s *Store) Random(typ Type, rng *rand.Rand) (Metadata, error) {
	wallpapers, err := s.List()
	if err != nil {
		return Metadata{}, err
	}
	if typ != "" {
		filtered := wallpapers[:0]
		for _, w := range wallpapers {
			if w.Type.Matches(typ) {
				filtered = append(filtered, w)
			}
		}
		wallpapers = filtered
	}
	if len(wallpapers) == 0 {
		return Metadata{}, ErrNotFound
	}
	return wallpapers[rng.Intn(len(wallpapers))], nil
}

// fuzzyMatchScore is the minimum fuzzy score accepted by FuzzyMatch.
const fuzzyMatchScore = 0

// FuzzyMatch finds the wallpaper whose name best matches the query.
func (s *Store) FuzzyMatch(query string) (Metadata, error) {
	wallpapers, err := s.List()
	if err != nil {
		return Metadata{}, err
	}

	names := make([]string, len(wallpapers))
	for i, w := range wallpapers {
		names[i] = w.Name
	}

	matches := fuzzy.Find(query, names)
	if len(matches) == 0 || matches[0].Score < fuzzyMatchScore {
		return Metadata{}, fmt.Errorf("%w: no fuzzy match for %q", ErrNotFound, query)
	}
	return wallpapers[matches[0].Index], nil
}

// save writes a metadata record next to its image file.
func (s *Store) save(m Metadata) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	path := filepath.Join(s.dir, m.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

// classifyOrientation labels a resolution as landscape, portrait, or
// both when within 5% of square.
func classifyOrientation(width, height int) string {
	min := width
	if height < min {
		min = height
	}
	diff := width - height
	if diff < 0 {
		diff = -diff
	}
	switch {
	case float64(diff) <= float64(min)*0.05:
		return "both"
	case width > height:
		return "landscape"
	default:
		return "portrait"
	}
}

func fileHash(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - User-specified wallpaper path, intended to be read
	if err != nil {
		return "", fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 - User-specified wallpaper path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst) // #nosec G304 - Path is store-controlled
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy wallpaper: %w", err)
	}
	return nil
}
