package wallpaper

import (
	"fmt"
	"math/rand"

	"github.com/jmylchreest/weave/internal/colour"
	weaveimage "github.com/jmylchreest/weave/internal/image"
)

// Analyze extracts a dominant-colour palette for a wallpaper and
// backfills its orientation, persisting the updated record. Records
// that already carry colours are left as they are.
func (s *Store) Analyze(identifier string, paletteSize int, rng *rand.Rand) (Metadata, error) {
	m, err := s.Get(identifier)
	if err != nil {
		return Metadata{}, err
	}

	if len(m.Colors) == 0 {
		img, err := weaveimage.Load(s.Path(m))
		if err != nil {
			return Metadata{}, fmt.Errorf("failed to load wallpaper %s: %w", m.ID, err)
		}
		colors, err := colour.InferPalette(img, paletteSize, colour.ExtractOptions{Rand: rng})
		if err != nil {
			return Metadata{}, fmt.Errorf("failed to extract palette for %s: %w", m.ID, err)
		}
		m.Colors = colors
		s.logger.Debug("extracted palette", "id", m.ID, "colors", colors)
	}

	if m.Orientation == "" || m.Orientation == "N/A" {
		m.Orientation = classifyOrientation(m.dims())
	}

	if err := s.save(m); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

// MissingMetadata lists wallpapers that still lack extracted colours or
// an orientation.
func (s *Store) MissingMetadata() ([]Metadata, error) {
	wallpapers, err := s.List()
	if err != nil {
		return nil, err
	}
	var missing []Metadata
	for _, w := range wallpapers {
		if len(w.Colors) == 0 || w.Orientation == "" || w.Orientation == "N/A" {
			missing = append(missing, w)
		}
	}
	return missing, nil
}
