package wallpaper

import (
	"github.com/jmylchreest/weave/internal/match"
)

// RankOptions tunes compatibility ranking. Zero values fall back to the
// match package defaults.
type RankOptions struct {
	FilterBackground    bool
	BackgroundThreshold float64
	WeighBackground     bool
	BackgroundWeight    float64
	DiverseCount        int
	KeepFraction        float64
}

// Compatible returns the library's wallpapers ranked against the target
// colours, best match first. Wallpapers of the wrong type are dropped;
// wallpapers without extracted colours are skipped and logged. The
// first target colour is treated as the scheme background.
func (s *Store) Compatible(target []string, typ Type, opts RankOptions) ([]Metadata, error) {
	wallpapers, err := s.List()
	if err != nil {
		return nil, err
	}
	s.logger.Info("ranking wallpapers", "total", len(wallpapers), "type", typ)

	byID := make(map[string]Metadata, len(wallpapers))
	candidates := make([]match.Candidate, 0, len(wallpapers))
	for _, w := range wallpapers {
		byID[w.ID] = w
		candidates = append(candidates, match.Candidate{
			Ref:    w.ID,
			Type:   string(w.Type),
			Colors: w.Colors,
		})
	}

	results, skipped := match.Rank(candidates, target, match.Options{
		VariantType:         string(typ),
		FilterBackground:    opts.FilterBackground,
		BackgroundThreshold: opts.BackgroundThreshold,
		WeighBackground:     opts.WeighBackground,
		BackgroundWeight:    opts.BackgroundWeight,
		DiverseCount:        opts.DiverseCount,
		KeepFraction:        opts.KeepFraction,
		Logger:              s.logger,
	})
	if skipped > 0 {
		s.logger.Warn("wallpapers skipped during ranking", "count", skipped)
	}

	ranked := make([]Metadata, 0, len(results))
	for _, r := range results {
		ranked = append(ranked, byID[r.Candidate.Ref])
	}
	s.logger.Info("ranked wallpapers", "count", len(ranked))
	return ranked, nil
}
