// Package match ranks candidate wallpapers against a target colour set
// using two stages: cheap filters first, then a weighted perceptual
// similarity score.
package match

import (
	"math"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/weave/internal/colour"
)

// Default ranking constants. These are configuration, not contract:
// source schemes disagree on the exact values, so callers can override
// them per run.
const (
	DefaultBackgroundThreshold = 20.0
	DefaultBackgroundWeight    = 0.6
	DefaultDiverseCount        = 4
)

// Candidate is an item to be ranked: a palette, a type tag and an
// opaque reference the caller uses to identify the winner. By
// convention the first palette colour designates the background.
type Candidate struct {
	Ref    string
	Type   string
	Colors []string
}

// Result is a ranked candidate with its similarity score.
type Result struct {
	Candidate Candidate
	Score     float64
}

// Options configures a ranking pass. The zero value ranks without the
// background pre-filter or background weighting and keeps every
// candidate.
type Options struct {
	// VariantType keeps only candidates tagged with this type or with
	// "both". Empty disables the type filter.
	VariantType string

	// FilterBackground drops candidates whose background colour is more
	// than BackgroundThreshold delta-E away from the target background.
	FilterBackground    bool
	BackgroundThreshold float64

	// WeighBackground scores candidates as
	// w*bg + (1-w)*accents with w = BackgroundWeight.
	WeighBackground  bool
	BackgroundWeight float64

	// DiverseCount is the size of the diverse subset each candidate
	// palette is reduced to before scoring. Defaults to 4.
	DiverseCount int

	// KeepFraction truncates the ranked list to ceil(len*KeepFraction)
	// with a floor of one candidate. Zero keeps everything.
	KeepFraction float64

	Logger hclog.Logger
}

func (o Options) withDefaults() Options {
	if o.BackgroundThreshold <= 0 {
		o.BackgroundThreshold = DefaultBackgroundThreshold
	}
	if o.BackgroundWeight <= 0 {
		o.BackgroundWeight = DefaultBackgroundWeight
	}
	if o.DiverseCount <= 0 {
		o.DiverseCount = DefaultDiverseCount
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return o
}

// Rank orders candidates best-match-first against the target colours.
// Candidates missing colour data are skipped and logged; the count of
// skips is returned alongside the ranking. An empty candidate list (or
// one emptied by filtering) yields an empty result, not an error.
func Rank(candidates []Candidate, target []string, opts Options) ([]Result, int) {
	opts = opts.withDefaults()

	skipped := 0
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		if opts.VariantType != "" && c.Type != opts.VariantType && c.Type != "both" {
			continue
		}
		if len(c.Colors) == 0 {
			opts.Logger.Warn("candidate has no colour data, skipping", "ref", c.Ref)
			skipped++
			continue
		}
		if opts.FilterBackground && len(target) > 0 {
			d, err := colour.Distance(c.Colors[0], target[0])
			if err != nil {
				opts.Logger.Warn("candidate background unparseable, skipping", "ref", c.Ref, "error", err)
				skipped++
				continue
			}
			if d > opts.BackgroundThreshold {
				continue
			}
		}

		score, ok := scoreCandidate(c, target, opts)
		if !ok {
			opts.Logger.Warn("candidate colours unparseable, skipping", "ref", c.Ref)
			skipped++
			continue
		}
		results = append(results, Result{Candidate: c, Score: score})
	}

	// Stable: tied scores keep input-relative order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if opts.KeepFraction > 0 && opts.KeepFraction < 1 && len(results) > 0 {
		keep := int(math.Ceil(float64(len(results)) * opts.KeepFraction))
		if keep < 1 {
			keep = 1
		}
		if keep < len(results) {
			results = results[:keep]
		}
	}
	return results, skipped
}

// scoreCandidate reduces the candidate palette to its diverse subset
// and averages each subset colour's best similarity against the target.
// With background weighting enabled, the designated background colours
// are compared separately and blended in at BackgroundWeight.
func scoreCandidate(c Candidate, target []string, opts Options) (float64, bool) {
	diverse := colour.VaryingColors(c.Colors, opts.DiverseCount)
	if len(diverse) == 0 {
		return 0, false
	}

	if !opts.WeighBackground || len(target) < 2 {
		return averageBestSimilarity(diverse, target)
	}

	bgSim, err := similarity(c.Colors[0], target[0])
	if err != nil {
		return 0, false
	}

	accents := diverse
	if diverse[0] == c.Colors[0] {
		accents = diverse[1:]
	}
	accentSim, ok := averageBestSimilarity(accents, target[1:])
	if !ok {
		// All accents unparseable: fall back to background alone.
		accentSim = 0
	}

	w := opts.BackgroundWeight
	return w*bgSim + (1-w)*accentSim, true
}

// averageBestSimilarity averages, over the candidate colours, the best
// similarity each achieves against any target colour.
func averageBestSimilarity(colors, target []string) (float64, bool) {
	if len(colors) == 0 || len(target) == 0 {
		return 0, false
	}
	sum := 0.0
	counted := 0
	for _, c := range colors {
		best := -1.0
		for _, t := range target {
			sim, err := similarity(c, t)
			if err != nil {
				continue
			}
			if sim > best {
				best = sim
			}
		}
		if best < 0 {
			continue
		}
		sum += best
		counted++
	}
	if counted == 0 {
		return 0, false
	}
	return sum / float64(counted), true
}

// similarity maps a perceptual distance into (0, 1], where identical
// colours score 1.
func similarity(a, b string) (float64, error) {
	d, err := colour.Distance(a, b)
	if err != nil {
		return 0, err
	}
	return 1 / (1 + d), nil
}
