package scheme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// profilesDirName is the subdirectory of the scheme store holding
// generated colour profiles.
const profilesDirName = "_profiles"

// Profile is a compact base16-style summary of a scheme: the slots a
// ranking or preview consumer cares about, per variant.
type Profile struct {
	AnalysisType string                    `json:"analysis_type"`
	Metadata     ProfileMetadata           `json:"metadata"`
	Variants     map[string]ProfileVariant `json:"variants"`
}

// ProfileMetadata records how profile slots map onto scheme slots.
type ProfileMetadata struct {
	Mapping map[string]string `json:"mapping"`
}

// ProfileVariant holds the summarised colours for one variant.
type ProfileVariant struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Accent1    string `json:"accent1"`
	Accent2    string `json:"accent2"`
}

// BuildProfile summarises a scheme into its colour profile using the
// base16 slot mapping.
func BuildProfile(s *Scheme) Profile {
	profile := Profile{
		AnalysisType: "base16",
		Metadata: ProfileMetadata{
			Mapping: map[string]string{
				"background": "color0",
				"foreground": "color7",
				"accent1":    "color1",
				"accent2":    "color4",
			},
		},
		Variants: make(map[string]ProfileVariant, len(s.Variants)),
	}
	for name, v := range s.Variants {
		profile.Variants[name] = ProfileVariant{
			Background: v.Color("color0"),
			Foreground: v.Color("color7"),
			Accent1:    v.Color("color1"),
			Accent2:    v.Color("color4"),
		}
	}
	return profile
}

// Analyze builds and persists the colour profile for a stored scheme.
func (s *Store) Analyze(name string) error {
	scheme, err := s.Load(name)
	if err != nil {
		return err
	}

	profile := BuildProfile(scheme)
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	dir := filepath.Join(s.dir, profilesDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// MissingProfiles lists stored schemes that have no colour profile yet.
func (s *Store) MissingProfiles() ([]string, error) {
	names, err := s.ListNames()
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool)
	entries, err := os.ReadDir(filepath.Join(s.dir, profilesDirName))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read profiles directory: %w", err)
	}
	for _, entry := range entries {
		existing[trimJSON(entry.Name())] = true
	}

	var missing []string
	for _, name := range names {
		if !existing[name] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func trimJSON(name string) string {
	if len(name) > 5 && name[len(name)-5:] == ".json" {
		return name[:len(name)-5]
	}
	return name
}
