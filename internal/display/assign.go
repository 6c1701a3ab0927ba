package display

import (
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"runtime"

	"github.com/hashicorp/go-hclog"
)

// Candidate is a ranked wallpaper offered for assignment. Candidates
// are expected in best-match-first order.
type Candidate struct {
	Path   string
	Width  int
	Height int
}

// Assignment binds one wallpaper file to one display.
type Assignment struct {
	Display   string
	Wallpaper string
}

// Assign chooses a wallpaper for each display. Only candidates at least
// as large as the display are considered. By default each display gets
// the best-ranked candidate; with randomize set, one of the top
// topFraction candidates is picked at random instead. Displays with no
// suitable candidate are skipped and logged.
func Assign(candidates []Candidate, displays []Display, randomize bool, topFraction float64, rng *rand.Rand, logger hclog.Logger) []Assignment {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if topFraction <= 0 || topFraction > 1 {
		topFraction = 0.2
	}

	var assignments []Assignment
	for _, d := range displays {
		var fitting []Candidate
		for _, c := range candidates {
			if c.Width >= d.Width && c.Height >= d.Height {
				fitting = append(fitting, c)
			}
		}
		if len(fitting) == 0 {
			logger.Warn("no suitable wallpaper for display",
				"display", d.Identifier, "resolution", d.Resolution())
			continue
		}

		chosen := fitting[0]
		if randomize && rng != nil {
			top := int(float64(len(fitting)) * topFraction)
			if top < 1 {
				top = 1
			}
			chosen = fitting[rng.Intn(top)]
		}
		assignments = append(assignments, Assignment{Display: d.Identifier, Wallpaper: chosen.Path})
	}
	return assignments
}

// Setter pushes wallpaper assignments to the desktop: swaybg on
// wayland, feh on X11, osascript on darwin.
type Setter struct {
	logger  hclog.Logger
	goos    string
	wayland bool
}

// NewSetter creates a Setter for the current platform.
func NewSetter(logger hclog.Logger) *Setter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Setter{
		logger:  logger.Named("setter"),
		goos:    runtime.GOOS,
		wayland: os.Getenv("WAYLAND_DISPLAY") != "",
	}
}

// Set applies the assignments. swaybg instances are left running in the
// background; feh and osascript are waited on.
func (s *Setter) Set(assignments []Assignment) error {
	if len(assignments) == 0 {
		return fmt.Errorf("no wallpapers to set")
	}

	switch {
	case s.goos == "darwin":
		for _, a := range assignments {
			script := fmt.Sprintf(
				`tell application "System Events" to set picture of desktop %s to %q`,
				a.Display, a.Wallpaper)
			if err := exec.Command("osascript", "-e", script).Run(); err != nil {
				return fmt.Errorf("osascript failed for display %s: %w", a.Display, err)
			}
		}
	case s.wayland:
		for _, a := range assignments {
			cmd := exec.Command("swaybg", "-o", a.Display, "-i", a.Wallpaper)
			if err := cmd.Start(); err != nil {
				return fmt.Errorf("swaybg failed for display %s: %w", a.Display, err)
			}
			s.logger.Debug("started swaybg", "display", a.Display, "pid", cmd.Process.Pid)
		}
	default:
		args := make([]string, 0, len(assignments)*2)
		for _, a := range assignments {
			args = append(args, "--bg-fill", a.Wallpaper)
		}
		if err := exec.Command("feh", args...).Run(); err != nil {
			return fmt.Errorf("feh failed: %w", err)
		}
	}

	s.logger.Info("wallpapers set", "displays", len(assignments))
	return nil
}
