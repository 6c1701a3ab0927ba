// Package display enumerates connected displays through platform tools
// and decides which wallpaper each display should receive.
package display

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Display describes one connected output.
type Display struct {
	Identifier string
	Width      int
	Height     int
}

// Resolution formats the display size as WIDTHxHEIGHT.
func (d Display) Resolution() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Commander runs an external command and captures its stdout.
type Commander interface {
	Output(name string, args ...string) ([]byte, error)
}

// ExecCommander runs commands through os/exec.
type ExecCommander struct{}

func (ExecCommander) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// Detector enumerates displays for the current platform: wlr-randr on
// wayland, xrandr on X11, system_profiler on darwin.
type Detector struct {
	commander Commander
	logger    hclog.Logger
	goos      string
	wayland   bool
}

// NewDetector creates a Detector. A nil commander uses os/exec.
func NewDetector(commander Commander, logger hclog.Logger) *Detector {
	if commander == nil {
		commander = ExecCommander{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Detector{
		commander: commander,
		logger:    logger.Named("display"),
		goos:      runtime.GOOS,
		wayland:   os.Getenv("WAYLAND_DISPLAY") != "",
	}
}

// Detect returns the connected, active displays.
func (d *Detector) Detect() ([]Display, error) {
	switch {
	case d.goos == "darwin":
		return d.detectDarwin()
	case d.wayland:
		return d.detectWayland()
	default:
		return d.detectX11()
	}
}

// wlr-randr --json emits a map keyed by output name.
type wlrOutput struct {
	Active bool `json:"active"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
}

func (d *Detector) detectWayland() ([]Display, error) {
	out, err := d.commander.Output("wlr-randr", "--json")
	if err != nil {
		return nil, fmt.Errorf("wlr-randr failed: %w", err)
	}

	var outputs map[string]wlrOutput
	if err := json.Unmarshal(out, &outputs); err != nil {
		return nil, fmt.Errorf("failed to parse wlr-randr output: %w", err)
	}

	var displays []Display
	for name, o := range outputs {
		if !o.Active {
			continue
		}
		displays = append(displays, Display{Identifier: name, Width: o.Width, Height: o.Height})
	}
	return displays, nil
}

func (d *Detector) detectX11() ([]Display, error) {
	out, err := d.commander.Output("xrandr", "--current")
	if err != nil {
		return nil, fmt.Errorf("xrandr failed: %w", err)
	}
	return ParseXrandr(string(out)), nil
}

// ParseXrandr extracts active displays from `xrandr --current` output.
// Active connected outputs carry a geometry like 2560x1440+0+0.
func ParseXrandr(output string) []Display {
	var displays []Display
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, " connected") || !strings.Contains(line, "+") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		identifier := fields[0]
		for _, field := range fields {
			if !strings.Contains(field, "x") || !strings.Contains(field, "+") {
				continue
			}
			var w, h, x, y int
			if _, err := fmt.Sscanf(field, "%dx%d+%d+%d", &w, &h, &x, &y); err != nil {
				continue
			}
			displays = append(displays, Display{Identifier: identifier, Width: w, Height: h})
			break
		}
	}
	return displays
}

// system_profiler SPDisplaysDataType -json shape, reduced to what we read.
type darwinProfile struct {
	SPDisplaysDataType []struct {
		Displays []struct {
			DeviceID   string `json:"spdisplays_device-id"`
			Pixels     string `json:"_spdisplays_pixels"`
			Resolution string `json:"_spdisplays_resolution"`
		} `json:"spdisplays_ndrvs"`
	} `json:"SPDisplaysDataType"`
}

func (d *Detector) detectDarwin() ([]Display, error) {
	out, err := d.commander.Output("system_profiler", "SPDisplaysDataType", "-json")
	if err != nil {
		return nil, fmt.Errorf("system_profiler failed: %w", err)
	}

	var profile darwinProfile
	if err := json.Unmarshal(out, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse system_profiler output: %w", err)
	}

	var displays []Display
	for _, gpu := range profile.SPDisplaysDataType {
		for _, disp := range gpu.Displays {
			identifier := disp.DeviceID
			if identifier == "" {
				identifier = fmt.Sprintf("%d", len(displays))
			}
			w, h := parsePixels(disp.Pixels)
			displays = append(displays, Display{Identifier: identifier, Width: w, Height: h})
		}
	}
	return displays, nil
}

// parsePixels reads a "2560 x 1440" pixel description.
func parsePixels(s string) (int, int) {
	var w, h int
	if _, err := fmt.Sscanf(s, "%d x %d", &w, &h); err != nil {
		return 0, 0
	}
	return w, h
}
