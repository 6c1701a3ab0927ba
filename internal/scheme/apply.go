package scheme

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Runner executes external commands. Abstracted so applying a scheme is
// testable without a wallust binary on PATH.
type Runner interface {
	Run(name string, args ...string) error
}

// ExecRunner runs commands through os/exec, inheriting stderr.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Applier applies a scheme variant to the desktop by handing it to
// wallust in pywal format.
type Applier struct {
	runner Runner
	logger hclog.Logger
	goos   string
}

// NewApplier creates an Applier. A nil runner uses os/exec.
func NewApplier(runner Runner, logger hclog.Logger) *Applier {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Applier{runner: runner, logger: logger.Named("apply"), goos: runtime.GOOS}
}

// pywalScheme is the colour document wallust consumes.
type pywalScheme struct {
	Special map[string]string `json:"special"`
	Colors  map[string]string `json:"colors"`
}

// Apply writes the variant as a pywal JSON document and invokes
// wallust on it. Darwin needs a skip-sequences pass before the real
// one; a single quiet invocation suffices elsewhere.
func (a *Applier) Apply(v *Variant) error {
	doc := pywalScheme{
		Special: map[string]string{
			"background": v.Background(),
			"foreground": v.Foreground(),
			"cursor":     cursorColor(v),
		},
		Colors: make(map[string]string, 16),
	}
	for i := 0; i < 16; i++ {
		slot := fmt.Sprintf("color%d", i)
		doc.Colors[slot] = v.Color(slot)
	}

	tmp, err := os.CreateTemp("", "weave-scheme-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp scheme file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := json.NewEncoder(tmp).Encode(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp scheme file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp scheme file: %w", err)
	}

	if a.goos == "darwin" {
		if err := a.runWallust(tmp.Name(), "-sq"); err != nil {
			return err
		}
		return a.runWallust(tmp.Name(), "-q")
	}
	return a.runWallust(tmp.Name(), "-q")
}

func (a *Applier) runWallust(schemePath, flags string) error {
	args := []string{"cs", schemePath, "--format", "pywal", "-d", configDir()}
	if flags != "" {
		args = append(args, flags)
	}
	a.logger.Debug("invoking wallust", "args", strings.Join(args, " "))
	if err := a.runner.Run("wallust", args...); err != nil {
		return fmt.Errorf("wallust failed: %w", err)
	}
	return nil
}

func cursorColor(v *Variant) string {
	if c := v.Color("cursor"); c != "" {
		return c
	}
	return v.Color("color7")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/wallust"
	}
	return home + "/.config/wallust"
}
