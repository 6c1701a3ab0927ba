package generate

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt([]string{"#ff0000", "#000000"})

	if !strings.Contains(prompt, "- #ff0000 (red)") {
		t.Errorf("prompt missing named red entry:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- #000000 (black)") {
		t.Errorf("prompt missing named black entry:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Dominant colours:") {
		t.Errorf("prompt missing colour list header:\n%s", prompt)
	}
}

func TestBuildPromptUnnameableColour(t *testing.T) {
	prompt := BuildPrompt([]string{"garbage"})
	if !strings.Contains(prompt, "- garbage (unknown)") {
		t.Errorf("unnameable colour not labelled unknown:\n%s", prompt)
	}
}
