// Package generate builds palette-design prompts from extracted
// colours and sends them through the Gemini API.
package generate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/jmylchreest/weave/internal/colour"
)

// defaultModel is the model used when none is specified.
const defaultModel = "gemini-2.5-flash"

// basePrompt frames the palette-design request. The colour list is
// appended as hex/name pairs so the model can reason about both.
const basePrompt = `You are a colour scheme designer. Given a list of dominant colours
extracted from a wallpaper image, design a cohesive 16-colour terminal
scheme (background, foreground, color0..color15) that harmonises with
them. Respond with one hex colour per line, prefixed with the slot name.`

// BuildPrompt renders the design request for a palette, pairing each
// colour with its estimated CSS name.
func BuildPrompt(colors []string) string {
	names := colour.EstimateNames(colors)

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\nDominant colours:\n")
	for i, c := range colors {
		name := names[i]
		if name == "" {
			name = "unknown"
		}
		fmt.Fprintf(&b, "- %s (%s)\n", c, name)
	}
	return b.String()
}

// Palette sends a palette-design prompt to the Gemini API and returns
// the model's text response. GOOGLE_API_KEY must be set.
func Palette(ctx context.Context, model string, colors []string) (string, error) {
	if model == "" {
		model = defaultModel
	}

	client, err := clientSetup(ctx)
	if err != nil {
		return "", err
	}

	contents := genai.Text(BuildPrompt(colors))
	response, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("palette generation failed: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content in response")
	}

	var out strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			out.WriteString(part.Text)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("no text in response")
	}
	return out.String(), nil
}

// clientSetup creates a Gemini API client from the environment.
func clientSetup(ctx context.Context) (*genai.Client, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is required\nGet one at: https://aistudio.google.com/api-keys")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}
	return client, nil
}
