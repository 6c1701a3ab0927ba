package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/weave/internal/colour"
	"github.com/jmylchreest/weave/internal/generate"
	weaveimage "github.com/jmylchreest/weave/internal/image"
)

var (
	// generate palette flags
	generateModel  string
	generateOutput string
)

// generateCmd groups the generative subcommands.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate content from colour palettes",
}

var generatePaletteCmd = &cobra.Command{
	Use:   "palette <image>",
	Short: "Design a colour scheme from an image",
	Long: `Extract the dominant colours of an image and ask a generative model to
design a full terminal colour scheme around them. Requires the
GOOGLE_API_KEY environment variable.

Examples:
  # Design a scheme from a wallpaper
  weave generate palette wallpaper.jpg

  # Write the result to a file
  weave generate palette -o palette.txt wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runGeneratePalette,
}

func init() {
	generatePaletteCmd.Flags().StringVarP(&generateModel, "model", "m", "", "model to use for palette generation")
	generatePaletteCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file (default: stdout)")

	generateCmd.AddCommand(generatePaletteCmd)
}

func runGeneratePalette(cmd *cobra.Command, args []string) error {
	cfg, err := settings()
	if err != nil {
		return err
	}

	img, err := weaveimage.Load(args[0])
	if err != nil {
		return err
	}

	colors, err := colour.InferPalette(img, cfg.PaletteSize, colour.ExtractOptions{Rand: newRand()})
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}

	output, err := generate.Palette(cmd.Context(), generateModel, colors)
	if err != nil {
		return err
	}

	if generateOutput != "" {
		if err := os.WriteFile(generateOutput, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Palette written to %s\n", generateOutput)
		return nil
	}
	fmt.Println(output)
	return nil
}
