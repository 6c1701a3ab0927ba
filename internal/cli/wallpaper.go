package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/weave/internal/colour"
	"github.com/jmylchreest/weave/internal/wallpaper"
)

var (
	// wallpaper import flags
	importName    string
	importType    string
	importAnalyze bool

	// wallpaper analyze flags
	analyzeMissing bool

	// wallpaper list/show flags
	wallpaperFormat string
	showOpen        bool
)

// wallpaperCmd groups the wallpaper library subcommands.
var wallpaperCmd = &cobra.Command{
	Use:   "wallpaper",
	Short: "Manage wallpapers",
}

var wallpaperImportCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import a wallpaper into the library",
	Long: `Import a wallpaper image into the library.

The image is copied into the wallpaper directory, deduplicated by content
hash, and recorded with its resolution, orientation and file size.

Examples:
  # Import a dark wallpaper, name taken from the filename
  weave wallpaper import --type dark ~/pictures/night-sky.png

  # Import and extract the colour palette immediately
  weave wallpaper import --type both --analyze ~/pictures/forest.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runWallpaperImport,
}

var wallpaperAnalyzeCmd = &cobra.Command{
	Use:   "analyze [identifier]",
	Short: "Extract colours and orientation for a wallpaper",
	Long: `Extract the dominant colour palette of a wallpaper and backfill its
orientation. With --missing, every wallpaper without extracted colours
is analyzed in turn.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWallpaperAnalyze,
}

var wallpaperListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wallpapers in the library",
	RunE:  runWallpaperList,
}

var wallpaperShowCmd = &cobra.Command{
	Use:   "show <identifier>",
	Short: "Show one wallpaper",
	Long: `Show a wallpaper's metadata. The identifier may be an ID prefix, an
exact name, a fuzzy name, or one of "random", "dark", "light" for a
random pick.`,
	Args: cobra.ExactArgs(1),
	RunE: runWallpaperShow,
}

func init() {
	wallpaperImportCmd.Flags().StringVar(&importName, "name", "", "name for the wallpaper (default: filename)")
	wallpaperImportCmd.Flags().StringVar(&importType, "type", "", "wallpaper type (dark, light, both)")
	wallpaperImportCmd.Flags().BoolVarP(&importAnalyze, "analyze", "a", false, "extract colours on import")
	_ = wallpaperImportCmd.MarkFlagRequired("type")

	wallpaperAnalyzeCmd.Flags().BoolVar(&analyzeMissing, "missing", false, "analyze all wallpapers without extracted colours")

	wallpaperListCmd.Flags().StringVarP(&wallpaperFormat, "format", "f", "stdout", "output format (stdout, json)")
	wallpaperShowCmd.Flags().StringVarP(&wallpaperFormat, "format", "f", "stdout", "output format (stdout, json)")
	wallpaperShowCmd.Flags().BoolVar(&showOpen, "open", false, "open the wallpaper in the system image viewer")

	wallpaperCmd.AddCommand(wallpaperImportCmd)
	wallpaperCmd.AddCommand(wallpaperAnalyzeCmd)
	wallpaperCmd.AddCommand(wallpaperListCmd)
	wallpaperCmd.AddCommand(wallpaperShowCmd)
}

// wallpaperStore builds the library store over the data directory.
func wallpaperStore() *wallpaper.Store {
	return wallpaper.NewStore(dirs().Wallpapers, newLogger())
}

func runWallpaperImport(cmd *cobra.Command, args []string) error {
	typ, err := wallpaper.ParseType(importType)
	if err != nil {
		return err
	}

	store := wallpaperStore()
	m, err := store.Import(args[0], importName, typ)
	if err != nil {
		return err
	}
	fmt.Printf("Imported wallpaper with ID: %s\n", m.ID)

	if importAnalyze {
		cfg, err := settings()
		if err != nil {
			return err
		}
		m, err = store.Analyze(m.ID, cfg.PaletteSize, newRand())
		if err != nil {
			return err
		}
		fmt.Printf("Analyzed wallpaper. Extracted colours: %s  %v\n", ColourSquares(m.Colors), m.Colors)
	}
	return nil
}

func runWallpaperAnalyze(cmd *cobra.Command, args []string) error {
	store := wallpaperStore()
	cfg, err := settings()
	if err != nil {
		return err
	}

	analyzeOne := func(identifier string) error {
		m, err := store.Analyze(identifier, cfg.PaletteSize, newRand())
		if err != nil {
			return err
		}
		fmt.Printf("Analyzed wallpaper %s:\n", m.ID)
		table := NewTable("Colours", "Orientation")
		table.AddRow(ColourSquares(m.Colors), m.Orientation)
		fmt.Print(table.Render())
		return nil
	}

	switch {
	case analyzeMissing:
		missing, err := store.MissingMetadata()
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			fmt.Println("No unanalyzed wallpapers found.")
			return nil
		}
		for i, m := range missing {
			if err := analyzeOne(m.ID); err != nil {
				return err
			}
			if i < len(missing)-1 {
				fmt.Println()
			}
		}
		return nil
	case len(args) == 1:
		return analyzeOne(args[0])
	default:
		return fmt.Errorf("provide a wallpaper identifier or use --missing")
	}
}

func runWallpaperList(cmd *cobra.Command, args []string) error {
	store := wallpaperStore()
	wallpapers, err := store.List()
	if err != nil {
		return err
	}

	if wallpaperFormat == "json" {
		data, err := json.MarshalIndent(wallpapers, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode wallpapers: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	cfg, err := settings()
	if err != nil {
		return err
	}

	table := NewTable("ID", "Name", "Type", "Colours", "Resolution", "Orientation", "Size")
	for _, w := range wallpapers {
		colors := "N/A"
		if len(w.Colors) > 0 {
			top := colour.VaryingColors(w.Colors, cfg.DiverseCount)
			top = colour.SortByBrightness(top, w.Type == wallpaper.TypeLight)
			colors = ColourSquares(top)
		}
		table.AddRow(
			truncate(w.ID, 6),
			truncate(w.Name, nameColumnWidth()),
			string(w.Type),
			colors,
			w.Resolution,
			w.Orientation,
			fmt.Sprintf("%.2f MB", float64(w.Filesize)/1024/1024),
		)
	}
	fmt.Print(table.Render())
	return nil
}

func runWallpaperShow(cmd *cobra.Command, args []string) error {
	store := wallpaperStore()
	identifier := args[0]

	var m wallpaper.Metadata
	var err error
	switch identifier {
	case "random":
		m, err = store.Random("", newRand())
	case "dark", "light":
		m, err = store.Random(wallpaper.Type(identifier), newRand())
	default:
		m, err = store.Get(identifier)
		if errors.Is(err, wallpaper.ErrNotFound) {
			m, err = store.FuzzyMatch(identifier)
		}
	}
	if err != nil {
		return err
	}

	if wallpaperFormat == "json" {
		record := struct {
			wallpaper.Metadata
			Path string `json:"path"`
		}{Metadata: m, Path: store.Path(m)}
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode wallpaper: %w", err)
		}
		fmt.Println(string(data))
	} else {
		table := NewTable("Key", "Value")
		table.AddRow("id", m.ID)
		table.AddRow("name", m.Name)
		table.AddRow("type", string(m.Type))
		table.AddRow("resolution", m.Resolution)
		table.AddRow("orientation", m.Orientation)
		table.AddRow("filesize", fmt.Sprintf("%.2f MB", float64(m.Filesize)/1024/1024))
		if len(m.Colors) > 0 {
			table.AddRow("colours", ColourSquares(m.Colors))
		}
		fmt.Print(table.Render())
	}

	if showOpen {
		path := store.Path(m)
		fmt.Printf("Opening wallpaper: %s\n", path)
		opener := "xdg-open"
		if runtime.GOOS == "darwin" {
			opener = "open"
		}
		if err := exec.Command(opener, path).Run(); err != nil {
			return fmt.Errorf("failed to open wallpaper: %w", err)
		}
	}
	return nil
}

// newRand creates a time-seeded source for commands that want
// non-repeating behaviour. Tests construct their own seeded sources.
func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
