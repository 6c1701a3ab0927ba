package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/weave/internal/colour"
	"github.com/jmylchreest/weave/internal/config"
	"github.com/jmylchreest/weave/internal/display"
	"github.com/jmylchreest/weave/internal/scheme"
	"github.com/jmylchreest/weave/internal/wallpaper"
)

var (
	// scheme import/analyze flags
	schemeImportAnalyze  bool
	schemeAnalyzeMissing bool

	// scheme show flags
	showWallpapers bool

	// scheme apply flags
	applyWallpapers      bool
	applyRandom          bool
	applyFilterThreshold float64
)

// schemeCmd groups the colour scheme subcommands.
var schemeCmd = &cobra.Command{
	Use:   "scheme",
	Short: "Manage colour schemes",
}

var schemeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List colour schemes",
	RunE:  runSchemeList,
}

var schemeShowCmd = &cobra.Command{
	Use:   "show <scheme[:variant]>",
	Short: "Show a scheme's variants",
	Long: `Show the variants of a scheme. A variant may be named directly
("nord:frost") or by type ("nord:dark"). With --wallpapers, compatible
wallpapers are listed per variant, ranked by colour similarity.`,
	Args: cobra.ExactArgs(1),
	RunE: runSchemeShow,
}

var schemeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a scheme file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemeImport,
}

var schemeAnalyzeCmd = &cobra.Command{
	Use:   "analyze [scheme]",
	Short: "Create a colour profile for a scheme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSchemeAnalyze,
}

var schemeApplyCmd = &cobra.Command{
	Use:   "apply <scheme[:variant]>",
	Short: "Apply a scheme variant to the desktop",
	Long: `Apply a scheme variant through wallust. With --wallpapers, weave also
picks the best-matching wallpaper for each connected display and sets it.

Examples:
  # Apply the first variant of a scheme
  weave scheme apply nord

  # Apply the dark variant and set matching wallpapers
  weave scheme apply nord:dark --wallpapers

  # Randomise across the top 20%% of matches
  weave scheme apply nord:dark -w --random`,
	Args: cobra.ExactArgs(1),
	RunE: runSchemeApply,
}

func init() {
	schemeImportCmd.Flags().BoolVarP(&schemeImportAnalyze, "analyze", "a", false, "create a colour profile after import")
	schemeAnalyzeCmd.Flags().BoolVar(&schemeAnalyzeMissing, "missing", false, "analyze all schemes without colour profiles")
	schemeShowCmd.Flags().BoolVar(&showWallpapers, "wallpapers", false, "show compatible wallpapers, ranked by colour similarity")
	schemeApplyCmd.Flags().BoolVarP(&applyWallpapers, "wallpapers", "w", false, "set matching wallpapers for connected displays")
	schemeApplyCmd.Flags().BoolVarP(&applyRandom, "random", "r", false, "randomly select among the best-matching wallpapers")
	schemeApplyCmd.Flags().Float64VarP(&applyFilterThreshold, "filter-threshold", "f", 0, "top fraction eligible for random selection")

	schemeCmd.AddCommand(schemeListCmd)
	schemeCmd.AddCommand(schemeShowCmd)
	schemeCmd.AddCommand(schemeImportCmd)
	schemeCmd.AddCommand(schemeAnalyzeCmd)
	schemeCmd.AddCommand(schemeApplyCmd)
}

// schemeStore builds the scheme store over the data directory.
func schemeStore() *scheme.Store {
	return scheme.NewStore(dirs().Schemes)
}

func runSchemeList(cmd *cobra.Command, args []string) error {
	store := schemeStore()
	names, err := store.ListNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		s, err := store.Load(name)
		if err != nil {
			return err
		}

		fmt.Println(name)
		table := NewTable("Variant", "Type", "Accents")
		for _, variantName := range sortedVariantsByBrightness(s) {
			v := s.Variants[variantName]
			accents := make([]string, 0, 6)
			for i := 1; i <= 6; i++ {
				if c := v.Color(fmt.Sprintf("color%d", i)); c != "" {
					accents = append(accents, c)
				}
			}
			table.AddRow(variantName, v.Type, ColourSquares(accents))
		}
		fmt.Print(table.Render())
		fmt.Println()
	}
	return nil
}

// sortedVariantsByBrightness orders variant names by background
// brightness, darkest first.
func sortedVariantsByBrightness(s *scheme.Scheme) []string {
	names := make([]string, 0, len(s.Variants))
	for name := range s.Variants {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0; j-- {
			a := colour.Brightness(s.Variants[names[j-1]].Background())
			b := colour.Brightness(s.Variants[names[j]].Background())
			if a > b {
				names[j-1], names[j] = names[j], names[j-1]
			} else {
				break
			}
		}
	}
	return names
}

// resolveVariant loads a scheme and picks a variant from a
// "scheme[:variant]" identifier.
func resolveVariant(identifier string) (*scheme.Scheme, *scheme.Variant, error) {
	schemeName, variantName := scheme.ParseIdentifier(identifier)
	s, err := schemeStore().Load(schemeName)
	if err != nil {
		return nil, nil, err
	}

	var v *scheme.Variant
	if variantName == "" {
		v, err = s.DefaultVariant()
	} else {
		v, err = s.Variant(variantName)
	}
	if err != nil {
		return nil, nil, err
	}
	return s, v, nil
}

func runSchemeShow(cmd *cobra.Command, args []string) error {
	schemeName, variantName := scheme.ParseIdentifier(args[0])
	s, err := schemeStore().Load(schemeName)
	if err != nil {
		return err
	}

	var variants []*scheme.Variant
	if variantName != "" {
		v, err := s.Variant(variantName)
		if err != nil {
			return err
		}
		variants = append(variants, v)
	} else {
		for _, name := range sortedVariantsByBrightness(s) {
			variants = append(variants, s.Variants[name])
		}
	}

	cfg, err := settings()
	if err != nil {
		return err
	}

	for i, v := range variants {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%s)\n", v.Name, v.Type)
		printVariant(v)

		if showWallpapers {
			ranked, err := compatibleWallpapers(v, cfg, 0)
			if err != nil {
				return err
			}
			printWallpaperTable(ranked, cfg)
		}
	}
	return nil
}

// printVariant renders the slot table for one variant.
func printVariant(v *scheme.Variant) {
	table := NewTable("Slot", "Colour")
	for _, slot := range []string{"background", "foreground", "cursor"} {
		if c := v.Color(slot); c != "" {
			table.AddRow(slot, fmt.Sprintf("%s %s", ColourSquare(c), c))
		}
	}
	for i := 0; i < 16; i++ {
		slot := fmt.Sprintf("color%d", i)
		if c := v.Color(slot); c != "" {
			table.AddRow(slot, fmt.Sprintf("%s %s", ColourSquare(c), c))
		}
	}
	fmt.Print(table.Render())
}

// printWallpaperTable renders the top ranked wallpapers.
func printWallpaperTable(wallpapers []wallpaper.Metadata, cfg config.Settings) {
	const maxRows = 8

	table := NewTable("ID", "Name", "Type", "Colours")
	for i, w := range wallpapers {
		if i >= maxRows {
			break
		}
		table.AddRow(
			truncate(w.ID, 6),
			truncate(w.Name, nameColumnWidth()),
			string(w.Type),
			ColourSquares(colour.VaryingColors(w.Colors, cfg.DiverseCount)),
		)
	}
	fmt.Print(table.Render())
}

// compatibleWallpapers ranks the library against a variant.
func compatibleWallpapers(v *scheme.Variant, cfg config.Settings, keepFraction float64) ([]wallpaper.Metadata, error) {
	return wallpaperStore().Compatible(v.TargetColors(), wallpaper.Type(v.Type), wallpaper.RankOptions{
		FilterBackground:    true,
		BackgroundThreshold: cfg.BackgroundThreshold,
		WeighBackground:     true,
		BackgroundWeight:    cfg.BackgroundWeight,
		DiverseCount:        cfg.DiverseCount,
		KeepFraction:        keepFraction,
	})
}

func runSchemeImport(cmd *cobra.Command, args []string) error {
	store := schemeStore()
	name, err := store.Import(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Imported scheme %q successfully.\n", name)

	if schemeImportAnalyze {
		if err := store.Analyze(name); err != nil {
			return err
		}
		fmt.Printf("Created colour profile for scheme %q\n", name)
	}
	return nil
}

func runSchemeAnalyze(cmd *cobra.Command, args []string) error {
	store := schemeStore()
	switch {
	case schemeAnalyzeMissing:
		missing, err := store.MissingProfiles()
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			fmt.Println("No schemes found without colour profiles.")
			return nil
		}
		for _, name := range missing {
			if err := store.Analyze(name); err != nil {
				return err
			}
			fmt.Printf("Created colour profile for scheme %q\n", name)
		}
		return nil
	case len(args) == 1:
		if err := store.Analyze(args[0]); err != nil {
			return err
		}
		fmt.Printf("Created colour profile for scheme %q\n", args[0])
		return nil
	default:
		return fmt.Errorf("provide a scheme name or use --missing")
	}
}

func runSchemeApply(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	s, v, err := resolveVariant(args[0])
	if err != nil {
		return err
	}

	applier := scheme.NewApplier(nil, logger)
	if err := applier.Apply(v); err != nil {
		return err
	}
	fmt.Printf("Applied %s - %s (%s)\n", s.Name, v.Name, v.Type)
	printVariant(v)

	if !applyWallpapers {
		return nil
	}

	cfg, err := settings()
	if err != nil {
		return err
	}
	filterThreshold := applyFilterThreshold
	if filterThreshold == 0 {
		filterThreshold = cfg.FilterThreshold
	}

	displays, err := display.NewDetector(nil, logger).Detect()
	if err != nil {
		return fmt.Errorf("failed to detect displays: %w", err)
	}

	ranked, err := compatibleWallpapers(v, cfg, 1.0)
	if err != nil {
		return err
	}

	store := wallpaperStore()
	candidates := make([]display.Candidate, 0, len(ranked))
	byPath := make(map[string]wallpaper.Metadata, len(ranked))
	for _, w := range ranked {
		path := store.Path(w)
		byPath[path] = w
		candidates = append(candidates, display.Candidate{
			Path:   path,
			Width:  w.Width(),
			Height: w.Height(),
		})
	}

	assignments := display.Assign(candidates, displays, applyRandom, filterThreshold, newRand(), logger)
	if len(assignments) == 0 {
		fmt.Println("No suitable wallpapers found for any display")
		return nil
	}

	if err := display.NewSetter(logger).Set(assignments); err != nil {
		return fmt.Errorf("failed to set wallpapers: %w", err)
	}

	set := make([]wallpaper.Metadata, 0, len(assignments))
	for _, a := range assignments {
		if w, ok := byPath[a.Wallpaper]; ok {
			set = append(set, w)
		}
	}
	printWallpaperTable(set, cfg)
	return nil
}
