package scheme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testScheme = `{
  "name": "gruvbox",
  "variants": {
    "dark-hard": {
      "type": "dark",
      "colors": {
        "background": "#1d2021",
        "foreground": "#ebdbb2",
        "color0": "#282828",
        "color1": "#cc241d",
        "color2": "#98971a",
        "color3": "#d79921",
        "color4": "#458588",
        "color5": "#b16286",
        "color6": "#689d6a",
        "color7": "#a89984"
      }
    },
    "light": {
      "type": "light",
      "colors": {
        "color0": "#fbf1c7",
        "color1": "#cc241d",
        "color7": "#7c6f64"
      }
    }
  }
}`

func writeScheme(t *testing.T, dir, name, doc string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create scheme dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(doc), 0o644); err != nil {
		t.Fatalf("failed to write scheme: %v", err)
	}
}

func TestStoreLoad(t *testing.T) {
	dir := t.TempDir()
	writeScheme(t, dir, "gruvbox", testScheme)
	store := NewStore(dir)

	scheme, err := store.Load("gruvbox")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if scheme.Name != "gruvbox" {
		t.Errorf("scheme name = %q, want gruvbox", scheme.Name)
	}
	if len(scheme.Variants) != 2 {
		t.Fatalf("variant count = %d, want 2", len(scheme.Variants))
	}

	v := scheme.Variants["dark-hard"]
	if v.Name != "dark-hard" {
		t.Errorf("variant name = %q, want dark-hard", v.Name)
	}
	if v.Type != "dark" {
		t.Errorf("variant type = %q, want dark", v.Type)
	}
	if v.Color("color1") != "#cc241d" {
		t.Errorf("color1 = %q, want #cc241d", v.Color("color1"))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreLoadDefaultsType(t *testing.T) {
	dir := t.TempDir()
	writeScheme(t, dir, "untyped", `{"name":"untyped","variants":{"main":{"colors":{"color0":"#000000"}}}}`)

	scheme, err := NewStore(dir).Load("untyped")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if scheme.Variants["main"].Type != "dark" {
		t.Errorf("untyped variant defaulted to %q, want dark", scheme.Variants["main"].Type)
	}
}

func TestVariantLookup(t *testing.T) {
	dir := t.TempDir()
	writeScheme(t, dir, "gruvbox", testScheme)
	scheme, err := NewStore(dir).Load("gruvbox")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	byName, err := scheme.Variant("dark-hard")
	if err != nil {
		t.Fatalf("lookup by name failed: %v", err)
	}
	if byName.Name != "dark-hard" {
		t.Errorf("got %q, want dark-hard", byName.Name)
	}

	byType, err := scheme.Variant("light")
	if err != nil {
		t.Fatalf("lookup by type failed: %v", err)
	}
	if byType.Type != "light" {
		t.Errorf("got type %q, want light", byType.Type)
	}

	if _, err := scheme.Variant("sepia"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDefaultVariant(t *testing.T) {
	scheme := &Scheme{
		Name: "test",
		Variants: map[string]*Variant{
			"zeta":  {Name: "zeta"},
			"alpha": {Name: "alpha"},
		},
	}
	v, err := scheme.DefaultVariant()
	if err != nil {
		t.Fatalf("DefaultVariant failed: %v", err)
	}
	if v.Name != "alpha" {
		t.Errorf("default variant = %q, want alpha (sorted order)", v.Name)
	}

	empty := &Scheme{Name: "empty", Variants: map[string]*Variant{}}
	if _, err := empty.DefaultVariant(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVariantColourFallbacks(t *testing.T) {
	explicit := &Variant{Colors: map[string]string{
		"background": "#101010",
		"foreground": "#f0f0f0",
		"color0":     "#000000",
		"color7":     "#cccccc",
	}}
	if explicit.Background() != "#101010" {
		t.Errorf("background = %q, want explicit slot", explicit.Background())
	}
	if explicit.Foreground() != "#f0f0f0" {
		t.Errorf("foreground = %q, want explicit slot", explicit.Foreground())
	}

	fallback := &Variant{Colors: map[string]string{
		"color0": "#000000",
		"color7": "#cccccc",
	}}
	if fallback.Background() != "#000000" {
		t.Errorf("background = %q, want color0 fallback", fallback.Background())
	}
	if fallback.Foreground() != "#cccccc" {
		t.Errorf("foreground = %q, want color7 fallback", fallback.Foreground())
	}
}

func TestTargetColors(t *testing.T) {
	v := &Variant{Colors: map[string]string{
		"background": "#1d2021",
		"color1":     "#cc241d",
		"color2":     "#98971a",
		"color4":     "#458588",
	}}

	got := v.TargetColors()
	want := []string{"#1d2021", "#cc241d", "#98971a", "#458588"}
	if len(got) != len(want) {
		t.Fatalf("target colours = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("target[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		input       string
		wantScheme  string
		wantVariant string
	}{
		{input: "gruvbox:dark-hard", wantScheme: "gruvbox", wantVariant: "dark-hard"},
		{input: "gruvbox", wantScheme: "gruvbox", wantVariant: ""},
		{input: "gruvbox:", wantScheme: "gruvbox", wantVariant: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			schemeName, variantName := ParseIdentifier(tt.input)
			if schemeName != tt.wantScheme || variantName != tt.wantVariant {
				t.Errorf("ParseIdentifier(%q) = (%q, %q), want (%q, %q)",
					tt.input, schemeName, variantName, tt.wantScheme, tt.wantVariant)
			}
		})
	}
}

func TestStoreImport(t *testing.T) {
	src := filepath.Join(t.TempDir(), "downloaded.json")
	if err := os.WriteFile(src, []byte(testScheme), 0o644); err != nil {
		t.Fatalf("failed to write source scheme: %v", err)
	}

	store := NewStore(filepath.Join(t.TempDir(), "schemes"))
	name, err := store.Import(src)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if name != "gruvbox" {
		t.Errorf("imported name = %q, want gruvbox (from document, not filename)", name)
	}

	if _, err := store.Load("gruvbox"); err != nil {
		t.Errorf("imported scheme not loadable: %v", err)
	}

	names, err := store.ListNames()
	if err != nil {
		t.Fatalf("ListNames failed: %v", err)
	}
	if len(names) != 1 || names[0] != "gruvbox" {
		t.Errorf("ListNames = %v, want [gruvbox]", names)
	}
}

func TestStoreImportRejectsNameless(t *testing.T) {
	src := filepath.Join(t.TempDir(), "anon.json")
	if err := os.WriteFile(src, []byte(`{"variants":{}}`), 0o644); err != nil {
		t.Fatalf("failed to write source scheme: %v", err)
	}

	if _, err := NewStore(t.TempDir()).Import(src); err == nil {
		t.Error("expected error importing a scheme with no name")
	}
}

func TestBuildProfile(t *testing.T) {
	dir := t.TempDir()
	writeScheme(t, dir, "gruvbox", testScheme)
	scheme, err := NewStore(dir).Load("gruvbox")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	profile := BuildProfile(scheme)
	if profile.AnalysisType != "base16" {
		t.Errorf("analysis type = %q, want base16", profile.AnalysisType)
	}

	v, ok := profile.Variants["dark-hard"]
	if !ok {
		t.Fatal("profile missing dark-hard variant")
	}
	if v.Background != "#282828" {
		t.Errorf("profile background = %q, want #282828 (color0)", v.Background)
	}
	if v.Foreground != "#a89984" {
		t.Errorf("profile foreground = %q, want #a89984 (color7)", v.Foreground)
	}
	if v.Accent1 != "#cc241d" || v.Accent2 != "#458588" {
		t.Errorf("accents = %q/%q, want color1/color4", v.Accent1, v.Accent2)
	}
}

func TestAnalyzeAndMissingProfiles(t *testing.T) {
	dir := t.TempDir()
	writeScheme(t, dir, "gruvbox", testScheme)
	writeScheme(t, dir, "nord", `{"name":"nord","variants":{"dark":{"colors":{"color0":"#2e3440"}}}}`)
	store := NewStore(dir)

	missing, err := store.MissingProfiles()
	if err != nil {
		t.Fatalf("MissingProfiles failed: %v", err)
	}
	if len(missing) != 2 {
		t.Fatalf("missing = %v, want both schemes", missing)
	}

	if err := store.Analyze("gruvbox"); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, profilesDirName, "gruvbox.json")); err != nil {
		t.Errorf("profile not written: %v", err)
	}

	missing, err = store.MissingProfiles()
	if err != nil {
		t.Fatalf("MissingProfiles failed: %v", err)
	}
	if len(missing) != 1 || missing[0] != "nord" {
		t.Errorf("missing = %v, want [nord]", missing)
	}
}
