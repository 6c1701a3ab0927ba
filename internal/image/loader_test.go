package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	writeTestPNG(t, path, 12, 8)

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 12 || b.Dy() != 8 {
		t.Errorf("image size = %dx%d, want 12x8", b.Dx(), b.Dy())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notImage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing file", path: filepath.Join(dir, "nope.png")},
		{name: "directory", path: dir},
		{name: "not an image", path: notImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Errorf("Load(%q) expected error", tt.path)
			}
		})
	}
}

func TestDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dims.png")
	writeTestPNG(t, path, 640, 480)

	w, h, err := Dimensions(path)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if w != 640 || h != 480 {
		t.Errorf("dimensions = %dx%d, want 640x480", w, h)
	}
}

func TestIsImageFile(t *testing.T) {
	dir := t.TempDir()

	// Content decides, not the extension.
	disguised := filepath.Join(dir, "wallpaper.dat")
	writeTestPNG(t, disguised, 4, 4)
	if !IsImageFile(disguised) {
		t.Error("PNG content with odd extension not recognised")
	}

	fake := filepath.Join(dir, "fake.png")
	if err := os.WriteFile(fake, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if IsImageFile(fake) {
		t.Error("text file with png extension recognised as image")
	}

	if IsImageFile(filepath.Join(dir, "missing.png")) {
		t.Error("missing file recognised as image")
	}
}

func TestHasSupportedExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "a.jpg", want: true},
		{path: "a.JPEG", want: true},
		{path: "a.png", want: true},
		{path: "a.webp", want: true},
		{path: "a.gif", want: true},
		{path: "a.tiff", want: false},
		{path: "a", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := HasSupportedExtension(tt.path); got != tt.want {
				t.Errorf("HasSupportedExtension(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
