// Package icons rasterizes the SVG icons shown next to screen titles.
package icons

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed svg/*.svg
var builtin embed.FS

// Names lists the built-in icons.
func Names() []string {
	entries, _ := builtin.ReadDir("svg")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".svg"))
	}
	sort.Strings(names)
	return names
}

// Source returns the SVG source for ref, which is either a built-in icon
// name or a path to an .svg file.
func Source(ref string) ([]byte, error) {
	if ref == "" {
		return nil, fmt.Errorf("icons: empty icon reference")
	}
	if data, err := builtin.ReadFile(path.Join("svg", ref+".svg")); err == nil {
		return data, nil
	}
	if strings.HasSuffix(strings.ToLower(ref), ".svg") {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("icons: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("icons: unknown icon %q", ref)
}

// Rasterize renders ref into a size x size image.
func Rasterize(ref string, size int) (*image.RGBA, error) {
	data, err := Source(ref)
	if err != nil {
		return nil, err
	}
	return Render(bytes.NewReader(data), size)
}

// Render rasterizes an SVG stream into a size x size image.
func Render(r io.Reader, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("icons: invalid size %d", size)
	}
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("icons: parse svg: %w", err)
	}

	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img, nil
}
