package icons

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	require.Equal(t, []string{"arrow-left", "arrow-right", "home"}, Names())
}

func TestRasterize_Builtin(t *testing.T) {
	img, err := Rasterize("arrow-right", 32)
	require.NoError(t, err)
	require.Equal(t, 32, img.Bounds().Dx())

	painted := false
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			painted = true
			break
		}
	}
	require.True(t, painted, "expected some opaque pixels")
}

func TestRasterize_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dot.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10" fill="#000"/></svg>`
	require.NoError(t, os.WriteFile(path, []byte(svg), 0o644))

	img, err := Rasterize(path, 8)
	require.NoError(t, err)
	require.Equal(t, uint8(0xFF), img.RGBAAt(4, 4).A)
}

func TestRasterize_Errors(t *testing.T) {
	_, err := Rasterize("", 8)
	require.Error(t, err)

	_, err = Rasterize("no-such-icon", 8)
	require.ErrorContains(t, err, "unknown icon")

	_, err = Rasterize("home", 0)
	require.ErrorContains(t, err, "invalid size")

	_, err = Render(strings.NewReader("<svg"), 0)
	require.Error(t, err)
}
