package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestText_English(t *testing.T) {
	l, err := New("en")
	require.NoError(t, err)
	require.Equal(t, language.English, l.Language())
	require.Equal(t, "Go Next!", l.Text("page1.button", "fallback"))
}

func TestText_Spanish(t *testing.T) {
	l, err := New("es-MX")
	require.NoError(t, err)
	require.Equal(t, "Hora de volver", l.Text("page2.button", "fallback"))
}

func TestText_Fallbacks(t *testing.T) {
	l, err := New("xx-invalid-")
	require.NoError(t, err)
	require.Equal(t, language.English, l.Language())

	require.Equal(t, "plain", l.Text("", "plain"))
	require.Equal(t, "missing", l.Text("no.such.message", "missing"))

	var nilLocalizer *Localizer
	require.Equal(t, "x", nilLocalizer.Text("page1.title", "x"))
}

func TestText_UnsupportedLocaleFallsBackToEnglish(t *testing.T) {
	l, err := New("ja")
	require.NoError(t, err)
	require.Equal(t, "Page 1", l.Text("page1.title", ""))
}
