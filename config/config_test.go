package config

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_EmbeddedDocumentIsValid(t *testing.T) {
	e := Default()
	require.NoError(t, e.Validate())

	assert.Equal(t, 32, e.Equalizer.Bars)
	assert.Equal(t, 100, e.Equalizer.FallbackIntervalMs)
	assert.Equal(t, 30, e.Sequence.TypewriterMsPerChar)
	assert.Equal(t, 256, e.Audio.AnalyserFFTSize)
	assert.Equal(t, 0.2, e.Audio.Ambient.Volume)
	assert.True(t, e.Audio.Voice.Loop)
	assert.Len(t, e.Audio.OneShots, 6)
	assert.Equal(t, 0.5, e.Audio.OneShots["spatial"].Volume)
}

func TestParse_OverlaysDefaults(t *testing.T) {
	e, err := Parse([]byte("motion:\n  lerp_factor: 0.2\nequalizer:\n  bars: 16\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.2, e.Motion.LerpFactor)
	assert.Equal(t, 16, e.Equalizer.Bars)
	assert.Equal(t, 0.5, e.Motion.RotationSpeed, "untouched keys keep defaults")
}

func TestParse_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"lerp zero", "motion:\n  lerp_factor: 0\n", ErrLerpRange},
		{"lerp above one", "motion:\n  lerp_factor: 1.5\n", ErrLerpRange},
		{"low end scale", "motion:\n  low_end_scale: 2\n", ErrLowEndScale},
		{"spring", "motion:\n  spring_stiffness: -1\n", ErrSpring},
		{"bars", "equalizer:\n  bars: 0\n", ErrBarCount},
		{"fft", "audio:\n  analyser_fft_size: 300\n", ErrFFTSize},
		{"channel volume", "audio:\n  glitch:\n    volume: 1.5\n", ErrChannel},
		{"channel source", "audio:\n  voice:\n    src: \"\"\n", ErrChannel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_DecodeError(t *testing.T) {
	_, err := Parse([]byte("motion: [unterminated"))
	assert.Error(t, err)
}

func TestSaveLoad_RoundTripFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	e := Default()
	e.Motion.LowEndScale = 0.6
	require.NoError(t, Save(path, e))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.6, loaded.Motion.LowEndScale)
}

func TestExportedTypesDocumented(t *testing.T) {
	file, err := parser.ParseFile(token.NewFileSet(), "config.go", nil, parser.ParseComments)
	require.NoError(t, err)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if !ts.Name.IsExported() {
				continue
			}
			doc := gen.Doc
			if ts.Doc != nil {
				doc = ts.Doc
			}
			assert.NotNil(t, doc, "type %s has no doc comment", ts.Name.Name)
		}
	}
}
