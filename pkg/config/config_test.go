package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "simple", cfg.Scene)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
width = 320
height = 240
samples_per_pixel = 16
seed = 9
scene = "cover"
`))
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 240, cfg.Height)
	assert.Equal(t, 16, cfg.SamplesPerPixel)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, "cover", cfg.Scene)
	assert.Equal(t, Default().MaxDepth, cfg.MaxDepth)
	assert.Equal(t, Default().Output, cfg.Output)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key": "gamma = 2.2",
		"wrong type":  `width = "wide"`,
		"broken toml": "width = ",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_ExpandsHome(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	cfg, err := Parse([]byte(`output = "~/renders/out.png"`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "renders", "out.png"), cfg.Output)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth = 7\nworkers = 2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxDepth)
	assert.Equal(t, 2, cfg.Workers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := Merge(base, RenderConfig{Width: 64, Scene: "single"})

	assert.Equal(t, 64, merged.Width)
	assert.Equal(t, "single", merged.Scene)
	assert.Equal(t, base.Height, merged.Height)
	assert.Equal(t, base.Output, merged.Output)
}

func TestEncode_RoundTrip(t *testing.T) {
	cfg := Merge(Default(), RenderConfig{Width: 123, Scene: "cover"})
	data, err := cfg.Encode()
	require.NoError(t, err)

	decoded, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.SamplesPerPixel = 0
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, renderer.ErrInvalidSamples)

	cfg = Default()
	cfg.Scene = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestSampling(t *testing.T) {
	cfg := Merge(Default(), RenderConfig{Workers: 3, Seed: 11})
	sampling := cfg.Sampling()

	assert.Equal(t, 3, sampling.NumWorkers)
	assert.Equal(t, int64(11), sampling.Seed)
	assert.Equal(t, cfg.Width, sampling.Width)
}
