package loaders

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const marblesYAML = `# Scene: Marbles
camera:
  center: [0, 1, 3]
  look_at: [0, 0, -1]
  vfov: 40
background:
  top: [0.1, 0.1, 0.3]
  bottom: [1, 0.9, 0.8]
materials:
  - name: ground
    type: lambertian
    albedo: [0.8, 0.8, 0]
  - name: glass
    type: dielectric
    ior: 1.5
  - name: gold
    type: metal
    albedo: [0.8, 0.6, 0.2]
    fuzz: 0.3
spheres:
  - center: [0, -100.5, -1]
    radius: 100
    material: ground
  - center: [-1, 0, -1]
    radius: 0.5
    material: glass
  - center: [-1, 0, -1]
    radius: -0.45
    material: glass
  - center: [1, 0, -1]
    radius: 0.5
    material: gold
`

const marblesTOML = `# Scene: Marbles
[camera]
center = [0, 1, 3]
look_at = [0, 0, -1]
vfov = 40

[[materials]]
name = "glass"
type = "dielectric"
ior = 1.5

[[spheres]]
center = [-1, 0, -1]
radius = -0.45
material = "glass"
`

func TestParseYAML(t *testing.T) {
	desc, err := ParseYAML(strings.NewReader(marblesYAML))
	require.NoError(t, err)

	require.NotNil(t, desc.Camera)
	assert.Equal(t, []float64{0, 1, 3}, desc.Camera.Center)
	assert.Equal(t, 40.0, desc.Camera.VFov)
	assert.Nil(t, desc.Camera.Up)

	require.Len(t, desc.Materials, 3)
	assert.Equal(t, MaterialDielectric, desc.Materials[1].Type)
	assert.Equal(t, 1.5, desc.Materials[1].RefractiveIndex)
	assert.Equal(t, 0.3, desc.Materials[2].Fuzz)

	require.Len(t, desc.Spheres, 4)
	assert.Equal(t, -0.45, desc.Spheres[2].Radius)
	assert.Equal(t, "glass", desc.Spheres[2].Material)
}

func TestParseTOML(t *testing.T) {
	desc, err := ParseTOML(strings.NewReader(marblesTOML))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, -1}, desc.Camera.LookAt)
	require.Len(t, desc.Materials, 1)
	require.Len(t, desc.Spheres, 1)
	assert.Equal(t, -0.45, desc.Spheres[0].Radius)
	assert.Nil(t, desc.Background)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty document", ""},
		{"unknown key", "lights: []\n"},
		{"unknown material type", "materials:\n  - {name: a, type: emissive, albedo: [1, 1, 1]}\n"},
		{"missing albedo", "materials:\n  - {name: a, type: lambertian}\n"},
		{"dielectric without ior", "materials:\n  - {name: a, type: dielectric}\n"},
		{"unnamed material", "materials:\n  - {type: dielectric, ior: 1.5}\n"},
		{"duplicate material", "materials:\n  - {name: a, type: dielectric, ior: 1.5}\n  - {name: a, type: dielectric, ior: 1.3}\n"},
		{"undefined material", "spheres:\n  - {center: [0, 0, 0], radius: 1, material: nope}\n"},
		{"short vector", "materials:\n  - {name: a, type: dielectric, ior: 1.5}\nspheres:\n  - {center: [0, 0], radius: 1, material: a}\n"},
		{"zero radius", "materials:\n  - {name: a, type: dielectric, ior: 1.5}\nspheres:\n  - {center: [0, 0, 0], radius: 0, material: a}\n"},
		{"bad camera vector", "camera:\n  up: [0, 1]\n"},
		{"bad background", "background:\n  top: [1, 1, 1]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML(strings.NewReader(tt.content))
			assert.ErrorIs(t, err, ErrInvalidSceneFile)
		})
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "marbles.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(marblesYAML), 0644))
	desc, err := LoadSceneFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, desc.Spheres, 4)

	tomlPath := filepath.Join(dir, "marbles.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(marblesTOML), 0644))
	desc, err = LoadSceneFile(tomlPath)
	require.NoError(t, err)
	assert.Len(t, desc.Spheres, 1)

	_, err = LoadSceneFile(filepath.Join(dir, "scene.pbrt"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadSceneFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)

	_, err = LoadSceneFile("")
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	desc, err := ParseYAML(strings.NewReader(marblesYAML))
	require.NoError(t, err)

	var yamlBuf bytes.Buffer
	require.NoError(t, EncodeYAML(&yamlBuf, desc))
	fromYAML, err := ParseYAML(&yamlBuf)
	require.NoError(t, err)
	assert.Equal(t, desc, fromYAML)

	var tomlBuf bytes.Buffer
	require.NoError(t, EncodeTOML(&tomlBuf, desc))
	fromTOML, err := ParseTOML(&tomlBuf)
	require.NoError(t, err)
	assert.Equal(t, desc, fromTOML)
}

func TestParseVec3(t *testing.T) {
	v, err := ParseVec3([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, Vec3Values(v))

	_, err = ParseVec3([]float64{1, 2, 3, 4})
	assert.Error(t, err)
	_, err = ParseVec3(nil)
	assert.Error(t, err)
}
