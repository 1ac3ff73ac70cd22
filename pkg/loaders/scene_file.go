package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	ErrUnsupportedFormat = errors.New("loaders: unsupported scene file format")
	ErrInvalidSceneFile  = errors.New("loaders: invalid scene file")
)

// Material types accepted in scene files
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// SceneDescription is the raw content of a YAML or TOML scene file
type SceneDescription struct {
	Camera     *CameraDescription     `yaml:"camera,omitempty" toml:"camera,omitempty"`
	Background *BackgroundDescription `yaml:"background,omitempty" toml:"background,omitempty"`
	Materials  []MaterialDescription  `yaml:"materials" toml:"materials"`
	Spheres    []SphereDescription    `yaml:"spheres" toml:"spheres"`
}

// CameraDescription overrides parts of the default camera. Omitted fields keep their default.
type CameraDescription struct {
	Center        []float64 `yaml:"center,omitempty" toml:"center,omitempty"`
	LookAt        []float64 `yaml:"look_at,omitempty" toml:"look_at,omitempty"`
	Up            []float64 `yaml:"up,omitempty" toml:"up,omitempty"`
	VFov          float64   `yaml:"vfov,omitempty" toml:"vfov,omitempty"` // degrees
	Aperture      float64   `yaml:"aperture,omitempty" toml:"aperture,omitempty"`
	FocusDistance float64   `yaml:"focus_distance,omitempty" toml:"focus_distance,omitempty"`
}

// BackgroundDescription sets the sky gradient
type BackgroundDescription struct {
	Top    []float64 `yaml:"top" toml:"top"`
	Bottom []float64 `yaml:"bottom" toml:"bottom"`
}

// MaterialDescription defines a named material
type MaterialDescription struct {
	Name            string    `yaml:"name" toml:"name"`
	Type            string    `yaml:"type" toml:"type"`
	Albedo          []float64 `yaml:"albedo,omitempty" toml:"albedo,omitempty"`
	Fuzz            float64   `yaml:"fuzz,omitempty" toml:"fuzz,omitempty"`
	RefractiveIndex float64   `yaml:"ior,omitempty" toml:"ior,omitempty"`
}

// SphereDescription places a sphere made of a named material. A negative radius makes the
// sphere hollow.
type SphereDescription struct {
	Center   []float64 `yaml:"center" toml:"center"`
	Radius   float64   `yaml:"radius" toml:"radius"`
	Material string    `yaml:"material" toml:"material"`
}

// LoadSceneFile loads and parses a scene file, choosing the format by extension
func LoadSceneFile(filename string) (*SceneDescription, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	var desc *SceneDescription
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		desc, err = ParseTOML(file)
	default:
		desc, err = ParseYAML(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}

// ParseYAML parses a YAML scene description. Unknown keys are rejected.
func ParseYAML(reader io.Reader) (*SceneDescription, error) {
	var desc SceneDescription

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&desc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSceneFile)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidSceneFile, err)
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// ParseTOML parses a TOML scene description. Unknown keys are rejected.
func ParseTOML(reader io.Reader) (*SceneDescription, error) {
	var desc SceneDescription

	decoder := toml.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSceneFile, err)
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// EncodeYAML writes desc as YAML
func EncodeYAML(writer io.Writer, desc *SceneDescription) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(desc); err != nil {
		return err
	}
	return encoder.Close()
}

// EncodeTOML writes desc as TOML
func EncodeTOML(writer io.Writer, desc *SceneDescription) error {
	return toml.NewEncoder(writer).Encode(desc)
}

// Validate checks vectors, material types and material references
func (d *SceneDescription) Validate() error {
	defined := make(map[string]bool, len(d.Materials))

	for i, m := range d.Materials {
		if m.Name == "" {
			return fmt.Errorf("%w: material %d has no name", ErrInvalidSceneFile, i)
		}
		if defined[m.Name] {
			return fmt.Errorf("%w: material %q defined twice", ErrInvalidSceneFile, m.Name)
		}
		defined[m.Name] = true

		switch m.Type {
		case MaterialLambertian, MaterialMetal:
			if _, err := ParseVec3(m.Albedo); err != nil {
				return fmt.Errorf("%w: material %q albedo: %w", ErrInvalidSceneFile, m.Name, err)
			}
		case MaterialDielectric:
			if m.RefractiveIndex <= 0 {
				return fmt.Errorf("%w: material %q needs a positive ior", ErrInvalidSceneFile, m.Name)
			}
		default:
			return fmt.Errorf("%w: material %q has unknown type %q", ErrInvalidSceneFile, m.Name, m.Type)
		}
	}

	for i, s := range d.Spheres {
		if _, err := ParseVec3(s.Center); err != nil {
			return fmt.Errorf("%w: sphere %d center: %w", ErrInvalidSceneFile, i, err)
		}
		if s.Radius == 0 {
			return fmt.Errorf("%w: sphere %d has zero radius", ErrInvalidSceneFile, i)
		}
		if !defined[s.Material] {
			return fmt.Errorf("%w: sphere %d uses undefined material %q", ErrInvalidSceneFile, i, s.Material)
		}
	}

	if d.Camera != nil {
		for name, values := range map[string][]float64{"center": d.Camera.Center, "look_at": d.Camera.LookAt, "up": d.Camera.Up} {
			if values == nil {
				continue
			}
			if _, err := ParseVec3(values); err != nil {
				return fmt.Errorf("%w: camera %s: %w", ErrInvalidSceneFile, name, err)
			}
		}
	}

	if d.Background != nil {
		if _, err := ParseVec3(d.Background.Top); err != nil {
			return fmt.Errorf("%w: background top: %w", ErrInvalidSceneFile, err)
		}
		if _, err := ParseVec3(d.Background.Bottom); err != nil {
			return fmt.Errorf("%w: background bottom: %w", ErrInvalidSceneFile, err)
		}
	}

	return nil
}

// ParseVec3 converts a three element list into a vector
func ParseVec3(values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 values, got %d", len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// Vec3Values converts a vector into a three element list
func Vec3Values(v core.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// validateFilePath validates a scene file path
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	if len(filename) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml", ".toml":
		return nil
	}
	return fmt.Errorf("%q: %w", filepath.Ext(filename), ErrUnsupportedFormat)
}
