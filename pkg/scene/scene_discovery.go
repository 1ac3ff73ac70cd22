package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by Create
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the scene file (file type only)
}

type builtin struct {
	info   SceneInfo
	create func(aspectRatio float64) *Scene
}

var builtins = []builtin{
	{
		info: SceneInfo{
			ID:          "simple",
			Name:        "Simple",
			Description: "Diffuse, hollow glass and metal spheres on a ground sphere",
			Type:        "builtin",
		},
		create: func(aspectRatio float64) *Scene { return NewSimpleScene(aspectRatio) },
	},
	{
		info: SceneInfo{
			ID:          "cover",
			Name:        "Cover",
			Description: "Random field of small spheres around three large ones",
			Type:        "builtin",
		},
		create: func(aspectRatio float64) *Scene { return NewCoverScene(aspectRatio, DefaultCoverSeed) },
	},
	{
		info: SceneInfo{
			ID:          "single",
			Name:        "Single Sphere",
			Description: "One diffuse sphere in front of the camera",
			Type:        "builtin",
		},
		create: func(aspectRatio float64) *Scene { return NewSingleSphereScene(aspectRatio) },
	},
}

// List returns the built-in scenes
func List() []SceneInfo {
	infos := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		infos[i] = b.info
	}
	return infos
}

// Create builds the scene with the given ID for an image of the given aspect ratio. IDs that
// name a scene file are loaded from disk; any other ID must be a built-in scene.
func Create(id string, aspectRatio float64) (*Scene, error) {
	if IsSceneFile(id) {
		return NewFileScene(id, aspectRatio)
	}
	for _, b := range builtins {
		if b.info.ID == id {
			return b.create(aspectRatio), nil
		}
	}
	return nil, fmt.Errorf("%q: %w", id, ErrUnknownScene)
}

// IsSceneFile reports whether path names a scene description file
func IsSceneFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

// ListSceneFiles scans dir for scene description files. A missing directory yields no scenes.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []SceneInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !IsSceneFile(entry.Name()) {
			continue
		}
		info, err := ParseSceneMetadata(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from the header comments of a scene file:
//
//	# Scene: Glass Marbles
//	# Description: Three marbles on a mirror
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     "file",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if value, ok := strings.CutPrefix(content, "Scene:"); ok {
			info.Name = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Description:"); ok {
			info.Description = strings.TrimSpace(value)
		}
	}

	return info, scanner.Err()
}

// titleCase converts a filename-style string to title case
// e.g., "glass-marbles" -> "Glass Marbles"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
