package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrUnknownScene is returned by Create for an ID that names no scene
var ErrUnknownScene = errors.New("unknown scene")

const (
	builtInGroup   = "Built-in Scenes"
	sceneFileGroup = "Scene Files"
	fileIDPrefix   = "file:"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type builtIn struct {
	info   SceneInfo
	create func(...CameraConfig) (*Scene, error)
}

var builtIns = []builtIn{
	{SceneInfo{ID: "default", Name: "Default World", Description: "Two nested spheres under a single point light"}, NewDefaultScene},
	{SceneInfo{ID: "spheres", Name: "Spheres", Description: "Striped spheres resting on a striped floor"}, NewSpheresScene},
	{SceneInfo{ID: "transparent", Name: "Transparent", Description: "Hollow glass sphere in front of a checkered wall"}, NewTransparentScene},
	{SceneInfo{ID: "cubes", Name: "Cubes", Description: "Glass cube with an air bubble on a reflective floor"}, NewCubesScene},
	{SceneInfo{ID: "cover", Name: "Cover", Description: "Matte cubes stacked around a glassy sphere"}, NewCoverScene},
	{SceneInfo{ID: "cylinders", Name: "Cylinders and Cones", Description: "Open and capped cylinders and cones"}, NewCylindersScene},
	{SceneInfo{ID: "mirrors", Name: "Mirrors", Description: "A sphere between two facing mirrors"}, NewMirrorsScene},
}

// ListScenes returns the IDs of the built-in scenes
func ListScenes() []string {
	ids := make([]string, len(builtIns))
	for i, b := range builtIns {
		ids[i] = b.info.ID
	}
	return ids
}

// Create builds the scene with the given ID. IDs are built-in scene names,
// "file:" followed by a path, or a path ending in .json.
func Create(id string, logger core.Logger, cameraOverrides ...CameraConfig) (*Scene, error) {
	for _, b := range builtIns {
		if b.info.ID == id {
			return b.create(cameraOverrides...)
		}
	}
	if path, ok := strings.CutPrefix(id, fileIDPrefix); ok {
		return LoadFile(path, logger, cameraOverrides...)
	}
	if strings.EqualFold(filepath.Ext(id), ".json") {
		return LoadFile(id, logger, cameraOverrides...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// ListSceneFiles scans the scenes directory and returns discovered scene files
func ListSceneFiles(logger core.Logger) ([]SceneInfo, error) {
	// Try different possible paths for scenes directory
	possiblePaths := []string{"scenes", "../scenes"}
	var scenesDir string

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			scenesDir = path
			break
		}
	}

	if scenesDir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Skip the file but keep listing the others
			if logger != nil {
				logger.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			}
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a scene file.
// Missing fields fall back to values derived from the file name.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          fileIDPrefix + filePath,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       sceneFileGroup,
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return sceneInfo, fmt.Errorf("decode %s: %w", filename, err)
	}

	if header.Name != "" {
		sceneInfo.Name = header.Name
		sceneInfo.DisplayName = header.Name
	}
	sceneInfo.Description = header.Description
	if header.Group != "" {
		sceneInfo.Group = header.Group
	}
	return sceneInfo, nil
}

// ListAllScenes returns both built-in scenes and scene files, grouped by category
func ListAllScenes(logger core.Logger) (ScenesResponse, error) {
	var response ScenesResponse

	allScenes := make([]SceneInfo, 0, len(builtIns))
	for _, b := range builtIns {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtInGroup
		info.Type = "builtin"
		allScenes = append(allScenes, info)
	}

	files, err := ListSceneFiles(logger)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}
	allScenes = append(allScenes, files...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtInGroup,
		Scenes: groupMap[builtInGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-spheres" -> "Glass Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
