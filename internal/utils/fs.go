package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// UnpackDir is where bundled assets are extracted to.
var UnpackDir = "tmp"

// AssetsDir is an optional extra root given on the command line.
var AssetsDir string

var errFound = errors.New("found")

func searchRoots() []string {
	roots := []string{UnpackDir, "assets"}
	if AssetsDir != "" {
		roots = append(roots, AssetsDir)
	}
	return roots
}

// ResolveAssetPath returns the first existing location of relPath. The path
// itself is tried first, then every search root.
func ResolveAssetPath(relPath string) string {
	if relPath == "" {
		return ""
	}
	if _, err := os.Stat(relPath); err == nil {
		return relPath
	}

	for _, root := range searchRoots() {
		p := filepath.Join(root, relPath)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// FindAssetFile looks for name with any of the given extensions, falling back
// to a recursive walk of the search roots matched on the base name.
func FindAssetFile(name string, extensions []string) string {
	if name == "" {
		return ""
	}

	if p := ResolveAssetPath(name); p != "" {
		return p
	}

	cleanName := strings.TrimSuffix(name, filepath.Ext(name))
	for _, ext := range extensions {
		if p := ResolveAssetPath(cleanName + ext); p != "" {
			return p
		}
	}

	targetBase := filepath.Base(cleanName)
	var foundPath string
	for _, root := range searchRoots() {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			base := filepath.Base(path)
			ext := filepath.Ext(base)
			if strings.TrimSuffix(base, ext) != targetBase {
				return nil
			}
			for _, want := range extensions {
				if strings.EqualFold(ext, want) {
					foundPath = path
					return errFound
				}
			}
			return nil
		})
		if foundPath != "" {
			break
		}
	}

	return foundPath
}
