//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

var artExts = []string{".jpg", ".jpeg", ".png"}

// coverNames lists shared folder art names, checked after per-file art.
var coverNames = []string{"cover", "folder", "front"}

// findArt returns an image next to the audio file: one sharing its base
// name first, then folder art. Empty when none exists.
func findArt(audioPath string) string {
	dir := filepath.Dir(audioPath)
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))

	for _, name := range append([]string{base}, coverNames...) {
		for _, ext := range artExts {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
