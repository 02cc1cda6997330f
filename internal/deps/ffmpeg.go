package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveFFmpegPath returns the ffmpeg command to execute. A configured
// path wins when it resolves; otherwise "ffmpeg" is left for PATH lookup
// at execution time.
func ResolveFFmpegPath(configured string) string {
	configured = strings.TrimSpace(configured)
	if configured == "" {
		return "ffmpeg"
	}
	return configured
}

// ResolveFFprobePath locates ffprobe. Distribution packages install it
// next to ffmpeg, so a resolvable configured ffmpeg binary is checked
// for an ffprobe sibling first, then PATH.
func ResolveFFprobePath(ffmpegBinary string) string {
	name := executableName("ffprobe")

	ffmpeg := strings.TrimSpace(ffmpegBinary)
	if ffmpeg != "" {
		if resolved, err := exec.LookPath(ffmpeg); err == nil {
			candidate := filepath.Join(filepath.Dir(resolved), name)
			if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
				return candidate
			}
		}
	}

	if probePath, err := exec.LookPath(name); err == nil {
		return probePath
	}
	return name
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
