package preflight

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"serenade/internal/config"
)

// CheckTTSFromConfig evaluates provider status from config and connectivity.
func CheckTTSFromConfig(cfg *config.Config) Result {
	const name = "TTS provider"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.TTS.BaseURL) == "" {
		return Result{Name: name, Detail: "Missing base URL"}
	}
	if strings.TrimSpace(cfg.TTS.VoiceID) == "" {
		return Result{Name: name, Detail: "Missing voice"}
	}
	return CheckTTS(context.Background(), cfg)
}

// AssetProbe reports one rendered asset's inspection snapshot.
type AssetProbe struct {
	Probed   bool
	Path     string
	Duration time.Duration
}

// ProbeAsset inspects a rendered asset with ffprobe. Probing is best
// effort: a missing ffprobe or an unreadable file yields an unprobed
// result, never an error.
func ProbeAsset(ffprobeBinary, path string) AssetProbe {
	probe := AssetProbe{Path: path}

	binary := strings.TrimSpace(ffprobeBinary)
	if binary == "" {
		return probe
	}
	if _, err := exec.LookPath(binary); err != nil {
		return probe
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return probe
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return probe
	}
	probe.Probed = true
	probe.Duration = time.Duration(seconds * float64(time.Second))
	return probe
}

// Detail renders a display-friendly summary for status UIs.
func (p AssetProbe) Detail() string {
	name := filepath.Base(p.Path)
	if !p.Probed {
		return fmt.Sprintf("%s (not inspected)", name)
	}
	return fmt.Sprintf("%s (%s)", name, p.Duration.Round(time.Second))
}
