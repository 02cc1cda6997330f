// Package ffmpeg wraps the ffmpeg binary for the raw-to-distribution
// audio transcode.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// TranscodeToMP3 converts a raw WAV asset to an MP3 at the given bitrate
// (e.g. "96k"). The source channel layout is preserved. On failure any
// partially-written destination is removed so downstream existence checks
// never observe a truncated distribution asset.
func TranscodeToMP3(ctx context.Context, ffmpegBinary, source, dest, bitrate string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-c:a", "libmp3lame",
		"-b:a", bitrate,
		dest,
	}
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.Remove(dest)
		return fmt.Errorf("ffmpeg transcode: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
