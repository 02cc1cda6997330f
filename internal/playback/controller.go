// Package playback models the client-side playback session over a year's
// manifest. The controller is a pure state machine: it never touches audio
// devices, it only decides which track is current and whether it should be
// heard. Callers observe state through Snapshot and drive transitions with
// the control methods.
package playback

import (
	"sync"

	"serenade/internal/notes"
	"serenade/internal/services"
)

// State is an immutable snapshot of the playback session.
type State struct {
	IsPlaying    bool
	CurrentIndex int
	AutoPlay     bool
	Volume       float64
	IsMuted      bool
}

// Controller sequences playable manifest entries. Entries without audio
// are excluded from the playlist up front so every index is playable.
type Controller struct {
	mu       sync.Mutex
	playlist []notes.ManifestEntry
	state    State
}

// NewController builds a controller over the playable entries of manifest.
// Volume starts at full, autoplay on, stopped at the first track.
func NewController(manifest notes.Manifest) *Controller {
	playlist := make([]notes.ManifestEntry, 0, len(manifest.Entries))
	for _, entry := range manifest.Entries {
		if entry.HasAudio && entry.Filename != nil {
			playlist = append(playlist, entry)
		}
	}
	return &Controller{
		playlist: playlist,
		state: State{
			AutoPlay: true,
			Volume:   1.0,
		},
	}
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Len reports the playlist length.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.playlist)
}

// Current returns the entry at the current index, or false when the
// playlist is empty.
func (c *Controller) Current() (notes.ManifestEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.playlist) == 0 {
		return notes.ManifestEntry{}, false
	}
	return c.playlist[c.state.CurrentIndex], true
}

// Play starts playback at the current track.
func (c *Controller) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.playlist) == 0 {
		return services.Wrap(services.ErrValidation, "playback", "play", "playlist is empty", nil)
	}
	c.state.IsPlaying = true
	return nil
}

// PlayAt starts playback at index, clamped into the playlist bounds.
func (c *Controller) PlayAt(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.playlist) == 0 {
		return services.Wrap(services.ErrValidation, "playback", "play", "playlist is empty", nil)
	}
	c.state.CurrentIndex = clamp(index, 0, len(c.playlist)-1)
	c.state.IsPlaying = true
	return nil
}

// Pause halts playback without moving the current index.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsPlaying = false
}

// Next steps forward one track, clamped at the last. With autoplay the
// step starts playback.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step(1)
}

// Previous steps back one track, clamped at the first. With autoplay the
// step starts playback.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step(-1)
}

// TrackEnded is the end-of-track signal. With autoplay the session
// advances to the next track; any non-advancing track end, autoplay off
// or already at the last track, stops the session and resets it to the
// first track.
func (c *Controller) TrackEnded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.AutoPlay {
		c.state.IsPlaying = false
		c.state.CurrentIndex = 0
		return
	}
	c.advance()
}

// SetAutoPlay toggles automatic advance at track end.
func (c *Controller) SetAutoPlay(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.AutoPlay = enabled
}

// SetVolume sets playback volume, clamped to [0, 1]. Zero volume mutes;
// any positive volume unmutes.
func (c *Controller) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c.state.Volume = v
	c.state.IsMuted = v == 0
}

// SetMuted sets the mute flag without losing the volume level.
func (c *Controller) SetMuted(muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsMuted = muted
}

func (c *Controller) step(delta int) {
	if len(c.playlist) == 0 {
		return
	}
	c.state.CurrentIndex = clamp(c.state.CurrentIndex+delta, 0, len(c.playlist)-1)
	if c.state.AutoPlay {
		c.state.IsPlaying = true
	}
}

func (c *Controller) advance() {
	if len(c.playlist) == 0 {
		return
	}
	if c.state.CurrentIndex+1 >= len(c.playlist) {
		c.state.IsPlaying = false
		c.state.CurrentIndex = 0
		return
	}
	c.state.CurrentIndex++
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
