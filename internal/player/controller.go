// Package player owns the single active audio stream: station switching,
// play/pause, volume, and error recovery.
package player

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dlamsal/airwave/internal/domain"
)

// Backend starts an audio stream and hands back the live handle.
// Start blocks until playback is confirmed or fails.
type Backend interface {
	Start(ctx context.Context, streamURL string, volume float64) (Handle, error)
}

// Handle is an owned, live audio stream. Exactly one exists at a time;
// the controller stops it before acquiring the next.
type Handle interface {
	Pause() error
	Resume() error
	SetVolume(v float64) error
	Stop() error

	// Done is closed (with the terminal error, if any) when the stream
	// ends on its own.
	Done() <-chan error
}

// Controller is the playback state machine. All methods are safe for
// concurrent use; Play is asynchronous and later requests win over
// in-flight ones.
type Controller struct {
	backend Backend
	logger  *slog.Logger

	// onPlaying is invoked after each confirmed fresh stream start. It is
	// the seam through which play events reach the favorites and
	// recently-played stores.
	onPlaying func(domain.Station)

	mu         sync.Mutex
	state      State
	current    *domain.Station
	volume     float64
	handle     Handle
	generation uint64
	message    string
}

// NewController creates a controller with the given initial volume,
// clamped to [0,1].
func NewController(backend Backend, volume float64, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		backend: backend,
		logger:  logger,
		volume:  clampVolume(volume),
	}
}

// OnPlaying registers the play-event hook. Must be set before the first
// Play call.
func (c *Controller) OnPlaying(fn func(domain.Station)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPlaying = fn
}

// Status returns a snapshot of the controller.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{State: c.state, Volume: c.volume, Message: c.message}
	if c.current != nil {
		station := *c.current
		st.Station = &station
	}
	return st
}

// Play requests playback of a station. Switching stations stops the old
// stream before the new one starts. The call returns once the request is
// accepted; stream startup continues in the background, and if another
// Play lands in the meantime the newer request wins and this request's
// stream, should it come up late, is stopped and discarded.
func (c *Controller) Play(station domain.Station) {
	c.mu.Lock()

	// Same station, live stream: resume or keep playing.
	if c.current != nil && c.current.ID == station.ID && c.handle != nil {
		switch c.state {
		case StatePaused:
			if err := c.handle.Resume(); err == nil {
				c.state = StatePlaying
				c.message = ""
				c.mu.Unlock()
				return
			}
			// Resume failed; fall through to a fresh start.
		case StatePlaying, StateLoading:
			c.handle.SetVolume(c.volume)
			c.mu.Unlock()
			return
		}
	}

	// Stop-before-switch: release the old stream before acquiring a new one.
	if c.handle != nil {
		c.handle.Stop()
		c.handle = nil
	}

	c.generation++
	gen := c.generation
	st := station
	c.current = &st
	c.state = StateLoading
	c.message = ""
	volume := c.volume
	c.mu.Unlock()

	c.logger.Info("starting stream", "station", station.Name, "url", station.StreamURL)
	go c.startStream(gen, station, volume)
}

func (c *Controller) startStream(gen uint64, station domain.Station, volume float64) {
	handle, err := c.backend.Start(context.Background(), station.StreamURL, volume)

	c.mu.Lock()
	if gen != c.generation {
		// A newer Play overtook this start; its state owns the controller.
		c.mu.Unlock()
		if handle != nil {
			handle.Stop()
		}
		c.logger.Debug("discarding stale stream start", "station", station.Name)
		return
	}

	if err != nil {
		c.state = StateErrored
		c.message = playbackMessage(err)
		c.handle = nil
		c.mu.Unlock()
		c.logger.Error("stream start failed", "station", station.Name, "error", err)
		return
	}

	c.handle = handle
	c.state = StatePlaying
	hook := c.onPlaying
	c.mu.Unlock()

	go c.watchStream(gen, handle)

	if hook != nil {
		hook(station)
	}
}

// watchStream surfaces asynchronous stream death as an error state.
func (c *Controller) watchStream(gen uint64, handle Handle) {
	err := <-handle.Done()

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.handle != handle {
		return // superseded or deliberately stopped
	}

	c.handle = nil
	if err != nil {
		c.state = StateErrored
		c.message = playbackMessage(err)
		c.logger.Error("stream ended with error", "error", err)
	} else {
		c.state = StatePaused
	}
}

// Pause stops output. No-op unless currently playing.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePlaying || c.handle == nil {
		return
	}
	if err := c.handle.Pause(); err != nil {
		c.logger.Error("pause failed", "error", err)
		return
	}
	c.state = StatePaused
}

// TogglePlay dispatches to Play or Pause based on the current state.
// No-op without a current station.
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return
	}
	station := *c.current
	playing := c.state == StatePlaying
	c.mu.Unlock()

	if playing {
		c.Pause()
	} else {
		c.Play(station)
	}
}

// Stop tears down the stream and returns to idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	if c.handle != nil {
		c.handle.Stop()
		c.handle = nil
	}
	c.current = nil
	c.state = StateIdle
	c.message = ""
}

// AdjustVolume clamps v to [0,1], applies it to the live stream if one
// exists, and keeps it as the session volume for the next stream.
func (c *Controller) AdjustVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.volume = clampVolume(v)
	if c.handle != nil {
		if err := c.handle.SetVolume(c.volume); err != nil {
			c.logger.Error("volume change failed", "error", err)
		}
	}
}

// Volume returns the session volume.
func (c *Controller) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// === Station skipping over an externally supplied ordered list ===

// HasPrevious reports whether a previous station exists in the list.
func (c *Controller) HasPrevious(stations []domain.Station) bool {
	return c.currentIndex(stations) > 0
}

// HasNext reports whether a next station exists in the list.
func (c *Controller) HasNext(stations []domain.Station) bool {
	idx := c.currentIndex(stations)
	return idx >= 0 && idx < len(stations)-1
}

// Previous plays the station before the current one. No-op at the first
// index or when the current station is not in the list.
func (c *Controller) Previous(stations []domain.Station) {
	if idx := c.currentIndex(stations); idx > 0 {
		c.Play(stations[idx-1])
	}
}

// Next plays the station after the current one. No-op at the last index
// or when the current station is not in the list.
func (c *Controller) Next(stations []domain.Station) {
	if idx := c.currentIndex(stations); idx >= 0 && idx < len(stations)-1 {
		c.Play(stations[idx+1])
	}
}

func (c *Controller) currentIndex(stations []domain.Station) int {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()

	if current == nil {
		return -1
	}
	for i, st := range stations {
		if st.ID == current.ID {
			return i
		}
	}
	return -1
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// playbackMessage translates a stream error into the short actionable
// message shown to the user.
func playbackMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrStreamUnreachable):
		return "Stream is unreachable. Check your connection or try another station."
	case errors.Is(err, domain.ErrPlaybackRejected):
		return "Playback was rejected. Try another station."
	default:
		return "Unable to play this station. Please try another one."
	}
}
