package player

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/dlamsal/airwave/internal/domain"
)

const (
	// socketReadyTimeout bounds how long we wait for mpv to bring up its
	// IPC socket before declaring the stream unreachable.
	socketReadyTimeout = 10 * time.Second
	socketPollInterval = 100 * time.Millisecond
)

// MPVBackend runs streams through an external mpv process, controlled
// over mpv's JSON IPC socket. mpv is the one widely available player that
// allows pausing and live volume changes on a running stream.
type MPVBackend struct {
	command string
	args    []string
	logger  *slog.Logger
}

// NewMPVBackend creates a backend using the configured player command, or
// "mpv" from PATH when empty.
func NewMPVBackend(command string, args []string, logger *slog.Logger) *MPVBackend {
	if command == "" {
		command = "mpv"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MPVBackend{command: command, args: args, logger: logger}
}

// Start launches mpv for the stream URL and waits until the IPC socket
// answers, which confirms the process came up and accepted the stream.
func (b *MPVBackend) Start(ctx context.Context, streamURL string, volume float64) (Handle, error) {
	if _, err := exec.LookPath(b.command); err != nil {
		return nil, fmt.Errorf("%w: player %q not found", domain.ErrPlaybackRejected, b.command)
	}

	socketPath := filepath.Join(os.TempDir(), fmt.Sprintf("airwave-mpv-%d.sock", time.Now().UnixNano()))

	args := []string{
		"--no-video",
		"--really-quiet",
		"--input-ipc-server=" + socketPath,
		fmt.Sprintf("--volume=%.0f", volume*100),
	}
	args = append(args, b.args...)
	args = append(args, streamURL)

	cmd := exec.Command(b.command, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlaybackRejected, err)
	}

	b.logger.Debug("mpv started", "pid", cmd.Process.Pid, "socket", socketPath)

	h := &mpvHandle{
		cmd:        cmd,
		socketPath: socketPath,
		logger:     b.logger,
		done:       make(chan error, 1),
	}

	// The process reaper must run before awaitSocket so an early exit is
	// observed as a startup failure rather than a hang.
	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
		os.Remove(socketPath)
	}()

	if err := h.awaitSocket(ctx, exited); err != nil {
		h.kill()
		return nil, err
	}

	go h.reap(exited)
	return h, nil
}

// mpvHandle is a live mpv process plus its IPC connection.
type mpvHandle struct {
	cmd        *exec.Cmd
	socketPath string
	logger     *slog.Logger

	mu      sync.Mutex
	conn    net.Conn
	stopped bool

	done chan error
}

// awaitSocket polls for the IPC socket. mpv only creates it once it is up
// and loading the stream; a process exit before that means the stream was
// refused or unreachable.
func (h *mpvHandle) awaitSocket(ctx context.Context, exited <-chan error) error {
	deadline := time.Now().Add(socketReadyTimeout)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-exited:
			// Exited before the socket came up: mpv gave up on the stream.
			return fmt.Errorf("%w: player exited during startup: %v", domain.ErrStreamUnreachable, err)
		default:
		}

		if conn, err := net.Dial("unix", h.socketPath); err == nil {
			h.mu.Lock()
			h.conn = conn
			h.mu.Unlock()
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("%w: player did not come up", domain.ErrStreamUnreachable)
		}
		time.Sleep(socketPollInterval)
	}
}

// reap forwards the eventual process exit to Done. A stop requested
// through the handle is a clean end, not an error.
func (h *mpvHandle) reap(exited <-chan error) {
	err := <-exited

	h.mu.Lock()
	stopped := h.stopped
	if h.conn != nil {
		h.conn.Close()
		h.conn = nil
	}
	h.mu.Unlock()

	if stopped || err == nil {
		h.done <- nil
	} else {
		h.done <- fmt.Errorf("%w: player exited: %v", domain.ErrStreamUnreachable, err)
	}
	close(h.done)
}

// command sends a single mpv JSON IPC command.
func (h *mpvHandle) command(parts ...interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conn == nil {
		return fmt.Errorf("player connection closed")
	}

	payload := `{"command":[`
	for i, p := range parts {
		if i > 0 {
			payload += ","
		}
		switch v := p.(type) {
		case string:
			payload += fmt.Sprintf("%q", v)
		case bool:
			payload += fmt.Sprintf("%t", v)
		case float64:
			payload += fmt.Sprintf("%g", v)
		default:
			payload += fmt.Sprintf("%v", v)
		}
	}
	payload += `]}` + "\n"

	if _, err := h.conn.Write([]byte(payload)); err != nil {
		return fmt.Errorf("ipc write failed: %w", err)
	}
	return nil
}

func (h *mpvHandle) Pause() error {
	return h.command("set_property", "pause", true)
}

func (h *mpvHandle) Resume() error {
	return h.command("set_property", "pause", false)
}

func (h *mpvHandle) SetVolume(v float64) error {
	return h.command("set_property", "volume", v*100)
}

func (h *mpvHandle) Stop() error {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()
	return h.kill()
}

func (h *mpvHandle) Done() <-chan error {
	return h.done
}

func (h *mpvHandle) kill() error {
	if h.cmd.Process == nil {
		return nil
	}
	if err := h.cmd.Process.Kill(); err != nil && !h.processDone() {
		return fmt.Errorf("failed to stop player: %w", err)
	}
	return nil
}

func (h *mpvHandle) processDone() bool {
	return h.cmd.ProcessState != nil && h.cmd.ProcessState.Exited()
}
