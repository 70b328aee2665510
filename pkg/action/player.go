package action

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// playerCommands lists known command-line players in preference order, with
// the arguments placed before the file name.
var playerCommands = []struct {
	name string
	args []string
}{
	{"paplay", nil},
	{"aplay", []string{"-q"}},
	{"afplay", nil},
}

// ExecPlayer plays the click WAV through an external player, one process
// per playback.
type ExecPlayer struct {
	command string
	args    []string
	file    string

	// tempDir is set when the player created its own sound directory.
	tempDir string
}

// NewExecPlayer writes the click sound into dir and selects the first
// player found on PATH. An empty dir uses a new temporary directory, which
// Close removes.
func NewExecPlayer(dir string) (*ExecPlayer, error) {
	return newExecPlayer(dir, exec.LookPath)
}

func newExecPlayer(dir string, lookPath func(string) (string, error)) (*ExecPlayer, error) {
	p := &ExecPlayer{}
	for _, c := range playerCommands {
		if path, err := lookPath(c.name); err == nil {
			p.command, p.args = path, c.args
			break
		}
	}
	if p.command == "" {
		return nil, ErrNoPlayer
	}

	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "hzsync-click-")
		if err != nil {
			return nil, fmt.Errorf("create sound dir: %w", err)
		}
		p.tempDir = dir
	}
	p.file = filepath.Join(dir, "click.wav")
	if err := os.WriteFile(p.file, ClickWAV(), 0644); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("write click sound: %w", err)
	}
	return p, nil
}

// Close removes the temporary sound directory, if the player created one.
// Playbacks still running may fail once the file is gone.
func (p *ExecPlayer) Close() error {
	if p.tempDir == "" {
		return nil
	}
	dir := p.tempDir
	p.tempDir = ""
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove sound dir: %w", err)
	}
	return nil
}

// Command returns the selected player executable.
func (p *ExecPlayer) Command() string {
	return p.command
}

// File returns the path of the click WAV.
func (p *ExecPlayer) File() string {
	return p.file
}

// Play starts the player process. The process is killed when ctx is done.
func (p *ExecPlayer) Play(ctx context.Context) (Handle, error) {
	args := append(append([]string{}, p.args...), p.file)
	cmd := exec.CommandContext(ctx, p.command, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", filepath.Base(p.command), err)
	}

	h := &procHandle{cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(h.done)
	}()
	return h, nil
}

type procHandle struct {
	cmd  *exec.Cmd
	done chan struct{}
	once sync.Once
}

func (h *procHandle) Done() <-chan struct{} {
	return h.done
}

func (h *procHandle) Stop() error {
	var err error
	h.once.Do(func() {
		select {
		case <-h.done:
			return
		default:
		}
		if h.cmd.Process != nil {
			err = h.cmd.Process.Kill()
		}
	})
	if err == os.ErrProcessDone {
		return nil
	}
	return err
}

var _ Player = (*ExecPlayer)(nil)
