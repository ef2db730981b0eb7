// Package clip copies short texts, such as panel deep links, out of the
// terminal host.
package clip

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	atotto "github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// Method is the mechanism that made the text available.
type Method string

const (
	MethodNative Method = "native"
	MethodOSC52  Method = "osc52"
	// MethodFile means no clipboard was reachable and the text was written
	// to a temp file instead.
	MethodFile Method = "file"
)

// Result describes a completed copy.
type Result struct {
	Method   Method
	FilePath string
}

// Describe returns a one-line status for the host.
func (r Result) Describe() string {
	switch r.Method {
	case MethodFile:
		return "link saved to " + r.FilePath
	case MethodOSC52:
		return "link copied (terminal clipboard)"
	default:
		return "link copied"
	}
}

// Copier tries each backend in order and falls back to a temp file.
type Copier struct {
	Native  func(text string) error
	OSC52   func(text string) error
	TempDir string
}

// New returns a copier using the system clipboard, then OSC52.
func New() *Copier {
	return &Copier{
		Native: atotto.WriteAll,
		OSC52:  writeOSC52,
	}
}

// Copy copies text with the first backend that accepts it.
func (c *Copier) Copy(text string) (Result, error) {
	if text == "" {
		return Result{}, errors.New("nothing to copy")
	}
	if c.Native != nil && c.Native(text) == nil {
		return Result{Method: MethodNative}, nil
	}
	if c.OSC52 != nil && c.OSC52(text) == nil {
		return Result{Method: MethodOSC52}, nil
	}

	path, err := c.writeTempFile(text)
	if err != nil {
		return Result{}, fmt.Errorf("copying text: %w", err)
	}
	return Result{Method: MethodFile, FilePath: path}, nil
}

// Copy copies text with the default copier.
func Copy(text string) (Result, error) {
	return New().Copy(text)
}

// Terminals silently drop oversized OSC52 payloads.
const osc52LimitBytes = 100_000

func writeOSC52(text string) error {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return errors.New("stderr is not a terminal")
	}
	if len(text) > osc52LimitBytes {
		return fmt.Errorf("text too large for OSC52 (%d bytes)", len(text))
	}

	seq := osc52.New(text).Limit(osc52LimitBytes)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case os.Getenv("STY") != "":
		seq = seq.Screen()
	}
	// stdout belongs to the bubbletea renderer
	_, err := seq.WriteTo(os.Stderr)
	return err
}

func (c *Copier) writeTempFile(text string) (string, error) {
	f, err := os.CreateTemp(c.TempDir, "hypertabs-link-*.txt")
	if err != nil {
		return "", err
	}
	path := filepath.Clean(f.Name())

	if _, err := f.WriteString(text + "\n"); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}
