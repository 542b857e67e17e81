// Package interpreter locates a Python interpreter on PATH and asks it for
// its version.
package interpreter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"pybootstrap/internal/version"
)

var (
	// ErrNotFound means none of the candidate executables is on PATH.
	ErrNotFound = errors.New("python interpreter not found")
	// ErrNoVersion means the interpreter ran but did not report a usable version.
	ErrNoVersion = errors.New("python interpreter reported no version")
)

// probeScript prints "major.minor" and the executable path on two lines.
// The %-format keeps it runnable on very old interpreters so that they fail
// the version comparison instead of the probe.
const probeScript = `import sys; print("%d.%d" % tuple(sys.version_info[:2])); print(sys.executable)`

// Interpreter is what a probe learned about the interpreter.
type Interpreter struct {
	// Version is the dotted "major.minor" pair.
	Version string
	// Executable is the path the interpreter reports for itself, falling
	// back to the PATH lookup result.
	Executable string
}

// Prober discovers the interpreter used by the bootstrap.
type Prober interface {
	Probe(ctx context.Context) (Interpreter, error)
}

// CommandProber runs the first candidate found on PATH.
type CommandProber struct {
	Candidates []string

	lookPath func(string) (string, error)
	output   func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewCommandProber returns a prober for the given executable names.
// With no candidates it tries "python3" then "python".
func NewCommandProber(candidates ...string) *CommandProber {
	if len(candidates) == 0 {
		candidates = []string{"python3", "python"}
	}
	return &CommandProber{
		Candidates: candidates,
		lookPath:   exec.LookPath,
		output:     commandOutput,
	}
}

func commandOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%w: %s", err, msg)
		}
		return out, err
	}
	return out, nil
}

// Probe implements Prober.
func (p *CommandProber) Probe(ctx context.Context) (Interpreter, error) {
	path, err := p.find()
	if err != nil {
		return Interpreter{}, err
	}

	out, err := p.output(ctx, path, "-c", probeScript)
	if err != nil {
		return Interpreter{}, fmt.Errorf("%w: running %s: %v", ErrNoVersion, path, err)
	}

	info, err := ParseProbeOutput(string(out))
	if err != nil {
		return Interpreter{}, fmt.Errorf("%s: %w", path, err)
	}
	if info.Executable == "" {
		info.Executable = path
	}
	return info, nil
}

func (p *CommandProber) find() (string, error) {
	for _, name := range p.Candidates {
		if path, err := p.lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w (tried %s)", ErrNotFound, strings.Join(p.Candidates, ", "))
}

// ParseProbeOutput reads the probe script's output. The first non-empty line
// must be a dotted version; the second, when present, is the executable path.
// A "Python 3.11.4" banner is accepted too.
func ParseProbeOutput(out string) (Interpreter, error) {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Interpreter{}, ErrNoVersion
	}

	raw := strings.TrimPrefix(lines[0], "Python ")
	v, err := version.Parse(raw)
	if err != nil {
		return Interpreter{}, fmt.Errorf("%w: %v", ErrNoVersion, err)
	}

	info := Interpreter{Version: v.MajorMinor()}
	if len(lines) > 1 {
		info.Executable = lines[1]
	}
	return info, nil
}
