package cidtool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Client defines CID computation behaviour.
type Client interface {
	Compute(ctx context.Context, path string) (string, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithVersion selects the CID version passed to the tool.
func WithVersion(version int) Option {
	return func(c *CLI) {
		if version >= 0 {
			c.version = version
		}
	}
}

// CLI wraps the external cid command-line tool.
type CLI struct {
	binary  string
	version int
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "cid", version: 0}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Compute invokes the cid tool for a single file and returns the identifier
// printed on stdout. A nonzero exit is an error carrying the offending path
// and whatever the tool wrote to stderr.
func (c *CLI) Compute(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("file path required")
	}

	args := []string{fmt.Sprintf("--cid-version=%d", c.version), path}
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("could not get CIDv%d of file %s:\n\t%s", c.version, path, detail)
	}

	cid := strings.TrimSpace(stdout.String())
	if cid == "" {
		return "", fmt.Errorf("cid tool returned no output for %s", path)
	}
	return cid, nil
}

var _ Client = (*CLI)(nil)
