package executable

import (
	"context"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Invocation describes one launch of an external tool. It is not modified
// while a run is in progress.
type Invocation struct {
	Path string
	Args []string
	Dir  string            // working directory, empty = current
	Env  map[string]string // overrides merged into the parent environment
}

// CommandLine renders the invocation for display.
func (inv Invocation) CommandLine() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, inv.Path)
	parts = append(parts, inv.Args...)
	return strings.Join(parts, " ")
}

// environ returns the parent environment with the overrides applied, or nil
// when there are none so that exec.Cmd inherits the environment unchanged.
func (inv Invocation) environ() []string {
	if len(inv.Env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(inv.Env))
	for k := range inv.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := os.Environ()
	for _, k := range keys {
		env = setEnv(env, k, inv.Env[k])
	}
	return env
}

func (inv Invocation) command(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = inv.environ()
	return cmd
}

// setEnv sets or replaces an environment variable in a slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
