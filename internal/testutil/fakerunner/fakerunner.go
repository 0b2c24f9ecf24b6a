// Package fakerunner provides a fake implementation of execx.Runner for testing.
package fakerunner

import (
	"context"
	"fmt"
	"strings"
)

// Runner is a fake execx.Runner that records calls and returns canned results.
type Runner struct {
	outputs map[string][]byte
	errors  map[string]error
	calls   []Call
}

// Call is one captured command execution.
type Call struct {
	Name string
	Args []string
}

// New creates a new fake runner.
func New() *Runner {
	return &Runner{
		outputs: make(map[string][]byte),
		errors:  make(map[string]error),
		calls:   []Call{},
	}
}

// SetOutput sets the combined output returned for a command line.
func (r *Runner) SetOutput(name string, args []string, output []byte) {
	r.outputs[r.makeKey(name, args)] = output
}

// SetError sets the error returned for a command line.
// Output registered with SetOutput is returned alongside it.
func (r *Runner) SetError(name string, args []string, err error) {
	r.errors[r.makeKey(name, args)] = err
}

// CombinedOutput implements execx.Runner.
func (r *Runner) CombinedOutput(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, Call{Name: name, Args: args})

	key := r.makeKey(name, args)
	return r.outputs[key], r.errors[key]
}

// Calls returns all captured calls in order.
func (r *Runner) Calls() []Call {
	return r.calls
}

// Reset clears all stored outputs, errors, and calls.
func (r *Runner) Reset() {
	r.outputs = make(map[string][]byte)
	r.errors = make(map[string]error)
	r.calls = []Call{}
}

func (r *Runner) makeKey(name string, args []string) string {
	return fmt.Sprintf("%s %s", name, strings.Join(args, " "))
}
