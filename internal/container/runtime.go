// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs one-shot extraction tools inside docker or podman.
package container

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// maxStderr bounds how much tool stderr is quoted in an error.
const maxStderr = 512

// Runtime is a container engine able to run a filter-style tool image:
// input on stdin, result on stdout.
type Runtime interface {
	// Name returns the engine binary, "docker" or "podman".
	Name() string

	// Available reports whether the engine is installed and its daemon or
	// service answers.
	Available() bool

	// ImageExists returns nil when image is present locally.
	ImageExists(image string) error

	// Run starts a throwaway, network-less container from image with args,
	// feeding stdin to the tool and copying its output to stdout.
	Run(image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// streams carries the standard streams of one command. Nil fields are
// discarded or empty.
type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// commander runs host commands. Tests replace it with a recording fake.
type commander interface {
	lookPath(file string) (string, error)
	run(name string, args []string, s streams) error
}

type hostCommander struct{}

func (hostCommander) lookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (hostCommander) run(name string, args []string, s streams) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = s.in
	cmd.Stdout = s.out
	cmd.Stderr = s.errOut
	return cmd.Run()
}

// engine is a Runtime backed by one CLI binary.
type engine struct {
	bin         string
	versionArgs []string
	imageCheck  []string
	cmd         commander
}

// engines lists the supported binaries in preference order.
func engines(cmd commander) []*engine {
	return []*engine{
		{bin: "docker", versionArgs: []string{"version"}, imageCheck: []string{"image", "inspect"}, cmd: cmd},
		{bin: "podman", versionArgs: []string{"version"}, imageCheck: []string{"image", "exists"}, cmd: cmd},
	}
}

func (e *engine) Name() string { return e.bin }

func (e *engine) Available() bool {
	if _, err := e.cmd.lookPath(e.bin); err != nil {
		return false
	}
	return e.cmd.run(e.bin, e.versionArgs, streams{}) == nil
}

func (e *engine) ImageExists(image string) error {
	args := append(append([]string(nil), e.imageCheck...), image)
	if err := e.cmd.run(e.bin, args, streams{}); err != nil {
		return fmt.Errorf("%s has no local image %s: %w", e.bin, image, err)
	}
	return nil
}

func (e *engine) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	full := append([]string{"run", "--rm", "-i", "--network", "none", image}, args...)

	var errOut bytes.Buffer
	err := e.cmd.run(e.bin, full, streams{in: stdin, out: stdout, errOut: &errOut})
	if err == nil {
		return nil
	}
	if msg := tail(errOut.String(), maxStderr); msg != "" {
		return fmt.Errorf("running %s in %s: %w: %s", image, e.bin, err, msg)
	}
	return fmt.Errorf("running %s in %s: %w", image, e.bin, err)
}

// tail trims s and keeps at most its last n bytes.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

// DetectRuntime returns the first working engine, docker before podman.
func DetectRuntime() (Runtime, error) {
	return detect(hostCommander{})
}

func detect(cmd commander) (Runtime, error) {
	var names []string
	for _, e := range engines(cmd) {
		if e.Available() {
			return e, nil
		}
		names = append(names, e.bin)
	}
	return nil, fmt.Errorf("no container runtime available: tried %s", strings.Join(names, ", "))
}
