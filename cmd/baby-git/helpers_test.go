package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bromaniac/baby-git/internal/env"
)

// runCmd executes the root command against dir and returns what it
// wrote on both streams
func runCmd(t *testing.T, dir string, envKV []string, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	root := newRootCmd(env.NewFromKVList(envKV))

	outBuf, errBuf := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(outBuf)
	root.SetErr(errBuf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"-C", dir}, args...))

	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}
