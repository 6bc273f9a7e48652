// Package capture provides a scoped region that records text written to
// the process stdout and stderr streams while a call runs. The region is
// a paired acquire/release primitive: Start swaps the streams for pipes
// and Release restores them, returning everything captured. Do wraps a
// function call in a region with deferred release, so the original
// streams come back even when the wrapped call panics.
package capture

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Captured holds the text written to each stream while a region was open.
type Captured struct {
	Stdout string
	Stderr string
}

// Region is an open capture region. It must be released exactly once.
type Region struct {
	origOut  *os.File
	origErr  *os.File
	outW     *os.File
	errW     *os.File
	outCh    chan string
	errCh    chan string
	released bool
}

// Start opens a capture region, redirecting os.Stdout and os.Stderr
// into pipes that are drained concurrently.
func Start() (*Region, error) {
	outR, outW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("capture stdout: %w", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		outR.Close()
		outW.Close()
		return nil, fmt.Errorf("capture stderr: %w", err)
	}

	r := &Region{
		origOut: os.Stdout,
		origErr: os.Stderr,
		outW:    outW,
		errW:    errW,
		outCh:   make(chan string, 1),
		errCh:   make(chan string, 1),
	}
	os.Stdout = outW
	os.Stderr = errW
	go drain(outR, r.outCh)
	go drain(errR, r.errCh)
	return r, nil
}

// Release restores the original streams and returns everything captured.
// Calling Release more than once returns empty text.
func (r *Region) Release() Captured {
	if r.released {
		return Captured{}
	}
	r.released = true

	os.Stdout = r.origOut
	os.Stderr = r.origErr
	r.outW.Close()
	r.errW.Close()
	return Captured{Stdout: <-r.outCh, Stderr: <-r.errCh}
}

// Do runs fn inside a capture region. The original streams are restored
// via deferred release, so restoration happens even when fn panics; the
// panic then continues to propagate.
func Do(fn func()) (captured Captured, err error) {
	region, err := Start()
	if err != nil {
		return Captured{}, err
	}
	defer func() {
		captured = region.Release()
	}()
	fn()
	return captured, nil
}

func drain(r *os.File, ch chan<- string) {
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r) // a closed write end still yields what was written
	r.Close()
	ch <- buf.String()
}
