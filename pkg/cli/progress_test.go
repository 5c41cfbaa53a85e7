package cli

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestSimpleProgressLines(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "columns")

	progress.Start(4)
	progress.Update(2)
	progress.Finish()

	want := "2/4 columns\n4/4 columns\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestSimpleProgressBar(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := &SimpleProgress{writer: buf, unit: "columns", redraw: true}

	progress.Start(2)
	progress.Update(1)
	progress.Finish()

	output := buf.String()
	if !strings.Contains(output, "\r[") {
		t.Errorf("output %q is not redrawn in place", output)
	}
	if !strings.HasSuffix(output, "2/2 columns\n") {
		t.Errorf("output %q does not end complete", output)
	}
}

func TestSimpleProgressNeverBackwards(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "columns")

	progress.Start(3)
	progress.Update(2)
	progress.Update(1)
	progress.Update(9)
	progress.Finish()

	want := "2/3 columns\n3/3 columns\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestSimpleProgressZeroTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "columns")

	progress.Start(0)
	progress.Update(0)
	progress.Finish()

	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}

func TestSimpleProgressError(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "columns")

	progress.Start(100)
	progress.Error(fmt.Errorf("test error"))

	if !strings.Contains(buf.String(), "Error: test error") {
		t.Errorf("output %q does not contain the error", buf.String())
	}
}

func TestSimpleProgressConcurrent(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "columns")

	progress.Start(10)

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			progress.Update(int64(i))
		}()
	}
	wg.Wait()
	progress.Finish()

	if !strings.HasSuffix(buf.String(), "10/10 columns\n") {
		t.Errorf("output %q does not end complete", buf.String())
	}
}
