package bode

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-rlc/dsp/filter/rlc"
)

var testDesign = rlc.Design{Topology: rlc.RC, R: 1e3, X: 100e-9}

func TestRender_SVG(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, testDesign, "svg", Options{Kinds: []rlc.Kind{rlc.Lowpass, rlc.Highpass}, Points: 50})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Fatalf("output is not SVG: %.80q", buf.String())
	}
}

func TestRender_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, testDesign, "PNG", Options{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatal("output is not PNG")
	}
}

func TestRender_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, testDesign, "bmp", Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
	if err := Render(&buf, rlc.Design{Topology: rlc.RL}, "png", Options{}); !errors.Is(err, rlc.ErrCalculation) {
		t.Errorf("err = %v, want ErrCalculation", err)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bode.svg")
	if err := Save(path, testDesign, Options{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("file not written: %v", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "bode"), testDesign, Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}
