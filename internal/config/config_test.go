package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-rlc/dsp/filter/rlc"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad_EmptyPathDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Suggest.Count != rlc.DefaultSuggestions || cfg.Suggest.Series != "E12" {
		t.Errorf("unexpected suggest defaults: %+v", cfg.Suggest)
	}
	if cfg.Suggest.CapacitorMin != 1e-12 || cfg.Suggest.CapacitorMax != 1e-4 {
		t.Errorf("unexpected capacitor window: %+v", cfg.Suggest)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.Logging.Level != "info" {
		t.Errorf("unexpected defaults: %+v %+v", cfg.HTTP, cfg.Logging)
	}
}

func TestLoad_YAML(t *testing.T) {
	t.Setenv("RLCALC_ADDR", "127.0.0.1:9090")
	path := writeFile(t, "rlcalc.yaml", `
suggest:
  count: 8
  series: E24
  resistor_min: 100
  resistor_max: 10000
http:
  addr: ${RLCALC_ADDR}
logging:
  level: ${RLCALC_LEVEL:-debug}
  format: json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Suggest.Count != 8 || cfg.Suggest.Series != "E24" {
		t.Errorf("suggest = %+v", cfg.Suggest)
	}
	if cfg.Suggest.ResistorMin != 100 || cfg.Suggest.ResistorMax != 10000 {
		t.Errorf("resistor window = [%v, %v]", cfg.Suggest.ResistorMin, cfg.Suggest.ResistorMax)
	}
	if cfg.HTTP.Addr != "127.0.0.1:9090" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "rlcalc.toml", `
[suggest]
count = 3
series = "E6"
inductor_min = 1e-3
inductor_max = 1.0

[measure]
sample_rate = 96000.0
fft_size = 8192
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Suggest.Count != 3 || cfg.Suggest.Series != "E6" {
		t.Errorf("suggest = %+v", cfg.Suggest)
	}
	if cfg.Suggest.InductorMin != 1e-3 || cfg.Suggest.InductorMax != 1 {
		t.Errorf("inductor window = [%v, %v]", cfg.Suggest.InductorMin, cfg.Suggest.InductorMax)
	}
	if cfg.Measure.SampleRate != 96000 || cfg.Measure.FFTSize != 8192 {
		t.Errorf("measure = %+v", cfg.Measure)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name, file, content, wantErr string
	}{
		{"unknown extension", "cfg.json", `{}`, "unsupported config format"},
		{"bad yaml", "cfg.yaml", "suggest: [", "failed to parse config"},
		{"bad series", "cfg.yaml", "suggest:\n  series: E96\n", "suggest.series"},
		{"bad fft", "cfg.toml", "[measure]\nfft_size = 1000\n", "measure.fft_size"},
		{"tiny fft", "cfg.toml", "[measure]\nfft_size = 32\n", "measure.fft_size"},
		{"fft of one", "cfg.yaml", "measure:\n  fft_size: 1\n", "measure.fft_size"},
		{"negative fft", "cfg.yaml", "measure:\n  fft_size: -64\n", "measure.fft_size"},
		{"bad format", "cfg.yaml", "logging:\n  format: xml\n", "logging.format"},
		{"inverted window", "cfg.yaml", "suggest:\n  resistor_min: 100\n  resistor_max: 10\n", "resistor_min"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.file, tc.content))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tc.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_SmallestFFTSize(t *testing.T) {
	cfg, err := Load(writeFile(t, "cfg.toml", "[measure]\nfft_size = 64\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Measure.FFTSize != 64 {
		t.Errorf("fft_size = %d", cfg.Measure.FFTSize)
	}
}

func TestSuggestOptions(t *testing.T) {
	cfg := Default()
	cfg.Suggest.Count = 2
	cfg.Suggest.Series = "E6"

	got := rlc.ApplySuggestOptions(cfg.SuggestOptions(rlc.RL)...)
	if got.Count != 2 || got.Series.String() != "E6" {
		t.Errorf("config = %+v", got)
	}
	if got.Reactive != rlc.DefaultReactiveRange(rlc.RL) {
		t.Errorf("RL reactive = %+v", got.Reactive)
	}

	got = rlc.ApplySuggestOptions(cfg.SuggestOptions(rlc.RC)...)
	if got.Reactive != rlc.DefaultReactiveRange(rlc.RC) {
		t.Errorf("RC reactive = %+v", got.Reactive)
	}
}
