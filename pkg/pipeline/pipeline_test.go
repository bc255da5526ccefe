package pipeline

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mipviz/mipviz/pkg/cache"
	"github.com/mipviz/mipviz/pkg/errors"
)

const sampleLP = `minimize
 x + 2 y
subject to
 c1: x + y <= 10
 c2: y + z <= 5
end
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.lp")
	if err := os.WriteFile(path, []byte(sampleLP), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"model.lp", "model.png"},
		{"model.mps", "model.png"},
		{"model.lp.gz", "model.png"},
		{"model.mps.tar.gz", "model.png"},
		{"dir/instance.lp", "dir/instance.png"},
		{"weird.txt", "weird.txt.png"},
	}

	for _, tt := range tests {
		if got := DefaultOutput(tt.input); got != tt.want {
			t.Errorf("DefaultOutput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateForParse(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForParse(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty input should fail with INVALID_INPUT, got %v", err)
	}

	opts = Options{Input: "model.txt"}
	if err := opts.ValidateForParse(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown extension should fail with INVALID_FORMAT, got %v", err)
	}

	opts = Options{Input: "model.lp"}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("valid options should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Input: "model.lp"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if opts.Iterations != DefaultIterations {
		t.Errorf("Iterations = %d, want %d", opts.Iterations, DefaultIterations)
	}
	if opts.Size != DefaultSize {
		t.Errorf("Size = %d, want %d", opts.Size, DefaultSize)
	}
	if opts.Output != "model.png" {
		t.Errorf("Output = %q, want %q", opts.Output, "model.png")
	}
	if opts.Logger == nil {
		t.Error("Logger should be defaulted")
	}
}

func TestRunnerExecute(t *testing.T) {
	input := writeSample(t)
	output := filepath.Join(t.TempDir(), "out.png")

	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Input:      input,
		Output:     output,
		Seed:       42,
		Iterations: 50,
		Size:       128,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// x, y, z with edges x-y and y-z
	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 2 {
		t.Errorf("EdgeCount = %d, want 2", result.Stats.EdgeCount)
	}
	if result.Stats.ConstraintCount != 2 {
		t.Errorf("ConstraintCount = %d, want 2", result.Stats.ConstraintCount)
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	if result.OutputPath != output {
		t.Errorf("OutputPath = %q, want %q", result.OutputPath, output)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("output file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output should be a PNG: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Errorf("image width = %d, want 128", img.Bounds().Dx())
	}
}

func TestRunnerExecuteUsesCache(t *testing.T) {
	input := writeSample(t)
	dir := t.TempDir()

	c, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{
		Input:      input,
		Output:     filepath.Join(dir, "out.png"),
		Seed:       42,
		Iterations: 50,
		Size:       64,
	}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.GraphHit || first.CacheInfo.AnalyzeHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss every stage")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.GraphHit || !second.CacheInfo.AnalyzeHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit every stage, got %+v", second.CacheInfo)
	}
	if second.GraphHash != first.GraphHash {
		t.Error("graph hash should be stable across runs")
	}

	// Refresh bypasses the cache
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.GraphHit || third.CacheInfo.AnalyzeHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should not use the cache")
	}
}

func TestRunnerExecuteMissingInput(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Input:  filepath.Join(t.TempDir(), "nope.lp"),
		Output: filepath.Join(t.TempDir(), "out.png"),
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing input should fail with FILE_NOT_FOUND, got %v", err)
	}
}

func TestRunnerExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(ctx, Options{
		Input:  writeSample(t),
		Output: filepath.Join(t.TempDir(), "out.png"),
	})
	if err == nil {
		t.Fatal("cancelled context should abort the pipeline")
	}
}

func TestParseInput(t *testing.T) {
	m, format, err := ParseInput(context.Background(), Options{Input: writeSample(t)})
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	if format != "lp" {
		t.Errorf("format = %q, want lp", format)
	}
	if m.VariableCount() != 3 {
		t.Errorf("VariableCount = %d, want 3", m.VariableCount())
	}
}
