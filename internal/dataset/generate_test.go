package dataset

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/random-shapes/internal/detection"
	"github.com/ironsheep/random-shapes/internal/imaging"
	"github.com/ironsheep/random-shapes/internal/shapes"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testConfig(t *testing.T, count int, seed uint64) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Output = t.TempDir()
	cfg.Count = count
	cfg.Seed = &seed
	cfg.Workers = 3
	cfg.Image.Rows = 48
	cfg.Image.Cols = 64
	cfg.Image.MaxShapes = 4
	return &cfg
}

func TestGenerate_Layout(t *testing.T) {
	cfg := testConfig(t, 5, 100)
	cfg.Previews = true
	cfg.Crops.Enabled = true
	cfg.Crops.Padding = 1

	manifest, err := Generate(context.Background(), cfg, quietLogger())
	require.NoError(t, err)

	require.Len(t, manifest.Samples, 5)
	assert.Equal(t, uint64(100), manifest.Seed)

	total := 0
	for i, entry := range manifest.Samples {
		assert.Equal(t, uint64(100+i), entry.Seed)
		assert.Equal(t, SampleID(entry.Seed), entry.ID)
		assert.FileExists(t, filepath.Join(cfg.Output, entry.Image))
		assert.FileExists(t, filepath.Join(cfg.Output, entry.Labels))
		assert.FileExists(t, filepath.Join(cfg.Output, PreviewsDir, entry.ID+".png"))

		s, err := ReadSample(filepath.Join(cfg.Output, entry.Labels))
		require.NoError(t, err)
		assert.Equal(t, entry.ID, s.ID)
		assert.Equal(t, entry.Shapes, len(s.Shapes))
		assert.Len(t, s.Crops, len(s.Shapes))
		for _, c := range s.Crops {
			assert.FileExists(t, filepath.Join(cfg.Output, c))
		}
		total += len(s.Shapes)
	}

	assert.Equal(t, total, manifest.Shapes)
	categories := 0
	for _, n := range manifest.Categories {
		categories += n
	}
	assert.Equal(t, total, categories)

	onDisk, err := ReadManifest(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, manifest.Samples, onDisk.Samples)
}

func TestGenerate_ImagesPassAudit(t *testing.T) {
	cfg := testConfig(t, 4, 7)

	manifest, err := Generate(context.Background(), cfg, quietLogger())
	require.NoError(t, err)

	cache := imaging.NewImageCache()
	for _, entry := range manifest.Samples {
		img, err := cache.Load(filepath.Join(cfg.Output, entry.Image))
		require.NoError(t, err)

		s, err := ReadSample(filepath.Join(cfg.Output, entry.Labels))
		require.NoError(t, err)
		placed, err := s.PlacedShapes()
		require.NoError(t, err)

		report, err := detection.Audit(img, placed)
		require.NoError(t, err)
		assert.True(t, report.OK, "sample %s: %+v", entry.ID, report)
	}
}

func TestGenerate_WorkerCountDoesNotChangeOutput(t *testing.T) {
	one := testConfig(t, 6, 55)
	one.Workers = 1
	many := testConfig(t, 6, 55)
	many.Workers = 6

	m1, err := Generate(context.Background(), one, quietLogger())
	require.NoError(t, err)
	m2, err := Generate(context.Background(), many, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, m1.Samples, m2.Samples)

	for _, entry := range m1.Samples {
		a, err := os.ReadFile(filepath.Join(one.Output, entry.Labels))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(many.Output, entry.Labels))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
	}
}

func TestGenerate_InvalidImageConfig(t *testing.T) {
	cfg := testConfig(t, 3, 1)
	cfg.Image.MinSize = 1000

	_, err := Generate(context.Background(), cfg, quietLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shapes.ErrInvalidConfiguration))
	assert.NoFileExists(t, filepath.Join(cfg.Output, ManifestFile))
}

func TestGenerate_Cancelled(t *testing.T) {
	cfg := testConfig(t, 20, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, cfg, quietLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NoFileExists(t, filepath.Join(cfg.Output, ManifestFile))
}

func TestGenerate_UnseededRecordsBase(t *testing.T) {
	cfg := testConfig(t, 2, 0)
	cfg.Seed = nil

	manifest, err := Generate(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, manifest.Seed, manifest.Samples[0].Seed)
	assert.Equal(t, manifest.Seed+1, manifest.Samples[1].Seed)
}

func TestGenerate_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t, 0, 1)

	_, err := Generate(context.Background(), cfg, quietLogger())
	assert.True(t, errors.Is(err, shapes.ErrInvalidConfiguration))
}
