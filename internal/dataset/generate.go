package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/random-shapes/internal/imaging"
	"github.com/ironsheep/random-shapes/internal/shapes"
)

// Layout directories below the dataset root.
const (
	ImagesDir    = "images"
	LabelsDir    = "labels"
	PreviewsDir  = "previews"
	CropsDir     = "crops"
	ManifestFile = "manifest.json"
)

// Entry summarizes one sample in the manifest.
type Entry struct {
	ID        string `json:"id"`
	Seed      uint64 `json:"seed"`
	Image     string `json:"image"`
	Labels    string `json:"labels"`
	Shapes    int    `json:"shapes"`
	Requested int    `json:"requested"`
	Warnings  int    `json:"warnings"`
}

// Manifest describes a generated dataset.
type Manifest struct {
	Count      int            `json:"count"`
	Seed       uint64         `json:"seed"`
	Image      ImageConfig    `json:"image"`
	Samples    []Entry        `json:"samples"`
	Categories map[string]int `json:"categories"`
	Shapes     int            `json:"shapes"`
	Warnings   int            `json:"warnings"`
}

// Generate writes cfg.Count samples below cfg.Output and returns the
// manifest, which is also written to manifest.json.
//
// Samples are generated in parallel, at most cfg.Workers at a time. Sample i
// always uses seed base+i and gets the ID SampleID(base+i), so the dataset is
// identical regardless of worker count. The first error cancels the
// remaining samples. Placement warnings go to logger (nil means
// log.Default()).
func Generate(ctx context.Context, cfg *Config, logger *log.Logger) (*Manifest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	dirs := []string{ImagesDir, LabelsDir}
	if cfg.Previews {
		dirs = append(dirs, PreviewsDir)
	}
	if cfg.Crops.Enabled {
		dirs = append(dirs, CropsDir)
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(cfg.Output, d), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", d, err)
		}
	}

	base := shapes.RandomSeed()
	if cfg.Seed != nil {
		base = *cfg.Seed
	}

	samples := make([]*Sample, cfg.Count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := 0; i < cfg.Count; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := writeSample(cfg, base+uint64(i), logger)
			if err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
			samples[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	manifest := buildManifest(cfg, base, samples)
	if err := writeManifest(filepath.Join(cfg.Output, ManifestFile), manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// writeSample generates one image and writes all of its files.
func writeSample(cfg *Config, seed uint64, logger *log.Logger) (*Sample, error) {
	result, err := shapes.Generate(cfg.Image.Options(seed, logger))
	if err != nil {
		return nil, err
	}

	img, err := result.Canvas.Image()
	if err != nil {
		return nil, err
	}

	s := NewSample(result)
	s.Image = filepath.Join(ImagesDir, s.ID+".png")
	if err := imaging.SavePNG(filepath.Join(cfg.Output, s.Image), img); err != nil {
		return nil, err
	}

	if cfg.Previews {
		s.Preview = filepath.Join(PreviewsDir, s.ID+".png")
		preview := Preview(img, result.Shapes, cfg.OverlayColor)
		if err := imaging.SavePNG(filepath.Join(cfg.Output, s.Preview), preview); err != nil {
			return nil, err
		}
	}

	if cfg.Crops.Enabled {
		for n, sh := range result.Shapes {
			crop, err := imaging.Crop(img, sh.Label.BBox.Rect(), cfg.Crops.Padding, cfg.Crops.Scale)
			if err != nil {
				return nil, fmt.Errorf("failed to crop shape %d: %w", sh.Slot, err)
			}
			name := filepath.Join(CropsDir, fmt.Sprintf("%s_%d_%s.png", s.ID, n, sh.Label.Category))
			if err := imaging.SavePNG(filepath.Join(cfg.Output, name), crop); err != nil {
				return nil, err
			}
			s.Crops = append(s.Crops, name)
		}
	}

	if err := WriteSample(filepath.Join(cfg.Output, LabelsDir, s.ID+".json"), s); err != nil {
		return nil, err
	}
	return s, nil
}

func buildManifest(cfg *Config, base uint64, samples []*Sample) *Manifest {
	m := &Manifest{
		Count:      len(samples),
		Seed:       base,
		Image:      cfg.Image,
		Samples:    make([]Entry, 0, len(samples)),
		Categories: make(map[string]int),
	}

	for _, s := range samples {
		m.Samples = append(m.Samples, Entry{
			ID:        s.ID,
			Seed:      s.Seed,
			Image:     s.Image,
			Labels:    filepath.Join(LabelsDir, s.ID+".json"),
			Shapes:    len(s.Shapes),
			Requested: s.Requested,
			Warnings:  len(s.Warnings),
		})
		for _, r := range s.Shapes {
			m.Categories[r.Label.Category]++
		}
		m.Shapes += len(s.Shapes)
		m.Warnings += len(s.Warnings)
	}
	return m
}

func writeManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads the manifest of a dataset root.
func ReadManifest(root string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
