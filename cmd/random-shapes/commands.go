package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/ironsheep/random-shapes/internal/dataset"
	"github.com/ironsheep/random-shapes/internal/detection"
	"github.com/ironsheep/random-shapes/internal/imaging"
	"github.com/ironsheep/random-shapes/internal/server"
	"github.com/ironsheep/random-shapes/internal/shapes"
)

// intensityFlag collects "low:high" ranges, one per flag occurrence or
// comma separated.
type intensityFlag []shapes.IntensityRange

func (f *intensityFlag) String() string {
	parts := make([]string, len(*f))
	for i, r := range *f {
		parts[i] = fmt.Sprintf("%d:%d", r.Low, r.High)
	}
	return strings.Join(parts, ",")
}

func (f *intensityFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		lo, hi, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return fmt.Errorf("intensity range %q must be low:high", part)
		}
		low, err := strconv.Atoi(lo)
		if err != nil {
			return fmt.Errorf("invalid low intensity %q: %w", lo, err)
		}
		high, err := strconv.Atoi(hi)
		if err != nil {
			return fmt.Errorf("invalid high intensity %q: %w", hi, err)
		}
		*f = append(*f, shapes.IntensityRange{Low: low, High: high})
	}
	return nil
}

// seedFlag is an optional seed; unset means draw one.
type seedFlag struct {
	value *uint64
}

func (f *seedFlag) String() string {
	if f.value == nil {
		return ""
	}
	return strconv.FormatUint(*f.value, 10)
}

func (f *seedFlag) Set(value string) error {
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid seed %q: %w", value, err)
	}
	f.value = &v
	return nil
}

// imageFlags registers the generator options on fs, starting from cfg.
func imageFlags(fs *flag.FlagSet, cfg *dataset.ImageConfig) (scenario *string, intensity *intensityFlag) {
	fs.IntVar(&cfg.Rows, "rows", cfg.Rows, "image height in pixels")
	fs.IntVar(&cfg.Cols, "cols", cfg.Cols, "image width in pixels")
	fs.IntVar(&cfg.MinShapes, "min-shapes", cfg.MinShapes, "minimum number of shape slots")
	fs.IntVar(&cfg.MaxShapes, "max-shapes", cfg.MaxShapes, "maximum number of shape slots")
	fs.IntVar(&cfg.MinSize, "min-size", cfg.MinSize, "minimum shape dimension")
	fs.IntVar(&cfg.MaxSize, "max-size", cfg.MaxSize, "maximum shape dimension (0 = larger image side)")
	fs.BoolVar(&cfg.Multichannel, "multichannel", cfg.Multichannel, "color image; false renders grayscale")
	fs.IntVar(&cfg.Channels, "channels", cfg.Channels, "channels per pixel when multichannel")
	fs.StringVar(&cfg.Shape, "shape", cfg.Shape, "pin every shape to one category")
	fs.BoolVar(&cfg.AllowOverlap, "allow-overlap", cfg.AllowOverlap, "let shapes overlap")
	fs.IntVar(&cfg.Trials, "trials", cfg.Trials, "placement attempts per shape")
	fs.BoolVar(&cfg.EnableEllipse, "ellipse", cfg.EnableEllipse, "register the ellipse category")

	scenario = fs.String("scenario", string(cfg.Scenario), "category mix: all-halo, all-core, rectangle-triangle, circle, ellipse")
	intensity = &intensityFlag{}
	fs.Var(intensity, "intensity", "intensity range low:high, once for all channels or once per channel")
	return scenario, intensity
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfg := dataset.DefaultImageConfig()
	scenario, intensity := imageFlags(fs, &cfg)
	var seed seedFlag
	fs.Var(&seed, "seed", "seed for a reproducible image (default: random)")
	out := fs.String("out", "image.png", "PNG output path")
	labels := fs.String("labels", "", "JSON label output path (default: stdout)")
	preview := fs.String("preview", "", "optional PNG path for a preview with boxes drawn")
	overlay := fs.String("overlay-color", imaging.DefaultOverlayColor, "preview box color")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Scenario = shapes.Scenario(*scenario)
	cfg.IntensityRanges = *intensity

	s := shapes.RandomSeed()
	if seed.value != nil {
		s = *seed.value
	}

	result, err := shapes.Generate(cfg.Options(s, log.Default()))
	if err != nil {
		return err
	}
	img, err := result.Canvas.Image()
	if err != nil {
		return err
	}

	if err := imaging.SavePNG(*out, img); err != nil {
		return err
	}
	sample := dataset.NewSample(result)
	sample.Image = *out

	if *preview != "" {
		if err := imaging.SavePNG(*preview, dataset.Preview(img, result.Shapes, *overlay)); err != nil {
			return err
		}
		sample.Preview = *preview
	}

	if *labels == "" {
		return printJSON(sample)
	}
	if err := dataset.WriteSample(*labels, sample); err != nil {
		return err
	}
	log.Printf("Wrote %s (%d of %d shapes, seed %d)", *out, len(sample.Shapes), sample.Requested, sample.Seed)
	return nil
}

func runDataset(args []string) error {
	fs := flag.NewFlagSet("dataset", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML dataset config (default: built-in defaults)")
	out := fs.String("out", "", "output directory, overrides the config")
	count := fs.Int("count", 0, "number of images, overrides the config")
	workers := fs.Int("workers", 0, "parallel workers, overrides the config")
	var seed seedFlag
	fs.Var(&seed, "seed", "base seed, overrides the config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := dataset.DefaultConfig()
	if *configPath != "" {
		loaded, err := dataset.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if *out != "" {
		cfg.Output = *out
	}
	if *count > 0 {
		cfg.Count = *count
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if seed.value != nil {
		cfg.Seed = seed.value
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manifest, err := dataset.Generate(ctx, &cfg, log.Default())
	if err != nil {
		return err
	}
	log.Printf("Wrote %d samples (%d shapes, %d warnings) to %s", manifest.Count, manifest.Shapes, manifest.Warnings, cfg.Output)
	return nil
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	imagePath := fs.String("image", "", "rendered PNG")
	labelsPath := fs.String("labels", "", "JSON label file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *imagePath == "" || *labelsPath == "" {
		return errors.New("-image and -labels are required")
	}

	img, err := imaging.NewImageCache().Load(*imagePath)
	if err != nil {
		return err
	}
	sample, err := dataset.ReadSample(*labelsPath)
	if err != nil {
		return err
	}
	placed, err := sample.PlacedShapes()
	if err != nil {
		return err
	}
	report, err := detection.Audit(img, placed)
	if err != nil {
		return err
	}
	if err := printJSON(report); err != nil {
		return err
	}
	if !report.OK {
		return fmt.Errorf("%s does not match %s", *imagePath, *labelsPath)
	}
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return server.New(Version).Run()
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
