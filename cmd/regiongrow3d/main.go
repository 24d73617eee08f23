package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"regiongrow3d/internal/rawvol"
	"regiongrow3d/pkg/config"
	"regiongrow3d/pkg/growing"
	"regiongrow3d/pkg/morphology"
	"regiongrow3d/pkg/volume"
)

func main() {
	// Parse command line arguments
	inputPath := flag.String("input", "", "Raw voxel volume file (headerless, little-endian, x-fastest)")
	outputPath := flag.String("output", "mask.raw", "Output mask filename (raw uint8)")
	dimsArg := flag.String("dims", "", "Volume dimensions as nx,ny,nz")
	formatArg := flag.String("format", "uint16", "Sample format: uint8, uint16, float32 or float64")
	channels := flag.Int("channels", 1, "Channels per voxel (>1 selects vector data)")
	seedsArg := flag.String("seeds", "", "Seed coordinates as i,j,k[;i,j,k...]")
	spacingArg := flag.String("spacing", "", "Voxel spacing as x,y,z in mm (default 1,1,1)")
	configPath := flag.String("config", "regiongrow3d.yaml", "Configuration file (YAML)")
	writeConfig := flag.Bool("write-default-config", false, "Write the default configuration file and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write default config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	// Validate inputs
	if *inputPath == "" || *dimsArg == "" || *seedsArg == "" {
		flag.Usage()
		os.Exit(1)
	}

	nx, ny, nz, err := parseDims(*dimsArg)
	if err != nil {
		log.Fatalf("Invalid -dims: %v", err)
	}
	format, err := rawvol.ParseFormat(*formatArg)
	if err != nil {
		log.Fatalf("Invalid -format: %v", err)
	}
	seeds, err := parseSeeds(*seedsArg)
	if err != nil {
		log.Fatalf("Invalid -seeds: %v", err)
	}
	meta := volume.DefaultMetadata()
	if *spacingArg != "" {
		sx, sy, sz, err := parseSpacing(*spacingArg)
		if err != nil {
			log.Fatalf("Invalid -spacing: %v", err)
		}
		meta.Spacing = [3]float64{sx, sy, sz}
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var progress growing.Progress
	if cfg.Output.Verbose {
		progress = func(iteration, maskVoxels int) {
			fmt.Printf("Iteration %d: %d voxels\n", iteration, maskVoxels)
		}
	}

	fmt.Printf("Segmenting %s (%dx%dx%d, %d channel(s), %s) with method %q\n",
		*inputPath, nx, ny, nz, *channels, format, cfg.Segmentation.Method)

	startTime := time.Now()
	mask, err := segment(cfg, *inputPath, format, nx, ny, nz, *channels, meta, seeds, progress)
	if err != nil {
		if mask == nil {
			log.Fatalf("Segmentation failed: %v", err)
		}
		// Iterative growers hand back the last good mask on mid-iteration
		// failure; accept the partial result but say so.
		log.Printf("Warning: segmentation stopped early, keeping last mask: %v", err)
	}

	element, err := cfg.CleanupElement()
	if err != nil {
		log.Fatalf("Invalid cleanup configuration: %v", err)
	}
	if element != nil {
		before := mask.Count()
		if cfg.Cleanup.Opening {
			if mask, err = morphology.Opening(mask, element); err != nil {
				log.Fatalf("Opening failed: %v", err)
			}
		}
		if cfg.Cleanup.Closing {
			if mask, err = morphology.Closing(mask, element); err != nil {
				log.Fatalf("Closing failed: %v", err)
			}
		}
		fmt.Printf("Morphological clean-up (%s, radius %v): %d -> %d voxels\n",
			element.Shape(), element.Radii(), before, mask.Count())
	}
	elapsed := time.Since(startTime)

	replace := uint8(cfg.Segmentation.ReplaceValue)
	if replace == 0 {
		replace = 1
	}
	if err := rawvol.WriteMask(*outputPath, mask, replace); err != nil {
		log.Fatalf("Failed to write mask: %v", err)
	}

	total := mask.Len()
	labeled := mask.Count()
	fmt.Printf("\nSegmentation completed in %.2f seconds\n", elapsed.Seconds())
	fmt.Printf("Mask saved to: %s\n", *outputPath)
	fmt.Printf("Labeled voxels: %d of %d (%.2f%%)\n",
		labeled, total, 100*float64(labeled)/float64(total))
}

// segment loads the volume and runs the configured grower.
func segment(cfg *config.Config, path string, format rawvol.Format, nx, ny, nz, channels int,
	meta volume.Metadata, seeds []volume.Coordinate, progress growing.Progress) (*volume.Mask, error) {

	params := cfg.GrowerParams(progress)

	switch cfg.Segmentation.Method {
	case config.MethodThreshold:
		grid, err := rawvol.ReadGrid(path, format, nx, ny, nz, meta)
		if err != nil {
			return nil, err
		}
		return growing.ConnectedThreshold(grid, seeds, cfg.Segmentation.Lower, cfg.Segmentation.Upper)

	case config.MethodConfidence:
		grid, err := rawvol.ReadGrid(path, format, nx, ny, nz, meta)
		if err != nil {
			return nil, err
		}
		return growing.ConfidenceConnected(grid, seeds, params)

	case config.MethodVectorConfidence:
		if channels < 2 {
			return nil, fmt.Errorf("method %q needs -channels > 1", cfg.Segmentation.Method)
		}
		grid, err := rawvol.ReadVectorGrid(path, format, nx, ny, nz, channels, meta)
		if err != nil {
			return nil, err
		}
		return growing.VectorConfidenceConnected(grid, seeds, params)
	}
	return nil, fmt.Errorf("unknown segmentation method %q", cfg.Segmentation.Method)
}

func parseDims(s string) (nx, ny, nz int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, errors.New("expected nx,ny,nz")
	}
	v := make([]int, 3)
	for i, p := range parts {
		v[i], err = strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, err
		}
	}
	return v[0], v[1], v[2], nil
}

func parseSpacing(s string) (sx, sy, sz float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, errors.New("expected x,y,z")
	}
	v := make([]float64, 3)
	for i, p := range parts {
		v[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, err
		}
	}
	return v[0], v[1], v[2], nil
}

func parseSeeds(s string) ([]volume.Coordinate, error) {
	var seeds []volume.Coordinate
	for _, triple := range strings.Split(s, ";") {
		i, j, k, err := parseDims(triple)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", triple, err)
		}
		seeds = append(seeds, volume.Coordinate{I: i, J: j, K: k})
	}
	return seeds, nil
}
