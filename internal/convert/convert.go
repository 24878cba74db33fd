// Package convert wires configuration, the part parser and the mesh
// exporter into a single conversion run.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/brickmesh/internal/config"
	"github.com/Faultbox/brickmesh/internal/logger"
	"github.com/Faultbox/brickmesh/pkg/ldraw"
	"github.com/Faultbox/brickmesh/pkg/mesh"
)

// Run parses the root part file, flattens it and all referenced sub-parts,
// and writes the result as an ASCII STL solid to outputPath. An empty path
// or "-" selects stdout. Parser diagnostics are logged on the side channel,
// never mixed into the mesh output.
func Run(cfg *config.Config, inputPath, outputPath string) error {
	start := time.Now()

	parser := ldraw.NewParser(ldraw.Options{
		LibraryPath:    cfg.Library.Path,
		IgnorePrefixes: cfg.Parse.IgnorePrefixes,
		InitialInvert:  cfg.Parse.InitialInvert,
	})

	m, err := parser.ParseFile(inputPath)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}

	for _, d := range parser.Diagnostics() {
		logger.Warn("parse diagnostic",
			zap.String("kind", d.Kind.String()),
			zap.String("file", d.File),
			zap.Int("line", d.Line),
			zap.String("detail", d.Detail),
		)
	}

	opts := mesh.ExportOptions{Scale: cfg.Output.Scale, Unit: cfg.Output.Unit}

	if outputPath == "" || outputPath == "-" {
		if err := m.WriteSTL(os.Stdout, solidName(inputPath), opts); err != nil {
			return fmt.Errorf("writing mesh: %w", err)
		}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outputPath, err)
		}
		if err := m.WriteSTL(f, solidName(inputPath), opts); err != nil {
			f.Close()
			return fmt.Errorf("writing mesh: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", outputPath, err)
		}
	}

	logger.Info("conversion complete",
		zap.String("input", inputPath),
		zap.Int("triangles", m.TriangleCount()),
		zap.Int("diagnostics", len(parser.Diagnostics())),
		zap.Duration("elapsed", time.Since(start)),
	)

	return nil
}

// solidName derives the STL solid name from the input filename.
func solidName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
