// brickmesh is a CLI utility converting LDraw part files to triangle meshes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/brickmesh/internal/config"
	"github.com/Faultbox/brickmesh/internal/convert"
	"github.com/Faultbox/brickmesh/internal/logger"
	"github.com/Faultbox/brickmesh/pkg/ldraw"
	"github.com/Faultbox/brickmesh/pkg/mesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "convert":
		cmdConvert(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`brickmesh - LDraw part to STL mesh converter

Usage:
  brickmesh <command> [options]

Commands:
  convert [options] <file>   Flatten a part file and write an ASCII STL solid
  info [options] <file>      Show mesh statistics for a part file

Convert options:
  -config path   Config file (default: standard locations)
  -lib path      Part library base directory
  -o path        Output file (default stdout)
  -scale f       Uniform output scale factor
  -unit f        Millimetres per LDU
  -invert        Invert winding of the root file
  -debug         Enable debug logging

Examples:
  brickmesh convert -lib ~/ldraw -o 3001.stl 3001.dat
  brickmesh convert -scale 2 parts/3001.dat > out.stl
  brickmesh info -lib ~/ldraw 3001.dat`)
}

func loadConfig(configPath, lib string, scale, unit float64, invert, debug bool) *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if lib != "" {
		cfg.Library.Path = lib
	}
	if scale > 0 {
		cfg.Output.Scale = scale
	}
	if unit > 0 {
		cfg.Output.Unit = unit
	}
	if invert {
		cfg.Parse.InitialInvert = true
	}
	if debug {
		cfg.Logging.Level = "debug"
	}
	return cfg
}

func cmdConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	lib := fs.String("lib", "", "Part library base directory")
	out := fs.String("o", "", "Output file (default stdout)")
	scale := fs.Float64("scale", 0, "Uniform output scale factor")
	unit := fs.Float64("unit", 0, "Millimetres per LDU")
	invert := fs.Bool("invert", false, "Invert winding of the root file")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: brickmesh convert [options] <file>")
		os.Exit(1)
	}

	cfg := loadConfig(*configPath, *lib, *scale, *unit, *invert, *debug)

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := convert.Run(cfg, fs.Arg(0), *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	lib := fs.String("lib", "", "Part library base directory")
	scale := fs.Float64("scale", 0, "Uniform output scale factor")
	unit := fs.Float64("unit", 0, "Millimetres per LDU")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: brickmesh info [options] <file>")
		os.Exit(1)
	}

	cfg := loadConfig(*configPath, *lib, *scale, *unit, false, false)

	parser := ldraw.NewParser(ldraw.Options{
		LibraryPath:    cfg.Library.Path,
		IgnorePrefixes: cfg.Parse.IgnorePrefixes,
	})

	m, err := parser.ParseFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := mesh.ExportOptions{Scale: cfg.Output.Scale, Unit: cfg.Output.Unit}
	scaled := mesh.New()
	for _, f := range m.Facets(opts) {
		scaled.Add(mesh.Triangle{V1: f.Vertices[0], V2: f.Vertices[1], V3: f.Vertices[2]})
	}
	bounds := scaled.Bounds()

	fmt.Printf("File:         %s\n", fs.Arg(0))
	fmt.Printf("Triangles:    %d\n", m.TriangleCount())
	fmt.Printf("Bounds min:   %.4f %.4f %.4f\n", bounds.Min.X, bounds.Min.Y, bounds.Min.Z)
	fmt.Printf("Bounds max:   %.4f %.4f %.4f\n", bounds.Max.X, bounds.Max.Y, bounds.Max.Z)
	fmt.Printf("Surface area: %.4f\n", scaled.SurfaceArea())

	diags := parser.Diagnostics()
	if len(diags) == 0 {
		return
	}

	counts := make(map[ldraw.DiagKind]int)
	for _, d := range diags {
		counts[d.Kind]++
	}
	fmt.Printf("\nDiagnostics (%d):\n", len(diags))
	for kind, count := range counts {
		fmt.Printf("  %-22s %d\n", kind, count)
	}
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "  %s\n", d)
	}
}
