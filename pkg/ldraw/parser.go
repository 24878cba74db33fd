// Package ldraw parses LDraw part files into flattened triangle meshes.
//
// A part file is line-oriented: each line starts with an integer selecting
// the command type, the interesting ones being sub-part references (which
// include another file's geometry under an affine transform) and triangle or
// quadrilateral faces. The parser resolves references recursively against a
// part library and returns a single mesh in the root file's coordinate
// space, with winding order corrected for declared conventions, explicit
// inversions and mirroring transforms.
package ldraw

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gmath "github.com/Faultbox/brickmesh/pkg/math"
	"github.com/Faultbox/brickmesh/pkg/mesh"
)

// Options configures a Parser.
type Options struct {
	// LibraryPath is the base directory of the part library.
	LibraryPath string
	// IgnorePrefixes lists comment lead tokens treated as plain comments.
	// Matched case-insensitively. Nil selects DefaultIgnorePrefixes.
	IgnorePrefixes []string
	// InitialInvert pre-flips the winding of the root file. Useful when
	// inspecting a single mirrored part in isolation.
	InitialInvert bool
}

// DefaultIgnorePrefixes returns the comment lead tokens found in standard
// library headers. These guard against header text being misread as a
// meta-command.
func DefaultIgnorePrefixes() []string {
	return []string{
		"//",
		"Name:",
		"Author:",
		"!LDRAW_ORG",
		"LDRAW_ORG",
		"!LICENSE",
		"!HELP",
		"!KEYWORDS",
		"!CATEGORY",
		"!HISTORY",
		"!CMDLINE",
		"!THEME",
	}
}

// Parser converts part files to meshes. A Parser is not safe for concurrent
// use; parsing is synchronous and depth-first.
type Parser struct {
	resolver      *Resolver
	ignore        map[string]struct{}
	initialInvert bool

	diags []Diagnostic
	// open holds the files currently on the recursion stack, keyed by
	// normalized absolute path, to refuse cyclic references.
	open map[string]struct{}
}

// NewParser returns a parser resolving sub-parts under opts.LibraryPath.
func NewParser(opts Options) *Parser {
	prefixes := opts.IgnorePrefixes
	if prefixes == nil {
		prefixes = DefaultIgnorePrefixes()
	}
	ignore := make(map[string]struct{}, len(prefixes))
	for _, pfx := range prefixes {
		ignore[strings.ToUpper(pfx)] = struct{}{}
	}

	return &Parser{
		resolver:      NewResolver(opts.LibraryPath),
		ignore:        ignore,
		initialInvert: opts.InitialInvert,
	}
}

// ParseFile parses the root part file and every sub-part it references,
// returning the flattened mesh in the root file's coordinate space.
// Failure to open or read the root file is the only fatal condition;
// everything else is recorded as a Diagnostic and skipped.
func (p *Parser) ParseFile(path string) (*mesh.Mesh, error) {
	p.diags = nil
	p.open = make(map[string]struct{})

	ctx := parseContext{ccw: true, invert: p.initialInvert}
	return p.parseFile(path, ctx)
}

// Diagnostics returns the non-fatal conditions recorded by the last
// ParseFile call, in encounter order.
func (p *Parser) Diagnostics() []Diagnostic {
	return p.diags
}

func (p *Parser) parseFile(path string, ctx parseContext) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening part file: %w", err)
	}
	defer f.Close()

	key := stackKey(path)
	p.open[key] = struct{}{}
	defer delete(p.open, key)

	m := mesh.New()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		p.dispatchLine(scanner.Text(), path, lineNo, &ctx, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return m, nil
}

// dispatchLine routes one input line by its leading integer token. Lines
// with no leading integer are not commands and are skipped silently.
func (p *Parser) dispatchLine(line, file string, lineNo int, ctx *parseContext, m *mesh.Mesh) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	code, err := strconv.Atoi(fields[0])
	if err != nil {
		return
	}

	switch code {
	case 0:
		p.handleMeta(fields[1:], file, lineNo, ctx)
	case 1:
		p.handleSubpart(fields[1:], file, lineNo, ctx, m)
	case 2, 5:
		// Edge and optional lines carry no surface geometry.
	case 3:
		p.handleTriangle(fields[1:], file, lineNo, ctx, m)
	case 4:
		p.handleQuad(fields[1:], file, lineNo, ctx, m)
	default:
		p.report(DiagUnknownLineType, file, lineNo, fmt.Sprintf("line type %d", code))
	}
}

// handleMeta inspects a type-0 line. BFC statements mutate the winding
// state; known header prefixes are plain comments; anything else is ignored
// so that unknown meta-commands stay forward compatible.
func (p *Parser) handleMeta(args []string, file string, lineNo int, ctx *parseContext) {
	if len(args) == 0 {
		return
	}
	if strings.EqualFold(args[0], "BFC") {
		p.handleBFC(args[1:], file, lineNo, ctx)
		return
	}
	if _, ok := p.ignore[strings.ToUpper(args[0])]; ok {
		return
	}
}

func (p *Parser) handleBFC(args []string, file string, lineNo int, ctx *parseContext) {
	if len(args) == 0 {
		p.report(DiagMalformedMeta, file, lineNo, "BFC statement with no arguments")
		return
	}
	for _, arg := range args {
		switch strings.ToUpper(arg) {
		case "CERTIFY", "NOCERTIFY", "CLIP", "NOCLIP":
			// Recognized, no winding effect on their own.
		case "CCW":
			ctx.ccw = true
		case "CW":
			ctx.ccw = false
		case "INVERTNEXT":
			ctx.pendingInvert = true
		default:
			p.report(DiagMalformedMeta, file, lineNo, fmt.Sprintf("unknown BFC argument %q", arg))
		}
	}
}

// handleSubpart parses a type-1 reference line: a color, a translation, a
// row-major 3x3 linear block and a filename. The referenced file is parsed
// with its own fresh context, its mesh transformed into this file's space
// and merged.
func (p *Parser) handleSubpart(args []string, file string, lineNo int, ctx *parseContext, m *mesh.Mesh) {
	// The armed inversion is one-shot: it is consumed by this reference
	// whether or not it resolves to a file.
	pending := ctx.pendingInvert
	ctx.pendingInvert = false

	if len(args) < 14 {
		p.report(DiagMalformedLine, file, lineNo,
			fmt.Sprintf("sub-part reference has %d fields, need color, 12 numbers and a filename", len(args)))
		return
	}

	nums, err := parseFloats(args[1:13])
	if err != nil {
		p.report(DiagMalformedLine, file, lineNo, err.Error())
		return
	}

	nameTokens := args[13:]
	name := nameTokens[0]
	if len(nameTokens) > 1 {
		p.report(DiagSuspiciousFilename, file, lineNo,
			fmt.Sprintf("%d trailing tokens after filename %q", len(nameTokens)-1, name))
	}

	transform := gmath.FromAffine(
		[9]float64{nums[3], nums[4], nums[5], nums[6], nums[7], nums[8], nums[9], nums[10], nums[11]},
		gmath.Vec3{X: nums[0], Y: nums[1], Z: nums[2]},
	)
	invert := ctx.childInvert(pending, transform.Determinant())

	resolved, err := p.resolver.Resolve(name)
	if err != nil {
		p.report(DiagPartNotFound, file, lineNo, name)
		return
	}
	if _, onStack := p.open[stackKey(resolved)]; onStack {
		p.report(DiagCycle, file, lineNo, fmt.Sprintf("%s at depth %d", resolved, ctx.depth))
		return
	}

	child := parseContext{invert: invert, ccw: true, depth: ctx.depth + 1}
	childMesh, err := p.parseFile(resolved, child)
	if err != nil {
		// Only the root file is fatal; a sub-part that resolved but cannot
		// be read contributes nothing, like an unresolved one.
		p.report(DiagPartNotFound, file, lineNo, fmt.Sprintf("%s: %v", name, err))
		return
	}

	childMesh.Transform(transform)
	m.Append(childMesh)
}

func (p *Parser) handleTriangle(args []string, file string, lineNo int, ctx *parseContext, m *mesh.Mesh) {
	if len(args) != 10 {
		p.report(DiagMalformedLine, file, lineNo,
			fmt.Sprintf("triangle has %d fields, need color and 9 coordinates", len(args)))
		return
	}
	nums, err := parseFloats(args[1:])
	if err != nil {
		p.report(DiagMalformedLine, file, lineNo, err.Error())
		return
	}

	p.emitTriangle(vec(nums[0:3]), vec(nums[3:6]), vec(nums[6:9]), file, lineNo, ctx, m)
}

func (p *Parser) handleQuad(args []string, file string, lineNo int, ctx *parseContext, m *mesh.Mesh) {
	if len(args) != 13 {
		p.report(DiagMalformedLine, file, lineNo,
			fmt.Sprintf("quadrilateral has %d fields, need color and 12 coordinates", len(args)))
		return
	}
	nums, err := parseFloats(args[1:])
	if err != nil {
		p.report(DiagMalformedLine, file, lineNo, err.Error())
		return
	}

	v1, v2, v3, v4 := vec(nums[0:3]), vec(nums[3:6]), vec(nums[6:9]), vec(nums[9:12])

	// Split on the v1-v3 diagonal. The winding rule applies to each half
	// independently so the diagonal stays put when the order reverses.
	p.emitTriangle(v1, v2, v3, file, lineNo, ctx, m)
	p.emitTriangle(v3, v4, v1, file, lineNo, ctx, m)
}

func (p *Parser) emitTriangle(v1, v2, v3 gmath.Vec3, file string, lineNo int, ctx *parseContext, m *mesh.Mesh) {
	if !ctx.effectiveCCW() {
		v2, v3 = v3, v2
	}
	if gmath.SurfaceNormal(v1, v2, v3) == (gmath.Vec3{}) {
		p.report(DiagDegenerateTriangle, file, lineNo, "collinear vertices")
	}
	m.Add(mesh.Triangle{V1: v1, V2: v2, V3: v3})
}

func (p *Parser) report(kind DiagKind, file string, lineNo int, detail string) {
	p.diags = append(p.diags, Diagnostic{Kind: kind, File: file, Line: lineNo, Detail: detail})
}

func parseFloats(fields []string) ([]float64, error) {
	nums := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("field %d: invalid number %q", i+1, f)
		}
		nums[i] = v
	}
	return nums, nil
}

func vec(nums []float64) gmath.Vec3 {
	return gmath.Vec3{X: nums[0], Y: nums[1], Z: nums[2]}
}

// stackKey normalizes a path for cycle detection: absolute, cleaned and
// lowercased, so the same file reached through different spellings matches.
func stackKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return strings.ToLower(abs)
}
