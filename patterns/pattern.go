// Package patterns loads starting configurations from pattern files and
// stamps them onto an engine.
//
// Supported formats, chosen by file extension:
//
//	.cells       plaintext: '!' comments, '.' dead, 'O' or '*' alive
//	.rle         run-length encoded, with an optional rule in the header
//	.yaml, .yml  a name, an optional rule and a list of rows or cells
package patterns

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/rules"
)

// Format identifies a pattern file format.
type Format int

const (
	FormatPlaintext Format = iota
	FormatRLE
	FormatYAML
)

// ErrUnknownFormat is returned for files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown pattern format")

// ErrMalformed is returned when a pattern file cannot be parsed.
var ErrMalformed = errors.New("malformed pattern")

// ErrOutsideDir is returned by LoadIn for names that leave the directory.
var ErrOutsideDir = errors.New("pattern outside the pattern directory")

// Pattern is a set of live cells relative to its top-left corner.
type Pattern struct {
	Name     string
	Comments []string
	Width    int
	Height   int
	Cells    []model.Coord

	// Rule is set when the file names the rule it was designed for.
	Rule *rules.RuleSet
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cells", ".txt":
		return FormatPlaintext, nil
	case ".rle":
		return FormatRLE, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "[FormatFromPath] %s", path)
}

// Load reads and parses a pattern file.
func Load(path string) (*Pattern, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[Load] failed to open pattern: %s", path)
	}
	defer f.Close()

	return read(f, format, path)
}

// LoadIn reads the pattern file name from dir. name is relative to dir or
// an absolute path inside it. Names that lead outside dir are refused with
// ErrOutsideDir; symlinks that leave dir fail to open.
func LoadIn(dir, name string) (*Pattern, error) {
	format, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}

	rel := filepath.Clean(name)
	if filepath.IsAbs(rel) {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, errors.Wrap(err, "[LoadIn]")
		}
		if rel, err = filepath.Rel(absDir, rel); err != nil {
			return nil, errors.Wrapf(ErrOutsideDir, "[LoadIn] %s", name)
		}
	}
	if !filepath.IsLocal(rel) {
		return nil, errors.Wrapf(ErrOutsideDir, "[LoadIn] %s", name)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, errors.Wrap(err, "[LoadIn] failed to open pattern directory")
	}
	defer root.Close()

	f, err := root.Open(rel)
	if err != nil {
		return nil, errors.Wrap(err, "[LoadIn] failed to open pattern")
	}
	defer f.Close()

	return read(f, format, rel)
}

func read(r io.Reader, format Format, path string) (*Pattern, error) {
	p, err := Parse(r, format)
	if err != nil {
		return nil, errors.Wrapf(err, "[Load] %s", path)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// Parse reads a pattern in the given format.
func Parse(r io.Reader, format Format) (*Pattern, error) {
	switch format {
	case FormatPlaintext:
		return parsePlaintext(r)
	case FormatRLE:
		return parseRLE(r)
	case FormatYAML:
		return parseYAML(r)
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "[Parse] format %d", format)
}

// Center returns the offset that centers the pattern on a size×size grid.
func (p *Pattern) Center(size int) (x, y int) {
	return (size - p.Width) / 2, (size - p.Height) / 2
}

// Fits reports whether every cell lands on the grid when stamped at (x, y).
func (p *Pattern) Fits(size, x, y int) bool {
	for _, c := range p.Cells {
		cx, cy := x+c.X, y+c.Y
		if cx < 0 || cx >= size || cy < 0 || cy >= size {
			return false
		}
	}
	return true
}

// Stamp brings the pattern's cells to life with its top-left corner at
// (x, y). Nothing is changed when the pattern does not fit.
func (p *Pattern) Stamp(e *model.Engine, x, y int) error {
	size := e.SideLength()
	if !p.Fits(size, x, y) {
		return errors.Wrapf(model.ErrOutOfBounds, "[Stamp] %dx%d pattern at (%d, %d) on a grid of size %d",
			p.Width, p.Height, x, y, size)
	}
	for _, c := range p.Cells {
		if err := e.Set(x+c.X, y+c.Y, true); err != nil {
			return errors.Wrap(err, "[Stamp]")
		}
	}
	return nil
}

// Population returns the number of live cells in the pattern.
func (p *Pattern) Population() int {
	return len(p.Cells)
}

func (p *Pattern) addCell(x, y int) {
	p.Cells = append(p.Cells, model.Coord{X: x, Y: y})
	p.Width = max(p.Width, x+1)
	p.Height = max(p.Height, y+1)
}
