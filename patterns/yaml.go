package patterns

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/go-lifelike/rules"
)

// yamlPattern is the on-disk layout of a YAML pattern. Cells may be given
// as picture rows ("..O"), as coordinates, or both.
type yamlPattern struct {
	Name     string     `yaml:"name"`
	Comments []string   `yaml:"comments,omitempty"`
	Rule     string     `yaml:"rule,omitempty"`
	Rows     []string   `yaml:"rows,omitempty"`
	Cells    []yamlCell `yaml:"cells,omitempty"`
}

type yamlCell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func parseYAML(r io.Reader) (*Pattern, error) {
	var yp yamlPattern
	if err := yaml.NewDecoder(r).Decode(&yp); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "[parseYAML] %v", err)
	}

	p := &Pattern{
		Name:     yp.Name,
		Comments: yp.Comments,
	}
	if yp.Rule != "" {
		rs, err := rules.Lookup(yp.Rule)
		if err != nil {
			return nil, errors.Wrap(err, "[parseYAML]")
		}
		p.Rule = &rs
	}

	seen := make(map[yamlCell]bool)
	add := func(x, y int) {
		if !seen[yamlCell{x, y}] {
			seen[yamlCell{x, y}] = true
			p.addCell(x, y)
		}
	}

	for y, row := range yp.Rows {
		for x, ch := range row {
			switch ch {
			case 'O', 'o', '*', '#':
				add(x, y)
			case '.', ' ', '_':
			default:
				return nil, errors.Wrapf(ErrMalformed, "[parseYAML] unexpected %q in row %d", ch, y)
			}
		}
		p.Width = max(p.Width, len(row))
		p.Height = max(p.Height, y+1)
	}
	for _, c := range yp.Cells {
		if c.X < 0 || c.Y < 0 {
			return nil, errors.Wrapf(ErrMalformed, "[parseYAML] negative cell (%d, %d)", c.X, c.Y)
		}
		add(c.X, c.Y)
	}

	return p, nil
}
