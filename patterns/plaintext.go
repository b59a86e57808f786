package patterns

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

func parsePlaintext(r io.Reader) (*Pattern, error) {
	p := &Pattern{}
	scanner := bufio.NewScanner(r)

	y := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.HasPrefix(line, "!") {
			comment := strings.TrimSpace(line[1:])
			if name, ok := strings.CutPrefix(comment, "Name:"); ok {
				p.Name = strings.TrimSpace(name)
			} else if comment != "" {
				p.Comments = append(p.Comments, comment)
			}
			continue
		}

		for x, ch := range line {
			switch ch {
			case 'O', 'o', '*':
				p.addCell(x, y)
			case '.', ' ':
			default:
				return nil, errors.Wrapf(ErrMalformed, "[parsePlaintext] unexpected %q at line %d", ch, y+1)
			}
		}
		p.Height = max(p.Height, y+1)
		p.Width = max(p.Width, len(line))
		y++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[parsePlaintext]")
	}

	return p, nil
}
