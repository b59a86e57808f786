package patterns

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/rules"
)

func parseRLE(r io.Reader) (*Pattern, error) {
	p := &Pattern{}
	scanner := bufio.NewScanner(r)

	var (
		body       strings.Builder
		haveHeader bool
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, "#"):
			if err := p.rleComment(line); err != nil {
				return nil, err
			}
		case !haveHeader && strings.HasPrefix(line, "x"):
			if err := p.rleHeader(line); err != nil {
				return nil, err
			}
			haveHeader = true
		default:
			body.WriteString(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[parseRLE]")
	}
	if !haveHeader {
		return nil, errors.Wrap(ErrMalformed, "[parseRLE] missing 'x = ..., y = ...' header")
	}

	if err := p.rleBody(body.String()); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pattern) rleComment(line string) error {
	if len(line) < 2 {
		return nil
	}
	text := strings.TrimSpace(line[2:])
	switch line[1] {
	case 'N':
		p.Name = text
	case 'C', 'c', 'O':
		if text != "" {
			p.Comments = append(p.Comments, text)
		}
	case 'r':
		rs, err := rules.Parse(text)
		if err != nil {
			return errors.Wrap(err, "[parseRLE] #r line")
		}
		p.Rule = &rs
	}
	return nil
}

func (p *Pattern) rleHeader(line string) error {
	for _, field := range strings.Split(line, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return errors.Wrapf(ErrMalformed, "[parseRLE] bad header field %q", field)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		switch strings.ToLower(key) {
		case "x", "y":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return errors.Wrapf(ErrMalformed, "[parseRLE] bad %s dimension %q", key, value)
			}
			if key == "x" || key == "X" {
				p.Width = n
			} else {
				p.Height = n
			}
		case "rule":
			rs, err := rules.Parse(value)
			if err != nil {
				return errors.Wrap(err, "[parseRLE] header rule")
			}
			p.Rule = &rs
		}
	}
	return nil
}

// maxRun bounds a single run count. No board is wider than this.
const maxRun = model.MaxSideLength

func (p *Pattern) rleBody(body string) error {
	x, y, count := 0, 0, 0
	for i, ch := range body {
		switch {
		case ch >= '0' && ch <= '9':
			count = count*10 + int(ch-'0')
			if count > maxRun {
				return errors.Wrapf(ErrMalformed, "[parseRLE] run count at offset %d exceeds %d", i, maxRun)
			}
			continue
		case unicode.IsSpace(ch):
			continue
		}

		run := max(count, 1)
		count = 0

		switch {
		case ch == '!':
			return nil
		case ch == '$':
			y += run
			x = 0
		case ch == 'b' || ch == '.':
			x += run
		case unicode.IsLetter(ch):
			for range run {
				p.addCell(x, y)
				x++
			}
		default:
			return errors.Wrapf(ErrMalformed, "[parseRLE] unexpected %q at offset %d", ch, i)
		}
	}
	return errors.Wrap(ErrMalformed, "[parseRLE] missing terminating '!'")
}
