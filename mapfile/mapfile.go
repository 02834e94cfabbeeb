// Package mapfile reads the brush map text format: a sequence of
// brace-delimited entities holding quoted key/value pairs and nested
// brush blocks, each brush a list of plane lines.
package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/korrigangames/bspforge/scene"
)

// ParseError reports a malformed map file with the offending line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("map parse error at line %d: %s", e.Line, e.Msg)
}

// Matches: "key" "value" with quotes stripped before use.
var keyValuePattern = regexp.MustCompile(`^"([^"]*)" "([^"]*)"$`)

type parserState int

const (
	atTopLevel parserState = iota
	inEntity
	inBrush
)

// Parse reads a map from r into a Scene, preserving entity, brush, and
// plane order.
func Parse(r io.Reader) (*scene.Scene, error) {
	sc := &scene.Scene{}
	state := atTopLevel
	var entity *scene.Entity
	var brush *scene.RawBrush

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch state {
		case atTopLevel:
			if line != "{" {
				return nil, &ParseError{Line: lineNum, Msg: fmt.Sprintf("expected entity opening brace, got %q", line)}
			}
			sc.Entities = append(sc.Entities, scene.Entity{Keys: map[string]string{}})
			entity = &sc.Entities[len(sc.Entities)-1]
			state = inEntity

		case inEntity:
			switch {
			case line == "}":
				entity = nil
				state = atTopLevel
			case line == "{":
				entity.Brushes = append(entity.Brushes, scene.RawBrush{})
				brush = &entity.Brushes[len(entity.Brushes)-1]
				state = inBrush
			default:
				m := keyValuePattern.FindStringSubmatch(line)
				if m == nil {
					return nil, &ParseError{Line: lineNum, Msg: fmt.Sprintf("expected key/value pair or brace, got %q", line)}
				}
				entity.Keys[m[1]] = m[2]
			}

		case inBrush:
			if line == "}" {
				brush = nil
				state = inEntity
				continue
			}
			def, err := parsePlaneLine(line, lineNum)
			if err != nil {
				return nil, err
			}
			brush.Planes = append(brush.Planes, def)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	if state != atTopLevel {
		return nil, &ParseError{Line: lineNum, Msg: "unexpected end of file inside a block"}
	}

	return sc, nil
}

// tokenReader walks the space-separated tokens of one plane line.
type tokenReader struct {
	tokens []string
	pos    int
	line   int
}

func (t *tokenReader) next() (string, error) {
	if t.pos >= len(t.tokens) {
		return "", &ParseError{Line: t.line, Msg: "plane line ended early"}
	}
	tok := t.tokens[t.pos]
	t.pos++
	return tok, nil
}

func (t *tokenReader) expect(want string) error {
	tok, err := t.next()
	if err != nil {
		return err
	}
	if tok != want {
		return &ParseError{Line: t.line, Msg: fmt.Sprintf("expected %q, got %q", want, tok)}
	}
	return nil
}

func (t *tokenReader) float() (float64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, &ParseError{Line: t.line, Msg: fmt.Sprintf("bad number %q", tok)}
	}
	return f, nil
}

// vec3 reads ( x y z ).
func (t *tokenReader) vec3() (mgl64.Vec3, error) {
	var v mgl64.Vec3
	if err := t.expect("("); err != nil {
		return v, err
	}
	for i := 0; i < 3; i++ {
		f, err := t.float()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, t.expect(")")
}

// vec4as3 reads [ x y z w ] and discards the fourth component.
func (t *tokenReader) vec4as3() (mgl64.Vec3, error) {
	var v mgl64.Vec3
	if err := t.expect("["); err != nil {
		return v, err
	}
	for i := 0; i < 3; i++ {
		f, err := t.float()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	if _, err := t.float(); err != nil {
		return v, err
	}
	return v, t.expect("]")
}

// parsePlaneLine reads one plane definition:
//
//	( x y z ) ( x y z ) ( x y z ) texname [ tx ty tz tw ] [ bx by bz bw ] extra...
//
// Trailing tokens after the second bracket group are ignored.
func parsePlaneLine(line string, lineNum int) (scene.PlaneDef, error) {
	t := &tokenReader{tokens: strings.Split(line, " "), line: lineNum}
	var def scene.PlaneDef
	var err error

	if def.V1, err = t.vec3(); err != nil {
		return def, err
	}
	if def.V2, err = t.vec3(); err != nil {
		return def, err
	}
	if def.V3, err = t.vec3(); err != nil {
		return def, err
	}
	if def.TexName, err = t.next(); err != nil {
		return def, err
	}
	if def.Tangent, err = t.vec4as3(); err != nil {
		return def, err
	}
	if def.Bitangent, err = t.vec4as3(); err != nil {
		return def, err
	}
	return def, nil
}
