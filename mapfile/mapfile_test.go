package mapfile

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const sampleMap = `{
"classname" "worldspawn"
"message" "test level"
{
( -0.5 -0.5 -0.5 ) ( -0.5 -0.5 0.5 ) ( -0.5 0.5 -0.5 ) stone [ 0 1 0 0 ] [ 0 0 1 0 ] 0 0 0
( 0.5 -0.5 -0.5 ) ( 0.5 0.5 -0.5 ) ( 0.5 -0.5 0.5 ) stone [ 0 1 0 0 ] [ 0 0 1 0 ] 0 0 0
( -0.5 -0.5 -0.5 ) ( 0.5 -0.5 -0.5 ) ( -0.5 -0.5 0.5 ) stone [ 1 0 0 0 ] [ 0 0 1 0 ] 0 0 0
( -0.5 0.5 -0.5 ) ( -0.5 0.5 0.5 ) ( 0.5 0.5 -0.5 ) stone [ 1 0 0 0 ] [ 0 0 1 0 ] 0 0 0
( -0.5 -0.5 -0.5 ) ( -0.5 0.5 -0.5 ) ( 0.5 -0.5 -0.5 ) stone [ 1 0 0 0 ] [ 0 1 0 0 ] 0 0 0
( -0.5 -0.5 0.5 ) ( 0.5 -0.5 0.5 ) ( -0.5 0.5 0.5 ) stone [ 1 0 0 0 ] [ 0 1 0 0 ] 0 0 0
}
}
{
"classname" "info_player_start"
"origin" "0 0 2"
}
`

func TestParseSampleMap(t *testing.T) {
	sc, err := Parse(strings.NewReader(sampleMap))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(sc.Entities) != 2 {
		t.Fatalf("got %d entities, want 2", len(sc.Entities))
	}

	world, ok := sc.Worldspawn()
	if !ok {
		t.Fatal("expected worldspawn entity")
	}
	if world.Keys["classname"] != "worldspawn" {
		t.Errorf("classname = %q, want worldspawn", world.Keys["classname"])
	}
	if world.Keys["message"] != "test level" {
		t.Errorf("message = %q", world.Keys["message"])
	}
	if len(world.Brushes) != 1 {
		t.Fatalf("got %d brushes, want 1", len(world.Brushes))
	}
	if len(world.Brushes[0].Planes) != 6 {
		t.Fatalf("got %d planes, want 6", len(world.Brushes[0].Planes))
	}

	first := world.Brushes[0].Planes[0]
	if first.V1 != (mgl64.Vec3{-0.5, -0.5, -0.5}) {
		t.Errorf("V1 = %v", first.V1)
	}
	if first.TexName != "stone" {
		t.Errorf("TexName = %q, want stone", first.TexName)
	}
	if first.Tangent != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("Tangent = %v, want (0,1,0)", first.Tangent)
	}
	if first.Bitangent != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("Bitangent = %v, want (0,0,1)", first.Bitangent)
	}

	if sc.Entities[1].Keys["origin"] != "0 0 2" {
		t.Errorf("second entity origin = %q", sc.Entities[1].Keys["origin"])
	}
	if len(sc.Entities[1].Brushes) != 0 {
		t.Errorf("point entity should carry no brushes")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"stray token at top level", "garbage\n", 1},
		{"bad key/value line", "{\nclassname worldspawn\n}\n", 2},
		{"bad number in plane", "{\n{\n( a 0 0 ) ( 0 1 0 ) ( 0 0 1 ) tex [ 0 1 0 0 ] [ 0 0 1 0 ]\n}\n}\n", 3},
		{"truncated plane line", "{\n{\n( 0 0 0 ) ( 0 1 0 )\n}\n}\n", 3},
		{"unterminated entity", "{\n\"classname\" \"worldspawn\"\n", 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(c.input))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("got %v, want *ParseError", err)
			}
			if perr.Line != c.wantLine {
				t.Errorf("error at line %d, want %d: %v", perr.Line, c.wantLine, perr)
			}
		})
	}
}
