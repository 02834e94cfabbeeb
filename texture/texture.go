// Package texture resolves per-polygon display colors. A polygon keyed
// by texture name gets a stable color: the average of a loaded QOI
// texture when one is registered under that name, otherwise a named
// color hashed from the normalized name. Unnamed polygons fall back to a
// seeded random color so output stays reproducible run to run.
package texture

import (
	"fmt"
	"hash/fnv"
	"image/color"
	"io"
	"math/rand"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/colornames"
	"golang.org/x/text/unicode/norm"
)

// Palette maps texture names to colors.
type Palette struct {
	seed  uint64
	atlas map[string]color.RGBA
}

// NewPalette returns a palette whose unnamed-polygon fallback is seeded
// with seed.
func NewPalette(seed uint64) *Palette {
	return &Palette{seed: seed, atlas: map[string]color.RGBA{}}
}

// LoadQOI decodes a QOI texture from r and registers its average color
// under name, overriding the named-color fallback for that texture.
func (p *Palette) LoadQOI(name string, r io.Reader) error {
	img, err := qoi.Decode(r)
	if err != nil {
		return fmt.Errorf("decoding qoi texture %s: %w", name, err)
	}

	bounds := img.Bounds()
	var sr, sg, sb, n uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			sr += uint64(r16 >> 8)
			sg += uint64(g16 >> 8)
			sb += uint64(b16 >> 8)
			n++
		}
	}
	if n == 0 {
		return fmt.Errorf("qoi texture %s is empty", name)
	}

	p.atlas[norm.NFC.String(name)] = color.RGBA{
		R: uint8(sr / n),
		G: uint8(sg / n),
		B: uint8(sb / n),
		A: 255,
	}
	return nil
}

// Colorize resolves the color for the polygon at index with the given
// texture name. The same (name, index, seed) always yields the same
// color.
func (p *Palette) Colorize(texName string, index int) color.RGBA {
	if texName == "" {
		return p.random(index)
	}
	key := norm.NFC.String(texName)
	if c, ok := p.atlas[key]; ok {
		return c
	}
	return named(key)
}

// named hashes the normalized texture name into the color name table, so
// every brush sharing a texture renders the same color without a texture
// file on disk.
func named(key string) color.RGBA {
	h := fnv.New64a()
	h.Write([]byte(key))
	name := colornames.Names[h.Sum64()%uint64(len(colornames.Names))]
	return colornames.Map[name]
}

// random is the fallback for polygons without a texture name: a color
// derived from the palette seed and the polygon index.
func (p *Palette) random(index int) color.RGBA {
	rng := rand.New(rand.NewSource(int64(p.seed + uint64(index)*1000000007)))
	return color.RGBA{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
		A: 255,
	}
}
