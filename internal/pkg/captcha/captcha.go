// Package captcha generates human-solvable visual challenges.
//
// The generator returns the answer text alongside a structured scene value;
// rendering to a concrete format (SVG) is a separate step, so the generator
// stays pure and testable without parsing markup.
package captcha

import (
	"math/rand/v2"

	"github.com/samber/lo"
)

// Alphabet is the challenge character set: uppercase letters and digits with
// look-alikes removed (no 0, 1, I, O).
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// TextLength is the number of characters in a challenge.
const TextLength = 6

const (
	canvasWidth  = 200
	canvasHeight = 60
	noiseLines   = 5
	glyphStartX  = 20
	glyphStepX   = 28
	glyphBaseY   = 35
	maxJitterY   = 5  // vertical jitter in [-5, +5)
	maxRotation  = 15 // rotation in [-15, +15) degrees
	fontSize     = 28
)

// Generator produces challenge text with its visual rendering.
type Generator interface {
	Generate() (text string, scene Scene)
}

// SceneGenerator implements Generator with randomized glyph placement.
type SceneGenerator struct{}

// NewSceneGenerator returns a ready-to-use generator.
func NewSceneGenerator() *SceneGenerator {
	return &SceneGenerator{}
}

// Generate returns a fresh challenge: the answer text and a scene laying the
// characters out left to right with per-glyph jitter, rotation and color,
// plus straight distractor lines. Legible to a human, awkward for naive
// pattern matching.
func (g *SceneGenerator) Generate() (string, Scene) {
	text := lo.RandomString(TextLength, []rune(Alphabet))

	scene := Scene{
		Width:      canvasWidth,
		Height:     canvasHeight,
		Background: Color{R: 0xF0, G: 0xF0, B: 0xF0},
		FontSize:   fontSize,
	}

	for range noiseLines {
		scene.Lines = append(scene.Lines, Line{
			X1:     rand.Float64() * canvasWidth,
			Y1:     rand.Float64() * canvasHeight,
			X2:     rand.Float64() * canvasWidth,
			Y2:     rand.Float64() * canvasHeight,
			Stroke: Color{R: 0xCC, G: 0xCC, B: 0xCC},
			Width:  1,
		})
	}

	for i, ch := range text {
		scene.Glyphs = append(scene.Glyphs, Glyph{
			Char:     ch,
			X:        float64(glyphStartX + i*glyphStepX),
			Y:        glyphBaseY + (rand.Float64()*2*maxJitterY - maxJitterY),
			Rotation: rand.Float64()*2*maxRotation - maxRotation,
			Fill:     randomDarkColor(),
		})
	}

	return text, scene
}

// randomDarkColor picks a color dark enough to stay readable on the light
// background: each channel below 100.
func randomDarkColor() Color {
	return Color{
		R: uint8(rand.IntN(100)),
		G: uint8(rand.IntN(100)),
		B: uint8(rand.IntN(100)),
	}
}
