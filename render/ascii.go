// File: render/ascii.go
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/lguibr/volley/game"
)

// RGBPixel is one cell of the rasterized frame.
type RGBPixel struct {
	R, G, B uint8
}

var (
	background = RGBPixel{R: 8, G: 8, B: 24}
	ballColor  = RGBPixel{R: 255, G: 255, B: 255}
	netColor   = RGBPixel{R: 70, G: 70, B: 90}
)

// Rasterize draws a state snapshot into a pixel grid of the given size. Game
// coordinates scale to the grid, so any terminal resolution works.
func Rasterize(state game.StateSnapshotMessage, width, height int) [][]RGBPixel {
	if width <= 0 || height <= 0 || state.Width <= 0 || state.Height <= 0 {
		return nil
	}
	pixels := make([][]RGBPixel, height)
	for y := range pixels {
		row := make([]RGBPixel, width)
		for x := range row {
			row[x] = background
		}
		pixels[y] = row
	}

	scaleX := float64(width) / float64(state.Width)
	scaleY := float64(height) / float64(state.Height)

	// Center line.
	for y := 0; y < height; y += 2 {
		pixels[y][width/2] = netColor
	}

	for i, paddle := range state.Paddles {
		color := RGBPixel{R: 200, G: 200, B: 200}
		if p := state.Players[i]; p != nil {
			color = RGBPixel{R: uint8(p.Color[0]), G: uint8(p.Color[1]), B: uint8(p.Color[2])}
		}
		fillRect(pixels,
			int(paddle.X*scaleX), int(paddle.Y*scaleY),
			int(math.Ceil(paddle.Width*scaleX)), int(math.Ceil(paddle.Height*scaleY)),
			color)
	}

	fillCircle(pixels,
		int(state.Ball.X*scaleX), int(state.Ball.Y*scaleY),
		int(math.Max(1, state.Ball.Radius*scaleY)),
		ballColor)

	return pixels
}

func fillRect(pixels [][]RGBPixel, x, y, w, h int, color RGBPixel) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			setPixel(pixels, x+dx, y+dy, color)
		}
	}
}

func fillCircle(pixels [][]RGBPixel, cx, cy, r int, color RGBPixel) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setPixel(pixels, cx+dx, cy+dy, color)
			}
		}
	}
}

func setPixel(pixels [][]RGBPixel, x, y int, color RGBPixel) {
	if y < 0 || y >= len(pixels) || x < 0 || x >= len(pixels[y]) {
		return
	}
	pixels[y][x] = color
}

// ASCII characters for grayscale, from lighter to darker.
const asciiChars = " .,:;i1tfLCG08@"

// Dividing factor to convert grayscale values to ramp indexes.
const grayFactor = 255.0 / float64(len(asciiChars)-1)

// rgbToGray converts an RGB pixel to grayscale.
func rgbToGray(pixel RGBPixel) uint8 {
	return uint8(math.Min(255, 0.299*float64(pixel.R)+0.587*float64(pixel.G)+0.114*float64(pixel.B)))
}

// grayToAscii maps a grayscale value to an ASCII character.
func grayToAscii(gray uint8) string {
	index := int(float64(gray) / grayFactor)
	if index >= len(asciiChars) {
		index = len(asciiChars) - 1
	}
	return string(asciiChars[index])
}

// rgbToAnsi converts an RGB pixel to an ANSI truecolor escape code.
func rgbToAnsi(pixel RGBPixel) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", pixel.R, pixel.G, pixel.B)
}

// RenderToASCII converts a pixel grid to a colored ASCII string at the given
// resolution (characters per axis).
func RenderToASCII(pixels [][]RGBPixel, resolution int) string {
	height := len(pixels)
	if height == 0 || resolution <= 0 {
		return ""
	}
	width := len(pixels[0])
	stepX, stepY := float64(width)/float64(resolution), float64(height)/float64(resolution)
	var ascii strings.Builder
	for y := 0.0; y < float64(height-1); y += stepY {
		for x := 0.0; x < float64(width-1); x += stepX {
			i, j := int(math.Round(x)), int(math.Round(y))
			pixel := pixels[j][i]
			gray := rgbToGray(pixel)
			ansi := rgbToAnsi(pixel)
			// Two characters per sample keep the aspect ratio roughly square.
			ascii.WriteString(ansi + grayToAscii(gray) + grayToAscii(gray) + "\033[0m")
		}
		ascii.WriteString("\n")
	}
	return ascii.String()
}
