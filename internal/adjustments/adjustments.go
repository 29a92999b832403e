// Adjusts image dimensions, orientation, or structure.
package adjustments

import (
	"github.com/anas-shakeel/go-bmp/internal/bmp"
)

// Rotates the bitmap 90 degrees clockwise in-place.
// Width and height are swapped; the file header is left untouched.
func RotateClockwise(b *bmp.BitmapImage) {
	width := b.Width()
	height := b.Height()

	// Rotated bitmap is (height x width)
	rotated := newGrid(height, width)
	for row := range height {
		for col := range width {
			rotated[col][height-row-1] = b.Pixels[row][col]
		}
	}

	b.ReplacePixels(rotated)
}

// Rotates the bitmap 90 degrees counterclockwise in-place.
// Width and height are swapped; the file header is left untouched.
func RotateCounterClockwise(b *bmp.BitmapImage) {
	width := b.Width()
	height := b.Height()

	rotated := newGrid(height, width)
	for row := range height {
		for col := range width {
			rotated[width-col-1][row] = b.Pixels[row][col]
		}
	}

	b.ReplacePixels(rotated)
}

func newGrid(width, height int) [][]bmp.Pixel {
	grid := make([][]bmp.Pixel, height)
	for row := range height {
		grid[row] = make([]bmp.Pixel, width)
	}
	return grid
}
