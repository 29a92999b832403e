// Filters perform neighbourhood operations over the pixel grid
package filters

import (
	"github.com/anas-shakeel/go-bmp/internal/bmp"
	"github.com/anas-shakeel/go-bmp/internal/utils"
)

// 3x3 Gaussian kernel, weights sum to 16
var gaussianKernel = [3][3]float64{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

const gaussianWeight = 16.0

// Smooths the bitmap with a 3x3 Gaussian kernel in-place.
//
// Neighbours outside the image are replaced by the nearest edge pixel.
// Each channel is clipped to [0, 255] and truncated, not rounded.
// Every output pixel is computed from the original grid.
func GaussianBlur(b *bmp.BitmapImage) {
	width := b.Width()
	height := b.Height()
	src := b.Pixels

	blurred := make([][]bmp.Pixel, height)
	for row := range height {
		blurred[row] = make([]bmp.Pixel, width)

		for col := range width {
			var sumB, sumG, sumR float64

			for ky := -1; ky <= 1; ky++ {
				y := utils.Clamp(row+ky, 0, height-1)
				for kx := -1; kx <= 1; kx++ {
					x := utils.Clamp(col+kx, 0, width-1)
					weight := gaussianKernel[ky+1][kx+1] / gaussianWeight

					p := src[y][x]
					sumB += float64(p.B) * weight
					sumG += float64(p.G) * weight
					sumR += float64(p.R) * weight
				}
			}

			blurred[row][col] = bmp.Pixel{
				B: utils.SaturateByte(sumB),
				G: utils.SaturateByte(sumG),
				R: utils.SaturateByte(sumR),
			}
		}
	}

	b.ReplacePixels(blurred)
}
