package epd

import (
	"image"
	"image/color"
)

// Buffer packs img into a frame buffer: 1 bit per pixel, MSB first, rows of
// 16 bytes, set bits are white. Landscape images (250x122) are rotated a
// quarter turn counter-clockwise. Pixels darker than mid-gray become black.
// Images of any other size are drawn from the top-left corner and clipped.
func Buffer(img image.Image) []byte {
	buf := make([]byte, lineWidth*Height)
	for i := range buf {
		buf[i] = White
	}

	b := img.Bounds()
	landscape := b.Dx() == Height && b.Dy() == Width
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y >= 128 {
				continue
			}
			px, py := x-b.Min.X, y-b.Min.Y
			if landscape {
				px, py = py, Height-px-1
			}
			if px >= Width || py >= Height {
				continue
			}
			buf[px/8+py*lineWidth] &^= 0x80 >> (px % 8)
		}
	}
	return buf
}
