// Package epd drives a Waveshare 2.13" V4 e-paper panel (122x250, 1 bit)
// over SPI and GPIO using periph.io.
//
// Typical lifecycle:
//
//	d, err := epd.Open(epd.DefaultPins)
//	d.Init()
//	d.Clear(epd.White)
//	d.Display(epd.Buffer(img))
//	d.Sleep()
//	d.Close()
//
// Buffer packs a landscape (250x122) or portrait (122x250) image into the
// panel's row-major frame buffer, rotating landscape images to fit.
package epd
