package mandelbrot

import "mandelbrot/raster"

// InsideColour is the colour of points that never escape.
var InsideColour = raster.Pixel{}

// Colour maps an escape time to a colour. With t = value/MaxIterations each
// channel is a polynomial in t and (1-t) scaled to 255 and truncated:
//
//	red   =  9 (1-t)   t³
//	green = 16 (1-t)² t²
//	blue  =  9 (1-t)³ t
//
// Every polynomial is 0 at t = 0, so points in the set are black.
func Colour(value int) raster.Pixel {
	t := float64(value) / MaxIterations
	return raster.Pixel{
		B: uint8(9 * (1 - t) * (1 - t) * (1 - t) * t * 255),
		G: uint8(16 * (1 - t) * (1 - t) * t * t * 255),
		R: uint8(9 * (1 - t) * t * t * t * 255),
	}
}
