// Package raster holds the in-memory pixel grid a render writes into.
//
// A Raster is a single pre-allocated arena. Workers never touch it directly;
// they receive Views, each covering a contiguous block of rows, and a View can
// only reach the cells of its own rows.
package raster

import "fmt"

// Pixel is one 24-bit colour in on-disk channel order.
type Pixel struct {
	B, G, R byte
}

func (p Pixel) String() string {
	return fmt.Sprintf("{B: %d G: %d R: %d}", p.B, p.G, p.R)
}

type Raster struct {
	height int
	pixels []Pixel
	width  int
}

// New allocates a width x height raster. Both must be positive.
func New(width int, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster dimensions must be positive, got %dx%d", width, height)
	}
	return &Raster{
		height: height,
		pixels: make([]Pixel, width*height),
		width:  width,
	}, nil
}

func (r *Raster) Width() int {
	return r.width
}

func (r *Raster) Height() int {
	return r.height
}

// At returns the pixel at column x, row y counted from the top left.
func (r *Raster) At(x int, y int) Pixel {
	return r.pixels[r.index(x, y)]
}

func (r *Raster) Set(x int, y int, p Pixel) {
	r.pixels[r.index(x, y)] = p
}

// Row returns the pixels of row y. The slice aliases the raster.
func (r *Raster) Row(y int) []Pixel {
	if y < 0 || y >= r.height {
		panic(fmt.Sprintf("raster: row %d out of range [0, %d)", y, r.height))
	}
	start := y * r.width
	return r.pixels[start : start+r.width : start+r.width]
}

// Equal reports whether o has the same dimensions and pixels as r.
func (r *Raster) Equal(o *Raster) bool {
	if r.width != o.width || r.height != o.height {
		return false
	}
	for i := range r.pixels {
		if r.pixels[i] != o.pixels[i] {
			return false
		}
	}
	return true
}

// View returns the rows [start, end) of r. The returned View cannot reach
// cells outside those rows.
func (r *Raster) View(start int, end int) View {
	if start < 0 || end > r.height || start > end {
		panic(fmt.Sprintf("raster: view [%d, %d) out of range [0, %d)", start, end, r.height))
	}
	lo, hi := start*r.width, end*r.width
	return View{
		end:    end,
		pixels: r.pixels[lo:hi:hi],
		start:  start,
		width:  r.width,
	}
}

func (r *Raster) index(x int, y int) int {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		panic(fmt.Sprintf("raster: pixel (%d, %d) out of range %dx%d", x, y, r.width, r.height))
	}
	return y*r.width + x
}

// View is a window onto a contiguous block of raster rows. Rows are addressed
// with raster coordinates, so a view over [10, 20) is written with y in 10..19.
type View struct {
	end    int
	pixels []Pixel
	start  int
	width  int
}

func (v View) Start() int {
	return v.start
}

func (v View) End() int {
	return v.end
}

func (v View) Width() int {
	return v.width
}

func (v View) Set(x int, y int, p Pixel) {
	if x < 0 || x >= v.width || y < v.start || y >= v.end {
		panic(fmt.Sprintf("raster: pixel (%d, %d) outside view rows [%d, %d)", x, y, v.start, v.end))
	}
	v.pixels[(y-v.start)*v.width+x] = p
}

func (v View) String() string {
	return fmt.Sprintf("{View Rows: [%d, %d) Width: %d}", v.start, v.end, v.width)
}
