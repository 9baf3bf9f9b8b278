package raster

import (
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	r, err := New(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if r.Width() != 4 || r.Height() != 3 || len(r.pixels) != 12 {
		t.Errorf("raster is %dx%d with %d pixels", r.Width(), r.Height(), len(r.pixels))
	}
	for _, size := range [][2]int{{0, 3}, {3, 0}, {-1, -1}} {
		if _, err := New(size[0], size[1]); err == nil {
			t.Errorf("New(%d, %d) should fail", size[0], size[1])
		}
	}
}

func TestSetAndAt(t *testing.T) {
	r, _ := New(3, 2)
	p := Pixel{B: 1, G: 2, R: 3}
	r.Set(2, 1, p)
	if got := r.At(2, 1); got != p {
		t.Errorf("At(2, 1) = %v, want %v", got, p)
	}
	if got := r.pixels[1*3+2]; got != p {
		t.Errorf("pixel stored at the wrong index: %v", r.pixels)
	}
	if got := r.Row(1)[2]; got != p {
		t.Errorf("Row(1)[2] = %v, want %v", got, p)
	}
}

func TestOutOfRangePanics(t *testing.T) {
	r, _ := New(3, 2)
	tests := map[string]func(){
		"x too large":   func() { r.At(3, 0) },
		"y negative":    func() { r.Set(0, -1, Pixel{}) },
		"row too large": func() { r.Row(2) },
		"view reversed": func() { r.View(2, 1) },
		"view too long": func() { r.View(0, 3) },
	}
	for name, f := range tests {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected a panic")
				}
			}()
			f()
		})
	}
}

func TestViewsAreDisjoint(t *testing.T) {
	r, _ := New(5, 6)
	top := r.View(0, 2)
	middle := r.View(2, 2)
	bottom := r.View(2, 6)

	if cap(top.pixels) != 2*5 {
		t.Errorf("top view can reach %d pixels, want %d", cap(top.pixels), 10)
	}
	if len(middle.pixels) != 0 {
		t.Errorf("empty view holds %d pixels", len(middle.pixels))
	}

	defer func() {
		if recover() == nil {
			t.Error("writing another view's row should panic")
		}
	}()
	top.Set(0, 2, Pixel{R: 1})
	_ = bottom
}

func TestViewsWriteConcurrently(t *testing.T) {
	r, _ := New(7, 9)
	bounds := [][2]int{{0, 3}, {3, 4}, {4, 4}, {4, 9}}

	var wg sync.WaitGroup
	for i, b := range bounds {
		wg.Add(1)
		go func(i int, v View) {
			defer wg.Done()
			for y := v.Start(); y < v.End(); y++ {
				for x := 0; x < v.Width(); x++ {
					v.Set(x, y, Pixel{B: byte(i), G: byte(x), R: byte(y)})
				}
			}
		}(i, r.View(b[0], b[1]))
	}
	wg.Wait()

	for y := 0; y < 9; y++ {
		for x := 0; x < 7; x++ {
			p := r.At(x, y)
			if int(p.G) != x || int(p.R) != y {
				t.Errorf("pixel (%d, %d) = %v", x, y, p)
			}
		}
	}
}

func TestEqual(t *testing.T) {
	a, _ := New(2, 2)
	b, _ := New(2, 2)
	c, _ := New(4, 1)
	if !a.Equal(b) {
		t.Error("fresh rasters should be equal")
	}
	if a.Equal(c) {
		t.Error("rasters of different shape should differ")
	}
	b.Set(1, 1, Pixel{G: 9})
	if a.Equal(b) {
		t.Error("rasters with different pixels should differ")
	}
}
