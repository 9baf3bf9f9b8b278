// Package bmp reads and writes 24-bit uncompressed bitmap files.
package bmp

import (
	"errors"
	"fmt"
	"io"
	"mandelbrot/misc"
	"mandelbrot/raster"
	"math"
)

// RowOrder is the order rows are stored in. It is encoded in the sign of the
// info header's height.
type RowOrder int

const (
	// TopDown stores the top row first; the height is written negative.
	TopDown RowOrder = iota
	// BottomUp stores the bottom row first; the height is written positive.
	BottomUp
)

func (o RowOrder) String() string {
	if o == BottomUp {
		return "BottomUp"
	}
	return "TopDown"
}

// maxPixels bounds the raster Decode is willing to allocate.
const maxPixels = 1 << 30

// NewHeaders builds the headers of a width x height bitmap stored in order.
func NewHeaders(width int, height int, order RowOrder) (FileHeader, InfoHeader, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt32/BytesPerPixel || height > math.MaxInt32 {
		return FileHeader{}, InfoHeader{}, fmt.Errorf("%w: %dx%d", misc.ErrInvalidDimensions, width, height)
	}
	sizeImage := uint64(height) * uint64(Stride(width))
	if sizeImage+PixelOffset > math.MaxUint32 {
		return FileHeader{}, InfoHeader{}, fmt.Errorf("%w: %dx%d does not fit in a bitmap", misc.ErrInvalidDimensions, width, height)
	}

	storedHeight := int32(height)
	if order == TopDown {
		storedHeight = -storedHeight
	}

	fh := FileHeader{
		Type:    Signature,
		Size:    uint32(PixelOffset + sizeImage),
		OffBits: PixelOffset,
	}
	ih := InfoHeader{
		Size:      InfoHeaderSize,
		Width:     int32(width),
		Height:    storedHeight,
		Planes:    1,
		BitCount:  BitsPerPixel,
		SizeImage: uint32(sizeImage),
	}
	return fh, ih, nil
}

// Encode writes r to w as a bitmap with rows stored in order.
func Encode(w io.Writer, r *raster.Raster, order RowOrder) error {
	width, height := r.Width(), r.Height()
	fh, ih, err := NewHeaders(width, height, order)
	if err != nil {
		return err
	}

	// Write File Header
	b, _ := fh.MarshalBinary()
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w: writing file header - %s", misc.ErrIO, err)
	}
	// Write Info Header
	b, _ = ih.MarshalBinary()
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w: writing info header - %s", misc.ErrIO, err)
	}

	// padding bytes at the end of row stay zero
	row := make([]byte, Stride(width))
	for i := 0; i < height; i++ {
		y := i
		if order == BottomUp {
			y = height - i - 1
		}
		for x, p := range r.Row(y) {
			row[x*BytesPerPixel] = p.B
			row[x*BytesPerPixel+1] = p.G
			row[x*BytesPerPixel+2] = p.R
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("%w: writing row %d - %s", misc.ErrIO, y, err)
		}
	}
	return nil
}

// DecodeHeaders reads and validates the two headers at the start of a bitmap.
func DecodeHeaders(r io.Reader) (FileHeader, InfoHeader, error) {
	var fh FileHeader
	var ih InfoHeader

	b := make([]byte, FileHeaderSize)
	if _, err := io.ReadFull(r, b); err != nil {
		return fh, ih, formatError("reading file header", err)
	}
	if err := fh.UnmarshalBinary(b); err != nil {
		return fh, ih, err
	}

	b = make([]byte, InfoHeaderSize)
	if _, err := io.ReadFull(r, b); err != nil {
		return fh, ih, formatError("reading info header", err)
	}
	if err := ih.UnmarshalBinary(b); err != nil {
		return fh, ih, err
	}

	// Support only 24bit uncompressed bitmaps
	if ih.Size < InfoHeaderSize {
		return fh, ih, fmt.Errorf("%w: info header size %d", misc.ErrFormat, ih.Size)
	}
	if ih.BitCount != BitsPerPixel || ih.Compression != 0 {
		return fh, ih, fmt.Errorf("%w: only 24-bit uncompressed bitmaps are supported, got %d bits compression %d", misc.ErrFormat, ih.BitCount, ih.Compression)
	}
	if ih.Width <= 0 || ih.Height == 0 {
		return fh, ih, fmt.Errorf("%w: dimensions %dx%d", misc.ErrFormat, ih.Width, ih.Height)
	}
	if fh.OffBits < PixelOffset {
		return fh, ih, fmt.Errorf("%w: pixel offset %d overlaps the headers", misc.ErrFormat, fh.OffBits)
	}
	return fh, ih, nil
}

// Decode reads a bitmap from r. Whatever the stored row order, the returned
// raster has its origin at the top left.
func Decode(r io.Reader) (*raster.Raster, error) {
	fh, ih, err := DecodeHeaders(r)
	if err != nil {
		return nil, err
	}

	width := int(ih.Width)
	height := int(ih.Height)
	topDown := false
	if height < 0 {
		topDown = true
		height = -height
	}
	if uint64(width)*uint64(height) > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d is too large", misc.ErrFormat, width, height)
	}

	// The offset is authoritative: skip whatever sits between the headers and the pixels
	if skip := int64(fh.OffBits) - PixelOffset; skip > 0 {
		if _, err := io.CopyN(io.Discard, r, skip); err != nil {
			return nil, formatError("seeking to pixel data", err)
		}
	}

	// Read the pixel section before allocating the raster so a header claiming
	// a huge image cannot force an allocation the stream does not back.
	stride := Stride(width)
	size := int64(height) * int64(stride)
	data, err := io.ReadAll(io.LimitReader(r, size))
	if err != nil {
		return nil, formatError("reading pixel data", err)
	}
	if int64(len(data)) < size {
		return nil, fmt.Errorf("%w: truncated stream reading row %d, have %d of %d pixel bytes",
			misc.ErrFormat, len(data)/stride, len(data), size)
	}

	img, err := raster.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", misc.ErrFormat, err)
	}

	for i := 0; i < height; i++ {
		y := height - i - 1
		if topDown {
			y = i
		}

		// Pixels of the current row, its padding is skipped
		row := data[i*stride : (i+1)*stride]
		pixels := img.Row(y)
		for x := range pixels {
			pixels[x] = raster.Pixel{
				B: row[x*BytesPerPixel],
				G: row[x*BytesPerPixel+1],
				R: row[x*BytesPerPixel+2],
			}
		}
	}
	return img, nil
}

// Save writes r to fileName. The file only appears once it is complete.
func Save(fileName string, r *raster.Raster, order RowOrder) error {
	return misc.WriteFileAtomic(fileName, func(w io.Writer) error {
		return Encode(w, r, order)
	})
}

// Load reads the bitmap in fileName.
func Load(fileName string) (*raster.Raster, error) {
	var img *raster.Raster
	err := misc.ReadFile(fileName, func(r io.Reader) error {
		var err error
		img, err = Decode(r)
		return err
	})
	return img, err
}

// formatError turns a short read into misc.ErrFormat and any other read
// failure into misc.ErrIO.
func formatError(doing string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated stream %s", misc.ErrFormat, doing)
	}
	return fmt.Errorf("%w: %s - %s", misc.ErrIO, doing, err)
}
