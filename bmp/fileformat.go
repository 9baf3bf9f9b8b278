package bmp

import (
	"encoding/binary"
	"fmt"
	"mandelbrot/misc"
)

const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
	// PixelOffset is where pixel data starts when no palette is written.
	PixelOffset = FileHeaderSize + InfoHeaderSize

	BitsPerPixel  = 24
	BytesPerPixel = BitsPerPixel / 8
)

// Signature is the magic "BM" every bitmap file starts with.
var Signature = [2]byte{'B', 'M'}

// The FileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type FileHeader struct {
	Type      [2]byte // The file type: must be "BM".
	Size      uint32  // The size, in bytes, of the bitmap file.
	Reserved1 uint16  // Reserved; must be zero.
	Reserved2 uint16  // Reserved; must be zero.
	OffBits   uint32  // Offset (in bytes) from the start of the file to the pixel array.
}

// MarshalBinary writes the header field by field in little-endian order.
func (h FileHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, FileHeaderSize)
	b[0], b[1] = h.Type[0], h.Type[1]
	binary.LittleEndian.PutUint32(b[2:6], h.Size)
	binary.LittleEndian.PutUint16(b[6:8], h.Reserved1)
	binary.LittleEndian.PutUint16(b[8:10], h.Reserved2)
	binary.LittleEndian.PutUint32(b[10:14], h.OffBits)
	return b, nil
}

// UnmarshalBinary reads a header written by MarshalBinary and checks the
// signature.
func (h *FileHeader) UnmarshalBinary(b []byte) error {
	if len(b) < FileHeaderSize {
		return fmt.Errorf("%w: file header is %d bytes, want %d", misc.ErrFormat, len(b), FileHeaderSize)
	}
	h.Type = [2]byte{b[0], b[1]}
	h.Size = binary.LittleEndian.Uint32(b[2:6])
	h.Reserved1 = binary.LittleEndian.Uint16(b[6:8])
	h.Reserved2 = binary.LittleEndian.Uint16(b[8:10])
	h.OffBits = binary.LittleEndian.Uint32(b[10:14])

	if h.Type != Signature {
		return fmt.Errorf("%w: signature %q is not a bitmap", misc.ErrFormat, h.Type[:])
	}
	return nil
}

// The InfoHeader structure contains information about the
// dimensions and color format of DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapinfoheader
type InfoHeader struct {
	Size            uint32 // The number of bytes required by the structure.
	Width           int32  // The width of the bitmap, in pixels.
	Height          int32  // The height of the bitmap, in pixels. Negative means rows are stored top-down.
	Planes          uint16 // The number of planes for the target device. Always 1.
	BitCount        uint16 // The number of bits-per-pixel.
	Compression     uint32 // The type of compression. 0 is none.
	SizeImage       uint32 // The size of the pixel array (in bytes), padding included.
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

func (h InfoHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, InfoHeaderSize)
	binary.LittleEndian.PutUint32(b[0:4], h.Size)
	binary.LittleEndian.PutUint32(b[4:8], uint32(h.Width))
	binary.LittleEndian.PutUint32(b[8:12], uint32(h.Height))
	binary.LittleEndian.PutUint16(b[12:14], h.Planes)
	binary.LittleEndian.PutUint16(b[14:16], h.BitCount)
	binary.LittleEndian.PutUint32(b[16:20], h.Compression)
	binary.LittleEndian.PutUint32(b[20:24], h.SizeImage)
	binary.LittleEndian.PutUint32(b[24:28], uint32(h.XPixelsPerM))
	binary.LittleEndian.PutUint32(b[28:32], uint32(h.YPixelsPerM))
	binary.LittleEndian.PutUint32(b[32:36], h.ColorsUsed)
	binary.LittleEndian.PutUint32(b[36:40], h.ColorsImportant)
	return b, nil
}

func (h *InfoHeader) UnmarshalBinary(b []byte) error {
	if len(b) < InfoHeaderSize {
		return fmt.Errorf("%w: info header is %d bytes, want %d", misc.ErrFormat, len(b), InfoHeaderSize)
	}
	h.Size = binary.LittleEndian.Uint32(b[0:4])
	h.Width = int32(binary.LittleEndian.Uint32(b[4:8]))
	h.Height = int32(binary.LittleEndian.Uint32(b[8:12]))
	h.Planes = binary.LittleEndian.Uint16(b[12:14])
	h.BitCount = binary.LittleEndian.Uint16(b[14:16])
	h.Compression = binary.LittleEndian.Uint32(b[16:20])
	h.SizeImage = binary.LittleEndian.Uint32(b[20:24])
	h.XPixelsPerM = int32(binary.LittleEndian.Uint32(b[24:28]))
	h.YPixelsPerM = int32(binary.LittleEndian.Uint32(b[28:32]))
	h.ColorsUsed = binary.LittleEndian.Uint32(b[32:36])
	h.ColorsImportant = binary.LittleEndian.Uint32(b[36:40])
	return nil
}

// Padding is the number of zero bytes that follow each row of width pixels so
// that rows are a multiple of 4 bytes long.
func Padding(width int) int {
	return (4 - (width*BytesPerPixel)%4) % 4
}

// Stride is the on-disk length of one row of width pixels, padding included.
func Stride(width int) int {
	return width*BytesPerPixel + Padding(width)
}
