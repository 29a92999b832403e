// BMP-specific structs and types
package bmp

import (
	"encoding/binary"
	"fmt"
)

const (
	FileHeaderSize = 14 // Size of BitmapFileHeader on disk
	InfoHeaderSize = 40 // Size of BitmapInfoHeader on disk
	BytesPerPixel  = 3  // 24 bits per pixel
)

var le = binary.LittleEndian

// The BitmapFileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader

type BitmapFileHeader struct {
	Type      [2]byte // The file type: must be 0x4d42 (ASCII string "BM").
	Size      uint32  // The size, in bytes, of the bitmap file.
	Reserved1 uint16  // Reserved; must be zero.
	Reserved2 uint16  // Reserved; must be zero.
	OffBits   uint32  // Bitmap File Offset (In bytes) to Pixel Arrays
}

// Reports whether the header carries the "BM" signature
func (h *BitmapFileHeader) IsBitmap() bool {
	return h.Type == [2]byte{'B', 'M'}
}

// MarshalBinary encodes the header into its 14-byte on-disk form.
func (h *BitmapFileHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, FileHeaderSize)
	b[0], b[1] = h.Type[0], h.Type[1]
	le.PutUint32(b[2:6], h.Size)
	le.PutUint16(b[6:8], h.Reserved1)
	le.PutUint16(b[8:10], h.Reserved2)
	le.PutUint32(b[10:14], h.OffBits)
	return b, nil
}

// UnmarshalBinary decodes the first 14 bytes of b.
func (h *BitmapFileHeader) UnmarshalBinary(b []byte) error {
	if len(b) < FileHeaderSize {
		return fmt.Errorf("file header needs %d bytes, got %d", FileHeaderSize, len(b))
	}
	h.Type = [2]byte{b[0], b[1]}
	h.Size = le.Uint32(b[2:6])
	h.Reserved1 = le.Uint16(b[6:8])
	h.Reserved2 = le.Uint16(b[8:10])
	h.OffBits = le.Uint32(b[10:14])
	return nil
}

// The BitmapInfoHeader structure contains information about the
// dimensions and color format of DIB [device-independent bitmap].

type BitmapInfoHeader struct {
	Size            uint32 // The number of bytes required by the structure.
	Width           int32  // The width of the bitmap, in pixels.
	Height          int32  // The height of the bitmap, in pixels
	Planes          uint16 // The number of planes for the target device.
	BitCount        uint16 // The number of bits-per-pixel.
	Compression     uint32 // The type of compression
	SizeImage       uint32 // The size of the image (in bytes).
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

// MarshalBinary encodes the header into its 40-byte on-disk form.
func (h *BitmapInfoHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, InfoHeaderSize)
	le.PutUint32(b[0:4], h.Size)
	le.PutUint32(b[4:8], uint32(h.Width))
	le.PutUint32(b[8:12], uint32(h.Height))
	le.PutUint16(b[12:14], h.Planes)
	le.PutUint16(b[14:16], h.BitCount)
	le.PutUint32(b[16:20], h.Compression)
	le.PutUint32(b[20:24], h.SizeImage)
	le.PutUint32(b[24:28], uint32(h.XPixelsPerM))
	le.PutUint32(b[28:32], uint32(h.YPixelsPerM))
	le.PutUint32(b[32:36], h.ColorsUsed)
	le.PutUint32(b[36:40], h.ColorsImportant)
	return b, nil
}

// UnmarshalBinary decodes the first 40 bytes of b.
func (h *BitmapInfoHeader) UnmarshalBinary(b []byte) error {
	if len(b) < InfoHeaderSize {
		return fmt.Errorf("info header needs %d bytes, got %d", InfoHeaderSize, len(b))
	}
	h.Size = le.Uint32(b[0:4])
	h.Width = int32(le.Uint32(b[4:8]))
	h.Height = int32(le.Uint32(b[8:12]))
	h.Planes = le.Uint16(b[12:14])
	h.BitCount = le.Uint16(b[14:16])
	h.Compression = le.Uint32(b[16:20])
	h.SizeImage = le.Uint32(b[20:24])
	h.XPixelsPerM = int32(le.Uint32(b[24:28]))
	h.YPixelsPerM = int32(le.Uint32(b[28:32]))
	h.ColorsUsed = le.Uint32(b[32:36])
	h.ColorsImportant = le.Uint32(b[36:40])
	return nil
}

// Returns the number of bytes one pixel row occupies on disk
func rowStride(width int, packed bool) int {
	if packed {
		return width * BytesPerPixel
	}
	return ((width*BytesPerPixel + 3) / 4) * 4
}
