// bmp package implements a 24-bit uncompressed bitmap reader and writer
package bmp

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/anas-shakeel/go-bmp/internal/utils"
)

// Logger receives the informational lines emitted by Save.
var Logger logrus.FieldLogger = logrus.StandardLogger()

type Pixel struct {
	B, G, R byte
}

type BitmapImage struct {
	Filename string
	BFHeader *BitmapFileHeader
	BIHeader *BitmapInfoHeader
	Packed   bool // rows carry no 4-byte alignment padding on disk
	Pixels   [][]Pixel
}

// Returns the Pixels in bytes as BGR (Blue, Green, Red)
func (p *Pixel) BytesBGR() []byte {
	return []byte{p.B, p.G, p.R}
}

type options struct {
	packed bool
}

// Option configures how pixel rows are laid out on disk.
type Option func(*options)

// WithPackedRows reads rows back to back with no alignment padding.
func WithPackedRows() Option {
	return func(o *options) { o.packed = true }
}

// WithPadding selects between padded (true) and packed (false) rows.
func WithPadding(padded bool) Option {
	return func(o *options) { o.packed = !padded }
}

// Creates and returns a bitmap image (24 bit uncompressed)
func CreateBitmap(width, height int, opts ...Option) (*BitmapImage, error) {
	if width <= 0 {
		return nil, errors.New("width must be greater than 0")
	} else if height <= 0 {
		return nil, errors.New("height must be greater than 0")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	biSizeImage := uint32(rowStride(width, o.packed) * height)
	fileSize := FileHeaderSize + InfoHeaderSize + biSizeImage // Size of the whole bitmap file

	// NewBitmap Headers
	bfh := BitmapFileHeader{Type: [2]byte{'B', 'M'}, OffBits: FileHeaderSize + InfoHeaderSize, Size: fileSize}
	bih := BitmapInfoHeader{Size: InfoHeaderSize, Width: int32(width), Height: int32(height), Planes: 1, BitCount: 24, SizeImage: biSizeImage}

	// Create the pixels 2d slice
	pixels := make([][]Pixel, height)
	for i := range height {
		pixels[i] = make([]Pixel, width)
	}

	return &BitmapImage{
		BFHeader: &bfh,
		BIHeader: &bih,
		Packed:   o.packed,
		Pixels:   pixels,
	}, nil
}

// Reads a Bitmap file
func ReadBitmap(filename string, opts ...Option) (*BitmapImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, loadError(CannotOpen, filename, err)
	}
	defer file.Close()

	b, err := Decode(file, opts...)
	if err != nil {
		var berr *Error
		if errors.As(err, &berr) {
			berr.Path = filename
		}
		return nil, err
	}
	b.Filename = filename
	return b, nil
}

// Decode reads a bitmap from r. Either a fully populated image or an
// *Error is returned, never both.
func Decode(r io.ReadSeeker, opts ...Option) (*BitmapImage, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Read File Header
	var raw [FileHeaderSize + InfoHeaderSize]byte
	if _, err := io.ReadFull(r, raw[:FileHeaderSize]); err != nil {
		return nil, loadError(NotBMP, "", err)
	}
	var bfHeader BitmapFileHeader
	bfHeader.UnmarshalBinary(raw[:FileHeaderSize])
	if !bfHeader.IsBitmap() {
		return nil, loadError(NotBMP, "", fmt.Errorf("signature %q", bfHeader.Type[:]))
	}

	// Read Info Header, assumed to follow the file header directly
	if _, err := io.ReadFull(r, raw[FileHeaderSize:]); err != nil {
		return nil, loadError(TruncatedData, "", fmt.Errorf("info header: %w", err))
	}
	var biHeader BitmapInfoHeader
	biHeader.UnmarshalBinary(raw[FileHeaderSize:])

	// Only magnitudes are kept; row order is taken as stored
	width := utils.Abs(int64(biHeader.Width))
	height := utils.Abs(int64(biHeader.Height))
	if width == 0 || height == 0 || width > math.MaxInt32 || height > math.MaxInt32 {
		return nil, loadError(InvalidSize, "", fmt.Errorf("%dx%d", biHeader.Width, biHeader.Height))
	}
	biHeader.Width = int32(width)
	biHeader.Height = int32(height)

	// Support only 24bit uncompressed Bitmaps
	if biHeader.BitCount != 24 || biHeader.Compression != 0 {
		return nil, loadError(Unsupported, "", fmt.Errorf("%d bpp, compression %d", biHeader.BitCount, biHeader.Compression))
	}
	if bfHeader.OffBits < FileHeaderSize+InfoHeaderSize {
		return nil, loadError(Unsupported, "", fmt.Errorf("pixel offset %d inside the headers", bfHeader.OffBits))
	}

	offset := int64(bfHeader.OffBits)
	stride := int64(rowStride(int(width), o.packed))
	rowBytes := width * BytesPerPixel

	// Refuse before allocating when the stream cannot hold the declared pixels
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, loadError(TruncatedData, "", err)
	}
	if !rowsFit(end, offset, stride, rowBytes, height) {
		cause := fmt.Errorf("%d rows of %d bytes at offset %d, stream has %d bytes", height, stride, offset, end)
		if !o.packed && rowsFit(end, offset, rowBytes, rowBytes, height) {
			cause = fmt.Errorf("%w; data fits unpadded rows, decode with packed rows", cause)
		}
		return nil, loadError(TruncatedData, "", cause)
	}

	// Seek to Pixel Array (OffBits)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, loadError(TruncatedData, "", err)
	}
	br := bufio.NewReader(r)

	// Populate the 2D slice with image pixels, first row read is row 0
	pixels := make([][]Pixel, height)
	for row := range pixels {
		pixels[row] = make([]Pixel, width)
		if err := binary.Read(br, binary.LittleEndian, pixels[row]); err != nil {
			return nil, loadError(TruncatedData, "", fmt.Errorf("row %d: %w", row, err))
		}

		// Skip padding bytes; the last row may omit them
		if pad := stride - rowBytes; pad > 0 && int64(row) < height-1 {
			if _, err := br.Discard(int(pad)); err != nil {
				return nil, loadError(TruncatedData, "", fmt.Errorf("row %d padding: %w", row, err))
			}
		}
	}

	return &BitmapImage{
		BFHeader: &bfHeader,
		BIHeader: &biHeader,
		Packed:   o.packed,
		Pixels:   pixels,
	}, nil
}

// Reports whether size bytes hold height rows of stride bytes starting at
// offset, the last row needing only rowBytes. Division keeps huge headers
// from overflowing.
func rowsFit(size, offset, stride, rowBytes, height int64) bool {
	avail := size - offset - rowBytes
	if avail < 0 {
		return false
	}
	return height-1 <= avail/stride
}

// Saves the bitmap image onto local disk
func (b *BitmapImage) Save(filename string) error {
	newBitmap, err := os.Create(filename)
	if err != nil {
		return saveError(CannotOpen, filename, err)
	}
	defer newBitmap.Close()

	// Create a buffer (to reduce syscalls)
	w := bufio.NewWriter(newBitmap)

	n, err := b.Encode(w)
	if err != nil {
		var berr *Error
		if errors.As(err, &berr) {
			berr.Path = filename
		}
		return err
	}
	if err := w.Flush(); err != nil {
		return saveError(WriteFailed, filename, err)
	}
	if err := newBitmap.Close(); err != nil {
		return saveError(WriteFailed, filename, err)
	}

	Logger.WithFields(logrus.Fields{"file": filename, "bytes": n}).Infof("wrote %d bytes of pixel data", n)
	return nil
}

// Encode writes the headers exactly as stored followed by the pixel rows.
// It returns the number of pixel bytes written (height x width x 3).
func (b *BitmapImage) Encode(w io.Writer) (int, error) {
	width := b.Width()
	height := b.Height()
	if width <= 0 || height <= 0 || len(b.Pixels) != height {
		return 0, saveError(InvalidSize, "", fmt.Errorf("%dx%d header, %d rows", width, height, len(b.Pixels)))
	}

	if b.BFHeader.OffBits < FileHeaderSize+InfoHeaderSize {
		return 0, saveError(Unsupported, "", fmt.Errorf("pixel offset %d inside the headers", b.BFHeader.OffBits))
	}

	fh, _ := b.BFHeader.MarshalBinary()
	ih, _ := b.BIHeader.MarshalBinary()
	if _, err := w.Write(fh); err != nil {
		return 0, saveError(WriteFailed, "", err)
	}
	if _, err := w.Write(ih); err != nil {
		return 0, saveError(WriteFailed, "", err)
	}

	// Fill any gap so the pixels land at OffBits
	if gap := int(b.BFHeader.OffBits) - FileHeaderSize - InfoHeaderSize; gap > 0 {
		if _, err := w.Write(make([]byte, gap)); err != nil {
			return 0, saveError(WriteFailed, "", err)
		}
	}

	stride := rowStride(width, b.Packed)
	rowBuf := make([]byte, stride)
	written := 0
	for row := range height {
		if len(b.Pixels[row]) != width {
			return written, saveError(InvalidSize, "", fmt.Errorf("row %d has %d pixels, want %d", row, len(b.Pixels[row]), width))
		}
		for col, p := range b.Pixels[row] {
			copy(rowBuf[col*BytesPerPixel:], p.BytesBGR())
		}

		// Padding bytes at the tail of rowBuf are never touched and stay zero
		if _, err := w.Write(rowBuf); err != nil {
			return written, saveError(WriteFailed, "", err)
		}
		written += width * BytesPerPixel
	}

	return written, nil
}

// Returns a Copy of the bitmap image
func (b *BitmapImage) Copy() *BitmapImage {
	bfh := *b.BFHeader
	bih := *b.BIHeader
	newBitmap := BitmapImage{
		Filename: b.Filename,
		Packed:   b.Packed,
		BFHeader: &bfh,
		BIHeader: &bih,
	}

	// Copy over pixels too
	newBitmap.Pixels = make([][]Pixel, len(b.Pixels))
	for row := range b.Pixels {
		newBitmap.Pixels[row] = make([]Pixel, len(b.Pixels[row]))
		copy(newBitmap.Pixels[row], b.Pixels[row])
	}

	return &newBitmap
}

// ReplacePixels swaps in a freshly built grid and sets Width and Height
// from it. Size fields in the file header are left alone.
func (b *BitmapImage) ReplacePixels(pixels [][]Pixel) {
	b.Pixels = pixels
	b.BIHeader.Height = int32(len(pixels))
	if len(pixels) > 0 {
		b.BIHeader.Width = int32(len(pixels[0]))
	} else {
		b.BIHeader.Width = 0
	}
}

func (b *BitmapImage) Width() int {
	return int(b.BIHeader.Width)
}

func (b *BitmapImage) Height() int {
	return int(b.BIHeader.Height)
}

// Bytes per row on disk (incl. padding)
func (b *BitmapImage) Stride() int {
	return rowStride(b.Width(), b.Packed)
}

// Padding bytes after each row on disk
func (b *BitmapImage) Padding() int {
	return b.Stride() - b.Width()*BytesPerPixel
}

// Print the bitmap in terminal as truecolor blocks. Rows are stored
// bottom-up, so the last stored row is drawn first. Use for small images only
func (b *BitmapImage) PrintBitmap(w io.Writer) {
	for row := len(b.Pixels) - 1; row >= 0; row-- {
		line := make([]byte, 0, len(b.Pixels[row])*24)
		for _, pixel := range b.Pixels[row] {
			line = pixel.appendBlock(line)
		}
		line = append(line, '\n')
		w.Write(line)
	}
}

// Appends a two-cell ANSI background block in the pixel's color
func (p Pixel) appendBlock(dst []byte) []byte {
	return fmt.Appendf(dst, "\033[48;2;%d;%d;%dm  \033[0m", p.R, p.G, p.B)
}

// Print the Metadata bitmap in terminal. (in human-readable format)
func (b *BitmapImage) PrintMetadata(w io.Writer) {
	fmt.Fprintf(w, "Filename: \t%v\n", b.Filename)
	fmt.Fprintf(w, "Filesize: \t%v bytes\n", b.BFHeader.Size)
	fmt.Fprintf(w, "Width: \t\t%v px\n", b.BIHeader.Width)
	fmt.Fprintf(w, "Height: \t%v px\n", b.BIHeader.Height)
	fmt.Fprintf(w, "BitCount: \t%vbits\n", b.BIHeader.BitCount)
	fmt.Fprintf(w, "PixelOffset: \t%v bytes\n", b.BFHeader.OffBits)
	fmt.Fprintf(w, "PixelCount: \t%v pixels\n", b.Width()*b.Height())
	fmt.Fprintf(w, "Stride: \t%v bytes\n", b.Stride())
	fmt.Fprintf(w, "Padding: \t%v bytes\n", b.Padding())
}
