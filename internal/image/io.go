package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	// Registered for ingestion; imaging already pulls in bmp and tiff.
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the file extension has no encoder.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// SaveOptions controls encoding in Save and Encode.
type SaveOptions struct {
	// JPEGQuality is clamped to [1, 100]. Zero means 95.
	JPEGQuality int

	// PNGCompression is the PNG compression level.
	PNGCompression png.CompressionLevel
}

// DefaultSaveOptions returns JPEG quality 95 and fast PNG compression.
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{JPEGQuality: 95, PNGCompression: png.BestSpeed}
}

// PNGLevel maps a zlib-style level 0..9 onto the png package levels.
func PNGLevel(n int) png.CompressionLevel {
	switch {
	case n <= 0:
		return png.NoCompression
	case n <= 3:
		return png.BestSpeed
	case n <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// Load decodes the image at path. EXIF orientation is applied.
//
// channels selects the buffer layout: 0 keeps the decoded layout (gray
// images become 1 channel, opaque images 3, everything else 4); 1, 3 or 4
// force that layout.
func Load(path string, channels int) (*Buffer, error) {
	if channels != 0 && !ValidChannels(channels) {
		return nil, fmt.Errorf("%w: requested channels=%d", ErrInvalidShape, channels)
	}
	img, err := imaging.Open(filepath.Clean(path), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image: open %s: %w", path, err)
	}
	return FromStdImage(img, channels)
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader, channels int) (*Buffer, error) {
	if channels != 0 && !ValidChannels(channels) {
		return nil, fmt.Errorf("%w: requested channels=%d", ErrInvalidShape, channels)
	}
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img, channels)
}

// LoadFromBytes decodes an in-memory encoded image.
func LoadFromBytes(data []byte, channels int) (*Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data), channels)
}

// Save encodes b to path. The format follows the extension: .jpg/.jpeg,
// .png, .bmp, .tif/.tiff. JPEG output drops the alpha channel.
func Save(b *Buffer, path string, opts SaveOptions) error {
	if err := Validate("save", b); err != nil {
		return err
	}
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	img := encodable(b, format)
	if err := imaging.Save(img, filepath.Clean(path), encodeOptions(opts)...); err != nil {
		return fmt.Errorf("image: save %s: %w", path, err)
	}
	return nil
}

// Encode writes b to w in the format named by ext (e.g. ".png").
func Encode(w io.Writer, b *Buffer, ext string, opts SaveOptions) error {
	if err := Validate("encode", b); err != nil {
		return err
	}
	format, err := imaging.FormatFromExtension(strings.TrimPrefix(ext, "."))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err := imaging.Encode(w, encodable(b, format), format, encodeOptions(opts)...); err != nil {
		return fmt.Errorf("image: encode %s: %w", format, err)
	}
	return nil
}

func encodeOptions(opts SaveOptions) []imaging.EncodeOption {
	q := opts.JPEGQuality
	if q == 0 {
		q = 95
	}
	q = clamp(q, 1, 100)
	return []imaging.EncodeOption{
		imaging.JPEGQuality(q),
		imaging.PNGCompressionLevel(opts.PNGCompression),
	}
}

// encodable converts b for format. JPEG has no alpha, so RGBA buffers keep
// their RGB bytes and lose alpha instead of being composited.
func encodable(b *Buffer, format imaging.Format) image.Image {
	if format == imaging.JPEG && b.channels == 4 {
		return dropAlpha(b).ToStdImage()
	}
	return b.ToStdImage()
}

func dropAlpha(b *Buffer) *Buffer {
	out, _ := NewBuffer(b.width, b.height, 3)
	for i, j := 0, 0; i < len(b.data); i, j = i+4, j+3 {
		copy(out.data[j:j+3], b.data[i:i+3])
	}
	return out
}

// FromStdImage converts a standard library image into a Buffer.
// See Load for the meaning of channels.
func FromStdImage(img image.Image, channels int) (*Buffer, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if channels == 0 {
		channels = naturalChannels(img)
	}
	buf, err := NewBuffer(width, height, channels)
	if err != nil {
		return nil, err
	}

	if channels == 1 {
		gray, ok := img.(*image.Gray)
		if !ok {
			gray = image.NewGray(image.Rect(0, 0, width, height))
			draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
		}
		for y := range height {
			start := gray.PixOffset(gray.Rect.Min.X, gray.Rect.Min.Y+y)
			copy(buf.Row(y), gray.Pix[start:start+width])
		}
		return buf, nil
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	for y := range height {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		dst := buf.Row(y)
		if channels == 4 {
			copy(dst, src)
			continue
		}
		for x := range width {
			copy(dst[x*3:x*3+3], src[x*4:x*4+3])
		}
	}
	return buf, nil
}

// naturalChannels picks the channel count a decoded image maps to.
func naturalChannels(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

// ToStdImage converts the Buffer to a standard library image.
// Returns *image.Gray for 1 channel and *image.NRGBA otherwise (opaque
// for 3 channels).
func (b *Buffer) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	switch b.channels {
	case 1:
		gray := image.NewGray(rect)
		copy(gray.Pix, b.data)
		return gray

	case 3:
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			row := b.Row(y)
			dstStart := y * nrgba.Stride
			for x := range b.width {
				srcOff := x * 3
				dstOff := dstStart + x*4
				nrgba.Pix[dstOff] = row[srcOff]
				nrgba.Pix[dstOff+1] = row[srcOff+1]
				nrgba.Pix[dstOff+2] = row[srcOff+2]
				nrgba.Pix[dstOff+3] = 255 // Opaque
			}
		}
		return nrgba

	default:
		nrgba := image.NewNRGBA(rect)
		copy(nrgba.Pix, b.data)
		return nrgba
	}
}
