package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func patternBuffer(t *testing.T, w, h, c int) *Buffer {
	t.Helper()
	buf, err := NewBuffer(w, h, c)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	for i := range buf.data {
		buf.data[i] = uint8(i*7 + 3)
	}
	if c == 4 {
		// keep alpha opaque so NRGBA round trips are lossless
		for i := 3; i < len(buf.data); i += 4 {
			buf.data[i] = 255
		}
	}
	return buf
}

func TestSaveLoadPNG(t *testing.T) {
	dir := t.TempDir()
	for _, c := range []int{1, 3, 4} {
		src := patternBuffer(t, 17, 9, c)
		path := filepath.Join(dir, "out.png")

		if err := Save(src, path, DefaultSaveOptions()); err != nil {
			t.Fatalf("channels=%d: Save: %v", c, err)
		}
		got, err := Load(path, c)
		if err != nil {
			t.Fatalf("channels=%d: Load: %v", c, err)
		}
		if !SameShape(got, src) {
			t.Fatalf("channels=%d: shape %dx%dx%d, want %dx%dx%d", c,
				got.Width(), got.Height(), got.Channels(), src.Width(), src.Height(), src.Channels())
		}
		if !bytes.Equal(got.Data(), src.Data()) {
			t.Errorf("channels=%d: PNG round trip changed pixel data", c)
		}
	}
}

func TestLoadNaturalChannels(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		src  *Buffer
		want int
	}{
		{"gray", patternBuffer(t, 4, 4, 1), 1},
		{"rgb", patternBuffer(t, 4, 4, 3), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".png")
			if err := Save(tt.src, path, DefaultSaveOptions()); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path, 0)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Channels() != tt.want {
				t.Errorf("Channels() = %d, want %d", got.Channels(), tt.want)
			}
		})
	}
}

func TestSaveJPEGDropsAlpha(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	src := patternBuffer(t, 16, 16, 4)
	if err := Save(src, path, SaveOptions{JPEGQuality: 90}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path, 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Width() != 16 || got.Height() != 16 {
		t.Errorf("size = %dx%d, want 16x16", got.Width(), got.Height())
	}
	if got.Channels() == 4 {
		t.Error("JPEG reload should not carry alpha")
	}
}

func TestEncodeDecode(t *testing.T) {
	src := patternBuffer(t, 5, 3, 3)
	var buf bytes.Buffer
	if err := Encode(&buf, src, ".png", DefaultSaveOptions()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := LoadFromBytes(buf.Bytes(), 3)
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	if !bytes.Equal(got.Data(), src.Data()) {
		t.Error("Encode/LoadFromBytes changed pixel data")
	}
}

func TestIOErrors(t *testing.T) {
	dir := t.TempDir()
	src := patternBuffer(t, 2, 2, 3)

	if err := Save(src, filepath.Join(dir, "out.xyz"), DefaultSaveOptions()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.xyz) = %v, want ErrUnsupportedFormat", err)
	}
	if err := Save(nil, filepath.Join(dir, "out.png"), DefaultSaveOptions()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Save(nil) = %v, want ErrInvalidInput", err)
	}
	if _, err := LoadFromBytes(nil, 0); !errors.Is(err, ErrEmptyData) {
		t.Errorf("LoadFromBytes(nil) = %v, want ErrEmptyData", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.png"), 0); err == nil {
		t.Error("Load(missing) should fail")
	}
	if _, err := Load(filepath.Join(dir, "missing.png"), 2); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Load(channels=2) = %v, want ErrInvalidShape", err)
	}
	if _, err := LoadFromBytes([]byte("not an image"), 0); err == nil {
		t.Error("LoadFromBytes(garbage) should fail")
	}
}

func TestFromStdImage(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	nrgba.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	rgba, err := FromStdImage(nrgba, 4)
	if err != nil {
		t.Fatalf("FromStdImage: %v", err)
	}
	if px := rgba.PixelBytes(1, 1); !bytes.Equal(px, []byte{200, 100, 50, 128}) {
		t.Errorf("RGBA pixel = %v, want [200 100 50 128]", px)
	}

	rgb, err := FromStdImage(nrgba, 3)
	if err != nil {
		t.Fatalf("FromStdImage: %v", err)
	}
	if px := rgb.PixelBytes(1, 1); !bytes.Equal(px, []byte{200, 100, 50}) {
		t.Errorf("RGB pixel = %v, want [200 100 50]", px)
	}

	if natural, _ := FromStdImage(nrgba, 0); natural.Channels() != 4 {
		t.Errorf("translucent NRGBA natural channels = %d, want 4", natural.Channels())
	}

	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 0, color.Gray{Y: 77})
	g, err := FromStdImage(gray, 0)
	if err != nil {
		t.Fatalf("FromStdImage(gray): %v", err)
	}
	if g.Channels() != 1 || g.At(1, 0, 0) != 77 {
		t.Errorf("gray conversion = %d channels, value %d", g.Channels(), g.At(1, 0, 0))
	}
}

func TestFromStdImageSubImage(t *testing.T) {
	base := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range base.Pix {
		base.Pix[i] = uint8(i)
	}
	sub := base.SubImage(image.Rect(1, 1, 3, 3))

	buf, err := FromStdImage(sub, 1)
	if err != nil {
		t.Fatalf("FromStdImage: %v", err)
	}
	if want := []byte{5, 6, 9, 10}; !bytes.Equal(buf.Data(), want) {
		t.Errorf("sub-image data = %v, want %v", buf.Data(), want)
	}
}

func TestToStdImage(t *testing.T) {
	buf, _ := FromBytes([]byte{1, 2, 3, 4, 5, 6}, 2, 1, 3)
	img := buf.ToStdImage()
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("ToStdImage() = %T, want *image.NRGBA", img)
	}
	if !nrgba.Opaque() {
		t.Error("3-channel conversion should be opaque")
	}
	if c := nrgba.NRGBAAt(1, 0); c != (color.NRGBA{R: 4, G: 5, B: 6, A: 255}) {
		t.Errorf("pixel = %v, want {4 5 6 255}", c)
	}
}

func TestPNGLevel(t *testing.T) {
	levels := map[int]bool{}
	for n := -1; n <= 9; n++ {
		levels[int(PNGLevel(n))] = true
	}
	if len(levels) != 4 {
		t.Errorf("PNGLevel produced %d distinct levels, want 4", len(levels))
	}
}
