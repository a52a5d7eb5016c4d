package convert

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
)

type texMip struct {
	w, h         uint32
	lz4          bool
	decompressed uint32
	data         []byte
}

func buildTex(t *testing.T, format, imgW, imgH uint32, mip texMip) []byte {
	t.Helper()
	var buf bytes.Buffer
	tag := func(s string) {
		b := make([]byte, 9)
		copy(b, s)
		buf.Write(b)
	}
	u32 := func(v uint32) { binary.Write(&buf, binary.LittleEndian, v) }

	tag("TEXV0005")
	tag("TEXI0001")
	u32(format)
	u32(0)
	u32(mip.w)
	u32(mip.h)
	u32(imgW)
	u32(imgH)
	u32(0)
	tag("TEXB0003")
	u32(1) // images
	u32(0) // container format
	u32(1) // mips
	u32(mip.w)
	u32(mip.h)
	if mip.lz4 {
		u32(1)
	} else {
		u32(0)
	}
	u32(mip.decompressed)
	u32(uint32(len(mip.data)))
	buf.Write(mip.data)
	return buf.Bytes()
}

func solidRGBA(w, h int, c color.RGBA) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = c.R, c.G, c.B, c.A
	}
	return pix
}

func TestDecodeTexRGBA(t *testing.T) {
	want := color.RGBA{10, 20, 30, 255}
	raw := solidRGBA(4, 4, want)
	data := buildTex(t, 0, 3, 2, texMip{w: 4, h: 4, data: raw})

	img, err := DecodeTex(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeTex: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 3x2 crop", b)
	}
	if got := color.RGBAModel.Convert(img.At(1, 1)); got != want {
		t.Fatalf("pixel = %v, want %v", got, want)
	}
}

func TestDecodeTexLZ4(t *testing.T) {
	want := color.RGBA{200, 100, 50, 255}
	raw := solidRGBA(16, 16, want)

	compressed := make([]byte, lz4.CompressBlockBound(len(raw)))
	n, err := lz4.CompressBlock(raw, compressed, nil)
	if err != nil || n == 0 {
		t.Fatalf("compress: n=%d err=%v", n, err)
	}

	data := buildTex(t, 0, 16, 16, texMip{w: 16, h: 16, lz4: true, decompressed: uint32(len(raw)), data: compressed[:n]})
	img, err := DecodeTex(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeTex: %v", err)
	}
	if got := color.RGBAModel.Convert(img.At(15, 15)); got != want {
		t.Fatalf("pixel = %v, want %v", got, want)
	}
}

func TestDecodeTexR8(t *testing.T) {
	raw := []byte{0, 64, 128, 255}
	data := buildTex(t, texFormatR8, 2, 2, texMip{w: 2, h: 2, data: raw})

	img, err := DecodeTex(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeTex: %v", err)
	}
	got := color.RGBAModel.Convert(img.At(0, 1)).(color.RGBA)
	if got.R != 128 || got.G != 128 || got.B != 128 || got.A != 255 {
		t.Fatalf("pixel = %v, want gray 128", got)
	}
}

func TestDecodeTexRejectsBadInput(t *testing.T) {
	if _, err := DecodeTex(bytes.NewReader([]byte("TEXV0004\x00TEXI0001\x00"))); err == nil {
		t.Fatal("expected bad magic error")
	}
	if _, err := DecodeTex(bytes.NewReader([]byte("TEXV"))); err == nil {
		t.Fatal("expected truncated header error")
	}

	data := buildTex(t, 0, 4, 4, texMip{w: 4, h: 4, data: []byte{1, 2, 3}})
	if _, err := DecodeTex(bytes.NewReader(data)); err == nil {
		t.Fatal("expected unsupported size error")
	}
}

func TestPkgRoundTrip(t *testing.T) {
	src := t.TempDir()
	files := map[string]string{
		"scene.json":          `{"count": 5}`,
		"models/logo.glb":     "glTF-binary",
		"materials/sky.tex":   "TEXV0005",
		"materials/empty.bin": "",
	}
	for name, body := range files {
		p := filepath.Join(src, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	pkg := filepath.Join(t.TempDir(), "scene.pkg")
	if err := WritePkg(src, pkg); err != nil {
		t.Fatalf("WritePkg: %v", err)
	}

	out := t.TempDir()
	if err := ExtractPkg(pkg, out); err != nil {
		t.Fatalf("ExtractPkg: %v", err)
	}

	for name, body := range files {
		got, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(name)))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(got) != body {
			t.Fatalf("%s = %q, want %q", name, got, body)
		}
	}
}

func TestWritePkgReportsErrorsAndFlushes(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WritePkg(src, filepath.Join(t.TempDir(), "missing", "scene.pkg")); err == nil {
		t.Fatal("expected an error for an unwritable output path")
	}

	pkg := filepath.Join(t.TempDir(), "scene.pkg")
	if err := WritePkg(src, pkg); err != nil {
		t.Fatalf("WritePkg: %v", err)
	}

	f, err := os.Open(pkg)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	version, entries, dataStart, err := ReadPkgIndex(f)
	if err != nil {
		t.Fatalf("ReadPkgIndex: %v", err)
	}
	if version != PkgVersion || len(entries) != 1 {
		t.Fatalf("got %q with %d entries, want %q with 1", version, len(entries), PkgVersion)
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := info.Size(), dataStart+int64(entries[0].Size); got != want {
		t.Fatalf("file size = %d, want %d", got, want)
	}
}

func TestExtractRejectsEscapingEntry(t *testing.T) {
	var buf bytes.Buffer
	writePkgString(&buf, PkgVersion)
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	writePkgString(&buf, "../evil.txt")
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, uint32(4))
	buf.WriteString("evil")

	pkg := filepath.Join(t.TempDir(), "bad.pkg")
	if err := os.WriteFile(pkg, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ExtractPkg(pkg, filepath.Join(t.TempDir(), "out")); err == nil {
		t.Fatal("expected escaping entry to be rejected")
	}
}

func TestLoadImagePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 0, color.RGBA{255, 0, 0, 255})

	path := filepath.Join(t.TempDir(), "backdrop.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	got, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	rgba := ToRGBA(got)
	if c := rgba.RGBAAt(1, 0); c != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("pixel = %v", c)
	}
}
