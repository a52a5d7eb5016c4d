package convert

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	"floatscene/internal/utils"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"
)

const (
	texMagic        = "TEXV0005"
	texFormatDXT1   = 4
	texFormatDXT5   = 6
	texFormatDXT1a  = 7
	texFormatRG88   = 8
	texFormatR8     = 9
	maxTexDimension = 16384
)

var ErrNoTexImage = errors.New("no image found in texture")

// texReader reads little-endian fields and keeps the first error.
type texReader struct {
	r   io.Reader
	err error
}

func (t *texReader) uint32() uint32 {
	var v uint32
	if t.err == nil {
		t.err = binary.Read(t.r, binary.LittleEndian, &v)
	}
	return v
}

// tag reads an n byte NUL padded tag followed by one terminator byte.
func (t *texReader) tag(n int) string {
	b := make([]byte, n+1)
	if t.err == nil {
		_, t.err = io.ReadFull(t.r, b)
	}
	return string(bytes.Trim(b[:n], "\x00"))
}

func (t *texReader) bytes(n uint32) []byte {
	if t.err != nil {
		return nil
	}
	b := make([]byte, n)
	_, t.err = io.ReadFull(t.r, b)
	return b
}

// DecodeTex decodes the first mip of the first image in a TEXV texture.
func DecodeTex(r io.Reader) (image.Image, error) {
	tr := &texReader{r: r}

	magic := tr.tag(8)
	tr.tag(8)
	if tr.err != nil {
		return nil, fmt.Errorf("read header: %w", tr.err)
	}
	if magic != texMagic {
		return nil, fmt.Errorf("invalid magic: %s", magic)
	}

	format := tr.uint32()
	tr.uint32() // flags
	tr.uint32() // texture width
	tr.uint32() // texture height
	imgW := tr.uint32()
	imgH := tr.uint32()
	tr.uint32()

	container := tr.tag(8)
	imageCount := tr.uint32()
	if container == "TEXB0003" {
		tr.uint32()
	}
	if tr.err != nil {
		return nil, fmt.Errorf("read container: %w", tr.err)
	}
	utils.Debug("    Format: %d, Size: %dx%d, Container: %s", format, imgW, imgH, container)

	if imageCount == 0 {
		return nil, ErrNoTexImage
	}

	mipCount := tr.uint32()
	if tr.err != nil {
		return nil, tr.err
	}
	if mipCount == 0 {
		return nil, ErrNoTexImage
	}

	mipW := tr.uint32()
	mipH := tr.uint32()
	var isLZ4 bool
	var decompressedSize uint32
	if container != "TEXB0001" {
		isLZ4 = tr.uint32() == 1
		decompressedSize = tr.uint32()
	}
	dataSize := tr.uint32()
	if tr.err != nil {
		return nil, tr.err
	}
	if mipW == 0 || mipH == 0 || mipW > maxTexDimension || mipH > maxTexDimension {
		return nil, fmt.Errorf("bad mip size %dx%d", mipW, mipH)
	}

	data := tr.bytes(dataSize)
	if tr.err != nil {
		return nil, fmt.Errorf("read mip data: %w", tr.err)
	}

	if isLZ4 {
		utils.Debug("    Decompressing LZ4: %d -> %d", dataSize, decompressedSize)
		decoded := make([]byte, decompressedSize)
		n, err := lz4.UncompressBlock(data, decoded)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		data = decoded[:n]
	}

	pix, err := decodePixels(data, format, mipW, mipH)
	if err != nil {
		return nil, err
	}

	img := &image.RGBA{
		Pix:    pix,
		Stride: int(mipW * 4),
		Rect:   image.Rect(0, 0, int(mipW), int(mipH)),
	}
	if imgW == 0 || imgH == 0 || imgW > mipW || imgH > mipH {
		return img, nil
	}
	return img.SubImage(image.Rect(0, 0, int(imgW), int(imgH))), nil
}

func decodePixels(data []byte, format, w, h uint32) ([]byte, error) {
	blocks := ((w + 3) / 4) * ((h + 3) / 4)
	size := uint32(len(data))

	switch {
	case size == w*h*4:
		utils.Debug("    Type: RGBA")
		return data, nil
	case format == texFormatDXT5 || size == blocks*16:
		utils.Debug("    Type: DXT5")
		return dxt.DecodeDXT5(data, uint(w), uint(h))
	case format == texFormatDXT1 || format == texFormatDXT1a || size == blocks*8:
		utils.Debug("    Type: DXT1")
		return dxt.DecodeDXT1(data, uint(w), uint(h))
	case format == texFormatR8 && size == w*h:
		utils.Debug("    Type: R8")
		pix := make([]byte, w*h*4)
		for i, v := range data {
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = v, v, v, 255
		}
		return pix, nil
	case format == texFormatRG88 && size == w*h*2:
		utils.Debug("    Type: RG88")
		pix := make([]byte, w*h*4)
		for i := uint32(0); i < w*h; i++ {
			lum, alpha := data[i*2], data[i*2+1]
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = lum, lum, lum, alpha
		}
		return pix, nil
	}
	return nil, fmt.Errorf("unsupported format %d with size %d", format, size)
}

// LoadImage decodes a backdrop image from disk. .tex files go through
// DecodeTex, everything else through the registered image decoders.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".tex") {
		utils.Debug("Decoding texture: %s", path)
		img, err := DecodeTex(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// ToRGBA copies any image into a tightly packed RGBA buffer.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}
