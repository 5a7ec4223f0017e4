package opengl

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureOptions selects sampling state at construction. Zero values fall
// back to the defaults (linear filtering, repeat wrapping, mipmaps).
type TextureOptions struct {
	MinFilter int32
	MagFilter int32
	WrapS     int32
	WrapT     int32
	Mipmaps   bool
}

func DefaultTextureOptions() TextureOptions {
	return TextureOptions{
		MinFilter: gl.LINEAR_MIPMAP_LINEAR,
		MagFilter: gl.LINEAR,
		WrapS:     gl.REPEAT,
		WrapT:     gl.REPEAT,
		Mipmaps:   true,
	}
}

// Texture owns one GPU image uploaded as RGBA8. The source pixel buffer is
// only held during construction; after upload the GPU copy is the only one.
type Texture struct {
	noCopy noCopy

	drv      Driver
	id       uint32
	width    int32
	height   int32
	maxUnits int32
}

// NewTextureFromFile decodes path and uploads it. Rows are flipped during
// decode so row 0 is the bottom, matching the GPU's texture coordinate
// origin. Decode failures wrap ErrTextureLoad and leave no GPU resource
// behind; callers substitute a placeholder or skip.
func NewTextureFromFile(drv Driver, path string, opts TextureOptions) (*Texture, error) {
	pixels, width, height, err := loadPixels(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTextureLoad, path, err)
	}
	return NewTextureFromPixels(drv, width, height, pixels, opts), nil
}

// NewTextureFromPixels uploads a raw RGBA8 pixel buffer (width*height*4
// bytes, row 0 at the bottom).
func NewTextureFromPixels(drv Driver, width, height int32, pixels []byte, opts TextureOptions) *Texture {
	if opts == (TextureOptions{}) {
		opts = DefaultTextureOptions()
	}

	id := drv.GenTexture()
	drv.BindTexture(gl.TEXTURE_2D, id)

	drv.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, opts.WrapS)
	drv.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, opts.WrapT)
	drv.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, opts.MinFilter)
	drv.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, opts.MagFilter)

	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = unsafe.Pointer(&pixels[0])
	}
	drv.TexImage2D(gl.TEXTURE_2D, width, height, ptr)
	if opts.Mipmaps {
		drv.GenerateMipmap(gl.TEXTURE_2D)
	}

	drv.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{
		drv:      drv,
		id:       id,
		width:    width,
		height:   height,
		maxUnits: drv.GetInteger(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS),
	}
}

// NewSolidColorTexture builds a 1x1 texture of one color. The usual
// placeholder when a file fails to load.
func NewSolidColorTexture(drv Driver, c color.RGBA) *Texture {
	pixels := []byte{c.R, c.G, c.B, c.A}
	opts := DefaultTextureOptions()
	opts.MinFilter = gl.NEAREST
	opts.MagFilter = gl.NEAREST
	opts.Mipmaps = false
	return NewTextureFromPixels(drv, 1, 1, pixels, opts)
}

// NewCheckerTexture builds a size x size checkerboard of two colors.
func NewCheckerTexture(drv Driver, size int32, c1, c2 color.RGBA) *Texture {
	blockSize := size / 8
	if blockSize < 1 {
		blockSize = 1
	}

	pixels := make([]byte, size*size*4)
	for y := int32(0); y < size; y++ {
		for x := int32(0); x < size; x++ {
			c := c1
			if ((x/blockSize)+(y/blockSize))%2 == 1 {
				c = c2
			}
			idx := (y*size + x) * 4
			pixels[idx] = c.R
			pixels[idx+1] = c.G
			pixels[idx+2] = c.B
			pixels[idx+3] = c.A
		}
	}

	return NewTextureFromPixels(drv, size, size, pixels, DefaultTextureOptions())
}

// Bind activates the given texture unit and binds the texture to it. The
// unit is validated against the driver's combined unit limit; exceeding it
// is undefined behavior upstream.
func (t *Texture) Bind(unit uint32) error {
	if int32(unit) >= t.maxUnits {
		return fmt.Errorf("%w: unit %d, driver limit %d", ErrInvalidTextureUnit, unit, t.maxUnits)
	}

	t.drv.ActiveTexture(gl.TEXTURE0 + unit)
	t.drv.BindTexture(gl.TEXTURE_2D, t.id)
	return nil
}

func (t *Texture) Unbind() {
	t.drv.BindTexture(gl.TEXTURE_2D, 0)
}

func (t *Texture) Width() int32 {
	return t.width
}

func (t *Texture) Height() int32 {
	return t.height
}

// Release frees the GPU image. Safe to call more than once.
func (t *Texture) Release() {
	if t.id != 0 {
		t.drv.DeleteTexture(t.id)
		t.id = 0
	}
}

// loadPixels decodes an image file into a flat RGBA8 buffer with row 0 at
// the bottom. Any source channel layout is converted to 4-channel RGBA.
func loadPixels(path string) ([]byte, int32, int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, 0, err
	}

	bounds := img.Bounds()
	width := int32(bounds.Dx())
	height := int32(bounds.Dy())
	pixels := make([]byte, int(width)*int(height)*4)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Image rows run top to bottom, texture rows bottom to top.
		dstRow := int(height) - 1 - (y - bounds.Min.Y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			idx := (dstRow*int(width) + (x - bounds.Min.X)) * 4
			pixels[idx] = uint8(r >> 8)
			pixels[idx+1] = uint8(g >> 8)
			pixels[idx+2] = uint8(b >> 8)
			pixels[idx+3] = uint8(a >> 8)
		}
	}

	return pixels, width, height, nil
}
