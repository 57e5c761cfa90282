package certimage

import (
	"bytes"
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Fallback canvas size when no template image is configured (A4 landscape at
// ~96 dpi).
const (
	fallbackWidth  = 1123
	fallbackHeight = 794
)

// Renderer composes certificate images: the student name centered at a fixed
// vertical anchor on the template, with two caption lines below it.
type Renderer struct {
	templatePath string
	nameFace     font.Face
	captionFace  font.Face
}

// NewRenderer loads the template and font once. Both paths may be empty: with
// no font the bundled Go regular face is used, with no template a plain
// background is drawn instead.
func NewRenderer(templatePath, fontPath string) (*Renderer, error) {
	ttf := goregular.TTF
	if fontPath != "" {
		data, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("read certificate font: %w", err)
		}
		ttf = data
	}

	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse certificate font: %w", err)
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err != nil {
			return nil, fmt.Errorf("certificate template: %w", err)
		}
	}

	return &Renderer{
		templatePath: templatePath,
		nameFace:     truetype.NewFace(parsed, &truetype.Options{Size: 64}),
		captionFace:  truetype.NewFace(parsed, &truetype.Options{Size: 28}),
	}, nil
}

// Compose renders the certificate and returns it as PNG bytes.
func (r *Renderer) Compose(displayName, courseTitle string) ([]byte, error) {
	dc, err := r.newCanvas()
	if err != nil {
		return nil, err
	}

	w := float64(dc.Width())
	nameY := float64(dc.Height()) * 0.46

	dc.SetRGB(0.13, 0.15, 0.3)
	dc.SetFontFace(r.nameFace)
	dc.DrawStringAnchored(displayName, w/2, nameY, 0.5, 0.5)

	dc.SetFontFace(r.captionFace)
	dc.DrawStringAnchored("has successfully completed the course", w/2, nameY+70, 0.5, 0.5)
	dc.DrawStringAnchored(courseTitle, w/2, nameY+115, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode certificate png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) newCanvas() (*gg.Context, error) {
	if r.templatePath == "" {
		dc := gg.NewContext(fallbackWidth, fallbackHeight)
		dc.SetRGB(0.97, 0.96, 0.93)
		dc.Clear()
		dc.SetRGB(0.13, 0.15, 0.3)
		dc.SetLineWidth(6)
		dc.DrawRectangle(30, 30, fallbackWidth-60, fallbackHeight-60)
		dc.Stroke()
		return dc, nil
	}

	f, err := os.Open(r.templatePath)
	if err != nil {
		return nil, fmt.Errorf("open certificate template: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode certificate template: %w", err)
	}
	return gg.NewContextForImage(img), nil
}
