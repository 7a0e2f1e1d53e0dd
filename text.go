package showcase

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// FontSource is parsed TrueType data from which faces of any size are made.
type FontSource struct {
	source *text.GoTextFaceSource
}

// LoadFontSource parses raw TTF/OTF data.
func LoadFontSource(ttfData []byte) (*FontSource, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("showcase: failed to parse TTF data: %w", err)
	}
	return &FontSource{source: source}, nil
}

// Face returns a font of the given pixel size backed by this source.
func (fs *FontSource) Face(size float64) *Font {
	face := &text.GoTextFace{
		Source: fs.source,
		Size:   size,
	}
	m := face.Metrics()
	return &Font{
		face: face,
		size: size,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}
}

// Font wraps Ebitengine's text/v2 face at a fixed size.
type Font struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	fs, err := LoadFontSource(ttfData)
	if err != nil {
		return nil, err
	}
	return fs.Face(size), nil
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *Font) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content   string
	Font      *Font
	Color     Color
	WrapWidth float64 // 0 disables word wrapping

	layoutDirty bool
	laidOut     string
	measuredW   float64
	measuredH   float64
	lastContent string
	lastWrap    float64
	lastFont    *Font
}

// SetContent replaces the text and invalidates the cached layout.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.layoutDirty = true
}

// Measure returns the laid-out width and height of the block.
func (tb *TextBlock) Measure() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// layout recomputes wrapping and measurement when any input changed.
func (tb *TextBlock) layout() string {
	if !tb.layoutDirty && tb.lastContent == tb.Content &&
		tb.lastWrap == tb.WrapWidth && tb.lastFont == tb.Font {
		return tb.laidOut
	}
	tb.layoutDirty = false
	tb.lastContent = tb.Content
	tb.lastWrap = tb.WrapWidth
	tb.lastFont = tb.Font

	if tb.Font == nil {
		tb.laidOut = ""
		tb.measuredW, tb.measuredH = 0, 0
		return tb.laidOut
	}
	tb.laidOut = wrapText(tb.Content, tb.Font, tb.WrapWidth)
	tb.measuredW, tb.measuredH = tb.Font.MeasureString(tb.laidOut)
	return tb.laidOut
}

// wrapText breaks s into lines no wider than width, splitting on spaces.
// A single word wider than width stays on its own line.
func wrapText(s string, f *Font, width float64) string {
	if width <= 0 {
		return s
	}
	var out strings.Builder
	for pi, para := range strings.Split(s, "\n") {
		if pi > 0 {
			out.WriteByte('\n')
		}
		var line string
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if line != "" && text.Advance(candidate, f.face) > width {
				out.WriteString(line)
				out.WriteByte('\n')
				line = word
				continue
			}
			line = candidate
		}
		out.WriteString(line)
	}
	return out.String()
}
