package folio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/eringen/folio/content"
)

// Open Graph cards are drawn on a small canvas with the 7x13 bitmap face and
// scaled up, which keeps the glyphs crisp without shipping a font file.
const (
	ogWidth     = 1200
	ogHeight    = 630
	ogScale     = 3
	ogMargin    = 24
	ogLineH     = 16
	ogMaxLines  = 5
	glyphWidth  = 7
	accentWidth = 4
)

var (
	ogBackground = color.RGBA{0x11, 0x11, 0x11, 0xff}
	ogForeground = color.RGBA{0xf5, 0xf5, 0xf5, 0xff}
	ogMuted      = color.RGBA{0xa3, 0xa3, 0xa3, 0xff}
	ogAccent     = color.RGBA{0xf9, 0x73, 0x16, 0xff}
)

// ogCard is the text drawn on an Open Graph image.
type ogCard struct {
	Title    string
	Subtitle string
	Footer   string
}

func siteCard(site SiteConfig) ogCard {
	return ogCard{Title: site.Name, Subtitle: site.Description, Footer: hostOf(site.URL)}
}

func articleCard(site SiteConfig, a content.Article) ogCard {
	return ogCard{
		Title:    a.Title,
		Subtitle: a.Date(),
		Footer:   site.Name,
	}
}

// writeCard renders card as a 1200x630 PNG.
func writeCard(w io.Writer, card ogCard) error {
	small := image.NewRGBA(image.Rect(0, 0, ogWidth/ogScale, ogHeight/ogScale))
	bounds := small.Bounds()
	draw.Draw(small, bounds, image.NewUniform(ogBackground), image.Point{}, draw.Src)
	draw.Draw(small, image.Rect(0, 0, accentWidth, bounds.Dy()), image.NewUniform(ogAccent), image.Point{}, draw.Src)

	cols := (bounds.Dx() - 2*ogMargin) / glyphWidth
	d := &font.Drawer{Dst: small, Face: basicfont.Face7x13}

	y := ogMargin + ogLineH
	d.Src = image.NewUniform(ogForeground)
	for _, line := range wrapText(card.Title, cols, ogMaxLines) {
		d.Dot = fixed.P(ogMargin, y)
		d.DrawString(line)
		y += ogLineH
	}

	d.Src = image.NewUniform(ogMuted)
	if card.Subtitle != "" {
		y += ogLineH / 2
		for _, line := range wrapText(card.Subtitle, cols, 2) {
			d.Dot = fixed.P(ogMargin, y)
			d.DrawString(line)
			y += ogLineH
		}
	}
	if card.Footer != "" {
		d.Dot = fixed.P(ogMargin, bounds.Dy()-ogMargin)
		d.DrawString(truncateRunes(card.Footer, cols))
	}

	out := image.NewRGBA(image.Rect(0, 0, ogWidth, ogHeight))
	draw.NearestNeighbor.Scale(out, out.Bounds(), small, bounds, draw.Src, nil)
	if err := png.Encode(w, out); err != nil {
		return fmt.Errorf("encode og card: %w", err)
	}
	return nil
}

// wrapText splits s into at most maxLines lines of at most cols runes,
// breaking on spaces. Overflow is marked with "...".
func wrapText(s string, cols, maxLines int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		word = truncateRunes(word, cols)
		n := utf8.RuneCountInString(cur.String())
		if n > 0 && n+1+utf8.RuneCountInString(word) > cols {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = truncateRunes(lines[maxLines-1], cols-3) + "..."
	}
	return lines
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
