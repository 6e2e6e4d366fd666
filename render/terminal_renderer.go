package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/tanks/component"
)

// Glyphs
const (
	glyphGround     = '█'
	glyphTank       = '▄'
	glyphBarrel     = '•'
	glyphProjectile = '*'
	glyphExplosion  = '▒'
)

// Model-space extents; shapes are unit sized and scaled by their transform
const (
	barrelHalfWidth = 0.15
	barrelLength    = 1.6
	modelBound      = 2
)

var (
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// TerminalRenderer draws frames onto a tcell screen
// Clip space [-1, 1] is stretched over the whole screen; the top row is the HUD
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
	frames uint64
}

// NewTerminalRenderer creates a renderer for an initialized screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// Frames returns the number of frames presented
func (r *TerminalRenderer) Frames() uint64 {
	return r.frames
}

// Render draws a frame and shows it
func (r *TerminalRenderer) Render(f *Frame) error {
	r.width, r.height = r.screen.Size()
	r.screen.Clear()
	if r.width <= 0 || r.height <= 0 {
		return nil
	}

	for _, d := range f.Drawables {
		switch d := d.(type) {
		case component.TerrainDrawable:
			r.drawTerrain(f, d.Locals.Color)
		case component.TankDrawable:
			r.fillShape(d.Body.Transform, isDome, r.style(d.Body.Color), glyphTank)
			r.fillShape(d.Barrel.Transform, isBarrel, r.style(d.Barrel.Color), glyphBarrel)
		case component.ProjectileDrawable:
			r.fillShape(d.Locals.Transform, isUnitSquare, r.style(d.Locals.Color), glyphProjectile)
		case component.ExplosionDrawable:
			r.fillShape(d.Locals.Transform, isUnitDisc, r.style(d.Locals.Color), glyphExplosion)
		}
	}

	r.drawHUD(&f.HUD)
	r.screen.Show()
	r.frames++
	return nil
}

func (r *TerminalRenderer) style(c [3]float32) tcell.Style {
	return tcell.StyleDefault.Foreground(rgb(c))
}

func rgb(c [3]float32) tcell.Color {
	return tcell.NewRGBColor(channel(c[0]), channel(c[1]), channel(c[2]))
}

func channel(v float32) int32 {
	return int32(math.Round(float64(min(max(v, 0), 1)) * 255))
}

// toCell maps clip coordinates to a screen cell; y grows downwards on screen
func (r *TerminalRenderer) toCell(cx, cy float32) (int, int) {
	col := int(math.Floor(float64((cx + 1) / 2 * float32(r.width))))
	row := int(math.Floor(float64((1 - cy) / 2 * float32(r.height))))
	return col, row
}

// toClip returns the clip coordinates of a cell's center
func (r *TerminalRenderer) toClip(col, row int) (float32, float32) {
	cx := (float32(col)+0.5)/float32(r.width)*2 - 1
	cy := 1 - (float32(row)+0.5)/float32(r.height)*2
	return cx, cy
}

func (r *TerminalRenderer) set(col, row int, glyph rune, style tcell.Style) {
	if col < 0 || row < 0 || col >= r.width || row >= r.height {
		return
	}
	r.screen.SetContent(col, row, glyph, nil, style)
}

// fillShape rasterizes a model-space predicate through a model-to-clip transform
// Shapes smaller than a cell still mark the cell under their origin
func (r *TerminalRenderer) fillShape(m mgl32.Mat4, inside func(x, y float32) bool, style tcell.Style, glyph rune) {
	minCol, minRow := math.MaxInt, math.MaxInt
	maxCol, maxRow := math.MinInt, math.MinInt
	for _, corner := range [4][2]float32{
		{-modelBound, -modelBound}, {modelBound, -modelBound},
		{-modelBound, modelBound}, {modelBound, modelBound},
	} {
		p := m.Mul4x1(mgl32.Vec4{corner[0], corner[1], 0, 1})
		col, row := r.toCell(p.X(), p.Y())
		minCol, maxCol = min(minCol, col), max(maxCol, col)
		minRow, maxRow = min(minRow, row), max(maxRow, row)
	}
	minCol, minRow = max(minCol, 0), max(minRow, 0)
	maxCol, maxRow = min(maxCol, r.width-1), min(maxRow, r.height-1)

	inv := m.Inv()
	drawn := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			cx, cy := r.toClip(col, row)
			p := inv.Mul4x1(mgl32.Vec4{cx, cy, 0, 1})
			if inside(p.X(), p.Y()) {
				r.set(col, row, glyph, style)
				drawn = true
			}
		}
	}
	if !drawn {
		origin := m.Col(3)
		col, row := r.toCell(origin.X(), origin.Y())
		r.set(col, row, glyph, style)
	}
}

func isUnitDisc(x, y float32) bool {
	return x*x+y*y <= 1
}

func isDome(x, y float32) bool {
	return y >= 0 && isUnitDisc(x, y)
}

func isUnitSquare(x, y float32) bool {
	return x >= -0.5 && x <= 0.5 && y >= -0.5 && y <= 0.5
}

func isBarrel(x, y float32) bool {
	return y >= 0 && y <= barrelLength && x >= -barrelHalfWidth && x <= barrelHalfWidth
}

// drawTerrain fills every column from the ground surface down
func (r *TerminalRenderer) drawTerrain(f *Frame, color [3]float32) {
	if len(f.Terrain) == 0 || f.Width <= 0 || f.Height <= 0 {
		return
	}
	style := r.style(color)
	last := len(f.Terrain) - 1
	for col := 0; col < r.width; col++ {
		x := (float64(col) + 0.5) / float64(r.width) * f.Width
		i := min(max(int(x), 0), last)
		surface := f.Terrain[i] / f.Height
		top := int(math.Round((1 - surface) * float64(r.height)))
		for row := max(top, 0); row < r.height; row++ {
			r.set(col, row, glyphGround, style)
		}
	}
}

func (r *TerminalRenderer) drawHUD(hud *HUD) {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn %d", hud.Turn)
	if hud.Active > 0 {
		fmt.Fprintf(&b, "  Player %d", hud.Active)
	}
	col := r.drawText(0, 0, b.String(), hudStyle)

	for _, p := range hud.Players {
		var text string
		if p.Alive {
			text = fmt.Sprintf("  P%d %3.0f%% %+5.1f° %3.0f%%", p.Number, p.Health, p.Angle, p.Power*100)
		} else {
			text = fmt.Sprintf("  P%d ---", p.Number)
		}
		style := tcell.StyleDefault.Foreground(rgb(p.Color))
		if p.Number == hud.Active {
			style = style.Reverse(true)
		}
		col = r.drawText(col, 0, text, style)
	}

	if hud.Banner != "" && r.height > 1 {
		start := max((r.width-len([]rune(hud.Banner)))/2, 0)
		r.drawText(start, r.height/2, hud.Banner, bannerStyle)
	}
}

// drawText writes a single line and returns the column after it
func (r *TerminalRenderer) drawText(col, row int, text string, style tcell.Style) int {
	for _, ch := range text {
		r.set(col, row, ch, style)
		col++
	}
	return col
}
