package viz

import (
	"strings"

	"github.com/san-kum/dalitz/internal/models"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set turns on the dot at sub-pixel (x, y). The canvas is Width*2 by
// Height*4 dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at sub-pixel (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// DensityMap marks every dot whose cell center has a model value above
// level times the largest sampled value. Rows run from YMax at the top to
// YMin at the bottom.
func DensityMap(m models.Model, w, h int, level float64) *Canvas {
	c := NewCanvas(w, h)
	nx, ny := 2*w, 4*h
	if nx == 0 || ny == 0 {
		return c
	}

	dx := (m.XMax() - m.XMin()) / float64(nx)
	dy := (m.YMax() - m.YMin()) / float64(ny)
	vals := make([]float64, nx*ny)
	peak := 0.0
	for j := 0; j < ny; j++ {
		y := m.YMax() - (float64(j)+0.5)*dy
		for i := 0; i < nx; i++ {
			v := m.Evaluate(m.XMin()+(float64(i)+0.5)*dx, y)
			vals[j*nx+i] = v
			peak = max(peak, v)
		}
	}
	if peak <= 0 {
		return c
	}

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			if vals[j*nx+i] > level*peak {
				c.Set(i, j)
			}
		}
	}
	return c
}
