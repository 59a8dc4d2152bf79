// Package grid 提供等间距按钮网格：由原点、步长、单元尺寸和行列数
// 按需生成按钮描述符，用于物品栏、等价控件阵列等场景。
package grid

import (
	"fmt"

	"github.com/dingauto/dingworker/pkg/button"
	"github.com/dingauto/dingworker/pkg/vision"
)

// Dims 网格行列数
type Dims struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// InvalidGridIndexError 单元索引超出网格范围
type InvalidGridIndexError struct {
	X    int
	Y    int
	Dims Dims
}

func (e *InvalidGridIndexError) Error() string {
	return fmt.Sprintf("网格索引 (%d, %d) 超出范围 %dx%d", e.X, e.Y, e.Dims.Cols, e.Dims.Rows)
}

// Grid 等间距按钮网格
// 本身不持有按钮，Cell 按需生成；Buttons 物化后缓存于实例
type Grid struct {
	// Name 网格名，单元按钮名由它加索引构成
	Name string

	origin  vision.Point
	delta   vision.Delta
	shape   vision.Size
	dims    Dims
	buttons []*button.Button
}

// New 创建按钮网格
// origin 为首单元原点，delta 为相邻单元步长（可为非整数），
// shape 为单元尺寸，dims 为列数和行数
func New(name string, origin vision.Point, delta vision.Delta, shape vision.Size, dims Dims) *Grid {
	return &Grid{
		Name:   name,
		origin: origin,
		delta:  delta,
		shape:  shape,
		dims:   dims,
	}
}

// Origin 返回网格原点
func (g *Grid) Origin() vision.Point {
	return g.origin
}

// Delta 返回单元步长
func (g *Grid) Delta() vision.Delta {
	return g.delta
}

// Shape 返回单元尺寸
func (g *Grid) Shape() vision.Size {
	return g.shape
}

// Dims 返回行列数
func (g *Grid) Dims() Dims {
	return g.dims
}

// Cell 生成第 (x, y) 个单元的按钮
// 单元原点为 origin + round(delta*(x, y))；颜色未标定，
// 颜色检查需先 LoadColor。索引越界返回 InvalidGridIndexError
func (g *Grid) Cell(x, y int) (*button.Button, error) {
	if x < 0 || x >= g.dims.Cols || y < 0 || y >= g.dims.Rows {
		return nil, &InvalidGridIndexError{X: x, Y: y, Dims: g.dims}
	}
	return g.cellAt(x, y), nil
}

// cellAt 不做越界检查的单元生成，供迭代器和物化使用
func (g *Grid) cellAt(x, y int) *button.Button {
	base := vision.RoundLattice(g.origin, g.delta, x, y)
	area := vision.AreaAt(base, g.shape)
	name := fmt.Sprintf("%s_%d_%d", g.Name, x, y)
	return button.New(name, area, vision.Color{})
}

// Buttons 物化全部单元按钮，行优先（先 y 后 x）
// 首次计算后缓存于实例，重复访问不再重算
func (g *Grid) Buttons() []*button.Button {
	if g.buttons != nil {
		return g.buttons
	}
	buttons := make([]*button.Button, 0, g.dims.Cols*g.dims.Rows)
	for y := 0; y < g.dims.Rows; y++ {
		for x := 0; x < g.dims.Cols; x++ {
			buttons = append(buttons, g.cellAt(x, y))
		}
	}
	g.buttons = buttons
	return g.buttons
}

// Crop 派生新网格：原点按区域左上角平移，单元尺寸取区域宽高
// area 相对网格原点，其余参数不变
func (g *Grid) Crop(area vision.Area, name string) *Grid {
	if name == "" {
		name = g.Name
	}
	return New(
		name,
		vision.Point{X: g.origin.X + area.X1, Y: g.origin.Y + area.Y1},
		g.delta,
		vision.Size{W: area.Width(), H: area.Height()},
		g.dims,
	)
}

// Move 派生新网格，仅平移原点
func (g *Grid) Move(vector vision.Point, name string) *Grid {
	if name == "" {
		name = g.Name
	}
	return New(
		name,
		vision.Point{X: g.origin.X + vector.X, Y: g.origin.Y + vector.Y},
		g.delta,
		g.shape,
		g.dims,
	)
}
