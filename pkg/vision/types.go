// Package vision 提供按钮识别所需的几何、颜色与模板匹配基础能力。
// 高层的按钮/网格对象在 pkg/button 和 pkg/grid 中。
package vision

import (
	"fmt"
	"image"
	"math"
)

// Point 表示二维坐标点
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Neg 返回反向向量
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Size 表示二维尺寸
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Delta 表示网格单元间距，允许非整数步长
type Delta struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Area 表示矩形区域 (left, top, right, bottom)，帧像素坐标
// 约定 X1 <= X2 且 Y1 <= Y2
type Area struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// NewArea 创建矩形区域
func NewArea(x1, y1, x2, y2 int) Area {
	return Area{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// AreaAt 从原点和尺寸创建矩形区域
func AreaAt(origin Point, size Size) Area {
	return Area{X1: origin.X, Y1: origin.Y, X2: origin.X + size.W, Y2: origin.Y + size.H}
}

// Offset 平移矩形，返回新区域，不修改原值
func (a Area) Offset(v Point) Area {
	return Area{X1: a.X1 + v.X, Y1: a.Y1 + v.Y, X2: a.X2 + v.X, Y2: a.Y2 + v.Y}
}

// Expand 按四元组边距扩展矩形，两个角点独立偏移
// 负的左上边距向外扩展搜索窗口
func (a Area) Expand(margin Area) Area {
	return Area{X1: a.X1 + margin.X1, Y1: a.Y1 + margin.Y1, X2: a.X2 + margin.X2, Y2: a.Y2 + margin.Y2}
}

// TopLeft 返回左上角点
func (a Area) TopLeft() Point {
	return Point{X: a.X1, Y: a.Y1}
}

// BottomRight 返回右下角点
func (a Area) BottomRight() Point {
	return Point{X: a.X2, Y: a.Y2}
}

// Center 返回中心点
func (a Area) Center() Point {
	return Point{X: (a.X1 + a.X2) / 2, Y: (a.Y1 + a.Y2) / 2}
}

// Width 返回宽度
func (a Area) Width() int {
	return a.X2 - a.X1
}

// Height 返回高度
func (a Area) Height() int {
	return a.Y2 - a.Y1
}

// In 检查区域是否完全落在给定图像边界内
func (a Area) In(bounds image.Rectangle) bool {
	return a.X1 >= bounds.Min.X && a.Y1 >= bounds.Min.Y &&
		a.X2 <= bounds.Max.X && a.Y2 <= bounds.Max.Y &&
		a.X1 <= a.X2 && a.Y1 <= a.Y2
}

// ToImageRect 转换为 image.Rectangle
func (a Area) ToImageRect() image.Rectangle {
	return image.Rect(a.X1, a.Y1, a.X2, a.Y2)
}

// String 返回字符串表示
func (a Area) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", a.X1, a.Y1, a.X2, a.Y2)
}

// ScalarMargin 单值边距：横向固定 ±3，纵向 ±n
// 屏幕控件的漂移多为纵向，横向窗口保持很小避免误匹配
func ScalarMargin(n int) Area {
	return Area{X1: -3, Y1: -n, X2: 3, Y2: n}
}

// SymmetricMargin 对称边距：横向 ±x，纵向 ±y
func SymmetricMargin(x, y int) Area {
	return Area{X1: -x, Y1: -y, X2: x, Y2: y}
}

// RoundLattice 计算网格点坐标 origin + delta*(x, y)，四舍五入取整
func RoundLattice(origin Point, delta Delta, x, y int) Point {
	return Point{
		X: int(math.Round(float64(origin.X) + delta.X*float64(x))),
		Y: int(math.Round(float64(origin.Y) + delta.Y*float64(y))),
	}
}
