package vision

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// Color 表示 RGB 颜色，通道取值 0-255
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// NewColor 创建颜色
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// DefaultColorThreshold 默认颜色相似度阈值（单通道最大差值）
const DefaultColorThreshold = 10

// GetColor 计算帧中指定区域的平均颜色
// 区域超出帧边界时返回 OutOfBoundsError
func GetColor(frame image.Image, area Area) (Color, error) {
	if frame == nil {
		return Color{}, &OutOfBoundsError{Area: area}
	}
	bounds := frame.Bounds()
	if !area.In(bounds) {
		return Color{}, &OutOfBoundsError{Area: area, Frame: bounds}
	}
	if area.Width() == 0 || area.Height() == 0 {
		return Color{}, &OutOfBoundsError{Area: area, Frame: bounds}
	}

	var sumR, sumG, sumB uint64
	for y := area.Y1; y < area.Y2; y++ {
		for x := area.X1; x < area.X2; x++ {
			r, g, b, _ := frame.At(x, y).RGBA()
			sumR += uint64(r >> 8)
			sumG += uint64(g >> 8)
			sumB += uint64(b >> 8)
		}
	}

	n := uint64(area.Width() * area.Height())
	return Color{
		R: uint8(sumR / n),
		G: uint8(sumG / n),
		B: uint8(sumB / n),
	}, nil
}

// ColorSimilar 判断两个颜色是否相似
// 度量为各通道绝对差的最大值，<= threshold 视为相似
func ColorSimilar(a, b Color, threshold int) bool {
	diff := absDiff(a.R, b.R)
	if d := absDiff(a.G, b.G); d > diff {
		diff = d
	}
	if d := absDiff(a.B, b.B); d > diff {
		diff = d
	}
	return diff <= threshold
}

// ColorSimilarLab 基于 CIE Lab 距离判断颜色是否相似
// 感知均匀度量，适合对亮度变化不敏感的场景
func ColorSimilarLab(a, b Color, maxDist float64) bool {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	return ca.DistanceLab(cb) <= maxDist
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
