package vision

import (
	"fmt"
	"image"
	"image/draw"
)

// OutOfBoundsError 采样或裁剪区域超出帧边界
type OutOfBoundsError struct {
	Area  Area
	Frame image.Rectangle
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("区域 %s 超出帧边界 %v", e.Area, e.Frame)
}

// CropImage 从帧中裁剪指定区域，返回独立的像素副本
// 区域超出帧边界时返回 OutOfBoundsError
func CropImage(frame image.Image, area Area) (*image.RGBA, error) {
	if frame == nil {
		return nil, &OutOfBoundsError{Area: area}
	}
	bounds := frame.Bounds()
	if !area.In(bounds) {
		return nil, &OutOfBoundsError{Area: area, Frame: bounds}
	}

	dst := image.NewRGBA(image.Rect(0, 0, area.Width(), area.Height()))
	draw.Draw(dst, dst.Bounds(), frame, image.Point{X: area.X1, Y: area.Y1}, draw.Src)
	return dst, nil
}
