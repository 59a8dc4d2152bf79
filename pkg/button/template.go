package button

import (
	"errors"
	"image"

	"gocv.io/x/gocv"

	"github.com/dingauto/dingworker/pkg/vision"
)

var (
	errNoTemplateRef = errors.New("按钮未设置模板素材路径")
	errEmptyTemplate = errors.New("模板不包含任何参考帧")
)

// TemplateKind 模板种类
type TemplateKind int

const (
	// TemplateStatic 静态模板，单帧
	TemplateStatic TemplateKind = iota
	// TemplateAnimated 动画模板，循环帧序列
	TemplateAnimated
)

// Template 已加载的模板
// 每帧为按钮搜索区域裁剪后的 RGB Mat
type Template struct {
	Kind   TemplateKind
	Frames []gocv.Mat
}

// newTemplate 把参考帧序列裁剪到搜索区域并转换为 Mat
func newTemplate(frames []image.Image, animated bool, area vision.Area) (*Template, error) {
	if len(frames) == 0 {
		return nil, errEmptyTemplate
	}
	kind := TemplateStatic
	if animated {
		kind = TemplateAnimated
	}

	t := &Template{Kind: kind, Frames: make([]gocv.Mat, 0, len(frames))}
	for _, frame := range frames {
		cropped, err := vision.CropImage(frame, area)
		if err != nil {
			t.Close()
			return nil, err
		}
		mat, err := vision.ImageToMat(cropped)
		if err != nil {
			t.Close()
			return nil, err
		}
		t.Frames = append(t.Frames, mat)
	}
	return t, nil
}

// Close 释放模板占用的 Mat 资源
func (t *Template) Close() {
	for i := range t.Frames {
		t.Frames[i].Close()
	}
	t.Frames = nil
}
