package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ImageSizeError 模板尺寸大于搜索窗口
type ImageSizeError struct {
	WindowSize   [2]int
	TemplateSize [2]int
}

func (e *ImageSizeError) Error() string {
	return fmt.Sprintf("模板尺寸 %dx%d 大于搜索窗口 %dx%d",
		e.TemplateSize[0], e.TemplateSize[1], e.WindowSize[0], e.WindowSize[1])
}

// TemplateMatcher 归一化互相关模板匹配器
// 在搜索窗口中定位模板，无论相似度高低都返回最佳位置
type TemplateMatcher struct {
	template gocv.Mat
	window   gocv.Mat
}

// NewTemplateMatcher 创建模板匹配器
// template 为模板图像，window 为搜索窗口，两者均为 RGB Mat
func NewTemplateMatcher(template, window gocv.Mat) *TemplateMatcher {
	return &TemplateMatcher{template: template, window: window}
}

// FindBest 查找最佳匹配位置
// 返回模板在窗口内的左上角坐标和相似度 (TM_CCOEFF_NORMED)
// 阈值判定交由调用方，低于阈值的位置同样返回
func (m *TemplateMatcher) FindBest() (Point, float64, error) {
	if m.window.Rows() < m.template.Rows() || m.window.Cols() < m.template.Cols() {
		return Point{}, 0, &ImageSizeError{
			WindowSize:   [2]int{m.window.Cols(), m.window.Rows()},
			TemplateSize: [2]int{m.template.Cols(), m.template.Rows()},
		}
	}

	winGray := ToGray(m.window)
	tmplGray := ToGray(m.template)
	defer winGray.Close()
	defer tmplGray.Close()

	result := gocv.NewMat()
	defer result.Close()
	gocv.MatchTemplate(winGray, tmplGray, &result, gocv.TmCcoeffNormed, gocv.NewMat())

	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)
	return Point{X: maxLoc.X, Y: maxLoc.Y}, float64(maxVal), nil
}

// ImageToMat 将 image.Image 转换为 RGB Mat
func ImageToMat(img image.Image) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("图像转换失败: %w", err)
	}
	return mat, nil
}

// ToGray 转换为灰度图，源 Mat 为 RGB 通道序
func ToGray(src gocv.Mat) gocv.Mat {
	if src.Channels() == 1 {
		return src.Clone()
	}
	dst := gocv.NewMat()
	gocv.CvtColor(src, &dst, gocv.ColorRGBToGray)
	return dst
}
