// Package button 提供可识别的屏幕按钮描述符：
// 期望区域、期望颜色、点击区域与可选的模板图像（静态或 GIF 动画）。
package button

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

// AssetLoadError 模板素材缺失、不可读或格式错误
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("无法加载模板素材: %s", e.Path)
	}
	return fmt.Sprintf("无法加载模板素材 %s: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// Store 模板素材仓库
// 返回完整分辨率的参考帧序列，静态图像为单帧，GIF 为多帧
type Store interface {
	Load(path string) (frames []image.Image, animated bool, err error)
}

// DefaultStore 包级默认素材仓库，按钮未显式注入时使用
var DefaultStore Store = &FileStore{}

// FileStore 基于文件系统的素材仓库
type FileStore struct {
	// Root 素材根目录，空时按原路径读取
	Root string
}

// Load 读取模板素材文件
// .gif 按动画逐帧解码（含帧合成），其余格式按单帧图像解码
func (s *FileStore) Load(path string) ([]image.Image, bool, error) {
	filename := path
	if s.Root != "" && !filepath.IsAbs(filename) {
		filename = filepath.Join(s.Root, filename)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, false, &AssetLoadError{Path: path, Err: err}
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(filename), ".gif") {
		frames, err := decodeGIF(f)
		if err != nil {
			return nil, false, &AssetLoadError{Path: path, Err: err}
		}
		return frames, true, nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, false, &AssetLoadError{Path: path, Err: err}
	}
	return []image.Image{img}, false, nil
}

// decodeGIF 解码 GIF 动画并合成每一帧的完整画面
// GIF 帧可能只携带差异区域，需要叠加在前一帧之上
func decodeGIF(f *os.File) ([]image.Image, error) {
	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("GIF 不包含任何帧")
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}

	canvas := image.NewRGBA(bounds)
	frames := make([]image.Image, 0, len(g.Image))
	for _, src := range g.Image {
		draw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, draw.Over)
		frame := image.NewRGBA(bounds)
		draw.Draw(frame, bounds, canvas, bounds.Min, draw.Src)
		frames = append(frames, frame)
	}
	return frames, nil
}
