package grid

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dingauto/dingworker/pkg/vision"
)

// DefaultMaskSize 掩码画布尺寸，与标准采集分辨率一致
var DefaultMaskSize = vision.Size{W: 1280, H: 720}

// labelFontPaths 标签字体候选路径，找不到时退回内置点阵字体
var labelFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// RenderMask 渲染网格占用区域掩码，用于目视校验网格摆放
// 黑底画布上把每个单元的包络（搜索区域左上角到点击区域右下角）填充为白色，
// 左上角标注网格名
func (g *Grid) RenderMask() *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, DefaultMaskSize.W, DefaultMaskSize.H))
	draw.Draw(canvas, canvas.Bounds(), image.Black, image.Point{}, draw.Src)

	for _, b := range g.Buttons() {
		envelope := image.Rectangle{
			Min: image.Point{X: b.Area().X1, Y: b.Area().Y1},
			Max: image.Point{X: b.ActiveButton().X2, Y: b.ActiveButton().Y2},
		}
		draw.Draw(canvas, envelope.Intersect(canvas.Bounds()), image.White, image.Point{}, draw.Src)
	}

	drawLabel(canvas, 8, 8, g.Name)
	return canvas
}

// SaveMask 把掩码保存为 PNG，path 为空时写入 <网格名>.png
func (g *Grid) SaveMask(path string) error {
	if path == "" {
		path = g.Name + ".png"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建掩码文件失败: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, g.RenderMask()); err != nil {
		return fmt.Errorf("编码掩码图像失败: %w", err)
	}
	return nil
}

// drawLabel 在画布上绘制标签文字
func drawLabel(canvas *image.RGBA, x, y int, text string) {
	gray := image.NewUniform(color.RGBA{R: 160, G: 160, B: 160, A: 255})

	if f := loadLabelFont(); f != nil {
		c := freetype.NewContext()
		c.SetDPI(72)
		c.SetFont(f)
		c.SetFontSize(14)
		c.SetClip(canvas.Bounds())
		c.SetDst(canvas)
		c.SetSrc(gray)
		c.SetHinting(font.HintingFull)

		pt := freetype.Pt(x, y+int(c.PointToFixed(14)>>6))
		if _, err := c.DrawString(text, pt); err == nil {
			return
		}
	}

	// 字体加载失败时退回内置点阵字体
	d := &font.Drawer{
		Dst:  canvas,
		Src:  gray,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+13),
	}
	d.DrawString(text)
}

// loadLabelFont 加载标签用 TrueType 字体，全部失败时返回 nil
func loadLabelFont() *truetype.Font {
	for _, path := range labelFontPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		return f
	}
	return nil
}
