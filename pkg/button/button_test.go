package button

import (
	"image"
	"image/color"
	"testing"

	"github.com/dingauto/dingworker/pkg/vision"
)

// uniformFrame 生成纯色测试帧
func uniformFrame(w, h int, c vision.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

func TestNewDefaults(t *testing.T) {
	area := vision.NewArea(10, 20, 30, 40)
	b := New("OK", area, vision.NewColor(1, 2, 3))

	if b.Name != "OK" {
		t.Errorf("Name = %s, 期望 OK", b.Name)
	}
	if b.StaticButton() != area {
		t.Error("缺省点击区域应等于搜索区域")
	}
	if b.ActiveButton() != area {
		t.Error("未修正时生效点击区域应等于静态区域")
	}
	if b.Animated() {
		t.Error("无模板素材时不应标记为动画")
	}

	g := New("ANI", area, vision.Color{}, WithFile("popup.gif"))
	if !g.Animated() {
		t.Error(".gif 素材应标记为动画模板")
	}
}

func TestAppearsOn(t *testing.T) {
	c := vision.NewColor(231, 181, 90)
	b := New("BTN", vision.NewArea(10, 10, 50, 50), c)

	frame := uniformFrame(100, 100, c)
	ok, err := b.AppearsOn(frame, WithColorThreshold(0))
	if err != nil {
		t.Fatalf("AppearsOn 失败: %v", err)
	}
	if !ok {
		t.Error("颜色完全一致时阈值 0 应命中")
	}

	// 单通道差 11，超过默认阈值 10
	off := uniformFrame(100, 100, vision.NewColor(242, 181, 90))
	ok, err = b.AppearsOn(off)
	if err != nil {
		t.Fatalf("AppearsOn 失败: %v", err)
	}
	if ok {
		t.Error("通道差超过阈值时不应命中")
	}

	ok, _ = b.AppearsOn(off, WithColorThreshold(15))
	if !ok {
		t.Error("放宽阈值到 15 后应命中")
	}
}

func TestAppearsOnLabMetric(t *testing.T) {
	c := vision.NewColor(120, 120, 120)
	b := New("BTN", vision.NewArea(0, 0, 10, 10), c)
	frame := uniformFrame(10, 10, vision.NewColor(122, 120, 119))

	ok, err := b.AppearsOn(frame, WithLabColor(0.05))
	if err != nil {
		t.Fatalf("AppearsOn 失败: %v", err)
	}
	if !ok {
		t.Error("Lab 度量下近似颜色应命中")
	}
}

func TestAppearsOnOutOfBounds(t *testing.T) {
	b := New("BTN", vision.NewArea(90, 90, 120, 120), vision.Color{})
	frame := uniformFrame(100, 100, vision.Color{})

	if _, err := b.AppearsOn(frame); err == nil {
		t.Error("搜索区域越界时应返回错误")
	}
}

func TestLoadColor(t *testing.T) {
	b := New("BTN", vision.NewArea(10, 10, 20, 20), vision.Color{}, WithFile("ref.gif"))
	want := vision.NewColor(50, 60, 70)
	frame := uniformFrame(100, 100, want)

	got, err := b.LoadColor(frame)
	if err != nil {
		t.Fatalf("LoadColor 失败: %v", err)
	}
	if got != want || b.Color() != want {
		t.Errorf("标定后颜色 = %+v, 期望 %+v", b.Color(), want)
	}
	if b.Animated() {
		t.Error("标定后应视为静态参考")
	}
	if b.snapshot == nil {
		t.Error("标定后应缓存区域快照")
	}
}

func TestLoadOffsetAndClear(t *testing.T) {
	area := vision.NewArea(100, 100, 200, 200)
	landmark := New("LANDMARK", area, vision.Color{})
	relocated := landmark.button.Offset(vision.Point{X: 4, Y: 6})
	landmark.buttonOffset = &relocated

	sibling := New("SIBLING", vision.NewArea(300, 100, 400, 200), vision.Color{})
	sibling.LoadOffset(landmark)

	want := sibling.StaticButton().Offset(vision.Point{X: 4, Y: 6})
	if sibling.ActiveButton() != want {
		t.Errorf("传播后点击区域 = %s, 期望 %s", sibling.ActiveButton(), want)
	}

	sibling.ClearOffset()
	if sibling.ActiveButton() != sibling.StaticButton() {
		t.Error("ClearOffset 后应恢复静态点击区域")
	}
}

func TestMatchAppearOn(t *testing.T) {
	c := vision.NewColor(200, 30, 30)
	b := New("BTN", vision.NewArea(10, 10, 20, 20), c)

	// 按钮实际出现在 (15, 18)，即偏移 (5, 8)
	frame := uniformFrame(100, 100, vision.Color{})
	for y := 18; y < 28; y++ {
		for x := 15; x < 25; x++ {
			frame.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}

	ok, err := b.AppearsOn(frame)
	if err != nil {
		t.Fatalf("AppearsOn 失败: %v", err)
	}
	if ok {
		t.Error("静态位置上颜色不匹配，不应命中")
	}

	b.recordOffset(vision.SymmetricMargin(10, 10), vision.Point{X: 15, Y: 18})
	ok, err = b.MatchAppearOn(frame)
	if err != nil {
		t.Fatalf("MatchAppearOn 失败: %v", err)
	}
	if !ok {
		t.Error("修正后的位置上应命中颜色检查")
	}
}

func TestCropGeometry(t *testing.T) {
	b := New("PANEL", vision.NewArea(100, 100, 300, 200), vision.NewColor(1, 2, 3),
		WithClickArea(vision.NewArea(110, 110, 290, 190)))

	sub, err := b.Crop(vision.NewArea(10, 20, 30, 40), nil, "PANEL_SUB")
	if err != nil {
		t.Fatalf("Crop 失败: %v", err)
	}

	if sub.Name != "PANEL_SUB" {
		t.Errorf("派生按钮名 = %s, 期望 PANEL_SUB", sub.Name)
	}
	if sub.Area() != vision.NewArea(110, 120, 130, 140) {
		t.Errorf("派生搜索区域 = %s, 期望 (110, 120, 130, 140)", sub.Area())
	}
	if sub.StaticButton() != vision.NewArea(120, 130, 140, 150) {
		t.Errorf("派生点击区域 = %s, 期望 (120, 130, 140, 150)", sub.StaticButton())
	}
	if sub.Color() != b.Color() {
		t.Error("派生按钮应继承颜色")
	}

	// 原按钮不被修改
	if b.Area() != vision.NewArea(100, 100, 300, 200) {
		t.Error("Crop 不应修改原按钮")
	}
}

func TestMoveInvolution(t *testing.T) {
	b := New("BTN", vision.NewArea(50, 60, 70, 80), vision.Color{})
	v := vision.Point{X: 13, Y: -7}

	moved, err := b.Move(v, nil, "")
	if err != nil {
		t.Fatalf("Move 失败: %v", err)
	}
	back, err := moved.Move(v.Neg(), nil, "")
	if err != nil {
		t.Fatalf("Move 失败: %v", err)
	}

	if back.Area() != b.Area() || back.StaticButton() != b.StaticButton() {
		t.Errorf("Move 往返后区域不一致: area=%s button=%s", back.Area(), back.StaticButton())
	}
	if moved.Name != b.Name {
		t.Error("未指定时派生按钮应继承原名")
	}
}

func TestMoveCalibrates(t *testing.T) {
	want := vision.NewColor(9, 8, 7)
	frame := uniformFrame(100, 100, want)
	b := New("BTN", vision.NewArea(10, 10, 20, 20), vision.Color{})

	moved, err := b.Move(vision.Point{X: 5, Y: 5}, frame, "BTN_MOVED")
	if err != nil {
		t.Fatalf("Move 失败: %v", err)
	}
	if moved.Color() != want {
		t.Errorf("提供帧时应立即标定颜色, 实际 %+v", moved.Color())
	}
}
