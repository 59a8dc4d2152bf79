package button

import (
	"image"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"github.com/dingauto/dingworker/internal/logger"
	"github.com/dingauto/dingworker/pkg/vision"
)

// Button 屏幕按钮描述符
//
// 构造后除 buttonOffset（模板匹配记录的位置修正）外不再变化。
// buttonOffset 由 Match / LoadOffset 写入、ClearOffset 清除，
// 多个调用方并发修正同一实例时需要外部串行化。
type Button struct {
	// Name 按钮名，注册期显式指定且不再变化
	Name string

	area     vision.Area  // 期望出现的搜索区域
	color    vision.Color // 期望颜色
	button   vision.Area  // 静态点击区域
	file     string       // 模板素材路径，空表示仅支持颜色检查
	animated bool         // 模板是否为动画

	buttonOffset *vision.Area // 匹配修正后的点击区域，nil 表示未修正
	store        Store
	tmpl         *Template    // 懒加载模板，最多加载一次
	snapshot     *image.RGBA  // LoadColor 缓存的区域快照
}

// New 创建按钮描述符
// name 必填；点击区域缺省等于搜索区域
func New(name string, area vision.Area, color vision.Color, opts ...Option) *Button {
	b := &Button{
		Name:   name,
		area:   area,
		color:  color,
		button: area,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// String 返回按钮名
func (b *Button) String() string {
	return b.Name
}

// Area 返回搜索区域
func (b *Button) Area() vision.Area {
	return b.area
}

// Color 返回期望颜色
func (b *Button) Color() vision.Color {
	return b.color
}

// StaticButton 返回静态点击区域
func (b *Button) StaticButton() vision.Area {
	return b.button
}

// ActiveButton 返回当前生效的点击区域
// 存在位置修正时返回修正后的区域，否则返回静态区域
func (b *Button) ActiveButton() vision.Area {
	if b.buttonOffset != nil {
		return *b.buttonOffset
	}
	return b.button
}

// File 返回模板素材路径
func (b *Button) File() string {
	return b.file
}

// Animated 返回模板是否为动画
func (b *Button) Animated() bool {
	return b.animated
}

// AppearsOn 检查按钮是否出现在帧中
// 采样搜索区域的平均颜色并与期望颜色比较
func (b *Button) AppearsOn(frame image.Image, opts ...CheckOption) (bool, error) {
	o := applyCheckOptions(opts...)
	c, err := vision.GetColor(frame, b.area)
	if err != nil {
		return false, err
	}
	return o.similar(c, b.color), nil
}

// AppearsOnOffset 在已修正的位置上检查按钮是否出现
// 把当前生效点击区域与静态点击区域的差值应用到搜索区域后再采样颜色，
// 用于位置已被修正过一次、后续出现检查需要跟随该修正的场景
func (b *Button) AppearsOnOffset(frame image.Image, opts ...CheckOption) (bool, error) {
	o := applyCheckOptions(opts...)
	active := b.ActiveButton()
	diff := vision.Point{X: active.X1 - b.button.X1, Y: active.Y1 - b.button.Y1}
	c, err := vision.GetColor(frame, b.area.Offset(diff))
	if err != nil {
		return false, err
	}
	return o.similar(c, b.color), nil
}

// MatchAppearOn 模板匹配命中后的廉价复查
// 复用此前记录的位置修正做颜色检查，不重新执行模板搜索
func (b *Button) MatchAppearOn(frame image.Image, opts ...CheckOption) (bool, error) {
	return b.AppearsOnOffset(frame, opts...)
}

// LoadColor 从帧的搜索区域重新标定期望颜色
// 不可逆：覆盖期望颜色，并把采样快照安装为单帧静态模板，
// 此后的模板匹配以快照为参考，不再读取素材文件，仅用于一次性标定
func (b *Button) LoadColor(frame image.Image) (vision.Color, error) {
	c, err := vision.GetColor(frame, b.area)
	if err != nil {
		return vision.Color{}, err
	}
	snapshot, err := vision.CropImage(frame, b.area)
	if err != nil {
		return vision.Color{}, err
	}
	mat, err := vision.ImageToMat(snapshot)
	if err != nil {
		return vision.Color{}, err
	}
	if b.tmpl != nil {
		b.tmpl.Close()
	}
	b.tmpl = &Template{Kind: TemplateStatic, Frames: []gocv.Mat{mat}}
	b.color = c
	b.snapshot = snapshot
	b.animated = false
	return c, nil
}

// LoadOffset 复制另一按钮的位置修正量
// 用于把地标按钮检测到的偏移传播给已知一起移动的兄弟按钮
func (b *Button) LoadOffset(other *Button) {
	active := other.ActiveButton()
	offset := vision.Point{X: active.X1 - other.button.X1, Y: active.Y1 - other.button.Y1}
	relocated := b.button.Offset(offset)
	b.buttonOffset = &relocated
}

// ClearOffset 清除位置修正，恢复静态点击区域
func (b *Button) ClearOffset() {
	b.buttonOffset = nil
}

// Match 在帧中通过模板匹配检测按钮，适用于位置不固定的按钮
//
// 搜索窗口为搜索区域按边距扩展后的矩形。静态模板做一次归一化互相关；
// 动画模板逐帧匹配，任一帧超过阈值立即返回。
// 无论是否命中，都会用最佳匹配位置更新点击区域修正，
// 反复调用可以逐步收敛到真实位置。
func (b *Button) Match(frame image.Image, opts ...CheckOption) (bool, error) {
	if err := b.EnsureTemplate(); err != nil {
		return false, err
	}
	o := applyCheckOptions(opts...)

	window := b.area.Expand(o.margin)
	crop, err := vision.CropImage(frame, window)
	if err != nil {
		return false, err
	}
	winMat, err := vision.ImageToMat(crop)
	if err != nil {
		return false, err
	}
	defer winMat.Close()

	bestPoint := vision.Point{}
	bestSim := -1.0
	for _, tmplMat := range b.tmpl.Frames {
		matcher := vision.NewTemplateMatcher(tmplMat, winMat)
		point, sim, err := matcher.FindBest()
		if err != nil {
			return false, err
		}
		if sim > bestSim {
			bestSim = sim
			bestPoint = point
		}
		if b.tmpl.Kind == TemplateAnimated && sim > o.matchThreshold {
			break
		}
	}

	b.recordOffset(o.margin, bestPoint)
	matched := bestSim > o.matchThreshold
	logger.Debug("匹配 %s: 相似度=%.3f 阈值=%.2f 位置=(%d, %d)",
		b.Name, bestSim, o.matchThreshold, bestPoint.X, bestPoint.Y)
	return matched, nil
}

// recordOffset 按最佳匹配位置更新点击区域修正
// 匹配位置是窗口内坐标，窗口原点相对搜索区域偏移了左上边距
func (b *Button) recordOffset(margin vision.Area, point vision.Point) {
	shift := vision.Point{X: margin.X1 + point.X, Y: margin.Y1 + point.Y}
	relocated := b.button.Offset(shift)
	b.buttonOffset = &relocated
}

// EnsureTemplate 加载模板素材，幂等
// 每个实例最多读取素材一次；素材缺失或不可解码时返回 AssetLoadError
func (b *Button) EnsureTemplate() error {
	if b.tmpl != nil {
		return nil
	}
	if b.file == "" {
		return &AssetLoadError{Path: "", Err: errNoTemplateRef}
	}

	store := b.store
	if store == nil {
		store = DefaultStore
	}
	frames, animated, err := store.Load(b.file)
	if err != nil {
		return err
	}

	tmpl, err := newTemplate(frames, animated, b.area)
	if err != nil {
		return &AssetLoadError{Path: b.file, Err: err}
	}
	b.tmpl = tmpl
	b.animated = animated
	return nil
}

// ResetTemplate 释放已加载的模板，下次匹配时重新读取素材
func (b *Button) ResetTemplate() {
	if b.tmpl != nil {
		b.tmpl.Close()
		b.tmpl = nil
	}
}

// Crop 以相对坐标派生新按钮
// area 相对本按钮自身原点；搜索区域相对搜索区域原点平移，
// 点击区域相对当前生效的点击区域原点平移。提供帧时立即标定颜色。
func (b *Button) Crop(area vision.Area, frame image.Image, name string) (*Button, error) {
	if name == "" {
		name = b.Name
	}
	newArea := area.Offset(b.area.TopLeft())
	newButton := area.Offset(b.ActiveButton().TopLeft())
	nb := New(name, newArea, b.color, WithClickArea(newButton), WithFile(b.file))
	nb.store = b.store
	if frame != nil {
		if _, err := nb.LoadColor(frame); err != nil {
			return nil, err
		}
	}
	return nb, nil
}

// Move 平移派生新按钮，搜索区域和点击区域同时移动
// 提供帧时立即标定颜色
func (b *Button) Move(vector vision.Point, frame image.Image, name string) (*Button, error) {
	if name == "" {
		name = b.Name
	}
	newArea := b.area.Offset(vector)
	newButton := b.ActiveButton().Offset(vector)
	nb := New(name, newArea, b.color, WithClickArea(newButton), WithFile(b.file))
	nb.store = b.store
	if frame != nil {
		if _, err := nb.LoadColor(frame); err != nil {
			return nil, err
		}
	}
	return nb, nil
}

// similar 按调用选项选择颜色度量
func (o *checkOptions) similar(a, b vision.Color) bool {
	if o.labMetric {
		return vision.ColorSimilarLab(a, b, o.labMaxDist)
	}
	return vision.ColorSimilar(a, b, o.colorThreshold)
}

func isGIF(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".gif")
}
