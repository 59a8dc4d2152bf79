package button

import "github.com/dingauto/dingworker/pkg/vision"

// DefaultMatchThreshold 默认模板匹配阈值
const DefaultMatchThreshold = 0.85

// DefaultMatchMargin 默认搜索窗口边距：横向 ±3，纵向 ±30
var DefaultMatchMargin = vision.ScalarMargin(30)

// Option 构造选项
type Option func(*Button)

// WithClickArea 设置独立的点击区域，缺省与搜索区域一致
func WithClickArea(area vision.Area) Option {
	return func(b *Button) {
		b.button = area
	}
}

// WithFile 设置模板素材路径
// .gif 后缀的素材作为动画模板处理
func WithFile(file string) Option {
	return func(b *Button) {
		b.file = file
		b.animated = isGIF(file)
	}
}

// WithStore 注入素材仓库，缺省使用 DefaultStore
func WithStore(store Store) Option {
	return func(b *Button) {
		b.store = store
	}
}

// CheckOption 检查/匹配时的调用选项
type CheckOption func(*checkOptions)

type checkOptions struct {
	colorThreshold int
	matchThreshold float64
	margin         vision.Area
	labMetric      bool
	labMaxDist     float64
}

func applyCheckOptions(opts ...CheckOption) *checkOptions {
	o := &checkOptions{
		colorThreshold: vision.DefaultColorThreshold,
		matchThreshold: DefaultMatchThreshold,
		margin:         DefaultMatchMargin,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithColorThreshold 设置颜色相似度阈值
func WithColorThreshold(threshold int) CheckOption {
	return func(o *checkOptions) {
		o.colorThreshold = threshold
	}
}

// WithThreshold 设置模板匹配相似度阈值 (0-1)
func WithThreshold(threshold float64) CheckOption {
	return func(o *checkOptions) {
		o.matchThreshold = threshold
	}
}

// WithMatchMargin 设置搜索窗口边距
// 配合 vision.ScalarMargin / vision.SymmetricMargin 使用，或传入显式四元组
func WithMatchMargin(margin vision.Area) CheckOption {
	return func(o *checkOptions) {
		o.margin = margin
	}
}

// WithLabColor 颜色检查改用 CIE Lab 感知距离，maxDist 为距离上限
func WithLabColor(maxDist float64) CheckOption {
	return func(o *checkOptions) {
		o.labMetric = true
		o.labMaxDist = maxDist
	}
}
