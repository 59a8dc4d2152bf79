// Package device 封装识别层的外部协作者：
// 帧采集、点击派发与宿主进程状态检查。
// 识别核心只消费帧并产出点击目标，不依赖本包的具体实现。
package device

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/dingauto/dingworker/internal/logger"
	"github.com/dingauto/dingworker/pkg/button"
	"github.com/dingauto/dingworker/pkg/vision"
)

// Capture 采集主显示器的完整帧
func Capture() (*image.RGBA, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, fmt.Errorf("没有可用的显示器")
	}

	img, err := screenshot.CaptureRect(screenshot.GetDisplayBounds(0))
	if err != nil {
		return nil, fmt.Errorf("截屏失败: %w", err)
	}
	return img, nil
}

// CaptureArea 采集主显示器的指定区域
func CaptureArea(area vision.Area) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(area.ToImageRect())
	if err != nil {
		return nil, fmt.Errorf("截屏失败 %s: %w", area, err)
	}
	return img, nil
}

// Tap 点击按钮当前生效的点击区域中心
// 按钮若已被匹配修正过位置，点击跟随修正后的区域
func Tap(b *button.Button) {
	pos := b.ActiveButton().Center()
	robotgo.Move(pos.X, pos.Y)
	robotgo.Click("left", false)
	logger.Info("点击 (%d, %d) @ %s", pos.X, pos.Y, b.Name)
}

// TapAt 点击指定坐标
func TapAt(p vision.Point) {
	robotgo.Move(p.X, p.Y)
	robotgo.Click("left", false)
}

// AppRunning 检查目标应用或模拟器进程是否在运行
func AppRunning(name string) (bool, error) {
	procs, err := process.Processes()
	if err != nil {
		return false, fmt.Errorf("枚举进程失败: %w", err)
	}

	for _, p := range procs {
		pname, err := p.Name()
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(pname), strings.ToLower(name)) {
			return true, nil
		}
	}
	return false, nil
}
