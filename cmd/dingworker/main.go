package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/dingauto/dingworker/internal/logger"
	"github.com/dingauto/dingworker/pkg/button"
	"github.com/dingauto/dingworker/pkg/config"
	"github.com/dingauto/dingworker/pkg/grid"
	"github.com/dingauto/dingworker/pkg/vision"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
)

func main() {
	var (
		maskSpec    = flag.String("mask", "", "渲染网格掩码: name,ox,oy,dx,dy,w,h,cols,rows")
		maskOut     = flag.String("mask-out", "", "掩码输出路径 (默认 <网格名>.png)")
		matchTmpl   = flag.String("template", "", "模板素材路径 (配合 -screen 使用)")
		matchScreen = flag.String("screen", "", "截图文件路径")
		matchArea   = flag.String("area", "", "按钮搜索区域: x1,y1,x2,y2")
		showVersion = flag.Bool("version", false, "显示版本信息")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("dingworker %s (构建于 %s)\n", Version, BuildTime)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("加载配置失败: %v", err)
		cfg = config.DefaultWorkerConfig()
	}
	logger.Default().SetLevel(logger.ParseLevel(cfg.LogLevel))
	button.DefaultStore = &button.FileStore{Root: cfg.AssetDir}

	switch {
	case *maskSpec != "":
		if err := runMask(*maskSpec, *maskOut); err != nil {
			logger.Error("渲染掩码失败: %v", err)
			os.Exit(1)
		}
	case *matchTmpl != "" && *matchScreen != "" && *matchArea != "":
		if err := runMatch(*matchTmpl, *matchScreen, *matchArea, cfg.MatchThreshold); err != nil {
			logger.Error("模板匹配失败: %v", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(1)
	}
}

// runMask 按参数构造网格并保存掩码
func runMask(arg, out string) error {
	parts := strings.Split(arg, ",")
	if len(parts) != 9 {
		return fmt.Errorf("无效的网格参数: %s (期望 name,ox,oy,dx,dy,w,h,cols,rows)", arg)
	}

	nums := make([]float64, 8)
	for i, p := range parts[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("无效的网格数值 %q: %w", p, err)
		}
		nums[i] = v
	}

	g := grid.New(
		parts[0],
		vision.Point{X: int(nums[0]), Y: int(nums[1])},
		vision.Delta{X: nums[2], Y: nums[3]},
		vision.Size{W: int(nums[4]), H: int(nums[5])},
		grid.Dims{Cols: int(nums[6]), Rows: int(nums[7])},
	)

	if err := g.SaveMask(out); err != nil {
		return err
	}
	logger.Info("掩码已保存: %s (%d 个单元)", g.Name, g.Cells().Count())
	return nil
}

// runMatch 对截图文件执行一次模板匹配
func runMatch(tmplPath, screenPath, areaSpec string, threshold float64) error {
	parts := strings.Split(areaSpec, ",")
	if len(parts) != 4 {
		return fmt.Errorf("无效的区域参数: %s (期望 x1,y1,x2,y2)", areaSpec)
	}
	coords := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("无效的区域数值 %q: %w", p, err)
		}
		coords[i] = v
	}

	f, err := os.Open(screenPath)
	if err != nil {
		return fmt.Errorf("打开截图失败: %w", err)
	}
	defer f.Close()
	frame, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("解码截图失败: %w", err)
	}

	b := button.New("CLI_MATCH",
		vision.NewArea(coords[0], coords[1], coords[2], coords[3]),
		vision.Color{},
		button.WithFile(tmplPath),
	)

	matched, err := b.Match(frame, button.WithThreshold(threshold))
	if err != nil {
		return err
	}
	if matched {
		pos := b.ActiveButton().Center()
		logger.Info("命中: 点击目标 (%d, %d)", pos.X, pos.Y)
	} else {
		logger.Info("未命中 (阈值 %.2f)", threshold)
	}
	return nil
}
