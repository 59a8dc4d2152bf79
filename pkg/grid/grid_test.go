package grid

import (
	"errors"
	"testing"

	"github.com/dingauto/dingworker/pkg/vision"
)

// testGrid 3 列 2 行，原点 (0,0)，步长 (100,50)，单元 80x40
func testGrid() *Grid {
	return New("INV",
		vision.Point{},
		vision.Delta{X: 100, Y: 50},
		vision.Size{W: 80, H: 40},
		Dims{Cols: 3, Rows: 2},
	)
}

func TestCellGeometry(t *testing.T) {
	g := testGrid()

	tests := []struct {
		x, y int
		want vision.Area
	}{
		{0, 0, vision.NewArea(0, 0, 80, 40)},
		{1, 0, vision.NewArea(100, 0, 180, 40)},
		{2, 1, vision.NewArea(200, 50, 280, 90)},
	}

	for _, tt := range tests {
		b, err := g.Cell(tt.x, tt.y)
		if err != nil {
			t.Fatalf("Cell(%d, %d) 失败: %v", tt.x, tt.y, err)
		}
		if b.Area() != tt.want {
			t.Errorf("Cell(%d, %d).Area() = %s, 期望 %s", tt.x, tt.y, b.Area(), tt.want)
		}
		if b.StaticButton() != tt.want {
			t.Errorf("Cell(%d, %d) 点击区域应等于搜索区域", tt.x, tt.y)
		}
	}
}

func TestCellName(t *testing.T) {
	g := testGrid()
	b, err := g.Cell(2, 1)
	if err != nil {
		t.Fatalf("Cell 失败: %v", err)
	}
	if b.Name != "INV_2_1" {
		t.Errorf("单元按钮名 = %s, 期望 INV_2_1", b.Name)
	}
}

func TestCellFractionalDelta(t *testing.T) {
	g := New("FRAC",
		vision.Point{X: 10, Y: 10},
		vision.Delta{X: 33.4, Y: 10.6},
		vision.Size{W: 10, H: 10},
		Dims{Cols: 4, Rows: 4},
	)

	b, err := g.Cell(1, 1)
	if err != nil {
		t.Fatalf("Cell 失败: %v", err)
	}
	// round(10+33.4)=43, round(10+10.6)=21
	if b.Area().TopLeft() != (vision.Point{X: 43, Y: 21}) {
		t.Errorf("非整数步长单元原点 = %+v, 期望 (43, 21)", b.Area().TopLeft())
	}
}

func TestCellOutOfRange(t *testing.T) {
	g := testGrid()

	tests := []struct{ x, y int }{
		{3, 0}, {0, 2}, {-1, 0}, {0, -1}, {3, 2},
	}
	for _, tt := range tests {
		_, err := g.Cell(tt.x, tt.y)
		var idxErr *InvalidGridIndexError
		if !errors.As(err, &idxErr) {
			t.Errorf("Cell(%d, %d) 期望 InvalidGridIndexError, 实际 %v", tt.x, tt.y, err)
		}
	}
}

func TestButtonsOrderAndCache(t *testing.T) {
	g := testGrid()

	buttons := g.Buttons()
	if len(buttons) != 6 {
		t.Fatalf("Buttons 长度 = %d, 期望 6", len(buttons))
	}

	// 行优先：第二个元素对应 (x=1, y=0)
	if buttons[1].Name != "INV_1_0" {
		t.Errorf("Buttons()[1] = %s, 期望 INV_1_0", buttons[1].Name)
	}
	if buttons[3].Name != "INV_0_1" {
		t.Errorf("Buttons()[3] = %s, 期望 INV_0_1", buttons[3].Name)
	}

	// 物化结果缓存于实例
	again := g.Buttons()
	if &buttons[0] != &again[0] {
		t.Error("重复调用 Buttons 应返回缓存的切片")
	}
}

func TestCellIterator(t *testing.T) {
	g := testGrid()
	it := g.Cells()

	if it.Count() != 6 {
		t.Errorf("Count = %d, 期望 6", it.Count())
	}

	var order []string
	for i := 0; ; i++ {
		x, y, b, ok := it.Next()
		if !ok {
			break
		}
		if x != i%3 || y != i/3 {
			t.Errorf("第 %d 个单元索引 = (%d, %d), 期望 (%d, %d)", i, x, y, i%3, i/3)
		}
		order = append(order, b.Name)
	}

	want := []string{"INV_0_0", "INV_1_0", "INV_2_0", "INV_0_1", "INV_1_1", "INV_2_1"}
	if len(order) != len(want) {
		t.Fatalf("迭代 %d 个单元, 期望 %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("第 %d 个单元 = %s, 期望 %s", i, order[i], want[i])
		}
	}

	// 可重新遍历
	it.Reset()
	_, _, b, ok := it.Next()
	if !ok || b.Name != "INV_0_0" {
		t.Error("Reset 后应从第一个单元重新开始")
	}
}

func TestCrop(t *testing.T) {
	g := testGrid()
	sub := g.Crop(vision.NewArea(5, 8, 45, 28), "INV_ICON")

	if sub.Name != "INV_ICON" {
		t.Errorf("派生网格名 = %s, 期望 INV_ICON", sub.Name)
	}
	if sub.Origin() != (vision.Point{X: 5, Y: 8}) {
		t.Errorf("派生原点 = %+v, 期望 (5, 8)", sub.Origin())
	}
	if sub.Shape() != (vision.Size{W: 40, H: 20}) {
		t.Errorf("派生单元尺寸 = %+v, 期望 (40, 20)", sub.Shape())
	}
	if sub.Delta() != g.Delta() || sub.Dims() != g.Dims() {
		t.Error("Crop 不应改变步长和行列数")
	}

	// 原网格不被修改
	if g.Origin() != (vision.Point{}) || g.Shape() != (vision.Size{W: 80, H: 40}) {
		t.Error("Crop 不应修改原网格")
	}
}

func TestMove(t *testing.T) {
	g := testGrid()
	moved := g.Move(vision.Point{X: 7, Y: -3}, "")

	if moved.Name != g.Name {
		t.Error("未指定时派生网格应继承原名")
	}
	if moved.Origin() != (vision.Point{X: 7, Y: -3}) {
		t.Errorf("平移后原点 = %+v, 期望 (7, -3)", moved.Origin())
	}
	if moved.Shape() != g.Shape() || moved.Delta() != g.Delta() || moved.Dims() != g.Dims() {
		t.Error("Move 只应平移原点")
	}
}

func BenchmarkCell(b *testing.B) {
	g := testGrid()
	for i := 0; i < b.N; i++ {
		g.Cell(2, 1)
	}
}
