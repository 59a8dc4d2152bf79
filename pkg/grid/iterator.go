package grid

import "github.com/dingauto/dingworker/pkg/button"

// CellIterator 网格单元迭代器，行优先（先 y 后 x）
// 有限且可 Reset 重新遍历
type CellIterator struct {
	grid    *Grid
	current int
}

// Cells 创建单元迭代器
func (g *Grid) Cells() *CellIterator {
	return &CellIterator{grid: g}
}

// Next 返回下一个单元的索引和按钮，遍历完毕时 ok 为 false
func (it *CellIterator) Next() (x, y int, b *button.Button, ok bool) {
	dims := it.grid.dims
	if it.current >= dims.Cols*dims.Rows {
		return 0, 0, nil, false
	}

	x = it.current % dims.Cols
	y = it.current / dims.Cols
	it.current++
	return x, y, it.grid.cellAt(x, y), true
}

// Reset 重置迭代器
func (it *CellIterator) Reset() {
	it.current = 0
}

// Count 返回单元总数
func (it *CellIterator) Count() int {
	return it.grid.dims.Cols * it.grid.dims.Rows
}
