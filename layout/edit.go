package layout

import "fmt"

// Move 把 id 对应的元素移到排序后序列的第 to 位（越界时取边界），
// 并把所有元素的 Order 重新编号为 0 起的位置。
func (c *Config) Move(id string, to int) (*Config, error) {
	sorted := c.Sorted()
	from := indexOf(sorted, id)
	if from < 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	if to < 0 {
		to = 0
	}
	if to > len(sorted)-1 {
		to = len(sorted) - 1
	}
	el := sorted[from]
	sorted = append(sorted[:from], sorted[from+1:]...)
	sorted = append(sorted[:to], append([]Element{el}, sorted[to:]...)...)
	return renumber(sorted), nil
}

// MoveUp 与前一个元素交换位置；首个元素只重新编号。
func (c *Config) MoveUp(id string) (*Config, error) {
	idx := indexOf(c.Sorted(), id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	return c.Move(id, idx-1)
}

// MoveDown 与后一个元素交换位置。
func (c *Config) MoveDown(id string) (*Config, error) {
	idx := indexOf(c.Sorted(), id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	return c.Move(id, idx+1)
}

// ToggleWrap 切换元素的 wrap 标记。
func (c *Config) ToggleWrap(id string) (*Config, error) {
	return c.update(id, func(el *Element) { el.Wrap = !el.Wrap })
}

func (c *Config) SetWrap(id string, wrap bool) (*Config, error) {
	return c.update(id, func(el *Element) { el.Wrap = wrap })
}

// SetMargins 设置元素的上下边距，负值按 0 保存。
func (c *Config) SetMargins(id string, top, bottom float64) (*Config, error) {
	return c.update(id, func(el *Element) {
		el.MarginTop = nonNegative(top)
		el.MarginBottom = nonNegative(bottom)
	})
}

func (c *Config) update(id string, fn func(*Element)) (*Config, error) {
	out := c.Clone()
	if out == nil {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	for i := range out.Elements {
		if out.Elements[i].ID == id {
			fn(&out.Elements[i])
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
}

func renumber(sorted []Element) *Config {
	out := &Config{Elements: make([]Element, len(sorted))}
	for i, el := range sorted {
		el.Settings = cloneSettings(el.Settings)
		el.Order = i
		out.Elements[i] = el
	}
	return out
}

func indexOf(elements []Element, id string) int {
	for i, el := range elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
