package catalog

import "sync/atomic"

// Holder 持有目录的当前快照，支持热更新。
//
// Swap 是单次原子指针替换：新目录独立构建完成后一次性生效，
// 进行中的检索继续使用换出前取到的快照，不存在“半个目录”的读。
type Holder struct {
	cur atomic.Pointer[Catalog]
}

// NewHolder 创建持有初始目录的 Holder；initial 可以为 nil（空目录语义）。
func NewHolder(initial *Catalog) *Holder {
	h := &Holder{}
	if initial != nil {
		h.cur.Store(initial)
	}
	return h
}

// Current 返回当前目录快照；未加载时返回 nil。
func (h *Holder) Current() *Catalog {
	return h.cur.Load()
}

// Swap 原子替换目录，返回旧目录。
func (h *Holder) Swap(next *Catalog) *Catalog {
	return h.cur.Swap(next)
}
