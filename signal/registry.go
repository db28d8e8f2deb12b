package signal

import (
	"go.uber.org/atomic"
)

// entry 一条监听器注册记录
type entry[T any] struct {
	listener  *Listener[T]
	target    any
	namespace string
	priority  int
	once      bool
	fired     atomic.Bool // once监听器是否已被某次分发领取
	removed   atomic.Bool // 已从注册表移除, 直接分发据此跳过
}

// compare 插入比较函数, 返回true表示新记录插在existing之前
type compare func(existing, priority int) bool

// addCompare 同优先级先注册的在前
func addCompare(existing, priority int) bool { return existing > priority }

// topCompare 同优先级新注册的在前
func topCompare(existing, priority int) bool { return existing >= priority }

// registry 有序监听器集合
// entries 采用写时复制: 每次修改都生成新切片, 分发时直接持有当前切片即得到快照;
// 所有方法由 Signal 的互斥锁保护
type registry[T any] struct {
	entries []*entry[T]
}

func (r *registry[T]) indexOf(l *Listener[T]) int {
	for i, e := range r.entries {
		if e.listener == l {
			return i
		}
	}
	return -1
}

func (r *registry[T]) find(l *Listener[T]) *entry[T] {
	if i := r.indexOf(l); i >= 0 {
		return r.entries[i]
	}
	return nil
}

// insert 插在第一个满足cmp的记录之前, 没有则追加到末尾
func (r *registry[T]) insert(e *entry[T], cmp compare) {
	pos := len(r.entries)
	for i, existing := range r.entries {
		if cmp(existing.priority, e.priority) {
			pos = i
			break
		}
	}
	entries := make([]*entry[T], 0, len(r.entries)+1)
	entries = append(entries, r.entries[:pos]...)
	entries = append(entries, e)
	entries = append(entries, r.entries[pos:]...)
	r.entries = entries
}

func (r *registry[T]) removeAt(i int) {
	r.entries[i].removed.Store(true)
	entries := make([]*entry[T], 0, len(r.entries)-1)
	entries = append(entries, r.entries[:i]...)
	entries = append(entries, r.entries[i+1:]...)
	r.entries = entries
}

// removeEntry 按记录本身删除, 用于once触发后的自删除
func (r *registry[T]) removeEntry(target *entry[T]) bool {
	for i, e := range r.entries {
		if e == target {
			r.removeAt(i)
			return true
		}
	}
	return false
}

// removeFunc 删除所有满足条件的记录, 返回删除数量
func (r *registry[T]) removeFunc(pred func(e *entry[T]) bool) int {
	entries := make([]*entry[T], 0, len(r.entries))
	for _, e := range r.entries {
		if pred(e) {
			e.removed.Store(true)
			continue
		}
		entries = append(entries, e)
	}
	n := len(r.entries) - len(entries)
	if n > 0 {
		r.entries = entries
	}
	return n
}

func (r *registry[T]) clear() {
	for _, e := range r.entries {
		e.removed.Store(true)
	}
	r.entries = nil
}

func (r *registry[T]) snapshot() []*entry[T] {
	return r.entries
}
