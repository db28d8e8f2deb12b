package signal

// Priority 绑定优先级的注册入口
// 通过它注册已存在的监听器时, 会先移除旧记录再按新优先级插入
type Priority[T any] struct {
	s         *Signal[T]
	level     int
	namespace string
}

// Level 优先级
func (p *Priority[T]) Level() int {
	if p == nil {
		return 0
	}
	return p.level
}

// Add 插在第一个优先级大于level的监听器之前, 同优先级先注册的在前
func (p *Priority[T]) Add(l *Listener[T], target ...any) error {
	if p == nil {
		return nil
	}
	return p.s.add(l, target, addSpec{
		op:        "priority.add",
		namespace: p.namespace,
		priority:  p.level,
		relocate:  true,
		cmp:       addCompare,
	})
}

// AddToTop 插在第一个优先级大于等于level的监听器之前, 同优先级新注册的在前
func (p *Priority[T]) AddToTop(l *Listener[T], target ...any) error {
	if p == nil {
		return nil
	}
	return p.s.add(l, target, addSpec{
		op:        "priority.addToTop",
		namespace: p.namespace,
		priority:  p.level,
		relocate:  true,
		cmp:       topCompare,
	})
}

// Once 按 Add 的规则插入一次性监听器, 记录携带level优先级
func (p *Priority[T]) Once(l *Listener[T], target ...any) error {
	if p == nil {
		return nil
	}
	return p.s.add(l, target, addSpec{
		op:        "priority.once",
		namespace: p.namespace,
		priority:  p.level,
		once:      true,
		relocate:  true,
		cmp:       addCompare,
	})
}
