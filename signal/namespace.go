package signal

// Namespace 命名空间视图
// 通过视图注册的监听器带有命名空间标记, 视图的 Remove/RemoveAll 只作用于带同名标记的监听器;
// nil视图的所有方法都是空操作
type Namespace[T any] struct {
	name string
	s    *Signal[T]
}

// Ns 获取命名空间视图, 不存在时创建; 空名称保留给未标记的监听器, 返回nil
func (s *Signal[T]) Ns(name string) *Namespace[T] {
	if name == "" {
		s.log().Debugf("signal namespace name is reserved, ignored")
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.namespaces[name]; ok {
		return n
	}
	n := &Namespace[T]{name: name, s: s}
	s.namespaces[name] = n
	return n
}

// Namespace 同 Ns
func (s *Signal[T]) Namespace(name string) *Namespace[T] {
	return s.Ns(name)
}

// RemoveNs 删除命名空间视图, 已注册的监听器保留
func (s *Signal[T]) RemoveNs(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.namespaces, name)
}

// Namespaces 当前已创建的命名空间
func (s *Signal[T]) Namespaces() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.namespaces))
	for name := range s.namespaces {
		names = append(names, name)
	}
	return names
}

// Name 名称
func (n *Namespace[T]) Name() string {
	if n == nil {
		return ""
	}
	return n.name
}

func (n *Namespace[T]) Add(l *Listener[T], target ...any) error {
	if n == nil {
		return nil
	}
	return n.s.add(l, target, addSpec{op: "add", namespace: n.name, cmp: addCompare})
}

func (n *Namespace[T]) AddToTop(l *Listener[T], target ...any) error {
	if n == nil {
		return nil
	}
	return n.s.add(l, target, addSpec{op: "addToTop", namespace: n.name, relocate: true, cmp: topCompare})
}

func (n *Namespace[T]) Once(l *Listener[T], target ...any) error {
	if n == nil {
		return nil
	}
	return n.s.add(l, target, addSpec{op: "once", namespace: n.name, once: true, cmp: addCompare})
}

// Priority 绑定优先级, 注册的监听器同样带有命名空间标记
func (n *Namespace[T]) Priority(level int) *Priority[T] {
	if n == nil {
		return nil
	}
	return &Priority[T]{s: n.s, level: level, namespace: n.name}
}

// Has 监听器是否以该命名空间注册
func (n *Namespace[T]) Has(l *Listener[T]) bool {
	if n == nil || l == nil {
		return false
	}
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	e := n.s.reg.find(l)
	return e != nil && e.namespace == n.name
}

// Remove 移除该命名空间下的监听器, 其他命名空间的同一监听器不受影响
func (n *Namespace[T]) Remove(l *Listener[T]) {
	if n == nil || l == nil {
		return
	}
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	if i := n.s.reg.indexOf(l); i >= 0 && n.s.reg.entries[i].namespace == n.name {
		n.s.reg.removeAt(i)
	}
}

// RemoveAll 移除该命名空间下的全部监听器
func (n *Namespace[T]) RemoveAll() {
	if n == nil {
		return
	}
	n.s.mu.Lock()
	removed := n.s.reg.removeFunc(func(e *entry[T]) bool {
		return e.namespace == n.name
	})
	n.s.mu.Unlock()
	if removed > 0 {
		n.s.log().Debugf("signal namespace %s removed %d listeners", n.name, removed)
	}
}

// Len 该命名空间下的监听器数量
func (n *Namespace[T]) Len() int {
	if n == nil {
		return 0
	}
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	count := 0
	for _, e := range n.s.reg.entries {
		if e.namespace == n.name {
			count++
		}
	}
	return count
}
