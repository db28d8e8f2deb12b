// Package signal 进程内的发布/订阅原语
//
// Signal 维护一个有序的监听器集合, 支持追加、置顶、按优先级插入、一次性监听、
// 命名空间批量移除, 并提供两种分发方式:
//   - Trigger 直接同步调用, 监听器出错立即返回, 剩余监听器不再调用
//   - Dispatch 隔离分发, 每个监听器独立执行, 失败只影响自身, 顺序与快照一致
package signal

import (
	"sync"

	"github.com/wildmap/signals/scheduler"
	"github.com/wildmap/signals/xlog"
)

// Option 构造参数
type Option func(*config)

type config struct {
	target     any
	eachReturn func(val any, arg any)
	eachError  func(err error)
	scheduler  scheduler.Scheduler
	logger     xlog.ILogger
}

// WithTarget 监听器未绑定target时使用的默认target
func WithTarget(target any) Option {
	return func(c *config) { c.target = target }
}

// WithEachReturn 每个监听器成功返回后调用, arg为本次分发的参数
func WithEachReturn(fn func(val any, arg any)) Option {
	return func(c *config) { c.eachReturn = fn }
}

// WithEachError 隔离分发中监听器失败时调用
func WithEachError(fn func(err error)) Option {
	return func(c *config) { c.eachError = fn }
}

// WithScheduler 隔离分发使用的执行器, 默认 scheduler.Immediate
func WithScheduler(s scheduler.Scheduler) Option {
	return func(c *config) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithLogger 指定日志, 默认使用xlog根logger
func WithLogger(l xlog.ILogger) Option {
	return func(c *config) { c.logger = l }
}

// Signal 监听器注册表与分发器
type Signal[T any] struct {
	config

	mu         sync.Mutex
	reg        registry[T]
	namespaces map[string]*Namespace[T]
	active     []*run // 正在调用监听器的分发, 栈顶为最内层
	inline     trampoline
}

// New 创建Signal, T为分发参数类型
func New[T any](opts ...Option) *Signal[T] {
	s := &Signal[T]{
		config: config{
			scheduler: scheduler.Immediate,
		},
		namespaces: make(map[string]*Namespace[T]),
	}
	for _, opt := range opts {
		opt(&s.config)
	}
	return s
}

func (s *Signal[T]) log() xlog.ILogger {
	if s.logger != nil {
		return s.logger
	}
	return xlog.Default()
}

// Target 默认target
func (s *Signal[T]) Target() any {
	return s.target
}

// addSpec 一次注册操作的参数
type addSpec struct {
	op        string
	namespace string
	priority  int
	once      bool
	relocate  bool // 已注册时先删除再插入, 否则忽略
	cmp       compare
}

func (s *Signal[T]) add(l *Listener[T], target []any, spec addSpec) error {
	if !l.invocable() {
		return &InvalidListenerError{Op: spec.op, Namespace: spec.namespace}
	}
	e := &entry[T]{
		listener:  l,
		namespace: spec.namespace,
		priority:  spec.priority,
		once:      spec.once,
	}
	if len(target) > 0 {
		e.target = target[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.reg.indexOf(l); i >= 0 {
		if !spec.relocate {
			return nil
		}
		s.reg.removeAt(i)
	}
	s.reg.insert(e, spec.cmp)
	return nil
}

// Add 添加监听器, 优先级为0; 已注册时不做任何修改
func (s *Signal[T]) Add(l *Listener[T], target ...any) error {
	return s.add(l, target, addSpec{op: "add", cmp: addCompare})
}

// AddToTop 添加监听器到优先级0的最前面; 已注册时移动到该位置
func (s *Signal[T]) AddToTop(l *Listener[T], target ...any) error {
	return s.add(l, target, addSpec{op: "addToTop", relocate: true, cmp: topCompare})
}

// Once 添加只触发一次的监听器, 触发前自动移除
func (s *Signal[T]) Once(l *Listener[T], target ...any) error {
	return s.add(l, target, addSpec{op: "once", once: true, cmp: addCompare})
}

// Has 是否已注册, once监听器在触发之前也算已注册
func (s *Signal[T]) Has(l *Listener[T]) bool {
	if l == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.indexOf(l) >= 0
}

// Remove 移除监听器, 未注册时忽略
func (s *Signal[T]) Remove(l *Listener[T]) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.reg.indexOf(l); i >= 0 {
		s.reg.removeAt(i)
	}
}

// RemoveAll 移除全部监听器, 不影响正在进行的分发
func (s *Signal[T]) RemoveAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.clear()
}

// Len 监听器数量
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reg.entries)
}

// Priority 返回绑定到指定优先级的注册入口, 数值越小越先调用
func (s *Signal[T]) Priority(level int) *Priority[T] {
	return &Priority[T]{s: s, level: level}
}

func (s *Signal[T]) snapshot() []*entry[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.snapshot()
}
