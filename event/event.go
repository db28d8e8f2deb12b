// Package event 按事件key管理一组Signal
package event

import (
	"sync"

	"github.com/wildmap/signals/signal"
)

// Facade 事件门面, 每个key对应一个Signal
type Facade[K comparable, T any] struct {
	mu      sync.Mutex
	signals map[K]*signal.Signal[T]
	opts    []signal.Option
}

// NewFacade opts 用于新建每个key的Signal
func NewFacade[K comparable, T any](opts ...signal.Option) *Facade[K, T] {
	return &Facade[K, T]{
		signals: make(map[K]*signal.Signal[T]),
		opts:    opts,
	}
}

// Signal 获取key对应的Signal, 不存在时创建
func (e *Facade[K, T]) Signal(key K) *signal.Signal[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.signals[key]
	if !ok {
		s = signal.New[T](e.opts...)
		e.signals[key] = s
	}
	return s
}

func (e *Facade[K, T]) lookup(key K) *signal.Signal[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.signals[key]
}

// QuickRegister 快速注册, 返回监听器句柄用于反注册
func (e *Facade[K, T]) QuickRegister(key K, priority int, consume func(arg T)) (*signal.Listener[T], error) {
	l := signal.NewListenerFunc(consume)
	if err := e.Register(key, priority, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Register 注册监听器, priority越小越先执行
func (e *Facade[K, T]) Register(key K, priority int, l *signal.Listener[T]) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.signals[key]
	if !ok {
		s = signal.New[T](e.opts...)
	}
	if err := s.Priority(priority).Add(l); err != nil {
		return err
	}
	e.signals[key] = s
	return nil
}

// Unregister 反注册监听器
func (e *Facade[K, T]) Unregister(key K, l *signal.Listener[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.signals[key]
	if !ok {
		return
	}
	s.Remove(l)
	// 清理空集合防止内存泄漏
	if s.Len() == 0 {
		delete(e.signals, key)
	}
}

// Fire 抛出事件, 隔离分发
func (e *Facade[K, T]) Fire(key K, arg T) {
	if s := e.lookup(key); s != nil {
		s.Dispatch(arg)
	}
}

// Trigger 抛出事件, 直接分发
func (e *Facade[K, T]) Trigger(key K, arg T) error {
	if s := e.lookup(key); s != nil {
		return s.Trigger(arg)
	}
	return nil
}

// Keys 当前有Signal的key
func (e *Facade[K, T]) Keys() []K {
	e.mu.Lock()
	defer e.mu.Unlock()
	keys := make([]K, 0, len(e.signals))
	for k := range e.signals {
		keys = append(keys, k)
	}
	return keys
}
