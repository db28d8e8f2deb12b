package signal

import (
	"runtime/debug"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/wildmap/signals/scheduler"
)

// run 一次分发的状态
type run struct {
	stopped atomic.Bool
}

// enter 标记run正在调用监听器, StopDispatch 作用于最内层的run
func (s *Signal[T]) enter(r *run) {
	s.mu.Lock()
	s.active = append(s.active, r)
	s.mu.Unlock()
}

func (s *Signal[T]) leave(r *run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.active) - 1; i >= 0; i-- {
		if s.active[i] == r {
			s.active[i] = nil
			s.active = append(s.active[:i], s.active[i+1:]...)
			return
		}
	}
}

// StopDispatch 在监听器中调用, 停止最内层正在调用监听器的分发, 不影响之后的分发
// 只适用于同一时刻只有一个goroutine在调用本Signal监听器的场景;
// 使用 scheduler.Serial 或在多个goroutine上同时分发时, 应使用 Call.StopDispatch
func (s *Signal[T]) StopDispatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.active); n > 0 {
		s.active[n-1].stopped.Store(true)
	}
}

// Dispatching 是否有分发正在调用监听器
func (s *Signal[T]) Dispatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active) > 0
}

// claim 领取一次调用机会; once监听器只能被领取一次, 领取时从注册表移除
func (s *Signal[T]) claim(e *entry[T]) bool {
	if !e.once {
		return true
	}
	if !e.fired.CompareAndSwap(false, true) {
		return false
	}
	s.mu.Lock()
	s.reg.removeEntry(e)
	s.mu.Unlock()
	return true
}

func (s *Signal[T]) targetOf(e *entry[T]) any {
	if e.target != nil {
		return e.target
	}
	return s.target
}

func (s *Signal[T]) invoke(r *run, e *entry[T], arg T) (any, error) {
	return e.listener.fn(&Call{
		target:    s.targetOf(e),
		namespace: e.namespace,
		priority:  e.priority,
		run:       r,
	}, arg)
}

// Trigger 直接分发
// 按当前顺序同步调用全部监听器; 监听器返回error时包装为 *ListenerInvocationError 立即返回,
// 监听器panic直接向调用方传播, 两种情况下剩余监听器都不再调用.
// 分发过程中被移除的监听器若尚未调用则不再调用, 新注册的监听器从下一次分发开始生效
func (s *Signal[T]) Trigger(arg T) error {
	entries := s.snapshot()
	if len(entries) == 0 {
		return nil
	}

	r := &run{}
	s.enter(r)
	defer s.leave(r)

	for _, e := range entries {
		if r.stopped.Load() {
			break
		}
		if e.removed.Load() || !s.claim(e) {
			continue
		}
		val, err := s.invoke(r, e, arg)
		if err != nil {
			return newInvocationError(e, err)
		}
		if s.eachReturn != nil {
			s.eachReturn(val, arg)
		}
	}
	return nil
}

// Dispatch 隔离分发
// 先对当前监听器拍快照, 再把每个监听器作为独立任务按快照顺序提交给执行器;
// 单个监听器的error或panic被捕获后交给 eachError, 不影响其他监听器;
// 分发过程中的注册/移除只对下一次分发生效.
// 使用 scheduler.Immediate 时, 在监听器中再次 Dispatch 或其他goroutine同时 Dispatch,
// 新的任务排在当前分发剩余任务之后, 由正在执行的调用方执行完
func (s *Signal[T]) Dispatch(arg T) {
	entries := s.snapshot()
	if len(entries) == 0 {
		return
	}

	r := &run{}
	tasks := make([]func(), len(entries))
	for i, e := range entries {
		e := e
		tasks[i] = func() { s.deliver(r, e, arg) }
	}

	// 同步执行器下嵌套的分发排到当前分发之后
	if s.scheduler == scheduler.Immediate {
		s.inline.run(tasks)
		return
	}
	// 批量提交保证不同分发的任务不会交错
	if bs, ok := s.scheduler.(scheduler.BatchScheduler); ok {
		if err := bs.ScheduleBatch(tasks); err != nil {
			for _, e := range entries {
				s.report(newInvocationError(e, errors.Wrap(err, "schedule listener")))
			}
		}
		return
	}
	for i, task := range tasks {
		if err := s.scheduler.Schedule(task); err != nil {
			s.report(newInvocationError(entries[i], errors.Wrap(err, "schedule listener")))
		}
	}
}

// trampoline 同步执行器的任务队列
// 正在执行时嵌套提交的任务只入队, 由最外层调用方按FIFO执行完
type trampoline struct {
	mu       sync.Mutex
	queue    []func()
	draining bool
}

func (t *trampoline) run(tasks []func()) {
	t.mu.Lock()
	t.queue = append(t.queue, tasks...)
	if t.draining {
		t.mu.Unlock()
		return
	}
	t.draining = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.draining = false
		t.mu.Unlock()
	}()
	for {
		t.mu.Lock()
		if len(t.queue) == 0 {
			t.mu.Unlock()
			return
		}
		task := t.queue[0]
		t.queue[0] = nil
		t.queue = t.queue[1:]
		t.mu.Unlock()
		task()
	}
}

// deliver 隔离边界内调用单个监听器
func (s *Signal[T]) deliver(r *run, e *entry[T], arg T) {
	if r.stopped.Load() || !s.claim(e) {
		return
	}
	s.enter(r)
	defer s.leave(r)
	defer func() {
		if p := recover(); p != nil {
			s.report(newPanicError(e, p))
		}
	}()

	val, err := s.invoke(r, e, arg)
	if err != nil {
		s.report(newInvocationError(e, err))
		return
	}
	if s.eachReturn != nil {
		s.eachReturn(val, arg)
	}
}

// report 记录隔离分发中的失败并交给 eachError
func (s *Signal[T]) report(err *ListenerInvocationError) {
	fields := []zap.Field{
		zap.String("namespace", err.Namespace),
		zap.Int("priority", err.Priority),
		zap.Error(err.Err),
	}
	if err.Panic != nil {
		fields = append(fields, zap.Any("panic", err.Panic), zap.ByteString("stack", debug.Stack()))
	}
	s.log().Errorx("signal listener failed", fields...)

	if s.eachError == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			s.log().Errorf("signal eachError panic %v\n%s", p, string(debug.Stack()))
		}
	}()
	s.eachError(err)
}
