package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"

	"github.com/wildmap/signals/xlog"
)

// Serial 单goroutine顺序执行器
// 任务进入无界队列, 由 Run 所在的goroutine按FIFO逐个执行;
// 单个任务panic会被捕获记录, 不影响后续任务
type Serial struct {
	name    string
	mu      sync.Mutex
	queue   []func()
	notify  chan struct{}
	closed  atomic.Bool
	running atomic.Bool
	done    chan struct{}
}

// NewSerial 创建顺序执行器, size为队列初始容量
func NewSerial(name string, size int) *Serial {
	if size <= 0 {
		size = 64
	}
	return &Serial{
		name:   name,
		queue:  make([]func(), 0, size),
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Name 名称
func (s *Serial) Name() string {
	return s.name
}

// Schedule 提交任务
func (s *Serial) Schedule(task func()) error {
	if task == nil {
		return ErrTaskNil
	}
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return ErrSchedulerClosed
	}
	s.queue = append(s.queue, task)
	s.mu.Unlock()

	s.wake()
	return nil
}

// ScheduleBatch 一次提交多个任务, 与其他提交不会交错
func (s *Serial) ScheduleBatch(tasks []func()) error {
	for _, task := range tasks {
		if task == nil {
			return ErrTaskNil
		}
	}
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return ErrSchedulerClosed
	}
	s.queue = append(s.queue, tasks...)
	s.mu.Unlock()

	s.wake()
	return nil
}

func (s *Serial) wake() {
	select { // 非阻塞唤醒, 已有未消费的通知时直接跳过
	case s.notify <- struct{}{}:
	default:
	}
}

// Len 队列中等待执行的任务数
func (s *Serial) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// IsClosed 检查是否已关闭
func (s *Serial) IsClosed() bool {
	return s.closed.Load()
}

// Start 在新goroutine中运行
func (s *Serial) Start(ctx context.Context) {
	go s.Run(ctx)
}

// Run 阻塞执行任务, ctx结束时丢弃剩余任务; Close后执行完剩余任务再返回
func (s *Serial) Run(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		xlog.Warnf("scheduler %s already running", s.name)
		return
	}
	defer close(s.done)
	xlog.Debugf("scheduler %s started", s.name)

	for {
		select {
		case <-ctx.Done():
			s.Close()
			if n := s.drop(); n > 0 {
				xlog.Warnf("scheduler %s stopped, %d tasks dropped", s.name, n)
			}
			xlog.Debugf("scheduler %s stopped", s.name)
			return
		case <-s.notify:
			for {
				task, ok := s.pop()
				if !ok {
					break
				}
				s.exec(task)
				if ctx.Err() != nil {
					break
				}
			}
			if s.closed.Load() && s.Len() == 0 {
				xlog.Debugf("scheduler %s closed", s.name)
				return
			}
		}
	}
}

// Done Run 返回后关闭
func (s *Serial) Done() <-chan struct{} {
	return s.done
}

// Close 关闭执行器, 不再接收新任务, 已排队任务仍会执行
func (s *Serial) Close() {
	s.mu.Lock()
	if !s.closed.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.wake()
}

// Flush 等待当前已提交的任务全部执行完毕, 不能在执行器自身的任务中调用
func (s *Serial) Flush(ctx context.Context) error {
	marker := make(chan struct{})
	if err := s.Schedule(func() { close(marker) }); err != nil {
		return err
	}
	select {
	case <-marker:
		return nil
	case <-s.done:
		select {
		case <-marker:
			return nil
		default:
			return ErrSchedulerClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Serial) pop() (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, false
	}
	task := s.queue[0]
	s.queue[0] = nil // 防止内存泄漏
	s.queue = s.queue[1:]
	return task, true
}

func (s *Serial) drop() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.queue)
	clear(s.queue)
	s.queue = s.queue[:0]
	return n
}

// exec 实际执行
func (s *Serial) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			xlog.Errorf("scheduler %s task panic %v\n%s", s.name, fmt.Sprint(r), string(debug.Stack()))
		}
	}()
	task()
}
