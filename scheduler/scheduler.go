// Package scheduler 提供隔离分发使用的任务执行器
package scheduler

import (
	"github.com/pkg/errors"
)

var (
	ErrSchedulerClosed = errors.New("scheduler: closed")
	ErrTaskNil         = errors.New("scheduler: task cannot be nil")
)

// Scheduler 任务执行器, 同一执行器提交的任务必须按提交顺序执行
type Scheduler interface {
	Schedule(task func()) error
}

// Immediate 在调用方goroutine中立即执行任务
var Immediate Scheduler = immediate{}

type immediate struct{}

func (immediate) Schedule(task func()) error {
	if task == nil {
		return ErrTaskNil
	}
	task()
	return nil
}

// Func 函数适配为Scheduler
type Func func(task func()) error

func (f Func) Schedule(task func()) error {
	return f(task)
}

// BatchScheduler 支持一次性提交多个任务, 同一批任务在队列中连续排列
type BatchScheduler interface {
	Scheduler
	ScheduleBatch(tasks []func()) error
}
