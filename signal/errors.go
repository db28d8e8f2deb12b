package signal

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/wildmap/signals/scheduler"
)

var (
	ErrInvalidListener = errors.New("signal: listener is not invocable")
	// ErrSchedulerClosed 隔离分发的执行器已关闭, 监听器没有被调用
	ErrSchedulerClosed = scheduler.ErrSchedulerClosed
)

// InvalidListenerError 注册了不可调用的监听器
type InvalidListenerError struct {
	Op        string
	Namespace string
}

func (e *InvalidListenerError) Error() string {
	if e.Namespace != "" {
		return fmt.Sprintf("signal: %s on namespace %q: listener is not invocable", e.Op, e.Namespace)
	}
	return fmt.Sprintf("signal: %s: listener is not invocable", e.Op)
}

func (e *InvalidListenerError) Unwrap() error { return ErrInvalidListener }

// ListenerInvocationError 监听器在分发过程中失败
type ListenerInvocationError struct {
	Namespace string
	Priority  int
	Once      bool
	Panic     any // 非nil表示监听器panic
	Err       error
}

func (e *ListenerInvocationError) Error() string {
	ns := e.Namespace
	if ns == "" {
		ns = "-"
	}
	return fmt.Sprintf("signal: listener (ns %s, priority %d) failed: %v", ns, e.Priority, e.Err)
}

func (e *ListenerInvocationError) Unwrap() error { return e.Err }

func newInvocationError[T any](e *entry[T], err error) *ListenerInvocationError {
	return &ListenerInvocationError{
		Namespace: e.namespace,
		Priority:  e.priority,
		Once:      e.once,
		Err:       err,
	}
}

func newPanicError[T any](e *entry[T], r any) *ListenerInvocationError {
	var err error
	if re, ok := r.(error); ok {
		err = errors.WithStack(re)
	} else {
		err = errors.Errorf("panic: %v", r)
	}
	ie := newInvocationError(e, err)
	ie.Panic = r
	return ie
}
