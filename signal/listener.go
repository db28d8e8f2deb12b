package signal

// Call 单次监听器调用的上下文
type Call struct {
	target    any
	namespace string
	priority  int
	run       *run
}

// Target 注册时绑定的接收者, 未绑定时为Signal的默认target
func (c *Call) Target() any { return c.target }

func (c *Call) Namespace() string { return c.namespace }

func (c *Call) Priority() int { return c.priority }

// StopDispatch 停止本次调用所属分发中剩余监听器的调用
// 只作用于这次调用所在的分发, 与其他goroutine上同时进行的分发无关
func (c *Call) StopDispatch() {
	c.run.stopped.Store(true)
}

// Func 监听器回调
// 返回值交给 eachReturn, 返回error或panic视为该监听器调用失败
type Func[T any] func(c *Call, arg T) (any, error)

// Listener 监听器句柄, 以指针作为注册身份
type Listener[T any] struct {
	fn Func[T]
}

// NewListener 创建监听器
func NewListener[T any](fn Func[T]) *Listener[T] {
	return &Listener[T]{fn: fn}
}

// NewListenerFunc 用只关心参数的函数创建监听器
func NewListenerFunc[T any](fn func(arg T)) *Listener[T] {
	if fn == nil {
		return &Listener[T]{}
	}
	return &Listener[T]{fn: func(_ *Call, arg T) (any, error) {
		fn(arg)
		return nil, nil
	}}
}

func (l *Listener[T]) invocable() bool {
	return l != nil && l.fn != nil
}
