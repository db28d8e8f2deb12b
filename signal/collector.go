package signal

import (
	"sync"

	"go.uber.org/multierr"
)

// ErrorCollector 汇总隔离分发中的失败, Collect 可直接作为 WithEachError 的参数
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{}
}

func (c *ErrorCollector) Collect(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = multierr.Append(c.err, err)
}

// Err 合并后的错误, 没有失败时为nil
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *ErrorCollector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return multierr.Errors(c.err)
}

// Reset 清空并返回已收集的错误
func (c *ErrorCollector) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.err
	c.err = nil
	return err
}
