package signal

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceRemoveAllIsolated(t *testing.T) {
	s := newTestSignal()
	tr := &tracer{}

	require.NoError(t, s.Ns("a").Add(tr.listener("a1")))
	require.NoError(t, s.Ns("b").Add(tr.listener("b1")))
	require.NoError(t, s.Add(tr.listener("plain")))
	require.NoError(t, s.Ns("a").Once(tr.listener("a2")))
	require.NoError(t, s.Ns("b").AddToTop(tr.listener("b2")))

	before := s.Len()
	countA := s.Ns("a").Len()
	assert.Equal(t, 2, countA)

	s.Ns("a").RemoveAll()
	assert.Equal(t, before-countA, s.Len())
	assert.Equal(t, 0, s.Ns("a").Len())

	require.NoError(t, s.Trigger(0))
	assert.Equal(t, []string{"b2", "b1", "plain"}, tr.reset())
}

func TestNamespaceRemoveOnlyTagged(t *testing.T) {
	s := newTestSignal()
	tr := &tracer{}
	a, plain := tr.listener("a"), tr.listener("plain")

	require.NoError(t, s.Ns("ui").Add(a))
	require.NoError(t, s.Add(plain))

	s.Ns("net").Remove(a)
	s.Ns("ui").Remove(plain)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Ns("ui").Has(a))
	assert.False(t, s.Ns("ui").Has(plain))

	s.Ns("ui").Remove(a)
	assert.False(t, s.Has(a))
	assert.True(t, s.Has(plain))
}

func TestNamespaceViewIdentity(t *testing.T) {
	s := newTestSignal()
	ui := s.Ns("ui")
	assert.Same(t, ui, s.Ns("ui"))
	assert.Same(t, ui, s.Namespace("ui"))
	assert.Equal(t, "ui", ui.Name())

	s.Ns("net")
	names := s.Namespaces()
	sort.Strings(names)
	assert.Equal(t, []string{"net", "ui"}, names)
}

func TestRemoveNsKeepsListeners(t *testing.T) {
	s := newTestSignal()
	tr := &tracer{}
	a := tr.listener("a")

	require.NoError(t, s.Ns("ui").Add(a))
	s.RemoveNs("ui")
	assert.True(t, s.Has(a))
	assert.NotContains(t, s.Namespaces(), "ui")

	// 重新创建的同名视图依然能管理原来的监听器
	s.Ns("ui").RemoveAll()
	assert.False(t, s.Has(a))
}

func TestReservedNamespaceIsNoop(t *testing.T) {
	s := newTestSignal()
	tr := &tracer{}
	a := tr.listener("a")

	ns := s.Ns("")
	assert.Nil(t, ns)
	assert.NoError(t, ns.Add(a))
	assert.NoError(t, ns.AddToTop(a))
	assert.NoError(t, ns.Once(a))
	assert.NoError(t, ns.Priority(3).Add(a))
	assert.Equal(t, 0, ns.Priority(3).Level())
	assert.False(t, ns.Has(a))
	assert.Equal(t, 0, ns.Len())
	assert.Equal(t, "", ns.Name())
	ns.Remove(a)
	ns.RemoveAll()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Namespaces())
}

func TestNamespacePriority(t *testing.T) {
	s := newTestSignal()
	tr := &tracer{}

	require.NoError(t, s.Priority(2).Add(tr.listener("two")))
	require.NoError(t, s.Ns("ui").Priority(1).Add(tr.listener("ui1")))
	require.NoError(t, s.Ns("ui").Priority(2).AddToTop(tr.listener("ui2")))
	require.NoError(t, s.Ns("ui").Priority(-1).Once(tr.listener("uiOnce")))
	assert.Equal(t, 3, s.Ns("ui").Len())

	require.NoError(t, s.Trigger(0))
	assert.Equal(t, []string{"uiOnce", "ui1", "ui2", "two"}, tr.reset())

	s.Ns("ui").RemoveAll()
	require.NoError(t, s.Trigger(0))
	assert.Equal(t, []string{"two"}, tr.reset())
}

func TestNamespaceAddToTopRetags(t *testing.T) {
	s := newTestSignal()
	tr := &tracer{}
	a := tr.listener("a")

	require.NoError(t, s.Ns("ui").Add(a))
	require.NoError(t, s.Add(tr.listener("b")))
	require.NoError(t, s.Ns("net").AddToTop(a))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Ns("ui").Has(a))
	assert.True(t, s.Ns("net").Has(a))

	// 已注册时 Add 不修改命名空间
	require.NoError(t, s.Ns("ui").Add(a))
	assert.True(t, s.Ns("net").Has(a))

	s.Ns("ui").RemoveAll()
	assert.Equal(t, 2, s.Len())
	s.Ns("net").RemoveAll()
	assert.Equal(t, 1, s.Len())
}
