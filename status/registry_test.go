package status

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMap_GetCachesPointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("frame.lag_ms")
	b := m.Get("frame.lag_ms")
	assert.Same(t, a, b)

	a.Set(2.5)
	assert.Equal(t, 2.5, b.Get())
	assert.Equal(t, 4.0, b.Add(1.5))
}

func TestMetricMap_RangeSorted(t *testing.T) {
	m := NewMetricMap[AtomicString]()
	m.Get("b").Store("2")
	m.Get("a").Store("1")
	m.Get("c").Store("3")

	var keys []string
	m.Range(func(key string, ptr *AtomicString) {
		keys = append(keys, key+"="+ptr.Load())
	})
	assert.Equal(t, []string{"a=1", "b=2", "c=3"}, keys)
}

func TestMetricMap_ConcurrentGet(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Ints.Get(TweenStarted).Add(1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(16), reg.Int(TweenStarted))
	assert.Equal(t, 1, reg.TotalCount())
}

func TestRegistry_IntLookupDoesNotRegister(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, int64(0), reg.Int("missing"))
	_, ok := reg.Ints.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.TotalCount())
}

func TestAtomicString_Truncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	s.Store(strings.Repeat("x", MaxStringLen+10))
	assert.Len(t, s.Load(), MaxStringLen)
}
