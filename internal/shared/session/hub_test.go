package session

import (
	"sync"
	"testing"
	"time"
)

type pushConn struct {
	mu     sync.Mutex
	pushed []string
	done   chan struct{}
}

func newPushConn() *pushConn {
	return &pushConn{done: make(chan struct{})}
}

func (c *pushConn) SetProperty(string, any) {}
func (c *pushConn) GetProperty(string) any  { return nil }
func (c *pushConn) RemoveProperty(string)   {}
func (c *pushConn) Addr() string            { return "test" }
func (c *pushConn) Close()                  { close(c.done) }
func (c *pushConn) Done() <-chan struct{}   { return c.done }

func (c *pushConn) Push(name string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushed = append(c.pushed, name)
}

func (c *pushConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pushed)
}

func TestHub_Broadcast_只推给观看同一局的连接(t *testing.T) {
	h := NewHub()
	a, b, c := newPushConn(), newPushConn(), newPushConn()
	h.Watch(1, a)
	h.Watch(1, b)
	h.Watch(2, c)

	if n := h.Broadcast(1, "game.state", nil); n != 2 {
		t.Fatalf("n=%d", n)
	}
	if a.count() != 1 || b.count() != 1 || c.count() != 0 {
		t.Fatalf("a=%d b=%d c=%d", a.count(), b.count(), c.count())
	}

	// 换局
	h.Watch(2, a)
	if h.Watchers(1) != 1 || h.Watchers(2) != 2 {
		t.Fatalf("w1=%d w2=%d", h.Watchers(1), h.Watchers(2))
	}
}

func TestHub_连接关闭后自动移除(t *testing.T) {
	h := NewHub()
	a := newPushConn()
	h.Watch(1, a)
	a.Close()

	deadline := time.Now().Add(time.Second)
	for h.Watchers(1) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("期望关闭后移除, watchers=%d", h.Watchers(1))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (h *Hub) trackedCount() int {
	h.RLock()
	defer h.RUnlock()
	return len(h.tracked)
}

func TestHub_反复观看取消只起一个watcher(t *testing.T) {
	h := NewHub()
	a := newPushConn()
	for i := 0; i < 5; i++ {
		h.Watch(1, a)
		h.Unwatch(a)
	}
	h.Watch(1, a)
	if n := h.trackedCount(); n != 1 {
		t.Fatalf("tracked=%d", n)
	}

	a.Close()
	deadline := time.Now().Add(time.Second)
	for h.trackedCount() != 0 || h.Watchers(1) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("关闭后应清理, tracked=%d watchers=%d", h.trackedCount(), h.Watchers(1))
		}
		time.Sleep(5 * time.Millisecond)
	}
}
