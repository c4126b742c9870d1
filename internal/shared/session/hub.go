package session

import (
	"sync"

	"PowerLine/internal/shared/transport/ws"
)

// Hub 记录每个 key（对局 id）下正在观看的连接，用于广播。
// 连接关闭后自动移除。
type Hub struct {
	sync.RWMutex
	watchers map[int64]map[ws.WSConn]struct{}
	conn2key map[ws.WSConn]int64
	tracked  map[ws.WSConn]struct{} // 已有 watcher 等待关闭的连接，Unwatch 不清
}

func NewHub() *Hub {
	return &Hub{
		watchers: make(map[int64]map[ws.WSConn]struct{}),
		conn2key: make(map[ws.WSConn]int64),
		tracked:  make(map[ws.WSConn]struct{}),
	}
}

// Watch 让 conn 观看 key。一条连接同时只看一局，再次 Watch 会换到新的 key。
func (h *Hub) Watch(key int64, conn ws.WSConn) {
	if conn == nil {
		return
	}
	h.Lock()
	defer h.Unlock()

	old, watched := h.conn2key[conn]
	if watched && old == key {
		return
	}
	if watched {
		h.removeLocked(old, conn)
	}
	// 每条连接只起一个 watcher
	if _, ok := h.tracked[conn]; !ok {
		h.tracked[conn] = struct{}{}
		go h.watchConnDone(conn)
	}
	set := h.watchers[key]
	if set == nil {
		set = make(map[ws.WSConn]struct{})
		h.watchers[key] = set
	}
	set[conn] = struct{}{}
	h.conn2key[conn] = key
}

func (h *Hub) watchConnDone(conn ws.WSConn) {
	<-conn.Done()
	h.Lock()
	delete(h.tracked, conn)
	h.Unlock()
	h.Unwatch(conn)
}

func (h *Hub) Unwatch(conn ws.WSConn) {
	h.Lock()
	defer h.Unlock()
	key, ok := h.conn2key[conn]
	if !ok {
		return
	}
	h.removeLocked(key, conn)
	delete(h.conn2key, conn)
}

func (h *Hub) removeLocked(key int64, conn ws.WSConn) {
	set := h.watchers[key]
	delete(set, conn)
	if len(set) == 0 {
		delete(h.watchers, key)
	}
}

// Broadcast 推送给 key 下所有连接，返回推送数。
func (h *Hub) Broadcast(key int64, name string, data any) int {
	h.RLock()
	conns := make([]ws.WSConn, 0, len(h.watchers[key]))
	for c := range h.watchers[key] {
		conns = append(conns, c)
	}
	h.RUnlock()

	for _, c := range conns {
		c.Push(name, data)
	}
	return len(conns)
}

func (h *Hub) Watchers(key int64) int {
	h.RLock()
	defer h.RUnlock()
	return len(h.watchers[key])
}
