package utils

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// 对局 id 采用雪花布局：41 位毫秒时间戳 | 10 位节点 | 12 位序号。
// 同一节点内单调递增，多实例部署时各自配置不同的节点号。
const (
	idEpochMilli int64 = 1704067200000 // 2024-01-01 UTC

	nodeBits = 10
	seqBits  = 12

	MaxNodeID int64 = 1<<nodeBits - 1
	maxSeq    int64 = 1<<seqBits - 1
)

// NodeEnv 未调用 ConfigureNode 时从这个环境变量读节点号，缺省为 1。
const NodeEnv = "POWERLINE_NODE_ID"

type Snowflake struct {
	mu     sync.Mutex
	node   int64
	lastMs int64
	seq    int64
	now    func() int64
}

func NewSnowflake(node int64) (*Snowflake, error) {
	if node < 0 || node > MaxNodeID {
		return nil, fmt.Errorf("snowflake node id %d out of range [0,%d]", node, MaxNodeID)
	}
	return &Snowflake{node: node, now: func() int64 { return time.Now().UnixMilli() }}, nil
}

func (s *Snowflake) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now()
	if ms < s.lastMs {
		// 时钟回拨时沿用上一毫秒，不让 id 倒退
		ms = s.lastMs
	}
	if ms == s.lastMs {
		s.seq = (s.seq + 1) & maxSeq
		if s.seq == 0 {
			for ms <= s.lastMs {
				ms = s.now()
			}
		}
	} else {
		s.seq = 0
	}
	s.lastMs = ms
	return (ms-idEpochMilli)<<(nodeBits+seqBits) | s.node<<seqBits | s.seq
}

// NodeOf 取出 id 里的节点号。
func NodeOf(id int64) int64 {
	return id >> seqBits & MaxNodeID
}

var (
	defaultMu  sync.Mutex
	defaultGen *Snowflake
)

// ConfigureNode 在启动时设置默认生成器的节点号。
func ConfigureNode(node int64) error {
	gen, err := NewSnowflake(node)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defaultGen = gen
	defaultMu.Unlock()
	return nil
}

func defaultSnowflake() (*Snowflake, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultGen != nil {
		return defaultGen, nil
	}
	node := int64(1)
	if raw := os.Getenv(NodeEnv); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", NodeEnv, err)
		}
		node = parsed
	}
	gen, err := NewSnowflake(node)
	if err != nil {
		return nil, err
	}
	defaultGen = gen
	return gen, nil
}

// NextSnowflakeID 用默认生成器发一个新的对局 id。
func NextSnowflakeID() (int64, error) {
	gen, err := defaultSnowflake()
	if err != nil {
		return 0, err
	}
	return gen.NextID(), nil
}
