package ws

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
)

const (
	// HeartbeatMsg 心跳由连接层直接回复，不经过路由。
	HeartbeatMsg = "heartbeat"
	// ConnKeyGame 是连接正在观看的对局 id。
	ConnKeyGame  = "gameId"
)

// ReqBody 是客户端上行的一帧，name 形如 组.处理器。
type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

// RespBody 是下行的一帧，应答的 seq 与请求一致，主动推送 seq 为 0。
type RespBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Msg  any    `json:"msg"`
}

type WsMsgReq struct {
	Body *ReqBody
	Conn WSConn
}

type WsMsgResp struct {
	Body *RespBody
}

// WSConn 是一条已升级的连接。
type WSConn interface {
	SetProperty(key string, value any)
	GetProperty(key string) any
	RemoveProperty(key string)
	Addr() string
	Push(name string, data any)
	Close()
	// Done 在连接关闭时被关闭
	Done() <-chan struct{}
}

type Heartbeat struct {
	CTime int64 `json:"ctime" mapstructure:"ctime"`
	STime int64 `json:"stime" mapstructure:"stime"`
}

// answerHeartbeat 原样带回客户端时间并补上服务端时间。
func answerHeartbeat(req *ReqBody) *RespBody {
	h := &Heartbeat{}
	_ = mapstructure.Decode(req.Msg, h)
	h.STime = time.Now().UnixMilli()
	return &RespBody{Seq: req.Seq, Name: req.Name, Msg: h}
}
