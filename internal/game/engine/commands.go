package engine

import "PowerLine/internal/game/resource"

// Command 是一条玩家命令，每种合法动作对应一个类型。Actor 为发出命令的玩家。
type Command interface {
	Actor() PlayerID
	Name() string
	isCommand()
}

// StartAuction 开拍 current 里的一座电厂。Replaces 为要拆掉的电厂价格，0 表示不拆。
type StartAuction struct {
	Player   PlayerID `json:"-"`
	Asset    int      `json:"asset"`
	Bid      int      `json:"bid"`
	Replaces int      `json:"replaces,omitempty"`
}

type RaiseBid struct {
	Player   PlayerID `json:"-"`
	Bid      int      `json:"bid"`
	Replaces int      `json:"replaces,omitempty"`
}

type PassBid struct {
	Player PlayerID `json:"-"`
}

type PassAuction struct {
	Player PlayerID `json:"-"`
}

type BuyResource struct {
	Player PlayerID      `json:"-"`
	Kind   resource.Kind `json:"kind"`
	Amount int           `json:"amount"`
}

type PassBuyResources struct {
	Player PlayerID `json:"-"`
}

// ConnectLocation 按名字接入一座城市。
type ConnectLocation struct {
	Player   PlayerID `json:"-"`
	Location string   `json:"location"`
}

type PassConnect struct {
	Player PlayerID `json:"-"`
}

// SettleOutput 开动若干电厂并烧掉给定的资源。
type SettleOutput struct {
	Player    PlayerID              `json:"-"`
	Assets    []int                 `json:"assets"`
	Resources map[resource.Kind]int `json:"resources,omitempty"`
}

type EndGame struct {
	Player PlayerID `json:"-"`
}

const (
	CmdStartAuction     = "startAuction"
	CmdRaiseBid         = "raiseBid"
	CmdPassBid          = "passBid"
	CmdPassAuction      = "passAuction"
	CmdBuyResource      = "buyResource"
	CmdPassBuyResources = "passBuyResources"
	CmdConnectLocation  = "connectLocation"
	CmdPassConnect      = "passConnect"
	CmdSettleOutput     = "settleOutput"
	CmdEndGame          = "endGame"
)

func (c StartAuction) Actor() PlayerID     { return c.Player }
func (c RaiseBid) Actor() PlayerID         { return c.Player }
func (c PassBid) Actor() PlayerID          { return c.Player }
func (c PassAuction) Actor() PlayerID      { return c.Player }
func (c BuyResource) Actor() PlayerID      { return c.Player }
func (c PassBuyResources) Actor() PlayerID { return c.Player }
func (c ConnectLocation) Actor() PlayerID  { return c.Player }
func (c PassConnect) Actor() PlayerID      { return c.Player }
func (c SettleOutput) Actor() PlayerID     { return c.Player }
func (c EndGame) Actor() PlayerID          { return c.Player }

func (StartAuction) Name() string     { return CmdStartAuction }
func (RaiseBid) Name() string         { return CmdRaiseBid }
func (PassBid) Name() string          { return CmdPassBid }
func (PassAuction) Name() string      { return CmdPassAuction }
func (BuyResource) Name() string      { return CmdBuyResource }
func (PassBuyResources) Name() string { return CmdPassBuyResources }
func (ConnectLocation) Name() string  { return CmdConnectLocation }
func (PassConnect) Name() string      { return CmdPassConnect }
func (SettleOutput) Name() string     { return CmdSettleOutput }
func (EndGame) Name() string          { return CmdEndGame }

func (StartAuction) isCommand()     {}
func (RaiseBid) isCommand()         {}
func (PassBid) isCommand()          {}
func (PassAuction) isCommand()      {}
func (BuyResource) isCommand()      {}
func (PassBuyResources) isCommand() {}
func (ConnectLocation) isCommand()  {}
func (PassConnect) isCommand()      {}
func (SettleOutput) isCommand()     {}
func (EndGame) isCommand()          {}
