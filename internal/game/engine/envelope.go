package engine

import (
	"encoding/json"
	"fmt"

	"PowerLine/internal/game/rules"
)

// Envelope 是命令的 JSON 外壳，用于传输和命令日志。
type Envelope struct {
	Name   string          `json:"name"`
	Player PlayerID        `json:"player"`
	Params json.RawMessage `json:"params,omitempty"`
}

// EnvelopeOf 把命令包装成外壳。
func EnvelopeOf(cmd Command) (Envelope, error) {
	params, err := json.Marshal(cmd)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s: %w", cmd.Name(), err)
	}
	return Envelope{Name: cmd.Name(), Player: cmd.Actor(), Params: params}, nil
}

// DecodeCommand 按名字解出具体命令，Player 取外壳上的值。
func DecodeCommand(env Envelope) (Command, error) {
	switch env.Name {
	case CmdStartAuction:
		return decode[StartAuction](env, func(c *StartAuction) { c.Player = env.Player })
	case CmdRaiseBid:
		return decode[RaiseBid](env, func(c *RaiseBid) { c.Player = env.Player })
	case CmdPassBid:
		return PassBid{Player: env.Player}, nil
	case CmdPassAuction:
		return PassAuction{Player: env.Player}, nil
	case CmdBuyResource:
		return decode[BuyResource](env, func(c *BuyResource) { c.Player = env.Player })
	case CmdPassBuyResources:
		return PassBuyResources{Player: env.Player}, nil
	case CmdConnectLocation:
		return decode[ConnectLocation](env, func(c *ConnectLocation) { c.Player = env.Player })
	case CmdPassConnect:
		return PassConnect{Player: env.Player}, nil
	case CmdSettleOutput:
		return decode[SettleOutput](env, func(c *SettleOutput) { c.Player = env.Player })
	case CmdEndGame:
		return EndGame{Player: env.Player}, nil
	default:
		return nil, rules.Violate(rules.ReasonUnknownCommand, env.Name)
	}
}

func decode[T Command](env Envelope, setPlayer func(*T)) (Command, error) {
	var c T
	if len(env.Params) > 0 {
		if err := json.Unmarshal(env.Params, &c); err != nil {
			return nil, rules.Violate(rules.ReasonInvalidCommand, err.Error())
		}
	}
	setPlayer(&c)
	return c, nil
}
