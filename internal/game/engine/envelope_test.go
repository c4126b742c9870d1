package engine

import (
	"encoding/json"
	"reflect"
	"testing"

	"PowerLine/internal/game/resource"
	"PowerLine/internal/game/rules"
	"PowerLine/modules/kit/errx"
)

func TestEnvelope_包装后解出同一条命令(t *testing.T) {
	cmds := []Command{
		StartAuction{Player: "p1", Asset: 3, Bid: 4, Replaces: 11},
		RaiseBid{Player: "p2", Bid: 9},
		BuyResource{Player: "p1", Kind: resource.Coal, Amount: 2},
		ConnectLocation{Player: "p2", Location: "a1"},
		SettleOutput{Player: "p1", Assets: []int{3}, Resources: map[resource.Kind]int{resource.Oil: 2}},
		PassConnect{Player: "p2"},
	}
	for _, cmd := range cmds {
		env, err := EnvelopeOf(cmd)
		if err != nil {
			t.Fatalf("EnvelopeOf(%s) err=%v", cmd.Name(), err)
		}
		raw, _ := json.Marshal(env)
		var back Envelope
		if err = json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("unmarshal err=%v", err)
		}
		got, err := DecodeCommand(back)
		if err != nil {
			t.Fatalf("DecodeCommand(%s) err=%v", cmd.Name(), err)
		}
		if !reflect.DeepEqual(got, cmd) {
			t.Fatalf("got=%#v want=%#v", got, cmd)
		}
	}
}

func TestDecodeCommand_未知命令与坏参数(t *testing.T) {
	_, err := DecodeCommand(Envelope{Name: "fly", Player: "p1"})
	if errx.ReasonOf(err) != rules.ReasonUnknownCommand.Code {
		t.Fatalf("got=%v", err)
	}
	_, err = DecodeCommand(Envelope{Name: CmdRaiseBid, Player: "p1", Params: json.RawMessage(`{"bid":"x"}`)})
	if errx.ReasonOf(err) != rules.ReasonInvalidCommand.Code {
		t.Fatalf("got=%v", err)
	}
}

func TestReplay_重放得到同样的投影(t *testing.T) {
	s := twoPlayers(t)
	settings := Settings{Players: s.Players(), Graph: s.Graph(), Seed: 42}
	first, second := s.PlayOrder()[0], s.PlayOrder()[1]

	log := []Command{
		StartAuction{Player: first, Asset: 3, Bid: 3},
		PassBid{Player: second},
		StartAuction{Player: second, Asset: 4, Bid: 4},
		BuyResource{Player: first, Kind: resource.Oil, Amount: 2},
		PassBuyResources{Player: first},
	}
	live := s
	envs := make([]Envelope, 0, len(log))
	for _, cmd := range log {
		live = must(t, live, cmd)
		env, err := EnvelopeOf(cmd)
		if err != nil {
			t.Fatalf("err=%v", err)
		}
		envs = append(envs, env)
	}

	replayed, err := ReplayEnvelopes(settings, envs)
	if err != nil {
		t.Fatalf("replay err=%v", err)
	}
	if !reflect.DeepEqual(Project(replayed), Project(live)) {
		t.Fatalf("重放结果不同:\n%+v\n%+v", Project(replayed), Project(live))
	}

	_, err = Replay(settings, append(log, PassBid{Player: first}))
	if err == nil {
		t.Fatalf("非法日志应失败")
	}
}
