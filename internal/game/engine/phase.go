package engine

import (
	"slices"

	"PowerLine/internal/game/asset"
)

type PhaseName string

const (
	PhaseAuction PhaseName = "AUCTION"
	PhaseProcure PhaseName = "PROCURE_RESOURCES"
	PhaseBuild   PhaseName = "BUILD_NETWORK"
	PhaseSettle  PhaseName = "SETTLE"
	PhaseEnded   PhaseName = "ENDED"
)

// Phase 是当前阶段。只有本包里的几种实现，用 type switch 区分。
type Phase interface {
	Name() PhaseName
	clone() Phase
}

// AuctionRound 是一次正在进行的竞拍。
type AuctionRound struct {
	Bidders  []PlayerID // 座次顺序
	Bidder   PlayerID
	Asset    asset.Asset
	Bid      int
	Replaces *asset.Asset // 最近一次出价者选择拆掉的电厂
}

func (r AuctionRound) clone() AuctionRound {
	r.Bidders = slices.Clone(r.Bidders)
	if r.Replaces != nil {
		rp := *r.Replaces
		r.Replaces = &rp
	}
	return r
}

// AuctionPhase：Openers 是本轮还能开拍的玩家（按出手顺序），Opener 轮到开拍的人。
type AuctionPhase struct {
	Openers []PlayerID
	Opener  PlayerID
	Closed  []AuctionRound
	Round   *AuctionRound
}

func (AuctionPhase) Name() PhaseName { return PhaseAuction }

func (p AuctionPhase) clone() Phase {
	p.Openers = slices.Clone(p.Openers)
	closed := make([]AuctionRound, 0, len(p.Closed))
	for _, r := range p.Closed {
		closed = append(closed, r.clone())
	}
	p.Closed = closed
	if p.Round != nil {
		r := p.Round.clone()
		p.Round = &r
	}
	return p
}

// ProcurePhase 按出手逆序买资源，Remaining[0] 是当前玩家。
type ProcurePhase struct {
	Remaining []PlayerID
}

func (ProcurePhase) Name() PhaseName { return PhaseProcure }

func (p ProcurePhase) clone() Phase {
	p.Remaining = slices.Clone(p.Remaining)
	return p
}

// BuildPhase 按出手逆序建网，Remaining[0] 是当前玩家。
type BuildPhase struct {
	Remaining []PlayerID
}

func (BuildPhase) Name() PhaseName { return PhaseBuild }

func (p BuildPhase) clone() Phase {
	p.Remaining = slices.Clone(p.Remaining)
	return p
}

// SettlePhase 里的生产者顺序不限，各自结算一次。
type SettlePhase struct {
	Producers []PlayerID
}

func (SettlePhase) Name() PhaseName { return PhaseSettle }

func (p SettlePhase) clone() Phase {
	p.Producers = slices.Clone(p.Producers)
	return p
}

type EndedPhase struct {
	Winner PlayerID
}

func (EndedPhase) Name() PhaseName { return PhaseEnded }

func (p EndedPhase) clone() Phase { return p }
