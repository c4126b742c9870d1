package engine

import (
	"PowerLine/internal/game/asset"
	"PowerLine/internal/game/resource"
)

// View 是 State 的只读投影，字段全部导出并带 json tag，供展示层和存档使用。
type View struct {
	Phase           PhaseName                      `json:"phase"`
	Step            int                            `json:"step"`
	Round           int                            `json:"round"`
	Table           Table                          `json:"table"`
	Players         []Player                       `json:"players"`
	PlayOrder       []PlayerID                     `json:"playOrder"`
	CurrentPlayer   PlayerID                       `json:"currentPlayer,omitempty"`
	Pending         []PlayerID                     `json:"pending,omitempty"`
	Winner          PlayerID                       `json:"winner,omitempty"`
	Auction         *AuctionView                   `json:"auction,omitempty"`
	Accounts        map[PlayerID]AccountView       `json:"accounts"`
	Locations       []LocationView                 `json:"locations"`
	AssetMarket     AssetMarketView                `json:"assetMarket"`
	ResourceMarkets map[resource.Kind]ResourceView `json:"resourceMarkets"`
}

type AssetView struct {
	Price    int             `json:"price"`
	Consumes []resource.Kind `json:"consumes,omitempty"`
	Requires int             `json:"requires"`
	Powers   int             `json:"powers"`
}

type AccountView struct {
	Balance    int                   `json:"balance"`
	Assets     []AssetView           `json:"assets"`
	Resources  map[resource.Kind]int `json:"resources"`
	Connected  int                   `json:"connected"`
	BestOutput int                   `json:"bestOutput"`
}

type LocationView struct {
	Name        string     `json:"name"`
	Region      string     `json:"region"`
	ConnectedBy []PlayerID `json:"connectedBy,omitempty"`
}

type AssetMarketView struct {
	Current       []AssetView `json:"current"`
	Future        []AssetView `json:"future"`
	DeckRemaining int         `json:"deckRemaining"`
}

type TierView struct {
	Capacity int `json:"capacity"`
	Cost     int `json:"cost"`
	Filled   int `json:"filled"`
}

type ResourceView struct {
	Available int        `json:"available"`
	Tiers     []TierView `json:"tiers"`
}

type AuctionView struct {
	Openers  []PlayerID `json:"openers"`
	Opener   PlayerID   `json:"opener"`
	Closed   int        `json:"closed"`
	Asset    *AssetView `json:"asset,omitempty"`
	Bid      int        `json:"bid,omitempty"`
	Bidder   PlayerID   `json:"bidder,omitempty"`
	Bidders  []PlayerID `json:"bidders,omitempty"`
	Replaces int        `json:"replaces,omitempty"`
}

func viewAsset(a asset.Asset) AssetView {
	return AssetView{Price: a.Price, Consumes: a.Consumes, Requires: a.Requires, Powers: a.Powers}
}

func viewAssets(as []asset.Asset) []AssetView {
	out := make([]AssetView, 0, len(as))
	for _, a := range as {
		out = append(out, viewAsset(a))
	}
	return out
}

// Project 生成当前状态的完整投影。
func Project(s State) View {
	v := View{
		Step:            s.step,
		Round:           s.round,
		Table:           s.table,
		Players:         s.Players(),
		PlayOrder:       s.PlayOrder(),
		Accounts:        make(map[PlayerID]AccountView, len(s.players)),
		ResourceMarkets: make(map[resource.Kind]ResourceView, len(resource.Kinds)),
	}
	if s.phase != nil {
		v.Phase = s.phase.Name()
	}
	v.CurrentPlayer, _ = s.CurrentPlayer()
	v.Winner, _ = s.Winner()

	switch ph := s.Phase().(type) {
	case AuctionPhase:
		av := &AuctionView{Openers: ph.Openers, Opener: ph.Opener, Closed: len(ph.Closed)}
		if r := ph.Round; r != nil {
			a := viewAsset(r.Asset)
			av.Asset, av.Bid, av.Bidder, av.Bidders = &a, r.Bid, r.Bidder, r.Bidders
			if r.Replaces != nil {
				av.Replaces = r.Replaces.Price
			}
		}
		v.Auction = av
		v.Pending = ph.Openers
	case ProcurePhase:
		v.Pending = ph.Remaining
	case BuildPhase:
		v.Pending = ph.Remaining
	case SettlePhase:
		v.Pending = ph.Producers
	}

	for _, p := range s.players {
		acc := s.accounts[p.ID]
		v.Accounts[p.ID] = AccountView{
			Balance:    acc.Balance(),
			Assets:     viewAssets(acc.Assets()),
			Resources:  acc.Resources(),
			Connected:  s.ConnectedCount(p.ID),
			BestOutput: acc.BestAchievableOutput(),
		}
	}

	if s.graph != nil {
		for _, l := range s.graph.Locations() {
			lv := LocationView{Name: l.Name, ConnectedBy: s.Occupants(l.ID)}
			if r, ok := s.graph.Region(l.Region); ok {
				lv.Region = r.Name
			}
			v.Locations = append(v.Locations, lv)
		}
	}

	v.AssetMarket = AssetMarketView{
		Current:       viewAssets(s.plants.Current()),
		Future:        viewAssets(s.plants.Future()),
		DeckRemaining: s.plants.Deck().Remaining(),
	}
	for _, kind := range resource.Kinds {
		m, err := s.markets.Get(kind)
		if err != nil {
			continue
		}
		rv := ResourceView{Available: m.Available()}
		for _, t := range m.Tiers() {
			rv.Tiers = append(rv.Tiers, TierView{Capacity: t.Capacity, Cost: t.Cost, Filled: t.Filled})
		}
		v.ResourceMarkets[kind] = rv
	}
	return v
}
