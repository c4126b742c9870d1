package network

import (
	"fmt"
	"slices"

	"PowerLine/internal/game/rules"
)

// LocationID / RegionID 是图内表的下标，构建后稳定，裁剪视图沿用同一套 id。
type LocationID int
type RegionID int

type Location struct {
	ID     LocationID
	Name   string
	Region RegionID
}

type Region struct {
	ID        RegionID
	Name      string
	Locations []LocationID
}

// Edge 是有向边，建图时总是同时存入反向边。
type Edge struct {
	From LocationID
	To   LocationID
	Cost int
}

// Graph 是不可变的地图：locations/regions 为平铺表，邻接关系用下标列表表示。
// 裁剪出的视图与原图共享表，只替换 retained 标记和邻接表。
type Graph struct {
	locations []Location
	regions   []Region
	adjacency [][]Edge
	retained  []bool
	regionOn  []bool
	locByName map[string]LocationID
	regByName map[string]RegionID
}

func (g *Graph) Contains(id LocationID) bool {
	return g != nil && int(id) >= 0 && int(id) < len(g.locations) && g.retained[id]
}

func (g *Graph) Location(id LocationID) (Location, bool) {
	if !g.Contains(id) {
		return Location{}, false
	}
	return g.locations[id], true
}

func (g *Graph) LocationByName(name string) (Location, bool) {
	id, ok := g.locByName[name]
	if !ok {
		return Location{}, false
	}
	return g.Location(id)
}

// Known 判断名字是否存在于原始地图中，不论是否被裁剪掉。
func (g *Graph) Known(name string) bool {
	_, ok := g.locByName[name]
	return ok
}

func (g *Graph) Region(id RegionID) (Region, bool) {
	if g == nil || int(id) < 0 || int(id) >= len(g.regions) || !g.regionOn[id] {
		return Region{}, false
	}
	return g.region(id), true
}

func (g *Graph) RegionByName(name string) (Region, bool) {
	id, ok := g.regByName[name]
	if !ok || !g.regionOn[id] {
		return Region{}, false
	}
	return g.region(id), true
}

// Locations 按 id 顺序返回保留的地点。
func (g *Graph) Locations() []Location {
	out := make([]Location, 0, len(g.locations))
	for _, l := range g.locations {
		if g.retained[l.ID] {
			out = append(out, l)
		}
	}
	return out
}

// Regions 按 id 顺序返回保留的区域。
func (g *Graph) Regions() []Region {
	out := make([]Region, 0, len(g.regions))
	for _, r := range g.regions {
		if g.regionOn[r.ID] {
			out = append(out, g.region(r.ID))
		}
	}
	return out
}

func (g *Graph) RegionCount() int {
	n := 0
	for _, on := range g.regionOn {
		if on {
			n++
		}
	}
	return n
}

// Edges 返回某地点在当前视图内的出边。
func (g *Graph) Edges(id LocationID) []Edge {
	if !g.Contains(id) {
		return nil
	}
	return slices.Clone(g.adjacency[id])
}

func (g *Graph) region(id RegionID) Region {
	r := g.regions[id]
	r.Locations = slices.Clone(r.Locations)
	return r
}

// Builder 逐步登记区域、地点和连线，Build 时统一校验。第一个错误会一直保留。
type Builder struct {
	locations []Location
	regions   []Region
	edges     []Edge
	locByName map[string]LocationID
	regByName map[string]RegionID
	err       error
}

func NewBuilder() *Builder {
	return &Builder{
		locByName: make(map[string]LocationID),
		regByName: make(map[string]RegionID),
	}
}

func (b *Builder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = rules.Violate(rules.ReasonInvalidGraph, fmt.Sprintf(format, args...))
	}
}

func (b *Builder) AddRegion(name string) RegionID {
	if id, ok := b.regByName[name]; ok {
		b.fail("duplicate region %q", name)
		return id
	}
	id := RegionID(len(b.regions))
	b.regions = append(b.regions, Region{ID: id, Name: name})
	b.regByName[name] = id
	return id
}

func (b *Builder) AddLocation(name string, region RegionID) LocationID {
	if id, ok := b.locByName[name]; ok {
		b.fail("duplicate location %q", name)
		return id
	}
	if int(region) < 0 || int(region) >= len(b.regions) {
		b.fail("location %q references unknown region %d", name, region)
		return -1
	}
	id := LocationID(len(b.locations))
	b.locations = append(b.locations, Location{ID: id, Name: name, Region: region})
	b.regions[region].Locations = append(b.regions[region].Locations, id)
	b.locByName[name] = id
	return id
}

// Connect 登记一条双向连线。
func (b *Builder) Connect(from, to LocationID, cost int) {
	switch {
	case int(from) < 0 || int(from) >= len(b.locations) || int(to) < 0 || int(to) >= len(b.locations):
		b.fail("connection %d-%d references unknown location", from, to)
	case from == to:
		b.fail("self connection on %q", b.locations[from].Name)
	case cost < 0:
		b.fail("negative cost %d between %q and %q", cost, b.locations[from].Name, b.locations[to].Name)
	default:
		b.edges = append(b.edges, Edge{From: from, To: to, Cost: cost}, Edge{From: to, To: from, Cost: cost})
	}
}

func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.regions) == 0 {
		return nil, rules.Violate(rules.ReasonInvalidGraph, "no regions")
	}
	for _, r := range b.regions {
		if len(r.Locations) == 0 {
			return nil, rules.Violate(rules.ReasonInvalidGraph, fmt.Sprintf("region %q has no locations", r.Name))
		}
	}

	g := &Graph{
		locations: slices.Clone(b.locations),
		regions:   make([]Region, len(b.regions)),
		adjacency: make([][]Edge, len(b.locations)),
		retained:  make([]bool, len(b.locations)),
		regionOn:  make([]bool, len(b.regions)),
		locByName: make(map[string]LocationID, len(b.locByName)),
		regByName: make(map[string]RegionID, len(b.regByName)),
	}
	for i, r := range b.regions {
		g.regions[i] = Region{ID: r.ID, Name: r.Name, Locations: slices.Clone(r.Locations)}
		g.regionOn[i] = true
	}
	for i := range g.retained {
		g.retained[i] = true
	}
	for _, e := range b.edges {
		g.adjacency[e.From] = append(g.adjacency[e.From], e)
	}
	for k, v := range b.locByName {
		g.locByName[k] = v
	}
	for k, v := range b.regByName {
		g.regByName[k] = v
	}
	return g, nil
}
