package network

import (
	"slices"

	"PowerLine/internal/game/rules"
)

// RestrictToRegions 只保留给定区域的地点，以及两端都保留的连线。
// 每个保留区域都必须能经由保留的连线到达其余所有保留区域。
func (g *Graph) RestrictToRegions(names ...string) (*Graph, error) {
	if len(names) == 0 {
		return nil, rules.Violate(rules.ReasonUnknownRegion, "")
	}

	regionOn := make([]bool, len(g.regions))
	for _, name := range names {
		id, ok := g.regByName[name]
		if !ok || !g.regionOn[id] {
			return nil, rules.Violate(rules.ReasonUnknownRegion, name)
		}
		regionOn[id] = true
	}

	retained := make([]bool, len(g.locations))
	for _, l := range g.locations {
		retained[l.ID] = g.retained[l.ID] && regionOn[l.Region]
	}

	adjacency := make([][]Edge, len(g.locations))
	for id, edges := range g.adjacency {
		if !retained[id] {
			continue
		}
		kept := make([]Edge, 0, len(edges))
		for _, e := range edges {
			if retained[e.To] {
				kept = append(kept, e)
			}
		}
		adjacency[id] = kept
	}

	view := &Graph{
		locations: g.locations,
		regions:   g.regions,
		adjacency: adjacency,
		retained:  retained,
		regionOn:  regionOn,
		locByName: g.locByName,
		regByName: g.regByName,
	}
	if !view.regionsMutuallyReachable() {
		return nil, rules.Violate(rules.ReasonRegionsUnreachable)
	}
	return view, nil
}

func (g *Graph) regionsMutuallyReachable() bool {
	want := g.RegionCount()
	for _, r := range g.regions {
		if !g.regionOn[r.ID] {
			continue
		}
		if len(g.reachableRegions(r.Locations)) != want {
			return false
		}
	}
	return true
}

// reachableRegions 从一组起点做 BFS，返回途经的区域集合。
func (g *Graph) reachableRegions(starts []LocationID) map[RegionID]struct{} {
	seen := make([]bool, len(g.locations))
	queue := slices.Clone(starts)
	regions := make(map[RegionID]struct{})
	for _, s := range starts {
		seen[s] = true
	}
	for len(queue) > 0 {
		at := queue[0]
		queue = queue[1:]
		regions[g.locations[at].Region] = struct{}{}
		for _, e := range g.adjacency[at] {
			if !seen[e.To] {
				seen[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}
	return regions
}

// PickRegions 从 id 最小的区域出发按区域相邻关系做 BFS，取前 n 个区域名。
// 结果仍需交给 RestrictToRegions 校验。
func (g *Graph) PickRegions(n int) ([]string, error) {
	if n <= 0 || n > g.RegionCount() {
		return nil, rules.Violate(rules.ReasonInvalidRegions, n)
	}

	neighbours := make(map[RegionID][]RegionID)
	for from, edges := range g.adjacency {
		if !g.retained[from] {
			continue
		}
		a := g.locations[from].Region
		for _, e := range edges {
			if b := g.locations[e.To].Region; a != b && !slices.Contains(neighbours[a], b) {
				neighbours[a] = append(neighbours[a], b)
			}
		}
	}

	var start RegionID = -1
	for _, r := range g.regions {
		if g.regionOn[r.ID] {
			start = r.ID
			break
		}
	}
	picked := []RegionID{start}
	for i := 0; i < len(picked) && len(picked) < n; i++ {
		next := neighbours[picked[i]]
		slices.Sort(next)
		for _, r := range next {
			if len(picked) < n && !slices.Contains(picked, r) {
				picked = append(picked, r)
			}
		}
	}
	if len(picked) < n {
		return nil, rules.Violate(rules.ReasonRegionsUnreachable)
	}

	names := make([]string, len(picked))
	for i, r := range picked {
		names[i] = g.regions[r].Name
	}
	return names, nil
}
