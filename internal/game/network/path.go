package network

import (
	"slices"
	"strconv"

	"PowerLine/internal/game/rules"

	pq "github.com/emirpasic/gods/queues/priorityqueue"
)

// Path 是一条最短路：按顺序排列的边和总花费。
type Path struct {
	Edges []Edge
	Cost  int
}

type frontier struct {
	at   LocationID
	dist int
}

func byDistance(a, b any) int {
	return a.(frontier).dist - b.(frontier).dist
}

// ShortestPath 在当前视图内求 source 到 target 的最短路（Dijkstra，边权非负）。
// source == target 时花费为 0，没有边。
func (g *Graph) ShortestPath(source, target LocationID) (Path, error) {
	if !g.Contains(source) {
		return Path{}, rules.Violate(rules.ReasonUnknownLocation, locationName(g, source))
	}
	if !g.Contains(target) {
		return Path{}, rules.Violate(rules.ReasonUnknownLocation, locationName(g, target))
	}
	if source == target {
		return Path{}, nil
	}

	n := len(g.locations)
	dist := make([]int, n)
	via := make([]int, n) // 到达该点所用边在 adjacency[from] 中的下标
	from := make([]LocationID, n)
	done := make([]bool, n)
	for i := range dist {
		dist[i] = -1
		via[i] = -1
	}
	dist[source] = 0

	queue := pq.NewWith(byDistance)
	queue.Enqueue(frontier{at: source})
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		cur := v.(frontier)
		if done[cur.at] {
			continue
		}
		done[cur.at] = true
		if cur.at == target {
			break
		}
		for i, e := range g.adjacency[cur.at] {
			next := cur.dist + e.Cost
			if dist[e.To] == -1 || next < dist[e.To] {
				dist[e.To] = next
				via[e.To] = i
				from[e.To] = cur.at
				queue.Enqueue(frontier{at: e.To, dist: next})
			}
		}
	}

	if !done[target] {
		return Path{}, rules.Violate(rules.ReasonUnreachable)
	}

	var edges []Edge
	for at := target; at != source; at = from[at] {
		edges = append(edges, g.adjacency[from[at]][via[at]])
	}
	slices.Reverse(edges)
	return Path{Edges: edges, Cost: dist[target]}, nil
}

// MinConnectionCost 返回从任一已有地点连到 target 的最小花费。
func (g *Graph) MinConnectionCost(sources []LocationID, target LocationID) (int, error) {
	best := -1
	var lastErr error
	for _, s := range sources {
		p, err := g.ShortestPath(s, target)
		if err != nil {
			lastErr = err
			continue
		}
		if best == -1 || p.Cost < best {
			best = p.Cost
		}
	}
	if best == -1 {
		if lastErr == nil {
			lastErr = rules.Violate(rules.ReasonUnreachable)
		}
		return 0, lastErr
	}
	return best, nil
}

func locationName(g *Graph, id LocationID) string {
	if g != nil && int(id) >= 0 && int(id) < len(g.locations) {
		return g.locations[id].Name
	}
	return "#" + strconv.Itoa(int(id))
}
