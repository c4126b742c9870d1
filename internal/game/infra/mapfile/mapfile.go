package mapfile

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"PowerLine/internal/game/network"
	"PowerLine/modules/kit/errx"
)

const ext = ".yml"

// Document 是地图文件的结构：区域及其地点，加上带花费的连线。
type Document struct {
	Name        string       `yaml:"name"`
	Regions     []RegionDoc  `yaml:"regions"`
	Connections []Connection `yaml:"connections"`
}

type RegionDoc struct {
	Name      string   `yaml:"name"`
	Locations []string `yaml:"locations"`
}

type Connection struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Cost int    `yaml:"cost"`
}

// Parse 解析 yml 并构建完整（未限定区域）的地图。
func Parse(data []byte) (*network.Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Build()
}

func (d Document) Build() (*network.Graph, error) {
	b := network.NewBuilder()
	ids := make(map[string]network.LocationID)
	for _, r := range d.Regions {
		rid := b.AddRegion(r.Name)
		for _, name := range r.Locations {
			ids[name] = b.AddLocation(name, rid)
		}
	}
	for _, c := range d.Connections {
		from, ok := ids[c.From]
		if !ok {
			from = -1
		}
		to, ok := ids[c.To]
		if !ok {
			to = -1
		}
		b.Connect(from, to, c.Cost)
	}
	return b.Build()
}

// Provider 从目录按名字读取地图，解析结果按名字缓存（Graph 不可变）。
type Provider struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]*network.Graph
}

func NewProvider(dir string) *Provider {
	return &Provider{dir: dir, cache: make(map[string]*network.Graph)}
}

func (p *Provider) Load(name string) (*network.Graph, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, errx.ErrReqParamERR.WithMsgf("invalid map name %q", name)
	}

	p.mu.RLock()
	g, ok := p.cache[name]
	p.mu.RUnlock()
	if ok {
		return g, nil
	}

	data, err := os.ReadFile(filepath.Join(p.dir, name+ext))
	if os.IsNotExist(err) {
		return nil, errx.ErrNotFound.WithMsgf("map %q not found", name)
	}
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err)
	}
	g, err = Parse(data)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[name] = g
	p.mu.Unlock()
	return g, nil
}

// Names 列出目录里可用的地图名。
func (p *Provider) Names() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
			names = append(names, strings.TrimSuffix(e.Name(), ext))
		}
	}
	return names, nil
}
