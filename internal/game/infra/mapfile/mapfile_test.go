package mapfile

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"PowerLine/internal/game/rules"
	"PowerLine/modules/kit/errx"
)

func mapsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "configs", "maps")
}

func TestProvider_读取自带地图(t *testing.T) {
	p := NewProvider(mapsDir(t))
	g, err := p.Load("riverlands")
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if g.RegionCount() != 6 || len(g.Locations()) != 24 {
		t.Fatalf("regions=%d locations=%d", g.RegionCount(), len(g.Locations()))
	}
	again, _ := p.Load("riverlands")
	if again != g {
		t.Fatalf("期望命中缓存")
	}

	sub, err := g.RestrictToRegions("harbor", "valley", "highlands", "lakes", "plains")
	if err != nil {
		t.Fatalf("restrict err=%v", err)
	}
	if sub.RegionCount() != 5 {
		t.Fatalf("restricted regions=%d", sub.RegionCount())
	}
}

func TestProvider_非法名字和不存在的地图(t *testing.T) {
	p := NewProvider(t.TempDir())
	if _, err := p.Load("../etc/passwd"); !errors.Is(err, errx.ErrReqParamERR) {
		t.Fatalf("err=%v", err)
	}
	if _, err := p.Load("nowhere"); !errors.Is(err, errx.ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestParse_连线引用未知地点(t *testing.T) {
	data := []byte(`
regions:
  - name: r1
    locations: [A, B]
connections:
  - {from: A, to: Z, cost: 3}
`)
	_, err := Parse(data)
	if !errors.Is(err, rules.ErrRuleViolation) || errx.ReasonOf(err) != rules.ReasonInvalidGraph.Code {
		t.Fatalf("err=%v", err)
	}
}

func TestProvider_Names(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"a.yml", "b.yml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("regions: []\n"), 0o644); err != nil {
			t.Fatalf("write err=%v", err)
		}
	}
	names, err := NewProvider(dir).Names()
	if err != nil || len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names=%v err=%v", names, err)
	}
}
