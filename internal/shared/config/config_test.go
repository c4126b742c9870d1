package config

import (
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	HTTPServer struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"httpserver"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir err=%v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write err=%v", err)
	}
}

func TestLoadFile_环境变量覆盖文件(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "configs", "conf.yml")
	writeFile(t, path, "httpserver:\n  host: 127.0.0.1\n  port: 8080\njwt_secret: from-file\n")
	t.Setenv("POWERLINE_HTTPSERVER_PORT", "9090")

	var got sample
	if err := LoadFile(path, &got); err != nil {
		t.Fatalf("LoadFile err=%v", err)
	}
	if got.HTTPServer.Host != "127.0.0.1" || got.HTTPServer.Port != 9090 {
		t.Fatalf("got=%+v", got)
	}
	if got.JWTSecret != "from-file" {
		t.Fatalf("jwt=%q", got.JWTSecret)
	}
}

func TestFindConfigUpward_从子目录向上查找(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "configs", "conf.yml")
	writeFile(t, path, "jwt_secret: x\n")
	sub := filepath.Join(dir, "cmd", "powerline")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir err=%v", err)
	}

	found, err := findConfigUpward(sub)
	if err != nil || found != path {
		t.Fatalf("found=%q err=%v", found, err)
	}
	if _, err = findConfigUpward(t.TempDir()); err == nil {
		t.Fatalf("期望找不到配置时报错")
	}
}
