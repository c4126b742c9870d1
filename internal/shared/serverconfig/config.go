package serverconfig

import (
	"os"

	"PowerLine/internal/shared/config"
)

var Conf Config

// Load 读取 cfgName（为空时向上查找 configs/conf.yml），返回实际使用的路径。
func Load(cfgName string, onChange ...func()) string {
	path := config.Load(cfgName, &Conf, onChange...)
	// 环境变量优先；若未设置则回填配置中的 jwt_secret，兼容本地开发场景。
	if os.Getenv("JWT_SECRET") == "" && Conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.JWTSecret)
	}
	return path
}

// Snapshot 在读锁下复制一份当前配置。
func Snapshot() Config {
	var c Config
	config.Read(func() { c = Conf })
	return c
}
