package config

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix 是覆盖配置项的环境变量前缀，例如 POWERLINE_HTTPSERVER_PORT。
const EnvPrefix = "POWERLINE"

var mu sync.RWMutex

// LoadFile 读取指定文件：先加载配置目录及其上一级的 .env，再读 yml，
// 环境变量优先于文件。文件变更时重新解码并依次回调 onChange。
func LoadFile(configPath string, out any, onChange ...func()) error {
	if !fileExist(configPath) {
		return fmt.Errorf("config file not exist, configPath=%v", configPath)
	}
	loadDotEnv(filepath.Dir(configPath))

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return err
	}
	if err := decode(v, out); err != nil {
		return err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		log.Println("配置文件变更", e.Name)
		if err := decode(v, out); err != nil {
			// 热更新失败保留旧配置
			log.Printf("viper unmarshal change config data failed, err=%v", err)
			return
		}
		for _, fn := range onChange {
			fn()
		}
	})
	v.WatchConfig()
	return nil
}

// Read 在读锁下访问配置，和热更新互斥。
func Read(fn func()) {
	mu.RLock()
	defer mu.RUnlock()
	fn()
}

func decode(v *viper.Viper, out any) error {
	mu.Lock()
	defer mu.Unlock()
	return v.Unmarshal(out)
}

// loadDotEnv 不覆盖已有环境变量，文件不存在时忽略。
func loadDotEnv(dir string) {
	for _, f := range []string{filepath.Join(dir, ".env"), filepath.Join(filepath.Dir(dir), ".env")} {
		if fileExist(f) {
			_ = godotenv.Load(f)
		}
	}
}
