package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigRelPath = "configs/conf.yml"

// Load 读取配置到 out，失败直接 panic，只在进程启动时调用。
//
// 约定：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 `configs/conf.yml`。
func Load(cfgName string, out any, onChange ...func()) string {
	path, err := Resolve(cfgName)
	if err != nil {
		panic(err)
	}
	if err = LoadFile(path, out, onChange...); err != nil {
		panic(err)
	}
	return path
}

// Resolve 按上面的约定找到配置文件的绝对路径。
func Resolve(cfgName string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if cfgName != "" {
		if !filepath.IsAbs(cfgName) {
			cfgName = filepath.Join(curDir, cfgName)
		}
		if !fileExist(cfgName) {
			return "", fmt.Errorf("config file not exist, configPath=%v", cfgName)
		}
		return cfgName, nil
	}
	return findConfigUpward(curDir)
}

func findConfigUpward(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config file not exist, searched %s from: %s", defaultConfigRelPath, startDir)
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
