// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的数据。
//
// 使用前必须调用 Init() 初始化；未初始化时加载函数回退到内置默认值。
package embedded

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/decker502/driftfield/pkg/config"
)

// 嵌入数据文件路径
const (
	FieldConfigPath = "data/field.yaml"
	ContentPoolPath = "data/content_pool.yaml"
	LabelPoolPath   = "data/labels.yaml"
)

var (
	dataFS      fs.FS
	initialized bool
)

var errNotInitialized = fmt.Errorf("embedded package not initialized, call Init() first")

// Init 初始化数据文件系统
// 必须在 main() 开始时、任何数据加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径并校验前缀；路径必须以 "data/" 开头
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// ReadFile 读取嵌入文件内容
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	if !initialized {
		return false
	}
	p, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, p)
	return err == nil
}

// Glob 匹配嵌入文件
func Glob(pattern string) ([]string, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, p)
}

// FieldConfig 加载嵌入的引擎配置；未初始化时返回内置默认值
func FieldConfig() (config.FieldConfig, error) {
	if !initialized {
		log.Printf("[Embedded] not initialized, using built-in field config")
		return config.DefaultFieldConfig(), nil
	}
	data, err := ReadFile(FieldConfigPath)
	if err != nil {
		return config.FieldConfig{}, fmt.Errorf("failed to read %s: %w", FieldConfigPath, err)
	}
	cfg, err := config.ParseFieldConfig(data)
	if err != nil {
		return config.FieldConfig{}, fmt.Errorf("%s: %w", FieldConfigPath, err)
	}
	return cfg, nil
}

// ContentPool 加载嵌入的内容池；withLabels 为 true 时合并旧版文本标签池
func ContentPool(withLabels bool) (config.ContentPool, error) {
	if !initialized {
		log.Printf("[Embedded] not initialized, using built-in content pool")
		pool := config.DefaultContentPool()
		if withLabels {
			pool = pool.Merge(config.LegacyLabelPool())
		}
		return pool, nil
	}

	pool, err := readPool(ContentPoolPath)
	if err != nil {
		return config.ContentPool{}, err
	}
	if withLabels {
		labels, err := readPool(LabelPoolPath)
		if err != nil {
			return config.ContentPool{}, err
		}
		pool = pool.Merge(labels)
	}
	return pool, nil
}

func readPool(path string) (config.ContentPool, error) {
	data, err := ReadFile(path)
	if err != nil {
		return config.ContentPool{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	pool, err := config.ParseContentPool(data)
	if err != nil {
		return config.ContentPool{}, fmt.Errorf("%s: %w", path, err)
	}
	return pool, nil
}
