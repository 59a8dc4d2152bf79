// Package config 提供识别层的本地配置管理
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// WorkerConfig 识别层配置
type WorkerConfig struct {
	// ScreenWidth/ScreenHeight 标准采集分辨率
	ScreenWidth  int `json:"screen_width"`
	ScreenHeight int `json:"screen_height"`
	// AssetDir 模板素材根目录
	AssetDir string `json:"asset_dir"`
	// MatchThreshold 默认模板匹配阈值 (0-1)
	MatchThreshold float64 `json:"match_threshold"`
	// ColorThreshold 默认颜色相似度阈值
	ColorThreshold int `json:"color_threshold"`
	// LogLevel 日志级别 (DEBUG/INFO/WARN/ERROR)
	LogLevel string `json:"log_level"`
}

// DefaultWorkerConfig 默认配置
func DefaultWorkerConfig() *WorkerConfig {
	return &WorkerConfig{
		ScreenWidth:    1280,
		ScreenHeight:   720,
		AssetDir:       "assets",
		MatchThreshold: 0.85,
		ColorThreshold: 10,
		LogLevel:       "INFO",
	}
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器，配置目录为 ~/.dingworker
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return NewManagerWithDir(filepath.Join(homeDir, ".dingworker"))
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// Load 加载配置，文件不存在时返回默认配置
func (m *Manager) Load() (*WorkerConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return DefaultWorkerConfig(), nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return DefaultWorkerConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config WorkerConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return DefaultWorkerConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}

	return &config, nil
}

// Save 保存配置
func (m *Manager) Save(config *WorkerConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置文件
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(m.configFile)
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

var defaultManager = NewManager()

// Load 使用默认管理器加载配置
func Load() (*WorkerConfig, error) {
	return defaultManager.Load()
}

// Save 使用默认管理器保存配置
func Save(config *WorkerConfig) error {
	return defaultManager.Save(config)
}
