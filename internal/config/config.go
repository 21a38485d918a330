package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Timer    TimerConfig    `yaml:"timer"`
	Sound    SoundConfig    `yaml:"sound"`
	Database DatabaseConfig `yaml:"database"`
	HowTo    HowToConfig    `yaml:"how_to"`
}

type AppConfig struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
}

type TimerConfig struct {
	TotalSeconds int           `yaml:"total_seconds"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Path    string  `yaml:"path"`
	Volume  float64 `yaml:"volume"`
	Credit  string  `yaml:"credit"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type HowToConfig struct {
	ImagePath string   `yaml:"image_path"`
	GuideURL  string   `yaml:"guide_url"`
	Steps     []string `yaml:"steps"`
}

// 默认配置
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:         "HandWashing App",
			Version:      "1.0.0",
			WindowWidth:  480,
			WindowHeight: 560,
		},
		Timer: TimerConfig{
			TotalSeconds: 5,
			TickInterval: time.Second,
		},
		Sound: SoundConfig{
			Enabled: true,
			Path:    "assets/done.wav",
			Volume:  0,
			Credit:  "https://freesound.org/people/metrostock99/sounds/345086",
		},
		Database: DatabaseConfig{
			Path: "handwash.db",
		},
		HowTo: HowToConfig{
			ImagePath: "assets/howto.png",
			GuideURL:  "https://www.who.int/gpsc/clean_hands_protection/en/",
			Steps: []string{
				"Wet hands with water",
				"Apply enough soap to cover all hand surfaces",
				"Rub hands palm to palm",
				"Rub backs of hands and between fingers",
				"Rinse hands with water",
				"Dry hands thoroughly with a single use towel",
			},
		},
	}
}

var (
	ErrInvalidTotal    = errors.New("config: timer.total_seconds must be positive")
	ErrInvalidInterval = errors.New("config: timer.tick_interval must be positive")
	ErrInvalidWindow   = errors.New("config: window size must be positive")
)

func (c *Config) Validate() error {
	if c.Timer.TotalSeconds <= 0 {
		return ErrInvalidTotal
	}
	if c.Timer.TickInterval <= 0 {
		return ErrInvalidInterval
	}
	if c.App.WindowWidth <= 0 || c.App.WindowHeight <= 0 {
		return ErrInvalidWindow
	}
	return nil
}

type Manager struct {
	mu         sync.RWMutex
	config     *Config
	configPath string
}

// NewManager 加载 path 处的配置, 文件不存在时写入默认配置; path 为空时使用用户目录
func NewManager(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	manager := &Manager{
		configPath: path,
	}

	cfg, err := manager.load()
	switch {
	case errors.Is(err, os.ErrNotExist):
		manager.config = DefaultConfig()
		if err := manager.SaveConfig(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		manager.config = cfg
	}

	return manager, nil
}

func (m *Manager) load() (*Config, error) {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return nil, err
	}

	// 未出现的字段保留默认值
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", m.configPath, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", m.configPath, err)
	}
	return config, nil
}

func (m *Manager) SaveConfig() error {
	m.mu.RLock()
	data, err := yaml.Marshal(m.config)
	m.mu.RUnlock()
	if err != nil {
		return err
	}

	// 确保配置目录存在
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	return os.WriteFile(m.configPath, data, 0644)
}

func (m *Manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

// DefaultPath 返回 ~/.handwash/config.yaml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".handwash", "config.yaml"), nil
}

func (m *Manager) set(cfg *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = cfg
}
