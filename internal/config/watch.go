package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// 监听配置变化
type ConfigChangeCallback func(*Config)

const watchDebounce = 100 * time.Millisecond

// Watch 监听配置文件所在目录, 文件变化时重新加载并回调; 无效的配置只记录日志.
// 返回后在 ctx 取消前一直在后台运行.
func (m *Manager) Watch(ctx context.Context, logger *zap.Logger, callback ConfigChangeCallback) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// 编辑器通常先写临时文件再重命名, 所以监听目录而不是文件
	if err := watcher.Add(filepath.Dir(m.configPath)); err != nil {
		watcher.Close()
		return err
	}

	go m.watchLoop(ctx, watcher, logger, callback)
	return nil
}

func (m *Manager) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, logger *zap.Logger, callback ConfigChangeCallback) {
	defer watcher.Close()

	target := filepath.Clean(m.configPath)
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				debounce = time.After(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", zap.Error(err))
		case <-debounce:
			debounce = nil
			cfg, err := m.load()
			if err != nil {
				logger.Warn("ignoring invalid config reload", zap.String("path", m.configPath), zap.Error(err))
				continue
			}
			m.set(cfg)
			logger.Info("config reloaded", zap.String("path", m.configPath))
			if callback != nil {
				callback(cfg)
			}
		}
	}
}
