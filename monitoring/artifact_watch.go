package monitoring

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ArtifactWatcher 监控模型文件变化。模型只在启动时加载一次，这里仅提醒运维重启
type ArtifactWatcher struct {
	path     string
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	onChange func(fsnotify.Op)
	started  bool
	done     chan struct{}
}

// NewArtifactWatcher 创建模型文件监控器，监听文件所在目录以捕获替换写入
func NewArtifactWatcher(path string, logger *zap.Logger) (*ArtifactWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, err
	}
	return &ArtifactWatcher{
		path:    absPath,
		logger:  logger,
		watcher: watcher,
		done:    make(chan struct{}),
	}, nil
}

// OnChange 设置变化回调，需在 Start 之前调用
func (w *ArtifactWatcher) OnChange(fn func(fsnotify.Op)) {
	w.onChange = fn
}

// Start 启动监控，ctx 取消或 Close 后退出
func (w *ArtifactWatcher) Start(ctx context.Context) {
	w.started = true
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				w.logger.Warn("model artifact changed on disk, restart to serve it",
					zap.String("path", w.path),
					zap.String("op", event.Op.String()),
				)
				if w.onChange != nil {
					w.onChange(event.Op)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Error("model artifact watch failed", zap.Error(err))
			}
		}
	}()
}

// Close 停止监控
func (w *ArtifactWatcher) Close() error {
	err := w.watcher.Close()
	if w.started {
		<-w.done
	}
	return err
}
