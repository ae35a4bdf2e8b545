// Package watcher は表示中のファイルの変更監視機能を提供します
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"FileData/internal/infrastructure/logging"
)

// DefaultDebounce は連続した変更をまとめる待ち時間です
const DefaultDebounce = 300 * time.Millisecond

// Watcher は1つのパスを監視し、変更があれば onChange を呼び出します
type Watcher struct {
	logger   logging.Logger
	path     string
	onChange func()
	debounce time.Duration
}

// New は新しい Watcher インスタンスを作成します
func New(logger logging.Logger, path string, onChange func()) *Watcher {
	return &Watcher{
		logger:   logger,
		path:     path,
		onChange: onChange,
		debounce: DefaultDebounce,
	}
}

// WithDebounce は待ち時間を設定します
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch はコンテキストがキャンセルされるまで監視を続けます。
// エディタによる置き換えも検出できるよう親ディレクトリを監視し、
// パスがディレクトリの場合はその中の変更も対象にします
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("監視の開始に失敗しました: %w", err)
	}
	defer fsw.Close()

	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("パスを解決できません: %w", err)
	}
	parent := filepath.Dir(target)

	if err := fsw.Add(parent); err != nil {
		return fmt.Errorf("ディレクトリを監視できません: %w", err)
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() && target != parent {
		if err := fsw.Add(target); err != nil {
			w.logger.Log("WARN", fmt.Sprintf("ディレクトリを監視できません: %s", target), err)
		}
	}
	w.logger.Log("INFO", fmt.Sprintf("変更の監視を開始: %s", target), nil)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(target, event) {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				w.logger.Log("DEBUG", fmt.Sprintf("変更を検出: %s", target), nil)
				w.onChange()
			})
			mu.Unlock()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Log("WARN", "監視中にエラー発生", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// relevant はイベントが監視対象に関係するかを返します
func (w *Watcher) relevant(target string, event fsnotify.Event) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	if name == target || filepath.Dir(name) == target {
		return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Chmod) != 0
	}
	return false
}
