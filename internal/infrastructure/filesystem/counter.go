package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"FileData/internal/infrastructure/logging"
)

// ChildCounter はディレクトリ配下の要素数を数えるインターフェースです
type ChildCounter interface {
	Count(ctx context.Context, dir string) (dirs, files int, err error)
}

// Counter はディレクトリを再帰的に走査して要素数を数える構造体です
type Counter struct {
	logger logging.Logger
}

// NewCounter は新しい Counter インスタンスを作成します
func NewCounter(logger logging.Logger) *Counter {
	return &Counter{logger: logger}
}

// Count は dir 配下のディレクトリ数とファイル数を再帰的に数えます。
// dir 自身は数えず、シンボリックリンクは辿らずにファイルとして数えます。
// 読み込めないサブディレクトリはログに記録してスキップします
func (c *Counter) Count(ctx context.Context, dir string) (int, int, error) {
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("ディレクトリを解決できません: %w", err)
	}

	var dirs, files int
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == root {
				return err
			}
			logging.LogPath(c.logger, "WARN", "走査中にエラー発生", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			if !d.IsDir() {
				return fmt.Errorf("指定されたパスはディレクトリではありません: %s", dir)
			}
			return nil
		}

		if d.IsDir() {
			dirs++
		} else {
			files++
		}
		return nil
	})

	if err != nil {
		return 0, 0, fmt.Errorf("ディレクトリの走査に失敗しました: %w", err)
	}
	return dirs, files, nil
}
