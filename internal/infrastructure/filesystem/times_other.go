//go:build !linux

package filesystem

import (
	"io/fs"
	"time"
)

// createdTime は作成時刻を取得できないプラットフォームでは更新時刻を返します
func createdTime(path string, info fs.FileInfo) time.Time {
	return info.ModTime()
}
