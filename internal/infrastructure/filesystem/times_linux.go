//go:build linux

package filesystem

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// createdTime は statx で作成時刻を取得します。
// ファイルシステムが作成時刻を持たない場合は ctime を返します
func createdTime(path string, info fs.FileInfo) time.Time {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME|unix.STATX_CTIME, &stx); err != nil {
		return info.ModTime()
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
	return time.Unix(stx.Ctime.Sec, int64(stx.Ctime.Nsec))
}
