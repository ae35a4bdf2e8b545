//go:build unix

package filesystem

import (
	"io/fs"
	"os/user"
	"strconv"
	"syscall"
)

// ownerOf はファイルの所有者名とグループ名を返します。名前を解決できない場合は数値IDを返します
func ownerOf(info fs.FileInfo) (string, string) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "", ""
	}

	uid := strconv.FormatUint(uint64(st.Uid), 10)
	gid := strconv.FormatUint(uint64(st.Gid), 10)

	owner := uid
	if u, err := user.LookupId(uid); err == nil {
		owner = u.Username
	}
	group := gid
	if g, err := user.LookupGroupId(gid); err == nil {
		group = g.Name
	}
	return owner, group
}
