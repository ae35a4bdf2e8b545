//go:build !unix

package filesystem

import "io/fs"

// ownerOf は所有者情報を持たないプラットフォームでは空文字列を返します
func ownerOf(info fs.FileInfo) (string, string) {
	return "", ""
}
