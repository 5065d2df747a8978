//go:build !unix

package filestore

import "os"

// isWritable reports whether path exists and carries an owner write bit.
func isWritable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o200 != 0
}
