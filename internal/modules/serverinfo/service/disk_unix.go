//go:build unix

package service

import "golang.org/x/sys/unix"

// StatfsDisk 基于 statfs(2) 的实现
type StatfsDisk struct{}

func (StatfsDisk) Stat(path string) (DiskUsage, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return DiskUsage{}, err
	}
	bsize := int64(st.Bsize)
	return DiskUsage{
		Total:     int64(st.Blocks) * bsize,
		Free:      int64(st.Bfree) * bsize,
		Available: int64(st.Bavail) * bsize,
	}, nil
}
