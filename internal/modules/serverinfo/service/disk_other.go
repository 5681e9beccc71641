//go:build !unix

package service

import "errors"

type StatfsDisk struct{}

func (StatfsDisk) Stat(string) (DiskUsage, error) {
	return DiskUsage{}, errors.New("当前平台不支持磁盘统计")
}
