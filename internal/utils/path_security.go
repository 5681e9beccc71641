package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SecureJoin 将数据库中保存的相对路径拼接到存储根目录下。
//
// 拒绝绝对路径与 ".." 越界，并检查 base 到目标之间已存在的节点不是符号链接。
// 返回目标的绝对路径。
func SecureJoin(basePath, relativePath string) (string, error) {
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return "", fmt.Errorf("路径解析失败: %w", err)
	}

	cleanRel := filepath.Clean(filepath.FromSlash(relativePath))
	if cleanRel == "." {
		cleanRel = ""
	}
	if filepath.IsAbs(cleanRel) {
		return "", fmt.Errorf("非法路径: 不允许绝对路径")
	}

	targetAbs := filepath.Join(baseAbs, cleanRel)
	if err := ensureWithinBase(baseAbs, targetAbs); err != nil {
		return "", err
	}

	// 从目标逐级向上回溯到 base
	for current := targetAbs; ; {
		info, statErr := os.Lstat(current)
		if statErr == nil && info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("检测到符号链接穿透风险: %s", current)
		}
		if statErr != nil && !os.IsNotExist(statErr) {
			return "", fmt.Errorf("检查路径失败: %w", statErr)
		}
		if samePath(current, baseAbs) {
			break
		}
		parent := filepath.Dir(current)
		if samePath(parent, current) {
			return "", fmt.Errorf("非法路径: 无法定位到安全基目录")
		}
		current = parent
	}

	return targetAbs, nil
}

func ensureWithinBase(baseAbs, targetAbs string) error {
	baseVol := filepath.VolumeName(baseAbs)
	targetVol := filepath.VolumeName(targetAbs)
	if (baseVol != "" || targetVol != "") && !strings.EqualFold(baseVol, targetVol) {
		return fmt.Errorf("非法路径: 路径跨磁盘卷")
	}

	rel, err := filepath.Rel(baseAbs, targetAbs)
	if err != nil {
		return fmt.Errorf("非法路径: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("非法路径: 目标超出基目录")
	}
	return nil
}

func samePath(a, b string) bool {
	a = filepath.Clean(a)
	b = filepath.Clean(b)
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
