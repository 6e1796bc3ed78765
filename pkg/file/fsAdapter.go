// Package file 提供文件系统抽象层
//
// 功能:
//   - 目标检查: 判断待发送的文件或目录是否存在
//   - 抽象层: 隔离具体文件系统实现，便于测试
//
// 主要组件:
//   - FileSystemAdapter: 文件系统适配器接口
//   - LocalFileSystemAdapter: 本地文件系统实现
//   - TargetInfo: 待发送目标的基本信息
//
// 使用示例:
//
//	adapter := NewLocalFileSystemAdapter()
//	info, err := adapter.Stat(dir, "photos")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(info.Name, info.IsDir)
package file

import (
	"os"
	"path/filepath"
)

// TargetInfo 描述待发送的文件或目录
type TargetInfo struct {
	Name  string // 基础名称
	Path  string // 相对 dir 解析后的路径
	IsDir bool
	Size  int64 // 目录为 0
}

type FileSystemAdapter interface {
	// Stat 相对 dir 解析 path 并返回其信息；不存在时返回的错误满足 os.IsNotExist
	Stat(dir, path string) (TargetInfo, error)
}

type LocalFileSystemAdapter struct{}

func (LocalFileSystemAdapter) Stat(dir, path string) (TargetInfo, error) {
	resolved := path
	if !filepath.IsAbs(path) && dir != "" {
		resolved = filepath.Join(dir, path)
	}

	fi, err := os.Stat(resolved)
	if err != nil {
		return TargetInfo{}, err
	}

	info := TargetInfo{
		Name:  fi.Name(),
		Path:  resolved,
		IsDir: fi.IsDir(),
	}
	if !fi.IsDir() {
		info.Size = fi.Size()
	}
	return info, nil
}

func NewLocalFileSystemAdapter() FileSystemAdapter {
	return LocalFileSystemAdapter{}
}
