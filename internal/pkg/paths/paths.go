package paths

import (
	"os"
	"path/filepath"
)

// GetDataDir 获取应用数据目录
func GetDataDir() string {
	userConfigDir, err := os.UserConfigDir()
	if err != nil || userConfigDir == "" {
		return filepath.Join(".", "data")
	}
	return filepath.Join(userConfigDir, "ai-management")
}

// DefaultDBPath 默认数据库文件路径
func DefaultDBPath() string {
	return filepath.Join(GetDataDir(), "data.db")
}

// EnsureDataDir 确保数据目录存在并返回路径
func EnsureDataDir() string {
	dir := GetDataDir()
	os.MkdirAll(dir, 0755)
	return dir
}
