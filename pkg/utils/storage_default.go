//go:build !android

package utils

// EnsureStorageDir 非 Android 平台由 gdata 自行创建设置目录
func EnsureStorageDir() error {
	return nil
}
