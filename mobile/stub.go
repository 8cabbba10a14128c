//go:build !mobile

// Package mobile 的桌面端占位
//
// ebitenmobile 绑定代码（mobile.go、embed.go）只在 -tags mobile 时编译，
// 普通构建下本包只导出 Dummy，使 ./... 能正常构建。
package mobile

// Dummy 是一个空导出函数
func Dummy() {}
