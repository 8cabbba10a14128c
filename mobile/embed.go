//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需把 assets/svg 与 data/viewer.yaml 复制到此目录：
//
//	cp -r assets data mobile/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed assets/svg
var assetsFS embed.FS

//go:embed data/viewer.yaml
var dataFS embed.FS
