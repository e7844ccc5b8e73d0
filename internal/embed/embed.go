package embed

import (
	_ "embed"
)

// CategoriesJSON 嵌入的默认收支分类
// 编译时嵌入到二进制文件中，首次启动时初始化分类表
//
//go:embed categories.json
var CategoriesJSON []byte
