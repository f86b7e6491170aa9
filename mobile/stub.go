//go:build !mobile

// 桌面端构建时 mobile 包只保留绑定接口，不注册游戏
package mobile

// Bound 是否已通过 ebitenmobile 注册游戏
func Bound() bool { return false }

// Dummy 保持与移动端构建相同的导出符号
func Dummy() {}
