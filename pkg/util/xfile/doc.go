// Package xfile 提供日志文件路径的格式校验与目录创建辅助函数。
//
// 职责边界：只做路径格式净化（空路径、空字节、相对路径穿越）和父目录
// 创建，不提供沙箱隔离语义。日志目录与文件名来自部署配置，属于可信输入，
// 这里的校验用于尽早暴露拼接错误，而非对抗恶意路径。
package xfile
