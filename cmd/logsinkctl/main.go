// logsinkctl 是日志系统的命令行工具。
//
// 用法:
//
//	logsinkctl <命令> [命令参数]
//
// 命令:
//
//	check <config>   校验日志配置文件并打印解析结果
//	emit             按配置初始化日志系统并写入若干条消息
//	help             显示帮助信息
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（配置非法、目的地打开失败等）
//	2: 参数错误（缺少必需参数、未知命令等）
//
// 示例:
//
//	logsinkctl check /etc/app/log.yaml
//	logsinkctl emit -c /etc/app/log.yaml -l warning -n 10
//	logsinkctl emit                        # 无配置，写到 stderr
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	app := createApp()

	if err := app.Run(context.Background(), os.Args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
