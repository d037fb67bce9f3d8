package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/logsink/pkg/config/xlogconf"
	"github.com/omeyang/logsink/pkg/observability/xlogsys"
	"github.com/omeyang/logsink/pkg/observability/xsink"
)

// usageError 表示参数错误（退出码 2）。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "logsinkctl",
		Usage:   "日志系统命令行工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Commands: []*cli.Command{
			createCheckCommand(),
			createEmitCommand(),
		},
		DefaultCommand: "help",
		Authors: []any{
			"XKit Team",
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

// createCheckCommand 创建 check 子命令：校验配置文件。
func createCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Aliases:   []string{"c"},
		Usage:     "校验日志配置文件并打印解析结果",
		ArgsUsage: "<config>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return &usageError{msg: "check 需要且仅需要一个配置文件路径"}
			}
			return cmdCheck(os.Stdout, args[0])
		},
	}
}

// createEmitCommand 创建 emit 子命令：初始化日志系统并写入消息。
func createEmitCommand() *cli.Command {
	return &cli.Command{
		Name:    "emit",
		Aliases: []string{"e"},
		Usage:   "按配置初始化日志系统并写入若干条消息",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "日志配置文件路径（为空时写到 stderr）",
			},
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Usage:   "消息级别 (debug/info/warning/error)",
				Value:   "info",
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "消息条数",
				Value:   1,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdEmit(cmd.String("config"), cmd.String("level"), int(cmd.Int("count")))
		},
	}
}

// cmdCheck 校验配置文件：解析成功后打印目的地与级别。
func cmdCheck(w io.Writer, path string) error {
	cfg, err := xlogconf.New(path)
	if err != nil {
		return err
	}

	kind := xsink.KindStderr
	if v, ok := cfg.Uint(xsink.KeyDestination); ok {
		k, err := xsink.KindFromUint(v)
		if err != nil {
			return err
		}
		kind = k
	}

	level := xsink.LevelInfo
	if v, ok := cfg.Uint(xsink.KeyLevel); ok {
		l, ok := xsink.LevelFromUint(v)
		if !ok {
			return fmt.Errorf("log level %d out of range", v)
		}
		level = l
	}

	fmt.Fprintf(w, "config:      %s (%s)\n", cfg.Path(), cfg.Format())
	fmt.Fprintf(w, "destination: %s\n", kind)
	fmt.Fprintf(w, "level:       %s\n", level)
	if kind == xsink.KindFile || kind == xsink.KindRollingFile || kind == xsink.KindSizeFile {
		dir := xsink.DefaultFilePath
		if v, ok := cfg.String(xsink.KeyFilePath); ok {
			dir = v
		}
		base := xsink.DefaultFileBaseName
		if v, ok := cfg.String(xsink.KeyFileBaseName); ok {
			base = v
		}
		fmt.Fprintf(w, "file:        %s\n", filepath.Join(dir, base))
	}
	return nil
}

// cmdEmit 初始化日志系统，按指定级别写入 count 条消息后关停。
func cmdEmit(configPath, levelName string, count int) error {
	if count < 0 {
		return &usageError{msg: "count 不能为负数"}
	}

	level, err := xsink.ParseLevel(levelName)
	if err != nil {
		return &usageError{msg: err.Error()}
	}

	if err := xlogsys.Initialize(configPath); err != nil {
		return err
	}
	defer func() {
		if err := xlogsys.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
		}
	}()

	for i := 0; i < count; i++ {
		xlogsys.Log(fmt.Sprintf("logsinkctl emit %d/%d\n", i+1, count), level)
	}
	return nil
}
