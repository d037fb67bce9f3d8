// Package xlogsys 是日志系统的门面：持有唯一的日志落地端（xsink.Sink），
// 向任意调用方线程暴露 Log 与 SetLevel。
//
// # 两种用法
//
// 显式实例（推荐服务端依赖注入）：
//
//	cfg, _ := xlogconf.New("/etc/app/log.yaml")
//	ls, err := xlogsys.New(cfg)
//	if err != nil { ... }
//	defer ls.Close()
//	ls.Log("hello\n", xsink.LevelInfo)
//
// 进程级全局（脚手架、小工具场景）：
//
//	_ = xlogsys.Initialize("/etc/app/log.yaml")
//	xlogsys.Log("hello\n", xsink.LevelInfo)
//
// Initialize 幂等：已初始化时再次调用是无副作用的成功；并发首次
// 调用由互斥锁保证只构造一个实例。初始化失败时全局保持未初始化，
// 之后的 Log 调用静默空操作（可重试 Initialize）。
//
// # 失败不扩散
//
// Log 从不向调用方返回错误：写入失败被吞掉，仅通过诊断通道
// （标准错误上的 [LOG SYS] 消息）尽力报告。日志系统内部没有任何
// 路径会终止宿主进程。
//
// # 运行时调级
//
// SetLevel 原位更新最小级别；越界值发诊断并保持原级别。
// [LogSys.WatchConfig] 监视配置文件变更，把重载后的 log_level
// 自动应用到落地端。
package xlogsys
