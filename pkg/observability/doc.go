// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xsink: 日志落地端，stderr/单文件/按日滚动/按大小滚动四种目的地
//   - xlogsys: 日志系统门面，显式实例与进程级全局两种用法
//
// 设计原则：
//   - 日志写入失败不扩散到调用方，通过诊断通道尽力报告
//   - 级别过滤在任何 I/O 之前完成，被过滤的消息零开销
//   - 指标遵循 OpenTelemetry 语义规范，未配置时为 noop
package observability
