// Package xlogconf 是日志系统的外部配置协作方：一个从文件加载的
// 键值存储，基于 koanf 实现，按扩展名自动识别 YAML/JSON。
//
// 与通用配置库不同，这里只暴露两个带存在性标记的取值函数
// （Uint/String），正好满足 xsink.Source 接口：键缺失时调用方保留
// 当前值/默认值，越界值由调用方按字段各自忽略。
//
// 识别的键见 xsink 包的 Key* 常量：log_dest、log_level、file_path、
// file_base_name、file_suffix、num_logs_to_flush，以及 size-file 的
// max_size_mb、max_backups、max_age_days、compress。
//
// [Config.Watch] 基于 fsnotify 监视配置文件变更并自动重载，
// 配合 xlogsys 可在运行时热更新日志级别。
package xlogconf
