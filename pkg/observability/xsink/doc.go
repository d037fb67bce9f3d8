// Package xsink 实现进程本地的分级日志落地端（sink）。
//
// # 核心模型
//
// 一个 [Sink] 是日志消息的具体去向，由 [Kind] 在构造时一次性选定：
//
//   - [KindStderr]: 直写标准错误流
//   - [KindFile]: 单一追加写文件
//   - [KindRollingFile]: 按本地日历日滚动的文件（文件名 base-YYYY-MM-DD）
//   - [KindSizeFile]: 按大小滚动的文件（lumberjack 实现）
//
// 所有 Sink 共享同一套契约：Configure 按键合并配置（尽力而为），
// Open/Close 获取和释放底层资源（Close 幂等，Close 后可重新 Open），
// Log 先做级别过滤再写入。消息按原样追加，不附加换行与时间戳，
// 格式化由调用方负责。
//
// # 级别过滤与刷新阈值
//
// 消息级别 >= 配置的最小级别才会写入。文件类 Sink 维护未刷新计数：
// 每次写入递增，达到阈值（num_logs_to_flush，默认 1，即每写必刷）
// 时将缓冲推给操作系统并清零。阈值越大吞吐越高、持久性越弱，
// 由配置决定，不在代码里写死任何一端。
//
// # 并发模型
//
// 无内部 goroutine，无异步排队：每次 Log 在调用方线程上同步完成，
// 只会阻塞在底层文件写入上。文件 Sink 用互斥锁串行化写入；滚动
// Sink 的单把锁覆盖"日期检查 → 换文件 → 委托写入"整个过程，内部
// 换文件走不加锁的原语，避免同线程重入。SetLevel 通过原子变量更新，
// 不抢写锁：与并发 Log 之间只保证及时可见，不保证原子有序。
//
// # 错误处理
//
// 级别不足被过滤不是错误（Log 返回 nil 且无 I/O）。向已关闭的 Sink
// 写入返回 [ErrClosed]。任何可恢复的 I/O 失败都以 error 返回，
// 不 panic、不终止进程。
package xsink
