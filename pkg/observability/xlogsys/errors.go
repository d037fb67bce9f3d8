package xlogsys

import "errors"

// 门面相关错误。
var (
	// ErrNoConfig 表示实例不是从配置文件构造的，无法监视配置变更。
	ErrNoConfig = errors.New("xlogsys: no config file to watch")
)
