// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import "time"

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	SlowThreshold time.Duration // Store calls slower than this are logged as warnings, 0 disables // 存储调用超过该耗时记录警告日志，0 表示关闭
}
