package service

import (
	"context"
	"time"
)

// FileStore 对象存储抽象，生产实现为 pkg/storage 的 MinIO 客户端
// 抽出接口便于服务层单测注入内存实现
type FileStore interface {
	Upload(ctx context.Context, prefix, filename string, data []byte, contentType string) (string, error)
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// 下载链接有效期
const fileURLExpiry = 15 * time.Minute
