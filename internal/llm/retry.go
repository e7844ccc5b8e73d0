package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/QYW-woker/AI-Management-sub000/internal/logger"
)

// 日志实例
var log = logger.New("LLM")

// 重试配置常量
const (
	MaxRetries     = 2                // 单次调用最大重试次数
	RetryBaseDelay = 2 * time.Second  // 指数退避基础延迟
	RetryMaxDelay  = 15 * time.Second // 指数退避最大延迟
)

// isRetryableError 判断错误是否可重试
// 超时、主动取消、配置错误不重试；网络错误、API 临时错误可重试
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	msg := err.Error()
	// 配置类错误不重试
	if strings.Contains(msg, "config") || strings.Contains(msg, "api key") {
		return false
	}
	return true
}

// retryClient 带指数退避重试的客户端包装
type retryClient struct {
	inner      Client
	maxRetries int
}

// WithRetry 包装客户端，调用失败时按指数退避重试
func WithRetry(c Client, maxRetries int) Client {
	if maxRetries <= 0 {
		maxRetries = MaxRetries
	}
	return &retryClient{inner: c, maxRetries: maxRetries}
}

// Name 返回底层模型名称
func (r *retryClient) Name() string {
	return r.inner.Name()
}

// Generate 在父 ctx 未取消的前提下，最多重试 maxRetries 次
func (r *retryClient) Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error) {
	result, err := r.inner.Generate(ctx, messages, opts)
	if err == nil || !isRetryableError(err) {
		return result, err
	}

	var lastErr error = err
	for i := 1; i <= r.maxRetries; i++ {
		// 指数退避：baseDelay * 2^(i-1)，上限 RetryMaxDelay
		delay := RetryBaseDelay * time.Duration(1<<(i-1))
		if delay > RetryMaxDelay {
			delay = RetryMaxDelay
		}
		log.Warn("retry %d/%d after %v, last error: %v", i, r.maxRetries, delay, lastErr)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}

		result, err = r.inner.Generate(ctx, messages, opts)
		if err == nil {
			log.Info("retry %d/%d succeeded", i, r.maxRetries)
			return result, nil
		}
		lastErr = err
		if !isRetryableError(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("重试 %d 次后仍失败: %w", r.maxRetries, lastErr)
}
