// Package ratelimiter はクライアント単位の固定ウィンドウ方式のレート制限を提供します。
package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultWindow はウィンドウ幅のデフォルト値です。
	DefaultWindow = 60 * time.Second
	// DefaultLimit は1ウィンドウあたりのリクエスト上限のデフォルト値です。
	DefaultLimit = 100
)

// Store はキーごとのリクエストカウンタを保持します。
// Increment はカウンタの加算と現在値の取得を1つの原子的な操作として行う必要があります。
type Store interface {
	// Increment はkeyの現在ウィンドウのカウンタを1加算し、加算後の値を返します。
	// ウィンドウが経過している場合はカウンタを1から開始します。
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter は固定ウィンドウ内のリクエスト数を制限します。
type RateLimiter struct {
	store  Store
	limit  int64         // 1ウィンドウあたりの上限
	window time.Duration // どの単位でリセットするか
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limitまたはwindowが0以下の場合はデフォルト値を使用します。
func NewRateLimiter(store Store, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &RateLimiter{
		store:  store,
		limit:  int64(limit),
		window: window,
	}
}

// Allow はkeyのリクエストを1件計上し、上限内であればtrueを返します。
// 上限を超えてもウィンドウは早期にリセットされません。
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := rl.store.Increment(ctx, key, rl.window)
	if err != nil {
		return false, fmt.Errorf("rate limit store: %w", err)
	}
	return count <= rl.limit, nil
}

// Limit は1ウィンドウあたりの上限を返します。
func (rl *RateLimiter) Limit() int {
	return int(rl.limit)
}

// Window はウィンドウ幅を返します。
func (rl *RateLimiter) Window() time.Duration {
	return rl.window
}
