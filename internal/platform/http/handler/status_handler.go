// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIVersion はウェルカムレスポンスに含めるAPIバージョンです。
const APIVersion = "1.0.0"

// isoMillis はミリ秒精度のUTCタイムスタンプ形式です。
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Pinger はデータベースの疎通確認を抽象化します。*sql.DBが満たします。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// DatabaseStatus はデータベースの状態です。
type DatabaseStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HealthResponse は /health のレスポンスです。
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Uptime    float64        `json:"uptime"`
	Database  DatabaseStatus `json:"database"`
}

// WelcomeResponse は / のレスポンスです。
type WelcomeResponse struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// StatusHandler はAPIのウェルカムとヘルスチェックを処理します。
type StatusHandler struct {
	db      Pinger
	started time.Time
	now     func() time.Time
}

// NewStatusHandler はStatusHandlerを生成します。稼働時間は生成時点から数えます。
func NewStatusHandler(db Pinger) *StatusHandler {
	return &StatusHandler{db: db, started: time.Now(), now: time.Now}
}

// Liveness はプロセスの生存確認用の /healthz を処理します。
// 依存先は確認せず、キャッシュを防止します。
func Liveness(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Welcome はAPIの案内を返します。
//
// GET /
func (h *StatusHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, WelcomeResponse{
		Message:   "Welcome to the Uventory API",
		Version:   APIVersion,
		Timestamp: h.timestamp(),
	})
}

// Health はアプリケーションとデータベースの状態を返します。
// データベースが停止していてもステータスコードは200です。
//
// GET /health
func (h *StatusHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	db := DatabaseStatus{Status: "up"}
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		slog.Error("database health check failed", "error", err)
		db.Status = "down"
	}
	db.Timestamp = h.timestamp()

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.timestamp(),
		Uptime:    h.now().Sub(h.started).Seconds(),
		Database:  db,
	})
}

func (h *StatusHandler) timestamp() string {
	return h.now().UTC().Format(isoMillis)
}
