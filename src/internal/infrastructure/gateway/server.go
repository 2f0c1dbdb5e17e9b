package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Niko-MM/BonusLinkBot/src/internal/application/dialog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ===========================
// HTTP Gateway
// ===========================

// UpdateHandler 入站互動的處理入口（由對話調度器實作）
type UpdateHandler interface {
	HandleUpdate(u dialog.Update) error
}

// Server 入站 HTTP 閘道
//
// 聊天平台的 webhook 轉發器把互動以 JSON POST 到 /v1/updates，
// 閘道只做解碼與轉交，對話語義全部在調度器。
type Server struct {
	httpServer *http.Server
	handler    UpdateHandler
	logger     *slog.Logger
}

// NewServer 創建 HTTP 閘道
func NewServer(addr string, handler UpdateHandler, logger *slog.Logger) *Server {
	s := &Server{
		handler: handler,
		logger:  logger,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Router 組裝路由（獨立出來供測試直接掛 httptest）
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/updates", s.handleUpdate)

	return r
}

// Start 開始監聽（阻塞直到 Shutdown 或監聽失敗）
func (s *Server) Start() error {
	s.logger.Info("gateway listening", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown 優雅停機：停止接收新請求並等待在途請求完成
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// handleHealth 健康檢查
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// updateRequest 入站互動的線上格式
type updateRequest struct {
	ActorID         int64  `json:"actor_id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Text            string `json:"text"`
	CallbackPayload string `json:"callback_payload"`
}

// handleUpdate 接收一次入站互動並轉交調度器
//
// 調度器把用戶可見的問題轉成回覆文案，這裡收到的 error
// 都是基礎設施層級的，統一回 500。
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("malformed update payload", "error", err)
		http.Error(w, `{"error":"malformed payload"}`, http.StatusBadRequest)
		return
	}

	err := s.handler.HandleUpdate(dialog.Update{
		ActorID:         req.ActorID,
		Username:        req.Username,
		FullName:        req.FullName,
		Text:            req.Text,
		CallbackPayload: req.CallbackPayload,
	})
	if err != nil {
		s.logger.Error("update handling failed", "actor_id", req.ActorID, "error", err)
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
