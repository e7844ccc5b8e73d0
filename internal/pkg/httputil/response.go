package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/QYW-woker/AI-Management-sub000/internal/logger"
)

var log = logger.New("HTTP")

// ErrorResponse 统一的错误响应体
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON 写入 JSON 响应，payload 为 nil 时只写状态码
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("写入响应失败: %v", err)
	}
}

// RespondError 写入统一格式的错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}
