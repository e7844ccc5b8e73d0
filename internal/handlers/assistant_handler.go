package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/QYW-woker/AI-Management-sub000/internal/assistant"
	"github.com/QYW-woker/AI-Management-sub000/internal/pkg/httputil"
)

// AssistantHandler 助手对话相关接口
type AssistantHandler struct {
	service *assistant.Service
}

// NewAssistantHandler 创建助手接口处理器
func NewAssistantHandler(service *assistant.Service) *AssistantHandler {
	return &AssistantHandler{service: service}
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// HandleSendMessage 发送一条用户消息
func (h *AssistantHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		httputil.RespondError(w, http.StatusBadRequest, "消息内容不能为空")
		return
	}

	msg, err := h.service.SendMessage(r.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrBusy):
			httputil.RespondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, assistant.ErrModelCall):
			httputil.RespondError(w, http.StatusBadGateway, "AI 服务暂时不可用，请稍后重试")
		default:
			httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	httputil.RespondJSON(w, http.StatusOK, msg)
}

type executeQueryRequest struct {
	Text string `json:"text"`
}

// HandleExecuteQuery 执行一次自然语言数据查询
func (h *AssistantHandler) HandleExecuteQuery(w http.ResponseWriter, r *http.Request) {
	var req executeQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		httputil.RespondError(w, http.StatusBadRequest, "查询内容不能为空")
		return
	}

	result, err := h.service.ExecuteQuery(r.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrBusy):
			httputil.RespondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, assistant.ErrModelCall):
			httputil.RespondError(w, http.StatusBadGateway, "AI 服务暂时不可用，请稍后重试")
		default:
			httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}

// HandleWelcome 获取欢迎语
func (h *AssistantHandler) HandleWelcome(w http.ResponseWriter, r *http.Request) {
	msg := h.service.WelcomeMessage(r.Context())
	httputil.RespondJSON(w, http.StatusOK, msg)
}

// HandleListMessages 获取完整会话历史
func (h *AssistantHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.service.Messages())
}

// HandleClearConversation 清空会话历史
func (h *AssistantHandler) HandleClearConversation(w http.ResponseWriter, r *http.Request) {
	h.service.ClearConversation()
	httputil.RespondJSON(w, http.StatusNoContent, nil)
}

type setModeRequest struct {
	Mode string `json:"mode"`
}

// HandleSetMode 切换助手工作模式
func (h *AssistantHandler) HandleSetMode(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "无效的请求体")
		return
	}

	if err := h.service.SetMode(assistant.Mode(req.Mode)); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusNoContent, nil)
}
