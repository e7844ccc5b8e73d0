package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/QYW-woker/AI-Management-sub000/internal/assistant"
	"github.com/QYW-woker/AI-Management-sub000/internal/models"
	"github.com/QYW-woker/AI-Management-sub000/internal/pkg/httputil"
	"github.com/QYW-woker/AI-Management-sub000/internal/store"
)

// RecordHandler 数据录入相关接口
type RecordHandler struct {
	service *assistant.Service
}

// NewRecordHandler 创建录入接口处理器
func NewRecordHandler(service *assistant.Service) *RecordHandler {
	return &RecordHandler{service: service}
}

type addTransactionRequest struct {
	Type     string   `json:"type"`
	Amount   *float64 `json:"amount"`
	Category string   `json:"category"`
	Date     *int64   `json:"date"`
	Note     string   `json:"note"`
	Force    bool     `json:"force"`
}

// HandleAddTransaction 记一笔交易
// 疑似重复不是错误，照常返回 200，结果里带疑似记录
func (h *RecordHandler) HandleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var req addTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "无效的请求体")
		return
	}
	if req.Amount == nil || *req.Amount <= 0 {
		httputil.RespondError(w, http.StatusBadRequest, "金额必须大于 0")
		return
	}

	result, err := h.service.AddTransaction(r.Context(), assistant.AddTransactionParams{
		Type:     models.ParseTransactionType(req.Type),
		Amount:   *req.Amount,
		Category: req.Category,
		Date:     req.Date,
		Note:     req.Note,
		Force:    req.Force,
	})
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}

// HandleListTransactions 列出某天的交易，date 不传时按今天
func (h *RecordHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	day := models.EpochDay(time.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "date 必须是纪元日整数")
			return
		}
		day = parsed
	}

	list, err := h.service.ListTransactions(r.Context(), day)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []models.Transaction{}
	}
	httputil.RespondJSON(w, http.StatusOK, list)
}

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     *int64 `json:"dueDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Priority    int    `json:"priority"`
	Quadrant    int    `json:"quadrant"`
}

// HandleCreateTodo 创建一条待办
func (h *RecordHandler) HandleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		httputil.RespondError(w, http.StatusBadRequest, "待办标题不能为空")
		return
	}

	todo := &models.Todo{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Priority:    req.Priority,
		Quadrant:    req.Quadrant,
	}
	if err := h.service.CreateTodo(r.Context(), todo); err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, todo)
}

type checkinRequest struct {
	HabitName string  `json:"habitName"`
	Value     float64 `json:"value"`
}

// HandleCheckinHabit 给习惯打今天的卡
func (h *RecordHandler) HandleCheckinHabit(w http.ResponseWriter, r *http.Request) {
	var req checkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.HabitName) == "" {
		httputil.RespondError(w, http.StatusBadRequest, "习惯名称不能为空")
		return
	}

	if err := h.service.CheckinHabit(r.Context(), req.HabitName, req.Value); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "习惯不存在")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusNoContent, nil)
}
