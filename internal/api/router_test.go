package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/QYW-woker/AI-Management-sub000/internal/assistant"
	"github.com/QYW-woker/AI-Management-sub000/internal/handlers"
	"github.com/QYW-woker/AI-Management-sub000/internal/llm"
	"github.com/QYW-woker/AI-Management-sub000/internal/store/sqlite"
)

// stubClient 返回固定回复的测试客户端
type stubClient struct {
	reply string
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Generate(ctx context.Context, messages []llm.Message, opts llm.GenerateOptions) (string, error) {
	return s.reply, nil
}

// newTestRouter 组装测试用的完整路由
func newTestRouter(t *testing.T, reply string) http.Handler {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	service := assistant.NewService(&stubClient{reply: reply}, assistant.Stores{
		Transactions: db,
		Todos:        db,
		Habits:       db,
		Goals:        db,
		Budgets:      db,
		Categories:   db,
	}, assistant.DefaultOptions())
	return NewRouter(handlers.NewAssistantHandler(service), handlers.NewRecordHandler(service))
}

// doJSON 发送 JSON 请求并返回响应
func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// TestHealthRoute 测试健康检查
func TestHealthRoute(t *testing.T) {
	router := newTestRouter(t, "")
	rec := doJSON(t, router, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("响应体不对: %s", rec.Body.String())
	}
}

// TestSendMessageRoute 测试对话接口
func TestSendMessageRoute(t *testing.T) {
	router := newTestRouter(t, `{"text":"你今天花了50元","intent":{"type":"query","data":{"queryType":"today_expense"}},"suggestions":["查看明细"]}`)

	t.Run("正常对话", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/assistant/messages", `{"text":"今天花了多少"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("期望 200，实际 %d: %s", rec.Code, rec.Body.String())
		}

		var msg map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
			t.Fatalf("响应不是 JSON: %v", err)
		}
		if msg["content"] != "你今天花了50元" {
			t.Errorf("content 不对: %v", msg["content"])
		}
		if msg["role"] != "assistant" {
			t.Errorf("role 不对: %v", msg["role"])
		}
		if msg["intent"] == nil {
			t.Error("intent 不应为空")
		}
	})

	t.Run("空消息返回400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/assistant/messages", `{"text":"  "}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("期望 400，实际 %d", rec.Code)
		}
	})

	t.Run("历史接口返回累计消息", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/assistant/messages", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("期望 200，实际 %d", rec.Code)
		}
		var history []map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
			t.Fatalf("响应不是 JSON 数组: %v", err)
		}
		if len(history) != 2 {
			t.Errorf("期望 2 条历史，实际 %d 条", len(history))
		}
	})

	t.Run("清空会话返回204", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/api/v1/assistant/messages", "")
		if rec.Code != http.StatusNoContent {
			t.Errorf("期望 204，实际 %d", rec.Code)
		}
	})
}

// TestTransactionRoute 测试记账接口
func TestTransactionRoute(t *testing.T) {
	router := newTestRouter(t, "")

	t.Run("正常记账", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/transactions",
			`{"type":"expense","amount":25,"category":"餐饮","date":20690}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("期望 200，实际 %d: %s", rec.Code, rec.Body.String())
		}
		var result map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("响应不是 JSON: %v", err)
		}
		if result["success"] != true {
			t.Errorf("记账应成功: %v", result)
		}
	})

	t.Run("疑似重复照常返回200", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/transactions",
			`{"type":"expense","amount":25,"category":"餐饮","date":20690}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("重复不是错误，期望 200，实际 %d", rec.Code)
		}
		var result map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("响应不是 JSON: %v", err)
		}
		if result["success"] != false {
			t.Errorf("命中重复时 success 应为 false: %v", result)
		}
		if result["duplicateType"] != "recent" {
			t.Errorf("期望 recent，实际 %v", result["duplicateType"])
		}
	})

	t.Run("金额缺失返回400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/transactions", `{"type":"expense"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("期望 400，实际 %d", rec.Code)
		}
	})

	t.Run("按天列出交易", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/transactions?date=20690", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("期望 200，实际 %d", rec.Code)
		}
		var list []map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
			t.Fatalf("响应不是 JSON 数组: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("期望 1 条交易，实际 %d 条", len(list))
		}
	})

	t.Run("日期不是整数返回400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/transactions?date=昨天", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("期望 400，实际 %d", rec.Code)
		}
	})
}

// TestTodoRoute 测试待办接口
func TestTodoRoute(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/todos", `{"title":"写周报","dueDate":20695}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际 %d: %s", rec.Code, rec.Body.String())
	}
	var todo map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &todo); err != nil {
		t.Fatalf("响应不是 JSON: %v", err)
	}
	if todo["id"] == "" || todo["id"] == nil {
		t.Error("应返回生成的 ID")
	}

	t.Run("标题为空返回400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/todos", `{"title":""}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("期望 400，实际 %d", rec.Code)
		}
	})
}

// TestCheckinRoute 测试打卡接口
func TestCheckinRoute(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/habits/checkin", `{"habitName":"不存在的习惯"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("习惯不存在期望 404，实际 %d", rec.Code)
	}
}

// TestModeRoute 测试模式切换接口
func TestModeRoute(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPut, "/api/v1/assistant/mode", `{"mode":"analysis"}`)
	if rec.Code != http.StatusNoContent {
		t.Errorf("期望 204，实际 %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/assistant/mode", `{"mode":"focus"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("未知模式期望 400，实际 %d", rec.Code)
	}
}

// TestWelcomeRoute 测试欢迎语接口
func TestWelcomeRoute(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/assistant/welcome", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", rec.Code)
	}
	var msg map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
		t.Fatalf("响应不是 JSON: %v", err)
	}
	if msg["content"] == "" {
		t.Error("欢迎语不应为空")
	}
}
