package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/QYW-woker/AI-Management-sub000/internal/llm"
	"github.com/QYW-woker/AI-Management-sub000/internal/logger"
	"github.com/QYW-woker/AI-Management-sub000/internal/models"
	"github.com/QYW-woker/AI-Management-sub000/internal/store"
)

// 日志实例
var log = logger.New("Assistant")

// 超时配置常量
const (
	TurnTimeout  = 60 * time.Second // 单轮对话的最大时长
	QueryTimeout = 60 * time.Second // 单次数据查询的最大时长
)

// Mode 助手工作模式
type Mode string

const (
	ModeChat     Mode = "chat"     // 日常对话，识别指令
	ModeAnalysis Mode = "analysis" // 数据分析，消息走查询执行器
)

// 错误定义
var (
	ErrBusy        = errors.New("正在处理上一条消息，请稍候")
	ErrModelCall   = errors.New("AI 服务调用失败")
	ErrUnknownMode = errors.New("未知的助手模式")
)

// Stores 助手依赖的全部数据访问接口
type Stores struct {
	Transactions store.TransactionStore
	Todos        store.TodoStore
	Habits       store.HabitStore
	Goals        store.GoalStore
	Budgets      store.BudgetStore
	Categories   store.CategoryStore
}

// Options 服务配置
type Options struct {
	ContextWindow   int           // 带入提示词的历史轮数
	DuplicateWindow time.Duration // 近期重复的判定窗口
	Temperature     float32
	MaxTokens       int
}

// DefaultOptions 默认服务配置
func DefaultOptions() Options {
	return Options{
		ContextWindow:   DefaultContextWindow,
		DuplicateWindow: DefaultDuplicateWindow,
		Temperature:     0.7,
		MaxTokens:       2048,
	}
}

// Service 对话式助手服务
// 同一时刻只处理一条消息，处理期间的新消息返回 ErrBusy
type Service struct {
	client     llm.Client
	conv       *Conversation
	snapshots  *SnapshotBuilder
	prompts    *PromptBuilder
	queries    *QueryExecutor
	guard      *DuplicateGuard
	stores     Stores
	opts       llm.GenerateOptions
	mode       atomic.Value
	processing atomic.Bool
}

// NewService 组装助手服务
func NewService(client llm.Client, stores Stores, opts Options) *Service {
	genOpts := llm.GenerateOptions{
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	snapshots := NewSnapshotBuilder(stores.Transactions, stores.Todos, stores.Habits, stores.Goals, stores.Budgets)
	s := &Service{
		client:    client,
		conv:      NewConversation(),
		snapshots: snapshots,
		prompts:   NewPromptBuilder(opts.ContextWindow),
		queries:   NewQueryExecutor(client, snapshots, genOpts),
		guard:     NewDuplicateGuard(stores.Transactions, opts.DuplicateWindow),
		stores:    stores,
		opts:      genOpts,
	}
	s.mode.Store(ModeChat)
	return s
}

// SendMessage 处理一条用户消息并返回助手回复
// 用户消息先入历史再调模型，模型失败时用户消息保留在历史里
func (s *Service) SendMessage(ctx context.Context, text string) (*models.ChatMessage, error) {
	if !s.processing.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.processing.Store(false)

	ctx, cancel := context.WithTimeout(ctx, TurnTimeout)
	defer cancel()

	if s.CurrentMode() == ModeAnalysis {
		return s.sendAnalysisMessage(ctx, text)
	}

	// 窗口取当前消息之前的历史，当前消息由提示词构建器放在末尾
	recent := s.conv.RecentWindow(s.prompts.Window())
	s.conv.Append(models.NewChatMessage(models.RoleUser, text))

	snap, err := s.snapshots.BuildDaily(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("build daily snapshot error: %w", err)
	}
	s.loadCategories(ctx)

	messages := s.prompts.Build(recent, snap, text)
	raw, err := s.client.Generate(ctx, messages, s.opts)
	if err != nil {
		log.Error("model call failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrModelCall, err)
	}

	parsed := ParseResponse(raw)
	reply := models.NewAssistantMessage(parsed.Text, parsed.Intent, parsed.Suggestions)
	s.conv.Append(reply)
	if parsed.Intent != nil {
		log.Info("intent decoded: %s", parsed.Intent.Kind())
	}
	return &reply, nil
}

// sendAnalysisMessage 分析模式下消息直接走查询执行器
func (s *Service) sendAnalysisMessage(ctx context.Context, text string) (*models.ChatMessage, error) {
	s.conv.Append(models.NewChatMessage(models.RoleUser, text))

	result, err := s.queries.Execute(ctx, text)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(result.Summary)
	for _, d := range result.Details {
		sb.WriteString("\n")
		sb.WriteString(d.Label)
		sb.WriteString("：")
		sb.WriteString(d.Value)
	}
	suggestions := make([]models.QuickReply, 0, len(result.Suggestions))
	for _, item := range result.Suggestions {
		suggestions = append(suggestions, models.QuickReply{Text: item})
	}

	reply := models.NewAssistantMessage(sb.String(), nil, suggestions)
	s.conv.Append(reply)
	return &reply, nil
}

// ExecuteQuery 直接执行一次数据查询，不经过对话历史
func (s *Service) ExecuteQuery(ctx context.Context, text string) (*models.DataQueryResult, error) {
	if !s.processing.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.processing.Store(false)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()
	return s.queries.Execute(ctx, text)
}

// loadCategories 刷新提示词里的可用分类，失败不阻断对话
func (s *Service) loadCategories(ctx context.Context) {
	expense, err := s.stores.Categories.CategoryNames(ctx, models.TransactionExpense)
	if err != nil {
		log.Warn("load expense categories error: %v", err)
		return
	}
	income, err := s.stores.Categories.CategoryNames(ctx, models.TransactionIncome)
	if err != nil {
		log.Warn("load income categories error: %v", err)
		return
	}
	s.prompts.SetCategories(expense, income)
}

// ClearConversation 清空会话历史
func (s *Service) ClearConversation() {
	s.conv.Clear()
	log.Info("conversation cleared")
}

// SetMode 切换助手工作模式
func (s *Service) SetMode(mode Mode) error {
	switch mode {
	case ModeChat, ModeAnalysis:
		s.mode.Store(mode)
		log.Info("mode switched: %s", mode)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// CurrentMode 返回当前工作模式
func (s *Service) CurrentMode() Mode {
	if mode, ok := s.mode.Load().(Mode); ok {
		return mode
	}
	return ModeChat
}

// Messages 返回完整会话历史
func (s *Service) Messages() []models.ChatMessage {
	return s.conv.Messages()
}

// WelcomeMessage 生成欢迎语，会话为空时顺便入历史
// 数据快照拿不到时只给问候语，不报错
func (s *Service) WelcomeMessage(ctx context.Context) *models.ChatMessage {
	content := greetingByHour(time.Now().Hour())
	if snap, err := s.snapshots.BuildDaily(ctx, time.Now()); err != nil {
		log.Warn("build welcome snapshot error: %v", err)
	} else {
		content = content + " " + snap.StatusLine()
	}

	msg := models.NewAssistantMessage(content, nil, welcomeSuggestions())
	if s.conv.Len() == 0 {
		s.conv.Append(msg)
	}
	return &msg
}

// greetingByHour 按小时段返回问候语
func greetingByHour(hour int) string {
	switch {
	case hour < 6:
		return "夜深了，注意休息。"
	case hour < 12:
		return "早上好！"
	case hour < 18:
		return "下午好！"
	default:
		return "晚上好！"
	}
}

// welcomeSuggestions 欢迎语附带的快捷回复
func welcomeSuggestions() []models.QuickReply {
	return []models.QuickReply{
		{Text: "今天花了多少"},
		{Text: "记一笔"},
		{Text: "今日待办"},
	}
}

// AddTransactionParams 记账参数
type AddTransactionParams struct {
	Type     models.TransactionType
	Amount   float64
	Category string
	Date     *int64 // 纪元日，nil 表示今天
	Note     string
	Force    bool
}

// AddTransaction 记一笔交易，写入前经过重复检测
// 疑似重复不是错误，结果里带疑似记录由调用方确认
func (s *Service) AddTransaction(ctx context.Context, params AddTransactionParams) (*models.AddTransactionResult, error) {
	date := models.EpochDay(time.Now())
	if params.Date != nil {
		date = *params.Date
	}
	tx := &models.Transaction{
		Type:     params.Type,
		Amount:   params.Amount,
		Category: params.Category,
		Date:     date,
		Note:     params.Note,
	}
	return s.guard.Add(ctx, tx, params.Force)
}

// ListTransactions 列出某天的全部交易
func (s *Service) ListTransactions(ctx context.Context, day int64) ([]models.Transaction, error) {
	return s.stores.Transactions.ListTransactionsByDay(ctx, day)
}

// CreateTodo 创建一条待办
func (s *Service) CreateTodo(ctx context.Context, todo *models.Todo) error {
	return s.stores.Todos.InsertTodo(ctx, todo)
}

// CheckinHabit 给习惯打今天的卡，value 不传时按 1 计
func (s *Service) CheckinHabit(ctx context.Context, habitName string, value float64) error {
	if value <= 0 {
		value = 1
	}
	return s.stores.Habits.CheckinHabit(ctx, habitName, models.EpochDay(time.Now()), value)
}
