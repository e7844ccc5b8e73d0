package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/QYW-woker/AI-Management-sub000/internal/embed"
	"github.com/QYW-woker/AI-Management-sub000/internal/logger"
	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// 日志实例
var log = logger.New("Store")

// Store 基于 SQLite 的数据存储，实现 store 包的全部接口
type Store struct {
	db *sql.DB
}

// Open 打开数据库，必要时创建目录并初始化表结构
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create data dir error: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database error: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma error: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.seedCategories(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema 创建表和索引
func (s *Store) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS transactions (
	id         TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	amount     REAL NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	date       INTEGER NOT NULL,
	note       TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tx_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_tx_fingerprint ON transactions(date, type, amount);

CREATE TABLE IF NOT EXISTS todos (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	due_date    INTEGER,
	start_time  TEXT NOT NULL DEFAULT '',
	end_time    TEXT NOT NULL DEFAULT '',
	priority    INTEGER NOT NULL DEFAULT 0,
	quadrant    INTEGER NOT NULL DEFAULT 0,
	done        INTEGER NOT NULL DEFAULT 0,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_due_date ON todos(due_date);

CREATE TABLE IF NOT EXISTS habits (
	id     TEXT PRIMARY KEY,
	name   TEXT NOT NULL UNIQUE,
	target REAL NOT NULL DEFAULT 1,
	active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS habit_records (
	id       TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL,
	day      INTEGER NOT NULL,
	value    REAL NOT NULL DEFAULT 1,
	UNIQUE(habit_id, day)
);
CREATE INDEX IF NOT EXISTS idx_habit_records_day ON habit_records(day);

CREATE TABLE IF NOT EXISTS goals (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	type     TEXT NOT NULL DEFAULT '',
	target   REAL NOT NULL DEFAULT 0,
	current  REAL NOT NULL DEFAULT 0,
	deadline INTEGER,
	active   INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS budgets (
	id          TEXT PRIMARY KEY,
	category    TEXT NOT NULL UNIQUE,
	month_limit REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	UNIQUE(name, type)
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init schema error: %w", err)
	}
	return nil
}

// seedCategories 首次启动时从嵌入数据初始化默认分类
func (s *Store) seedCategories() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("count categories error: %w", err)
	}
	if count > 0 {
		return nil
	}

	var seed struct {
		Expense []string `json:"expense"`
		Income  []string `json:"income"`
	}
	if err := json.Unmarshal(embed.CategoriesJSON, &seed); err != nil {
		return fmt.Errorf("parse embedded categories error: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed error: %w", err)
	}
	defer tx.Rollback()

	insert := func(names []string, txType models.TransactionType) error {
		for _, name := range names {
			if _, err := tx.Exec(
				"INSERT INTO categories (id, name, type) VALUES (?, ?, ?)",
				uuid.NewString(), name, string(txType),
			); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(seed.Expense, models.TransactionExpense); err != nil {
		return fmt.Errorf("seed expense categories error: %w", err)
	}
	if err := insert(seed.Income, models.TransactionIncome); err != nil {
		return fmt.Errorf("seed income categories error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed error: %w", err)
	}
	log.Info("seeded %d default categories", len(seed.Expense)+len(seed.Income))
	return nil
}

// boolToInt SQLite 无布尔类型，统一存 0/1
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
