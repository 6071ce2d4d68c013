package controllers

import (
	"context"
	"strings"
	"testing"

	"compgen/compgen/config"
	"compgen/compgen/services/llm"
	"compgen/compgen/sources/psql/dao"
	"compgen/compgen/sources/psql/models"
	"compgen/compgen/utils/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- Helpers ---

func setupDB(t *testing.T) *gorm.DB {
	logging.InitLogger() // ensures the package loggers aren't nil
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:        "test-secret",
		OpenRouterAPIKey: "sk-test",
		Model:            "test-model",
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user, err := dao.NewUserDAO(db).CreateUser(context.Background(), username, username+"@example.com", "hash")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createSession(t *testing.T, db *gorm.DB, userID int) *models.Session {
	sess, err := dao.NewSessionDAO(db).CreateSession(context.Background(), userID, "")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return sess
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}

// fakeLLM satisfies llm.Client with canned replies.
type fakeLLM struct {
	reply  string
	chunks []string
	err    error
	calls  int
}

func (f *fakeLLM) Run(ctx context.Context, req llm.ChatRequest) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) RunStream(ctx context.Context, req llm.ChatRequest) (<-chan string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan string)
	go func() {
		defer close(ch)
		for _, c := range f.chunks {
			ch <- c
		}
	}()
	return ch, nil
}

// captureLLM records the user-turn prompt of each Run call.
type captureLLM struct {
	reply string
	onRun func(prompt string)
}

func (f *captureLLM) Run(ctx context.Context, req llm.ChatRequest) (string, error) {
	if f.onRun != nil && len(req.Messages) > 0 {
		f.onRun(req.Messages[len(req.Messages)-1].Content)
	}
	return f.reply, nil
}

func (f *captureLLM) RunStream(ctx context.Context, req llm.ChatRequest) (<-chan string, error) {
	ch := make(chan string, 1)
	ch <- f.reply
	close(ch)
	return ch, nil
}
