// compgen/controllers/ai.go
package controllers

import (
	"compgen/compgen/config"
	"compgen/compgen/services/codegen"
	"compgen/compgen/services/llm"
	"compgen/compgen/sources/psql/dao"
	"compgen/compgen/sources/psql/models"
	"compgen/compgen/types"
	"compgen/compgen/utils/logging"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxDerivedTitleLen = 60

// AIController orchestrates one generation: compose the prompt, call the
// upstream once, parse the reply, fold the new snapshot into the session's
// code history and persist chat + code in a single write. Any failure
// before that write leaves the session untouched.
type AIController struct {
	sessionDAO *dao.SessionDAO
	client     llm.Client
	cfg        config.Config
}

func NewAIController(sessionDAO *dao.SessionDAO, client llm.Client, cfg config.Config) *AIController {
	return &AIController{
		sessionDAO: sessionDAO,
		client:     client,
		cfg:        cfg,
	}
}

func (c *AIController) Generate(ctx context.Context, userID int, req types.GenerateRequest) (*types.GenerateResponse, error) {
	sess, current, err := c.prepare(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	raw, err := c.client.Run(ctx, c.chatRequest(req.Prompt, current))
	if err != nil {
		logging.ErrorLogger.Error("AI generation failed",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
		return nil, types.ErrUpstream
	}

	snap, err := c.finalize(ctx, sess, req.Prompt, raw)
	if err != nil {
		return nil, err
	}
	return &types.GenerateResponse{Response: raw, Snapshot: snap}, nil
}

// GenerateStream is the websocket variant: deltas go out on the returned
// channel as they arrive, and once the stream completes the accumulated
// reply goes through the same finalize path as the blocking call.
func (c *AIController) GenerateStream(ctx context.Context, userID int, req types.GenerateRequest) (<-chan string, <-chan error) {
	ch := make(chan string)
	errCh := make(chan error, 1)

	sess, current, err := c.prepare(ctx, userID, req)
	if err != nil {
		errCh <- err
		close(ch)
		close(errCh)
		return ch, errCh
	}

	creq := c.chatRequest(req.Prompt, current)
	creq.Stream = true
	upstream, err := c.client.RunStream(ctx, creq)
	if err != nil {
		logging.ErrorLogger.Error("AI stream failed",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
		errCh <- types.ErrUpstream
		close(ch)
		close(errCh)
		return ch, errCh
	}

	go func() {
		defer close(ch)
		defer close(errCh)
		var full strings.Builder
		for chunk := range upstream {
			full.WriteString(chunk)
			select {
			case ch <- chunk:
			case <-ctx.Done():
				return
			}
		}
		if full.Len() == 0 {
			errCh <- types.ErrUpstream
			return
		}
		// The request context may be gone once the socket drains, so the
		// persisted write gets its own deadline.
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := c.finalize(saveCtx, sess, req.Prompt, full.String()); err != nil {
			errCh <- err
		}
	}()

	return ch, errCh
}

// prepare validates the request, loads the owner's session and resolves
// the snapshot the prompt should start from. The credential check runs
// here so a misconfigured deployment fails before any network call.
func (c *AIController) prepare(ctx context.Context, userID int, req types.GenerateRequest) (*models.Session, models.CodeSnapshot, error) {
	if strings.TrimSpace(req.Prompt) == "" || req.SessionID == "" {
		return nil, models.CodeSnapshot{}, fmt.Errorf("%w: prompt and sessionId are required", types.ErrValidation)
	}
	sess, err := c.sessionDAO.GetSession(ctx, req.SessionID, userID)
	if err != nil {
		return nil, models.CodeSnapshot{}, err
	}
	if c.cfg.OpenRouterAPIKey == "" {
		return nil, models.CodeSnapshot{}, types.ErrMissingAPIKey
	}
	current := models.CodeSnapshot{JSX: req.CurrentJSX, CSS: req.CurrentCSS}
	if current.JSX == "" && current.CSS == "" {
		current = sess.CurrentSnapshot()
	}
	return sess, current, nil
}

func (c *AIController) chatRequest(prompt string, current models.CodeSnapshot) llm.ChatRequest {
	return llm.ChatRequest{
		Model: c.cfg.Model,
		Messages: []llm.Message{
			{Role: "system", Content: codegen.SystemPrompt},
			{Role: "user", Content: codegen.ComposePrompt(prompt, current)},
		},
	}
}

// finalize parses the raw reply, applies truncate-then-append at the
// session's cursor, records the user and assistant turns (the assistant
// turn keeps the raw text, not the extracted code) and persists everything
// as one revision-guarded write.
func (c *AIController) finalize(ctx context.Context, sess *models.Session, prompt, raw string) (models.CodeSnapshot, error) {
	snap := codegen.Parse(raw)

	h := codegen.LoadFrom(sess.CodeHistory)
	h.Seek(sess.Cursor)
	h.Append(snap)

	if sess.Title == models.DefaultSessionTitle && len(sess.CodeHistory) == 0 {
		sess.Title = deriveTitle(prompt)
	}
	sess.ChatHistory = append(sess.ChatHistory,
		models.ChatMessage{ID: uuid.New().String(), Role: models.RoleUser, Content: prompt},
		models.ChatMessage{ID: uuid.New().String(), Role: models.RoleAssistant, Content: raw},
	)
	sess.CodeHistory = h.Snapshots()
	sess.Cursor = h.Cursor()

	if err := c.sessionDAO.SaveSession(ctx, sess); err != nil {
		return models.CodeSnapshot{}, err
	}
	return snap, nil
}

// deriveTitle labels a fresh session after its first prompt.
func deriveTitle(prompt string) string {
	title := strings.Join(strings.Fields(prompt), " ")
	if runes := []rune(title); len(runes) > maxDerivedTitleLen {
		title = strings.TrimSpace(string(runes[:maxDerivedTitleLen]))
	}
	if title == "" {
		return models.DefaultSessionTitle
	}
	return title
}
