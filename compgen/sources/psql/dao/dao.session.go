package dao

import (
	"compgen/compgen/sources/psql/models"
	"compgen/compgen/types"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionDAO struct {
	DB *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{DB: db}
}

func (dao *SessionDAO) CreateSession(ctx context.Context, userID int, title string) (*models.Session, error) {
	if title == "" {
		title = models.DefaultSessionTitle
	}
	sess := models.Session{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		ChatHistory: models.ChatHistory{},
		CodeHistory: models.CodeHistory{},
		Cursor:      0,
		Revision:    0,
	}
	if err := dao.DB.WithContext(ctx).Create(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

func (dao *SessionDAO) ListSessionsByUser(ctx context.Context, userID int) ([]models.Session, error) {
	var sessions []models.Session
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession loads a session and enforces ownership: an absent id is
// ErrNotFound, someone else's session is ErrForbidden, never silently
// hidden.
func (dao *SessionDAO) GetSession(ctx context.Context, id string, userID int) (*models.Session, error) {
	var sess models.Session
	err := dao.DB.WithContext(ctx).Where("id = ?", id).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, types.ErrForbidden
	}
	return &sess, nil
}

// SaveSession persists title, chat history, code history and cursor in a
// single row write, guarded by a revision compare-and-swap: the UPDATE
// only lands if the stored revision still equals the one the caller read.
// A lost race surfaces as ErrConflictingWrite.
func (dao *SessionDAO) SaveSession(ctx context.Context, sess *models.Session) error {
	res := dao.DB.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND user_id = ? AND revision = ?", sess.ID, sess.UserID, sess.Revision).
		Updates(map[string]interface{}{
			"title":        sess.Title,
			"chat_history": sess.ChatHistory,
			"code_history": sess.CodeHistory,
			"cursor":       sess.Cursor,
			"revision":     sess.Revision + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := dao.GetSession(ctx, sess.ID, sess.UserID); err != nil {
			return err
		}
		return types.ErrConflictingWrite
	}
	sess.Revision++
	return nil
}

func (dao *SessionDAO) DeleteSession(ctx context.Context, id string, userID int) error {
	sess, err := dao.GetSession(ctx, id, userID)
	if err != nil {
		return err
	}
	return dao.DB.WithContext(ctx).Delete(sess).Error
}
