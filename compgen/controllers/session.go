// compgen/controllers/session.go
package controllers

import (
	"compgen/compgen/services/codegen"
	"compgen/compgen/sources/psql/dao"
	"compgen/compgen/sources/psql/models"
	"compgen/compgen/types"
	"context"
)

type SessionController struct {
	sessionDAO *dao.SessionDAO
}

func NewSessionController(sessionDAO *dao.SessionDAO) *SessionController {
	return &SessionController{sessionDAO: sessionDAO}
}

func (c *SessionController) Create(ctx context.Context, userID int, title string) (*models.Session, error) {
	return c.sessionDAO.CreateSession(ctx, userID, title)
}

func (c *SessionController) List(ctx context.Context, userID int) ([]models.Session, error) {
	return c.sessionDAO.ListSessionsByUser(ctx, userID)
}

func (c *SessionController) Get(ctx context.Context, userID int, id string) (*models.Session, error) {
	return c.sessionDAO.GetSession(ctx, id, userID)
}

// Update applies a partial edit: title, or a code history + cursor pair
// (the client persists its local history wholesale after a generation).
// When the request carries the revision it read, that revision guards the
// write; otherwise the freshly loaded one is used.
func (c *SessionController) Update(ctx context.Context, userID int, id string, req types.UpdateSessionRequest) (*models.Session, error) {
	sess, err := c.sessionDAO.GetSession(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		sess.Title = *req.Title
	}
	if req.CodeHistory != nil {
		h := codegen.LoadFrom(*req.CodeHistory)
		if req.Cursor != nil {
			h.Seek(*req.Cursor)
		}
		sess.CodeHistory = h.Snapshots()
		sess.Cursor = h.Cursor()
	} else if req.Cursor != nil {
		h := codegen.LoadFrom(sess.CodeHistory)
		h.Seek(*req.Cursor)
		sess.Cursor = h.Cursor()
	}
	if req.Revision != nil {
		sess.Revision = *req.Revision
	}
	if err := c.sessionDAO.SaveSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (c *SessionController) Delete(ctx context.Context, userID int, id string) error {
	return c.sessionDAO.DeleteSession(ctx, id, userID)
}

// Undo moves the persisted cursor one snapshot back; at the lower bound it
// is a no-op that still reports the current snapshot.
func (c *SessionController) Undo(ctx context.Context, userID int, id string) (*types.SnapshotResponse, error) {
	return c.moveCursor(ctx, userID, id, func(h *codegen.History) bool { return h.Undo() })
}

// Redo moves the persisted cursor one snapshot forward, clamped at the end.
func (c *SessionController) Redo(ctx context.Context, userID int, id string) (*types.SnapshotResponse, error) {
	return c.moveCursor(ctx, userID, id, func(h *codegen.History) bool { return h.Redo() })
}

func (c *SessionController) moveCursor(ctx context.Context, userID int, id string, move func(*codegen.History) bool) (*types.SnapshotResponse, error) {
	sess, err := c.sessionDAO.GetSession(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	h := codegen.LoadFrom(sess.CodeHistory)
	h.Seek(sess.Cursor)
	if move(&h) {
		sess.Cursor = h.Cursor()
		if err := c.sessionDAO.SaveSession(ctx, sess); err != nil {
			return nil, err
		}
	}
	return &types.SnapshotResponse{
		Snapshot: h.Current(),
		Cursor:   h.Cursor(),
		Revision: sess.Revision,
	}, nil
}
