// compgen/controllers/export.go
package controllers

import (
	"archive/zip"
	"bytes"
	"compgen/compgen/sources/psql/dao"
	"compgen/compgen/utils/logging"
	"compgen/compgen/types"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ExportStore is the object storage the zipped bundles go to. Optional:
// a nil store means exports are download-only.
type ExportStore interface {
	UploadExport(ctx context.Context, sessionID string, data []byte) (string, error)
}

type ExportController struct {
	sessionDAO *dao.SessionDAO
	store      ExportStore
}

func NewExportController(sessionDAO *dao.SessionDAO, store ExportStore) *ExportController {
	return &ExportController{sessionDAO: sessionDAO, store: store}
}

// Export zips the session's current snapshot (Component.jsx plus
// styles.css when present) and uploads it when a store is configured.
// Returns the zip bytes and the storage key, empty if not uploaded.
func (c *ExportController) Export(ctx context.Context, userID int, sessionID string) ([]byte, string, error) {
	sess, err := c.sessionDAO.GetSession(ctx, sessionID, userID)
	if err != nil {
		return nil, "", err
	}
	snap := sess.CurrentSnapshot()
	if strings.TrimSpace(snap.JSX) == "" {
		return nil, "", fmt.Errorf("%w: session has no generated component to export", types.ErrValidation)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	jsxFile, err := zw.Create("Component.jsx")
	if err != nil {
		return nil, "", err
	}
	if _, err := jsxFile.Write([]byte(snap.JSX)); err != nil {
		return nil, "", err
	}
	if snap.CSS != "" {
		cssFile, err := zw.Create("styles.css")
		if err != nil {
			return nil, "", err
		}
		if _, err := cssFile.Write([]byte(snap.CSS)); err != nil {
			return nil, "", err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, "", err
	}

	key := ""
	if c.store != nil {
		key, err = c.store.UploadExport(ctx, sess.ID, buf.Bytes())
		if err != nil {
			// The download still works when object storage is down.
			logging.ErrorLogger.Error("export upload failed",
				zap.String("session_id", sess.ID),
				zap.Error(err),
			)
			key = ""
		}
	}
	return buf.Bytes(), key, nil
}
