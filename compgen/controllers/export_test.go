package controllers

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"compgen/compgen/sources/psql/dao"
	"compgen/compgen/sources/psql/models"
	"compgen/compgen/types"
)

type fakeStore struct {
	key  string
	data []byte
}

func (f *fakeStore) UploadExport(ctx context.Context, sessionID string, data []byte) (string, error) {
	f.data = data
	return f.key, nil
}

func readZipEntry(t *testing.T, data []byte, name string) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("bad zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(content)
	}
	t.Fatalf("zip entry %s missing", name)
	return ""
}

func TestExportZipsCurrentSnapshot(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "alice")
	sess := createSession(t, db, user.ID)
	sessionDAO := dao.NewSessionDAO(db)
	ctx := context.Background()

	sess.CodeHistory = models.CodeHistory{{JSX: "<old/>"}, {JSX: "<new/>", CSS: ".n {}"}}
	sess.Cursor = 1
	if err := sessionDAO.SaveSession(ctx, sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	store := &fakeStore{key: "exports/x.zip"}
	ctrl := NewExportController(sessionDAO, store)
	data, key, err := ctrl.Export(ctx, user.ID, sess.ID)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if key != "exports/x.zip" {
		t.Errorf("unexpected key: %q", key)
	}
	if got := readZipEntry(t, data, "Component.jsx"); got != "<new/>" {
		t.Errorf("export must use the cursor snapshot, got %q", got)
	}
	if got := readZipEntry(t, data, "styles.css"); got != ".n {}" {
		t.Errorf("unexpected css entry: %q", got)
	}
	if !bytes.Equal(store.data, data) {
		t.Error("uploaded bytes should match the returned zip")
	}
}

func TestExportEmptySession(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "alice")
	sess := createSession(t, db, user.ID)
	ctrl := NewExportController(dao.NewSessionDAO(db), nil)

	if _, _, err := ctrl.Export(context.Background(), user.ID, sess.ID); !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected validation error for empty session, got %v", err)
	}
}

func TestExportWithoutStore(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "alice")
	sess := createSession(t, db, user.ID)
	sessionDAO := dao.NewSessionDAO(db)
	ctx := context.Background()

	sess.CodeHistory = models.CodeHistory{{JSX: "<a/>"}}
	sess.Cursor = 0
	if err := sessionDAO.SaveSession(ctx, sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	ctrl := NewExportController(sessionDAO, nil)
	data, key, err := ctrl.Export(ctx, user.ID, sess.ID)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if key != "" {
		t.Errorf("expected empty key without a store, got %q", key)
	}
	if got := readZipEntry(t, data, "Component.jsx"); got != "<a/>" {
		t.Errorf("unexpected jsx entry: %q", got)
	}
}
