// compgen/routes/session.go
package routes

import (
	"compgen/compgen/config"
	"compgen/compgen/controllers"
	"compgen/compgen/middlewares"
	"compgen/compgen/types"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SessionRoutes(ctrl *controllers.SessionController, exportCtrl *controllers.ExportController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))

	r.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
		userID, _ := middlewares.UserID(r)
		var req types.CreateSessionRequest
		// An empty body is fine; the session gets the default title.
		_ = json.NewDecoder(r.Body).Decode(&req)
		sess, err := ctrl.Create(r.Context(), userID, req.Title)
		if err != nil {
			return nil, 0, err
		}
		return sess, http.StatusCreated, nil
	}))

	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		userID, _ := middlewares.UserID(r)
		sessions, err := ctrl.List(r.Context(), userID)
		if err != nil {
			return nil, 0, err
		}
		return sessions, http.StatusOK, nil
	}))

	r.Get("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
		userID, _ := middlewares.UserID(r)
		sess, err := ctrl.Get(r.Context(), userID, chi.URLParam(r, "id"))
		if err != nil {
			return nil, 0, err
		}
		return sess, http.StatusOK, nil
	}))

	r.Put("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
		userID, _ := middlewares.UserID(r)
		var req types.UpdateSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, 0, fmt.Errorf("%w: invalid request body", types.ErrValidation)
		}
		sess, err := ctrl.Update(r.Context(), userID, chi.URLParam(r, "id"), req)
		if err != nil {
			return nil, 0, err
		}
		return sess, http.StatusOK, nil
	}))

	r.Delete("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
		userID, _ := middlewares.UserID(r)
		if err := ctrl.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
			return nil, 0, err
		}
		return map[string]string{"message": "Session deleted successfully"}, http.StatusOK, nil
	}))

	r.Post("/{id}/undo", handleJSON(func(r *http.Request) (any, int, error) {
		userID, _ := middlewares.UserID(r)
		resp, err := ctrl.Undo(r.Context(), userID, chi.URLParam(r, "id"))
		if err != nil {
			return nil, 0, err
		}
		return resp, http.StatusOK, nil
	}))

	r.Post("/{id}/redo", handleJSON(func(r *http.Request) (any, int, error) {
		userID, _ := middlewares.UserID(r)
		resp, err := ctrl.Redo(r.Context(), userID, chi.URLParam(r, "id"))
		if err != nil {
			return nil, 0, err
		}
		return resp, http.StatusOK, nil
	}))

	r.Get("/{id}/export", func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserID(r)
		data, key, err := exportCtrl.Export(r.Context(), userID, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		if key != "" {
			w.Header().Set("X-Export-Key", key)
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="component.zip"`)
		w.Write(data)
	})

	return r
}
