// compgen/routes/auth.go
package routes

import (
	"compgen/compgen/controllers"
	"compgen/compgen/types"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(ctrl *controllers.AuthController) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, 0, fmt.Errorf("%w: invalid request body", types.ErrValidation)
		}
		resp, err := ctrl.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			return nil, 0, err
		}
		return resp, http.StatusCreated, nil
	}))

	r.Post("/login", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, 0, fmt.Errorf("%w: invalid request body", types.ErrValidation)
		}
		resp, err := ctrl.Login(r.Context(), req.EmailOrUsername, req.Password)
		if err != nil {
			return nil, 0, err
		}
		return resp, http.StatusOK, nil
	}))

	return r
}
