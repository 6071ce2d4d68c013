package types

import "compgen/compgen/sources/psql/models"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type CreateSessionRequest struct {
	Title string `json:"title"`
}

// UpdateSessionRequest carries partial session edits. Nil fields are left
// untouched; CodeHistory and Cursor travel together. Revision is the value
// the client read, used for the write guard.
type UpdateSessionRequest struct {
	Title       *string             `json:"title,omitempty"`
	CodeHistory *models.CodeHistory `json:"codeHistory,omitempty"`
	Cursor      *int                `json:"cursor,omitempty"`
	Revision    *int                `json:"revision,omitempty"`
}

type GenerateRequest struct {
	Prompt     string `json:"prompt"`
	SessionID  string `json:"sessionId"`
	CurrentJSX string `json:"currentJsx,omitempty"`
	CurrentCSS string `json:"currentCss,omitempty"`
}

type GenerateResponse struct {
	Response string              `json:"response"`
	Snapshot models.CodeSnapshot `json:"snapshot"`
}

type SnapshotResponse struct {
	Snapshot models.CodeSnapshot `json:"snapshot"`
	Cursor   int                 `json:"cursor"`
	Revision int                 `json:"revision"`
}

type ExportResponse struct {
	Key string `json:"key"`
}
