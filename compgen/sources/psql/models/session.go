package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CodeSnapshot is one immutable generated state of the component.
type CodeSnapshot struct {
	JSX string `json:"jsx"`
	CSS string `json:"css"`
}

// ChatMessage is one entry of a session's conversational transcript.
type ChatMessage struct {
	ID      string `json:"id"`
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CodeHistory and ChatHistory are stored as single jsonb columns so a
// generation updates chat + code in one row write.
type CodeHistory []CodeSnapshot

type ChatHistory []ChatMessage

func (h CodeHistory) Value() (driver.Value, error) {
	if h == nil {
		h = CodeHistory{}
	}
	return json.Marshal(h)
}

func (h *CodeHistory) Scan(value interface{}) error {
	return scanJSON(value, h)
}

func (h ChatHistory) Value() (driver.Value, error) {
	if h == nil {
		h = ChatHistory{}
	}
	return json.Marshal(h)
}

func (h *ChatHistory) Scan(value interface{}) error {
	return scanJSON(value, h)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}

const DefaultSessionTitle = "Untitled Session"

type Session struct {
	ID          string      `json:"id" gorm:"type:varchar(64);primaryKey"`
	UserID      int         `json:"user_id" gorm:"not null;index"`
	User        User        `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Title       string      `json:"title" gorm:"type:varchar(255);not null;default:'Untitled Session'"`
	ChatHistory ChatHistory `json:"chatHistory" gorm:"type:jsonb;not null;default:'[]'"`
	CodeHistory CodeHistory `json:"codeHistory" gorm:"type:jsonb;not null;default:'[]'"`
	// Cursor indexes the currently displayed snapshot in CodeHistory.
	Cursor int `json:"cursor" gorm:"not null;default:0"`
	// Revision guards concurrent truncate-then-append writes; every
	// persisted update must carry the revision it read.
	Revision  int       `json:"revision" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CurrentSnapshot returns the snapshot under the cursor, or an empty
// snapshot for a session that has not generated anything yet.
func (s *Session) CurrentSnapshot() CodeSnapshot {
	if len(s.CodeHistory) == 0 || s.Cursor < 0 || s.Cursor >= len(s.CodeHistory) {
		return CodeSnapshot{}
	}
	return s.CodeHistory[s.Cursor]
}
