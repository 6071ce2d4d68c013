// compgen/services/codegen/prompt.go
package codegen

import (
	"fmt"
	"strings"

	"compgen/compgen/sources/psql/models"
)

// SystemPrompt is the fixed system message sent with every completion.
const SystemPrompt = "You are a helpful assistant that generates clean and modern React components. Respond only with valid code blocks. Output JSX first, then CSS."

const createPrompt = "Create a new React component based on this request: %s\n\n" +
	"Return the complete JSX in a ```jsx code block and the CSS in a ```css code block. " +
	"Respond only with code blocks, no explanations."

const modifyPrompt = "Here is the current code of a React component.\n\n" +
	"Current JSX:\n```jsx\n%s\n```\n\n" +
	"Current CSS:\n```css\n%s\n```\n\n" +
	"Apply this change: %s\n\n" +
	"Return the complete updated JSX in a ```jsx code block and the complete updated CSS in a ```css code block. " +
	"Respond only with code blocks, no explanations."

// ComposePrompt builds the user-turn content for a generation. A session
// with existing JSX gets the modify variant with the current code embedded
// verbatim; everything else is a from-scratch request.
func ComposePrompt(userRequest string, existing models.CodeSnapshot) string {
	if strings.TrimSpace(existing.JSX) != "" {
		return fmt.Sprintf(modifyPrompt, existing.JSX, existing.CSS, userRequest)
	}
	return fmt.Sprintf(createPrompt, userRequest)
}
