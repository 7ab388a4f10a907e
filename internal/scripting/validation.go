package scripting

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Limits on user-authored command definitions.
const (
	MaxNameLen        = 32
	MaxDescriptionLen = 200
	MaxSourceLen      = 8192 // 8KB command body
)

// ValidateName checks a user-supplied command base name: lowercase letters,
// digits and underscores only, before the namespace prefix is applied.
func ValidateName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("command name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("command name too long (max %d characters)", MaxNameLen)
	}
	for _, r := range name {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_') {
			return fmt.Errorf("command name must contain only lowercase letters, numbers, and underscores")
		}
	}
	return nil
}

// ValidateDescription checks a command description.
func ValidateDescription(description string) error {
	if !utf8.ValidString(description) {
		return fmt.Errorf("description contains invalid UTF-8")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return fmt.Errorf("description too long (max %d characters)", MaxDescriptionLen)
	}
	return nil
}

// ValidateSource checks a command body before it is compiled.
func ValidateSource(source string) error {
	if !utf8.ValidString(source) {
		return fmt.Errorf("implementation contains invalid UTF-8")
	}
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("implementation cannot be empty")
	}
	if len(source) > MaxSourceLen {
		return fmt.Errorf("implementation too long (max %d bytes)", MaxSourceLen)
	}
	return nil
}
