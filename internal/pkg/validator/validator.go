package validator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const maxTextRunes = 4096

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateSendMessage(receiverID, text string, hasAttachment bool) error {
	if strings.TrimSpace(receiverID) == "" {
		return fmt.Errorf("receiver_id is required")
	}

	if _, err := uuid.Parse(receiverID); err != nil {
		return fmt.Errorf("receiver_id is not a valid uuid")
	}

	if strings.TrimSpace(text) == "" && !hasAttachment {
		return fmt.Errorf("either text or a file is required")
	}

	if len([]rune(text)) > maxTextRunes {
		return fmt.Errorf("text exceeds maximum length of %d characters", maxTextRunes)
	}

	return nil
}

// ValidateAttachmentKey rejects anything that is not a bare generated key.
// Keys reach the service from clients, so they must never be allowed to
// address outside the attachment directory.
func (v *Validator) ValidateAttachmentKey(key string) error {
	if key == "" {
		return fmt.Errorf("attachment key is required")
	}

	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("attachment key must be a bare name")
	}

	return nil
}
