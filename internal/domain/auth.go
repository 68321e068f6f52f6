package domain

import "time"

// Token represents issued authentication token metadata. Tokens are
// stateless; nothing is persisted server-side.
type Token struct {
	SubjectID string
	ExpiresAt time.Time
	IssuedAt  time.Time
}
