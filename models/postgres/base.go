package postgres

import "github.com/google/uuid"

// CanonicalPair orders two user ids so a symmetric relation is stored as a
// single row (low, high). Both friendships and chats rely on it for their
// unique indexes.
func CanonicalPair(a, b string) (low, high string) {
	if a <= b {
		return a, b
	}
	return b, a
}

func newID() string {
	return uuid.NewString()
}
