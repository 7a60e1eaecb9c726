package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PostUUID derives the index identity for an article slug.
func PostUUID(slug string) uuid.UUID {
	return UUID("go-posts:post:" + strings.ToLower(strings.TrimSpace(slug)))
}

// RevisionUUID derives the index identity for one revision file of a post.
func RevisionUUID(postID uuid.UUID, filePath string) uuid.UUID {
	return UUID("go-posts:revision:" + postID.String() + ":" + strings.TrimSpace(filePath))
}
