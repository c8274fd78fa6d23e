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

// PostUUID derives the identity for a post from its store identifier.
func PostUUID(identifier string) uuid.UUID {
	return UUID("go-press:post:" + strings.TrimSpace(identifier))
}

// BuildUUID derives the identity recorded in a build manifest. Keyed by
// output directory so successive builds of the same site share an identity.
func BuildUUID(outputDir string) uuid.UUID {
	return UUID("go-press:build:" + strings.TrimSpace(outputDir))
}
