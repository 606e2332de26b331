// Package urlgen produces the opaque share tokens used in public quiz and
// completion page URLs, and composes/parses the URLs built from them.
package urlgen

import (
	"crypto/rand"
	"fmt"
	"net/url"
	"strings"
)

const (
	// TokenPrefix marks share tokens so they are recognizable in logs and paths.
	TokenPrefix = "quiz_"
	// DefaultTokenLength is the random portion of a share token.
	DefaultTokenLength = 12
	// QuizPathPrefix is the public path under which quizzes are reachable.
	QuizPathPrefix = "/quiz/"
	// CompletionPathPrefix is the public path for completion pages.
	CompletionPathPrefix = "/completion/"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewToken returns a fresh share token: the fixed prefix followed by n
// random alphanumeric characters.
func NewToken(n int) string {
	if n <= 0 {
		n = DefaultTokenLength
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(fmt.Sprintf("urlgen: read random: %v", err))
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return TokenPrefix + string(buf)
}

// QuizURL composes the full public URL for a quiz token on the given base.
func QuizURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + QuizPathPrefix + token
}

// CompletionURL composes the full public URL for a completion page ID.
func CompletionURL(baseURL, pageID string) string {
	return strings.TrimRight(baseURL, "/") + CompletionPathPrefix + pageID
}

// TokenFromURL extracts the token from a quiz URL, or "" if the URL does not
// point at the quiz path.
func TokenFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if !strings.HasPrefix(u.Path, QuizPathPrefix) {
		return ""
	}
	return strings.TrimPrefix(u.Path, QuizPathPrefix)
}

// IsQuizURL reports whether the URL carries a non-empty quiz token.
func IsQuizURL(raw string) bool {
	return TokenFromURL(raw) != ""
}
