package urlgen

import (
	"strings"
	"testing"
)

func TestNewTokenUnique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		token := NewToken(DefaultTokenLength)
		if !strings.HasPrefix(token, TokenPrefix) {
			t.Fatalf("token %q missing prefix", token)
		}
		if len(token) != len(TokenPrefix)+DefaultTokenLength {
			t.Fatalf("token %q has unexpected length", token)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token %q after %d draws", token, i)
		}
		seen[token] = struct{}{}
	}
}

func TestQuizURLRoundTrip(t *testing.T) {
	token := NewToken(0)
	full := QuizURL("https://quizflow.example", token)

	if got := TokenFromURL(full); got != token {
		t.Fatalf("expected token %q back, got %q", token, got)
	}
	if !IsQuizURL(full) {
		t.Fatalf("expected %q to be a quiz URL", full)
	}
}

func TestTokenFromURLRejectsOtherPaths(t *testing.T) {
	for _, raw := range []string{
		"https://quizflow.example/completion/abc",
		"https://quizflow.example/",
		"://not a url",
	} {
		if got := TokenFromURL(raw); got != "" {
			t.Fatalf("expected no token for %q, got %q", raw, got)
		}
	}
}

func TestQuizURLTrimsTrailingSlash(t *testing.T) {
	if got := QuizURL("https://quizflow.example/", "quiz_abc"); got != "https://quizflow.example/quiz/quiz_abc" {
		t.Fatalf("unexpected URL %q", got)
	}
}
