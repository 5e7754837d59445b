package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func token(t *testing.T, expiresAt *time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{Subject: "tester"}
	if expiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*expiresAt)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestIsAuthenticated(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty token", "", false},
		{"malformed token", "not-a-jwt", false},
		{"expired token", token(t, &past), false},
		{"valid token", token(t, &future), true},
		{"no expiry claim", token(t, nil), true},
	}

	for _, tc := range cases {
		s := NewWithToken(tc.token)
		if got := s.IsAuthenticated(); got != tc.want {
			t.Errorf("%s: IsAuthenticated() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSetTokenNotifiesSubscribers(t *testing.T) {
	s := New()

	var got []bool
	s.OnChange(func(authenticated bool) {
		got = append(got, authenticated)
	})

	future := time.Now().Add(time.Hour)
	s.SetToken(token(t, &future))
	s.SetToken("")

	if len(got) != 2 || !got[0] || got[1] {
		t.Fatalf("expected [true false] notifications, got %v", got)
	}
}

func TestForceLogoutClearsToken(t *testing.T) {
	future := time.Now().Add(time.Hour)
	s := NewWithToken(token(t, &future))

	loggedOut := false
	s.OnChange(func(authenticated bool) {
		if !authenticated {
			loggedOut = true
		}
	})

	s.ForceLogout()

	if s.Token() != "" {
		t.Fatal("forced logout must clear the token")
	}
	if s.IsAuthenticated() {
		t.Fatal("forced logout must end authentication")
	}
	if !loggedOut {
		t.Fatal("forced logout must notify subscribers")
	}
}
