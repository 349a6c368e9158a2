package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dwikikusuma/shopfront/pkg/fault"
	"github.com/dwikikusuma/shopfront/pkg/rest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := rest.NewClient(srv.URL, time.Second, testLogger())
	return NewGateway(c, "test-key")
}

func TestSignIn(t *testing.T) {
	t.Run("success builds a session with expiry", func(t *testing.T) {
		base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.URL.RawQuery, "key=test-key") {
				t.Errorf("api key missing from query: %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{"idToken":"tok","localId":"u1","expiresIn":"3600"}`))
		}).WithClock(func() time.Time { return base })

		sess, err := gw.SignIn(context.Background(), "a@b.c", "pw")
		if err != nil {
			t.Fatalf("sign in failed: %v", err)
		}
		if sess.Token != "tok" || sess.UserID != "u1" {
			t.Fatalf("unexpected session: %+v", sess)
		}
		if !sess.ExpiresAt.Equal(base.Add(time.Hour)) {
			t.Fatalf("unexpected expiry: %v", sess.ExpiresAt)
		}
	})

	t.Run("backend codes map to readable messages", func(t *testing.T) {
		cases := []struct {
			code string
			want fault.Kind
		}{
			{"EMAIL_NOT_FOUND", fault.KindAuthentication},
			{"INVALID_PASSWORD", fault.KindAuthentication},
			{"INVALID_LOGIN_CREDENTIALS", fault.KindAuthentication},
			{"EMAIL_EXISTS", fault.KindConflict},
			{"USER_DISABLED", fault.KindAuthentication},
		}
		for _, tc := range cases {
			t.Run(tc.code, func(t *testing.T) {
				gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusBadRequest)
					w.Write([]byte(`{"error":{"message":"` + tc.code + `"}}`))
				})

				_, err := gw.SignIn(context.Background(), "a@b.c", "pw")
				if fault.KindOf(err) != tc.want {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}
				if strings.Contains(err.Error(), tc.code) {
					t.Fatalf("raw backend code leaked: %q", err.Error())
				}
			})
		}
	})

	t.Run("incomplete session payload is a network fault", func(t *testing.T) {
		gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"idToken":"","localId":""}`))
		})
		_, err := gw.SignIn(context.Background(), "a@b.c", "pw")
		if fault.KindOf(err) != fault.KindNetwork {
			t.Fatalf("expected network fault, got %v", err)
		}
	})
}
