package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tag(name string, trail *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*trail = append(*trail, name+">")
			next.ServeHTTP(w, r)
			*trail = append(*trail, "<"+name)
		})
	}
}

func TestChain(t *testing.T) {
	tests := []struct {
		name string
		mws  func(trail *[]string) []Middleware
		want []string
	}{
		{
			name: "first is outermost",
			mws: func(trail *[]string) []Middleware {
				return []Middleware{tag("a", trail), tag("b", trail), tag("c", trail)}
			},
			want: []string{"a>", "b>", "c>", "h", "<c", "<b", "<a"},
		},
		{
			name: "nil layers are skipped",
			mws: func(trail *[]string) []Middleware {
				return []Middleware{nil, tag("a", trail), nil, tag("b", trail)}
			},
			want: []string{"a>", "b>", "h", "<b", "<a"},
		},
		{
			name: "empty chain is the handler",
			mws:  func(*[]string) []Middleware { return nil },
			want: []string{"h"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trail []string
			h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				trail = append(trail, "h")
				w.WriteHeader(http.StatusAccepted)
			})

			rec := httptest.NewRecorder()
			Chain(tt.mws(&trail)...)(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusAccepted, rec.Code)
			assert.Equal(t, tt.want, trail)
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusTooManyRequests, `slow "down"`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"slow \"down\""}`, rec.Body.String())
}
