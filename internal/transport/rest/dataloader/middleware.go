package dataloader

import "net/http"

// Middleware gives every request its own Loaders so batching and caching
// never cross request boundaries. Requests that already carry loaders keep
// them.
func Middleware(store lastEventStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Value(loadersKey).(*Loaders); ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithLoaders(r.Context(), NewLoaders(store))))
		})
	}
}
