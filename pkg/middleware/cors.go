package middleware

import (
	"net/http"
)

const (
	allowedMethods = "POST, OPTIONS"
	allowedHeaders = "Authorization, Content-Type, X-Client-Info, Apikey, X-Requested-With"
)

// Cors libera qualquer origem em todas as respostas, inclusive de erro.
// Requisições de preflight são respondidas aqui mesmo, sem corpo.
func Cors() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Set("Access-Control-Max-Age", "86400") // Cache do CORS por 24 horas

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
