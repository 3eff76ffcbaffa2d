package utils

import (
	"net/http"
	"strings"
)

// DefaultClientIP é usado quando nenhum header de proxy informa o IP
const DefaultClientIP = "127.0.0.1"

// Headers consultados em ordem de prioridade
var clientIPHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// ClientIP obtém o IP do cliente a partir dos headers do proxy.
// Em X-Forwarded-For vale o primeiro endereço da lista.
func ClientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}

		first, _, _ := strings.Cut(value, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	return DefaultClientIP
}
