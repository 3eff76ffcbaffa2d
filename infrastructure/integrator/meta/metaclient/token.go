package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// CheckTokenValidity verifica se o token é válido fazendo uma consulta simples à API.
// O token vai no header Authorization para não aparecer em URLs de log de erro.
func (c *MetaClient) CheckTokenValidity(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, fmt.Errorf("token não pode ser vazio")
	}

	requestURL := fmt.Sprintf("%s/me?fields=id,name", c.cfg.Meta.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return false, fmt.Errorf("erro ao criar requisição: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	// Se o status for diferente de 200, o token pode ter expirado ou ser inválido
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		if errorResp, parseErr := ParseErrorResponse(body); parseErr == nil && errorResp.IsTokenExpired() {
			logrus.Warnf("Token expirado detectado pela API Meta. Código: %d, Subcódigo: %d",
				errorResp.Error.Code, errorResp.Error.ErrorSubcode)
			return false, nil
		}

		logrus.Warnf("Token inválido ou expirado. Status: %d, Corpo: %s", resp.StatusCode, string(body))
		return false, nil
	}

	return true, nil
}
