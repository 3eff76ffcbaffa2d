package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/meta-capi-gateway/internal/api/handler/router"
	"github.com/vfg2006/meta-capi-gateway/internal/usecases/forwarding"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

// Events expõe a ingestão de eventos; o preflight é respondido pelo middleware de CORS
func Events(forwarder forwarding.Forwarder) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/events",
			Method:  http.MethodPost,
			Handler: PostEvents(forwarder),
		},
	}
}
