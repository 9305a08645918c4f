package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the sandbox endpoints onto a chi router.
func NewRouter(h *Handlers, metricsEnabled bool) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// User provisioning (subscription key only, no bearer token).
	r.Post("/v1_0/apiuser", h.CreateAPIUser)
	r.Get("/v1_0/apiuser/{userId}", h.GetAPIUser)
	r.Post("/v1_0/apiuser/{userId}/apikey", h.CreateAPIKey)

	for _, p := range []struct {
		product  string
		initiate string
	}{
		{product: "collection", initiate: "requesttopay"},
		{product: "disbursement", initiate: "transfer"},
	} {
		base := "/" + p.product
		r.Post(base+"/token/", h.Token)
		r.Post(base+"/v1_0/"+p.initiate, h.Initiate(p.product))
		r.Get(base+"/v1_0/"+p.initiate+"/{referenceId}", h.GetTransaction(p.product))
		r.Get(base+"/v1_0/account/balance", h.Balance)
		r.Get(base+"/v1_0/accountholder/{idType}/{id}/active", h.AccountHolderActive)
	}

	return r
}
