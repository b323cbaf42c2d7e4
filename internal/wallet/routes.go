// Package wallet is the mount point for the wallet business API. The
// bootstrap only wires the collaborator boundary; account, transaction,
// and provider endpoints register on the router returned by Routes.
package wallet

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/finbase/wallet-service/internal/boot"
	"github.com/finbase/wallet-service/internal/config"
	"github.com/finbase/wallet-service/internal/respond"
)

type Handler struct {
	log  *zap.Logger
	cfg  config.Config
	deps *boot.Deps
}

func NewHandler(log *zap.Logger, cfg config.Config, deps *boot.Deps) *Handler {
	return &Handler{log: log, cfg: cfg, deps: deps}
}

// Routes returns the /api/v1 router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/providers/default", h.handleDefaultProvider)

	r.NotFound(respond.NotFound)
	r.MethodNotAllowed(respond.MethodNotAllowed)

	return r
}

func (h *Handler) handleDefaultProvider(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"provider": h.cfg.DefaultWalletProvider,
	})
}
