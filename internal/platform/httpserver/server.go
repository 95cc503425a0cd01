package httpserver

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	faucetservice "rgbfaucet/contexts/asset-distribution/faucet-service"
	faucetdomainerrors "rgbfaucet/contexts/asset-distribution/faucet-service/domain/errors"
	faucethttp "rgbfaucet/contexts/asset-distribution/faucet-service/transport/http"
	"rgbfaucet/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "rgbfaucet/internal/platform/httpserver/docs"
)

const apiKeyHeader = "X-Api-Key"

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	faucet      faucetservice.Module
	userKey     string
	operatorKey string
}

func New(
	faucet faucetservice.Module,
	userKey string,
	operatorKey string,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		faucet:      faucet,
		userKey:     userKey,
		operatorKey: operatorKey,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux, primarily for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("/metrics", promhttp.Handler())

	s.mux.HandleFunc("GET /receive/asset/{wallet_id}/{recipient_id}",
		s.authorized(s.userKey, "/receive/asset", s.handleReceiveAsset))
	s.mux.HandleFunc("GET /receive/config/{wallet_id}",
		s.authorized(s.userKey, "/receive/config", s.handleReceiveConfig))

	s.mux.HandleFunc("GET /control/requests",
		s.authorized(s.operatorKey, "/control/requests", s.handleListRequests))
	s.mux.HandleFunc("GET /control/transfers",
		s.authorized(s.operatorKey, "/control/transfers", s.handleListTransfers))
	s.mux.HandleFunc("GET /control/assets",
		s.authorized(s.operatorKey, "/control/assets", s.handleListAssets))
	s.mux.HandleFunc("GET /control/unspents",
		s.authorized(s.operatorKey, "/control/unspents", s.handleListUnspents))
	s.mux.HandleFunc("GET /control/refresh/{asset_id}",
		s.authorized(s.operatorKey, "/control/refresh", s.handleRefresh))
	s.mux.HandleFunc("GET /control/fail",
		s.authorized(s.operatorKey, "/control/fail", s.handleFail))
	s.mux.HandleFunc("GET /control/delete",
		s.authorized(s.operatorKey, "/control/delete", s.handleDelete))

	s.mux.HandleFunc("GET /reserve/top_up_btc",
		s.authorized(s.operatorKey, "/reserve/top_up_btc", s.handleReserveAddress))
	s.mux.HandleFunc("GET /reserve/top_up_rgb",
		s.authorized(s.operatorKey, "/reserve/top_up_rgb", s.handleReserveSlot))
}

// authorized wraps a handler with static API key authentication and request
// duration metrics. Key comparison is constant time.
func (s *Server) authorized(key string, route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presented := r.Header.Get(apiKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
			metrics.HTTPRequestDuration.WithLabelValues(route, strconv.Itoa(http.StatusUnauthorized)).Observe(0)
			writeError(w, http.StatusUnauthorized, "unauthorized", "valid API key required")
			return
		}

		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)
		metrics.HTTPRequestDuration.
			WithLabelValues(route, strconv.Itoa(recorder.status)).
			Observe(time.Since(started).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleReceiveAsset(w http.ResponseWriter, r *http.Request) {
	walletID := r.PathValue("wallet_id")
	recipientID := r.PathValue("recipient_id")
	assetGroup := r.URL.Query().Get("asset_group")

	resp, err := s.faucet.Handler.ReceiveAssetHandler(r.Context(), walletID, assetGroup, recipientID)
	if err != nil {
		metrics.RequestsRejected.WithLabelValues(rejectionReason(err)).Inc()
		writeDomainError(w, err)
		return
	}
	metrics.RequestsAdmitted.WithLabelValues(resp.Request.AssetGroup).Inc()
	writeJSON(w, http.StatusOK, resp)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, faucetdomainerrors.ErrInvalidWalletID):
		return "invalid_wallet_id"
	case errors.Is(err, faucetdomainerrors.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, faucetdomainerrors.ErrDuplicateRecipient):
		return "duplicate_recipient"
	case errors.Is(err, faucetdomainerrors.ErrInvalidRecipientID):
		return "invalid_recipient_id"
	case errors.Is(err, faucetdomainerrors.ErrUnknownAssetGroup):
		return "unknown_asset_group"
	default:
		return "other"
	}
}

func (s *Server) handleReceiveConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := s.faucet.Handler.ReceiveConfigHandler(r.Context(), r.PathValue("wallet_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.faucet.Handler.ListRequestsHandler(
		r.Context(),
		query.Get("status"),
		query.Get("asset_group"),
		query.Get("asset_id"),
		query.Get("recipient_id"),
		query.Get("wallet_id"),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.faucet.Handler.ListTransfersHandler(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	resp, err := s.faucet.Handler.ListAssetsHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUnspents(w http.ResponseWriter, r *http.Request) {
	resp, err := s.faucet.Handler.ListUnspentsHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	resp, err := s.faucet.Handler.RefreshHandler(r.Context(), r.PathValue("asset_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFail(w http.ResponseWriter, r *http.Request) {
	resp, err := s.faucet.Handler.FailHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	resp, err := s.faucet.Handler.DeleteHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReserveAddress(w http.ResponseWriter, r *http.Request) {
	resp, err := s.faucet.Handler.ReserveAddressHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReserveSlot(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	assetID := query.Get("asset_id")

	var amount uint64
	if raw := query.Get("amount"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_amount", "amount must be a non-negative integer")
			return
		}
		amount = parsed
	}

	resp, err := s.faucet.Handler.ReserveSlotHandler(r.Context(), assetID, amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, faucetdomainerrors.ErrInvalidWalletID):
		writeError(w, http.StatusForbidden, "invalid_wallet_id", err.Error())
	case errors.Is(err, faucetdomainerrors.ErrQuotaExceeded):
		writeError(w, http.StatusForbidden, "quota_exceeded", err.Error())
	case errors.Is(err, faucetdomainerrors.ErrDuplicateRecipient):
		writeError(w, http.StatusForbidden, "recipient_already_used", err.Error())
	case errors.Is(err, faucetdomainerrors.ErrInvalidRecipientID):
		writeError(w, http.StatusBadRequest, "invalid_recipient_id", err.Error())
	case errors.Is(err, faucetdomainerrors.ErrUnknownAssetGroup):
		writeError(w, http.StatusNotFound, "unknown_asset_group", err.Error())
	case errors.Is(err, faucetdomainerrors.ErrUnknownAsset):
		writeError(w, http.StatusNotFound, "unknown_asset", err.Error())
	case errors.Is(err, faucetdomainerrors.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, "request_not_found", err.Error())
	case errors.Is(err, faucetdomainerrors.ErrInvalidStatusTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, faucetdomainerrors.ErrCollaboratorUnavailable):
		writeError(w, http.StatusServiceUnavailable, "wallet_unavailable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, faucethttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
