package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/ambitious-journal-backend/auth"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type sessionHandler struct {
	responder     Responder
	logger        zerolog.Logger
	authenticator auth.Authenticator
}

func newSessionHandler(authenticator auth.Authenticator) sessionHandler {
	logger := log.With().Str("handlerName", "sessionHandler").Logger()

	return sessionHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		authenticator: authenticator,
	}
}

func (h sessionHandler) getSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := ctxGetSession(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		h.responder.WriteJSON(w, session)
	}
}

func (h sessionHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.authenticator.Logout(w, r); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("userID", ctxGetUserID(r.Context())).Msg("Admin logged out")
		h.responder.WriteJSON(w, successResponse{Success: true})
	}
}

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	database    Pinger
	startupTime time.Time
}

func newHealthHandler(database Pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		database:    database,
		startupTime: startupTime,
	}
}

type healthResponse struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	StartupTime time.Time `json:"startup_time"`
	Uptime      string    `json:"uptime"`
}

func (h healthHandler) check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := healthResponse{
			Status:      "ok",
			Database:    "ok",
			StartupTime: h.startupTime,
			Uptime:      time.Since(h.startupTime).Round(time.Second).String(),
		}
		status := http.StatusOK
		if h.database != nil {
			if err := h.database.Ping(r.Context()); err != nil {
				h.logger.Error().Err(err).Msg("Database ping failed")
				response.Status = "degraded"
				response.Database = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}
		h.responder.WriteJSONStatus(w, status, response)
	}
}
