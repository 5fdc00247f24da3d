package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// problem is the body of every 4xx/5xx JSON response.
type problem struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// handleAge computes the breakdown for ?birthdate= against ?on= or today.
func (s *Server) handleAge(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ref := engine.Today(s.clock)

	birth, err := engine.ParseDate(q.Get(config.QueryBirthdate), ref.Location())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, problem{
			Error:   config.HTTPCodeBadRequest,
			Message: fmt.Sprintf("%s: %q", config.ErrDateParse, q.Get(config.QueryBirthdate)),
		})
		return
	}
	if on := q.Get(config.QueryOn); on != "" {
		if ref, err = engine.ParseDate(on, ref.Location()); err != nil {
			writeJSON(w, http.StatusBadRequest, problem{
				Error:   config.HTTPCodeBadRequest,
				Message: fmt.Sprintf("%s: %q", config.ErrRefParse, on),
			})
			return
		}
	}

	res, err := engine.Calculate(birth, ref)
	if err != nil {
		kind, ok := engine.KindOf(err)
		if !ok {
			slog.Error(config.HTTPMsgInternalErr, config.LogKeyComponent, config.CompServer, config.LogKeyError, err)
			writeJSON(w, http.StatusInternalServerError, problem{Error: config.HTTPCodeInternal, Message: config.HTTPMsgInternalErr})
			return
		}
		s.metrics.IncrementRejections(string(kind))
		slog.Debug(config.MsgRejected,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyKind, kind,
			config.LogKeyRef, ref.Format(config.DateFormatFullDash),
		)
		writeJSON(w, http.StatusBadRequest, problem{Error: string(kind), Message: s.catalog.ErrorMessage(err)})
		return
	}

	res.Facts = s.catalog.WithText(res.Facts)
	s.metrics.IncrementCalculations()
	slog.Debug(config.MsgCalculated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyYears, res.Breakdown.Years,
		config.LogKeyTotalDays, res.Breakdown.TotalDays,
	)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	_, _ = io.WriteString(w, config.HTTPMsgOK)
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
func (s *Server) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if notModifiedSince(r.Header.Get(config.HeaderIfModifiedSince), item.lastModified) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// notModifiedSince reports whether the cached copy is not newer than the client's.
func notModifiedSince(since, lastModified string) bool {
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}

// observe records the request duration under the matched route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := config.RouteUnmatched
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.ObserveRequest(route, start)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
