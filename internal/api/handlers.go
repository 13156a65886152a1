// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/mo"

	"github.com/ManuGH/playcore/internal/tracks"
)

const maxBodyBytes = 64 << 10

// decodeBody decodes an optional JSON body. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, CodeInvalidInput, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.cfg.Version})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.player.Status()
	if err != nil {
		writePlayerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(st, s.player.Projections()))
}

func (s *Server) handleTracks(w http.ResponseWriter, r *http.Request) {
	st, err := s.player.Status()
	if err != nil {
		writePlayerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTracksResponse(st))
}

func (s *Server) handleNextAction(w http.ResponseWriter, _ *http.Request) {
	a, ok := s.player.Actions().Take()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, newActionView(a))
}

func (s *Server) handleNextMessage(w http.ResponseWriter, _ *http.Request) {
	m, ok := s.player.Messages().Take()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, MessageView{
		Text:       m.Text,
		ErrorKind:  m.ErrorKind.String(),
		RetryLabel: m.RetryLabel,
	})
}

func (s *Server) handlePrepare(w http.ResponseWriter, r *http.Request) {
	var req PrepareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ResumeMS != nil && !positionInRange(*req.ResumeMS) {
		writeError(w, r, http.StatusBadRequest, CodeInvalidInput, "resume_ms out of range")
		return
	}
	s.respond(w, r, s.player.Prepare(req.toRequest()))
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.player.Fetch())
}

func (s *Server) handleComingSoon(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.respond(w, r, s.player.ComingSoon(req.Message))
}

func (s *Server) handleFetchFailed(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.respond(w, r, s.player.FetchFailed(req.Message))
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	var req StopRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pos := mo.None[time.Duration]()
	if req.PositionMS != nil {
		if !positionInRange(*req.PositionMS) {
			writeError(w, r, http.StatusBadRequest, CodeInvalidInput, "position_ms out of range")
			return
		}
		pos = mo.Some(msToDuration(*req.PositionMS))
	}
	s.respond(w, r, s.player.Stop(pos))
}

func (s *Server) handleController(w http.ResponseWriter, r *http.Request) {
	var req ControllerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.respond(w, r, s.player.SetControllerVisible(req.Visible))
}

func (s *Server) handleSimple(call func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, call())
	}
}

func (s *Server) handleSelectSpeed(w http.ResponseWriter, r *http.Request) {
	var req SpeedRequest
	if !decodeBody(w, r, &req) {
		return
	}
	changed, err := s.player.SelectSpeed(req.Rate)
	if err != nil {
		writePlayerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SelectResponse{Changed: changed})
}

func (s *Server) handleSelectTrack(w http.ResponseWriter, r *http.Request) {
	var (
		kind   tracks.DescriptorKind
		choose func(tracks.Descriptor) (bool, error)
	)
	switch chi.URLParam(r, "kind") {
	case "quality":
		kind, choose = tracks.Quality, s.player.SelectQuality
	case "audio":
		kind, choose = tracks.Audio, s.player.SelectAudio
	case "subtitle":
		kind, choose = tracks.Subtitle, s.player.SelectSubtitle
	default:
		writeError(w, r, http.StatusNotFound, CodeNotFound, "unknown selection kind")
		return
	}

	var req TrackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	changed, err := choose(req.descriptor(kind))
	if err != nil {
		writePlayerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SelectResponse{Changed: changed})
}

// respond writes the current state after a successful command.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		writePlayerError(w, r, err)
		return
	}
	s.handleState(w, r)
}
