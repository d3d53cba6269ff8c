package journal

import (
	"io"
	"net/http"

	"roulette_lab/internal/api/apierr"
	dto "roulette_lab/internal/api/dto/journal"
	"roulette_lab/internal/converter"
	"roulette_lab/internal/logger/sl"
	"roulette_lab/internal/model"
	"roulette_lab/internal/service"
	"roulette_lab/pkg/req"
	"roulette_lab/pkg/resp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxImportSize - предел размера файла импорта
const maxImportSize = 8 << 20

type HandlerDeps struct {
	Serv service.JournalService
	Log  *zap.Logger
}

type Handler struct {
	serv service.JournalService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log}
}

func (h *Handler) reqLog(r *http.Request, op string) *zap.Logger {
	return h.log.With(
		sl.Op(op),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func sessionID(w http.ResponseWriter, r *http.Request, log *zap.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Info("invalid session id", sl.Err(err))
		resp.WriteError(w, r, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

func filterFrom(r *http.Request) model.JournalFilter {
	return model.JournalFilter{Game: model.Game(r.URL.Query().Get("game"))}
}

func (h *Handler) decodeSession(w http.ResponseWriter, r *http.Request) (model.JournalSession, bool) {
	payload, err := req.Decode[dto.SessionRequest](r.Body)
	if err != nil {
		resp.WriteError(w, r, http.StatusBadRequest, err.Error())
		return model.JournalSession{}, false
	}
	s, err := converter.ToJournalSession(payload)
	if err != nil {
		resp.WriteError(w, r, http.StatusBadRequest, err.Error())
		return model.JournalSession{}, false
	}
	return s, true
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.journal.List")

	list, err := h.serv.List(r.Context(), filterFrom(r))
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToSessionResponses(list))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.journal.Create")

	in, ok := h.decodeSession(w, r)
	if !ok {
		return
	}

	result, err := h.serv.Create(r.Context(), in)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusCreated, converter.ToSessionResponse(*result))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.journal.Get")
	id, ok := sessionID(w, r, log)
	if !ok {
		return
	}

	result, err := h.serv.Get(r.Context(), id)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToSessionResponse(*result))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.journal.Update")
	id, ok := sessionID(w, r, log)
	if !ok {
		return
	}

	in, ok := h.decodeSession(w, r)
	if !ok {
		return
	}
	in.ID = id

	result, err := h.serv.Update(r.Context(), in)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToSessionResponse(*result))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.journal.Delete")
	id, ok := sessionID(w, r, log)
	if !ok {
		return
	}

	if err := h.serv.Delete(r.Context(), id); err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.journal.Summary")

	result, err := h.serv.Summary(r.Context(), filterFrom(r))
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToSummaryResponse(*result))
}

// Export Отдает журнал файлом
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.journal.Export")

	data, err := h.serv.Export(r.Context())
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="journal.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error("failed to write export", sl.Err(err))
	}
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.journal.Import")

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		log.Error("failed to read import body", sl.Err(err))
		resp.WriteError(w, r, http.StatusBadRequest, "failed to read request body")
		return
	}

	n, err := h.serv.Import(r.Context(), data)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, dto.ImportResponse{Imported: n})
}
