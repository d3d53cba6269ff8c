package table

import (
	"net/http"

	"roulette_lab/internal/api/apierr"
	dto "roulette_lab/internal/api/dto/table"
	"roulette_lab/internal/converter"
	"roulette_lab/internal/logger/sl"
	"roulette_lab/internal/roulette"
	"roulette_lab/internal/service"
	"roulette_lab/pkg/req"
	"roulette_lab/pkg/resp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.TableService
	Log  *zap.Logger
}

type Handler struct {
	serv service.TableService
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

// tableID достает {id} из пути, при ошибке сам пишет 400
func tableID(w http.ResponseWriter, r *http.Request, log *zap.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Info("invalid table id", sl.Err(err))
		resp.WriteError(w, r, http.StatusBadRequest, "invalid table id")
		return uuid.Nil, false
	}
	return id, true
}

// parseVariant - пустая строка означает вариант по умолчанию
func parseVariant(s string) (roulette.Variant, error) {
	if s == "" {
		return "", nil
	}
	v, err := roulette.ParseVariant(s)
	if err != nil {
		return "", service.ErrInvalidVariant
	}
	return v, nil
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.table.Catalog")

	v, err := parseVariant(r.URL.Query().Get("variant"))
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	variant, spots, err := h.serv.Catalog(v)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToCatalogResponse(variant, h.serv.Chips(), spots))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.table.Create")

	var payload dto.CreateTableRequest
	if r.ContentLength != 0 {
		var err error
		payload, err = req.Decode[dto.CreateTableRequest](r.Body)
		if err != nil {
			resp.WriteError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	v, err := parseVariant(payload.Variant)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	result, err := h.serv.Create(r.Context(), v)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusCreated, converter.ToTableResponse(*result))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.table.Get")
	id, ok := tableID(w, r, log)
	if !ok {
		return
	}

	result, err := h.serv.Get(r.Context(), id)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToTableResponse(*result))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.table.Delete")
	id, ok := tableID(w, r, log)
	if !ok {
		return
	}

	if err := h.serv.Delete(r.Context(), id); err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.table.PlaceBet")
	id, ok := tableID(w, r, log)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.BetRequest](r.Body)
	if err != nil {
		resp.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Place(r.Context(), id, payload.SpotID, payload.Amount)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToTableResponse(*result))
}

func (h *Handler) RemoveBet(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.table.RemoveBet")
	id, ok := tableID(w, r, log)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.BetRequest](r.Body)
	if err != nil {
		resp.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Remove(r.Context(), id, payload.SpotID, payload.Amount)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToTableResponse(*result))
}

func (h *Handler) ClearBets(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.table.ClearBets")
	id, ok := tableID(w, r, log)
	if !ok {
		return
	}

	result, err := h.serv.Clear(r.Context(), id)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToTableResponse(*result))
}

func (h *Handler) SetVariant(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.table.SetVariant")
	id, ok := tableID(w, r, log)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.SetVariantRequest](r.Body)
	if err != nil {
		resp.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	v, err := parseVariant(payload.Variant)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	result, err := h.serv.SetVariant(r.Context(), id, v)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToVariantResponse(*result))
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.table.Spin")
	id, ok := tableID(w, r, log)
	if !ok {
		return
	}

	result, err := h.serv.Spin(r.Context(), id)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToSpinResponse(*result))
}

func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.table.Simulate")
	id, ok := tableID(w, r, log)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.SimulateRequest](r.Body)
	if err != nil {
		resp.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Simulate(r.Context(), id, payload.Spins)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToSimulateResponse(*result))
}

func (h *Handler) ResetHistory(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.table.ResetHistory")
	id, ok := tableID(w, r, log)
	if !ok {
		return
	}

	result, err := h.serv.Reset(r.Context(), id)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToTableResponse(*result))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := h.reqLog(r, "api.table.Stats")
	id, ok := tableID(w, r, log)
	if !ok {
		return
	}

	result, err := h.serv.Stats(r.Context(), id)
	if err != nil {
		apierr.Write(w, r, log, err)
		return
	}

	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToStatsResponse(*result))
}

func (h *Handler) HouseStats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, r, http.StatusOK, converter.ToHouseStatsResponse(h.serv.HouseStats()))
}
