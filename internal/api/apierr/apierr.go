package apierr

import (
	"errors"
	"net/http"
	"strings"

	"roulette_lab/internal/logger/sl"
	"roulette_lab/internal/service"
	"roulette_lab/pkg/resp"

	"go.uber.org/zap"
)

// Status переводит ошибку сервиса в HTTP-код
func Status(err error) int {
	switch {
	case errors.Is(err, service.ErrTableNotFound), errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidVariant),
		errors.Is(err, service.ErrInvalidChip),
		errors.Is(err, service.ErrInvalidSession):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Write логирует ошибку и пишет ответ. Текст внутренних ошибок наружу не отдается
func Write(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
		resp.WriteError(w, r, status, "internal error")
		return
	}

	log.Info("request rejected", sl.Err(err), zap.Int("status", status))
	resp.WriteError(w, r, status, publicMessage(err))
}

func publicMessage(err error) string {
	for _, target := range []error{
		service.ErrTableNotFound,
		service.ErrSessionNotFound,
		service.ErrInvalidVariant,
		service.ErrInvalidChip,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	// У ErrInvalidSession важна причина, префиксы op отрезаем
	msg := err.Error()
	if i := strings.Index(msg, service.ErrInvalidSession.Error()); i >= 0 {
		return msg[i:]
	}
	return msg
}
