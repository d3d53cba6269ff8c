package resp

import (
	"net/http"

	"github.com/go-chi/render"
)

type ErrorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	WriteJSONResponse(w, r, status, ErrorResponse{Status: status, Error: msg})
}
