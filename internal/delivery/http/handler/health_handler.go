package handler

import (
	"net/http"

	"doctor-admin-dashboard/pkg/response"
)

func Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "OK", nil)
}
