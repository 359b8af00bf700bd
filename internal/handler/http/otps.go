package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/nearmate-api/internal/app"
	"github.com/MKhiriev/nearmate-api/internal/service"
	"github.com/MKhiriev/nearmate-api/internal/utils"
	"github.com/MKhiriev/nearmate-api/models"
)

// listOTPs serves the administrative code listing: newest first, a single
// page whose size is the limit query parameter.
func (h *Handler) listOTPs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, service.ErrInvalidDataProvided)
			return
		}
		limit = parsed
	}

	list, err := h.services.OTPService.ListOTPs(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newOTPListResponse(list, time.Now()), http.StatusOK)
}

func (h *Handler) clearExpiredOTPs(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.services.OTPService.ClearExpired(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ClearExpiredResponse{Message: app.MsgExpiredOTPsCleared, DeletedCount: deleted}, http.StatusOK)
}

// newOTPListResponse derives each code's status at now and the page count
// ceil(total/limit).
func newOTPListResponse(list models.OTPList, now time.Time) models.OTPListResponse {
	views := make([]models.OTPView, 0, len(list.Codes))
	for _, code := range list.Codes {
		views = append(views, models.OTPView{OTPCode: code, Status: code.Status(now)})
	}

	var pages int64
	if list.Limit > 0 {
		pages = (list.Total + int64(list.Limit) - 1) / int64(list.Limit)
	}

	return models.OTPListResponse{
		OTPs: views,
		Pagination: models.Pagination{
			Page:  1,
			Limit: list.Limit,
			Total: list.Total,
			Pages: pages,
		},
	}
}
