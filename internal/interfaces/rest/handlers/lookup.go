package handlers

import (
	"net/http"
	"strconv"

	"github.com/DanielPopoola/broker-gateway/internal/interfaces/rest"
)

func (h *Handlers) HandleGetPerson(w http.ResponseWriter, r *http.Request) {
	person, err := h.lookups.LookupPerson(r.Context(), r.PathValue("cpr"), fresh(r))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, person)
}

func (h *Handlers) HandleGetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.lookups.LookupCompany(r.Context(), r.PathValue("cvr"), fresh(r))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, company)
}

// fresh reports whether the caller asked to skip the response cache.
func fresh(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("fresh"))
	return err == nil && v
}
