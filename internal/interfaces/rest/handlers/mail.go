package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DanielPopoola/broker-gateway/internal/application"
	"github.com/DanielPopoola/broker-gateway/internal/application/services"
	"github.com/DanielPopoola/broker-gateway/internal/interfaces/rest"
)

const maxMailBodyBytes = 1 << 20

type SendMailRequest struct {
	RecipientCPR string `json:"recipient_cpr" validate:"required,numeric,len=10"`
	SenderID     string `json:"sender_id" validate:"omitempty,max=64"`
	Subject      string `json:"subject" validate:"required,max=255"`
	Body         string `json:"body" validate:"required"`
}

func (h *Handlers) HandleSendMail(w http.ResponseWriter, r *http.Request) {
	var req SendMailRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMailBodyBytes))
	if err := dec.Decode(&req); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(errors.New("request body must be a JSON object")), h.logger)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return
	}

	job, err := h.mail.Enqueue(r.Context(), services.SendMailCommand{
		RecipientCPR: req.RecipientCPR,
		SenderID:     req.SenderID,
		Subject:      req.Subject,
		Body:         req.Body,
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	w.Header().Set("Location", "/v1/digital-mail/"+job.ID)
	rest.WriteJSON(w, http.StatusAccepted, rest.ToMailJob(job))
}

func (h *Handlers) HandleGetMailJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.mail.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToMailJob(job))
}
