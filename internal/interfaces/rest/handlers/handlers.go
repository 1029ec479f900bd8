// Package handlers serves the lookup and digital-mail HTTP API.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/broker-gateway/internal/application/services"
	"github.com/DanielPopoola/broker-gateway/internal/broker"
	"github.com/DanielPopoola/broker-gateway/internal/domain"
	"github.com/go-playground/validator"
)

type LookupService interface {
	LookupPerson(ctx context.Context, cpr string, fresh bool) (*broker.PersonResult, error)
	LookupCompany(ctx context.Context, cvr string, fresh bool) (*broker.CompanyResult, error)
}

type MailService interface {
	Enqueue(ctx context.Context, cmd services.SendMailCommand) (*domain.MailJob, error)
	GetJob(ctx context.Context, id string) (*domain.MailJob, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	lookups  LookupService
	mail     MailService
	health   HealthChecker
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandlers(lookups LookupService, mail MailService, health HealthChecker, logger *slog.Logger) *Handlers {
	return &Handlers{
		lookups:  lookups,
		mail:     mail,
		health:   health,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/persons/{cpr}", h.HandleGetPerson)
	mux.HandleFunc("GET /v1/companies/{cvr}", h.HandleGetCompany)
	mux.HandleFunc("POST /v1/digital-mail", h.HandleSendMail)
	mux.HandleFunc("GET /v1/digital-mail/{id}", h.HandleGetMailJob)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
}
