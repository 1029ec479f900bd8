package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/application"
	"github.com/DanielPopoola/broker-gateway/internal/broker"
	"github.com/DanielPopoola/broker-gateway/internal/domain"
)

type LookupService struct {
	broker   application.BrokerClient
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewLookupService(brokerClient application.BrokerClient, cacheTTL time.Duration, logger *slog.Logger) *LookupService {
	return &LookupService{
		broker:   brokerClient,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// LookupPerson validates the CPR and resolves it through the Broker. fresh
// skips the response cache.
func (s *LookupService) LookupPerson(ctx context.Context, cpr string, fresh bool) (*broker.PersonResult, error) {
	if err := domain.CPR(cpr).Validate(); err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	person, err := s.broker.LookupPerson(ctx, cpr, s.options(fresh))
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, application.NewNotFoundError("person")
	}
	return person, nil
}

func (s *LookupService) LookupCompany(ctx context.Context, cvr string, fresh bool) (*broker.CompanyResult, error) {
	if err := domain.CVR(cvr).Validate(); err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	company, err := s.broker.LookupCompany(ctx, cvr, s.options(fresh))
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, application.NewNotFoundError("company")
	}
	return company, nil
}

func (s *LookupService) options(fresh bool) broker.RequestOptions {
	return broker.RequestOptions{
		BypassCache: fresh,
		CacheTTL:    s.cacheTTL,
	}
}
