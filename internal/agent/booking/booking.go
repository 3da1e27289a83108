// Package booking turns collection and service forms into service requests.
package booking

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/stor-a-gentic/server/internal/agent/model"
	errx "github.com/stor-a-gentic/server/internal/core/error"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

// CollectionBooking is the collection form submitted by a visitor.
type CollectionBooking struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Address string `json:"address"`
	Items   string `json:"items"`
}

func (b CollectionBooking) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Name, validation.Required),
		validation.Field(&b.Email, validation.Required, is.EmailFormat),
		validation.Field(&b.Phone, validation.Required),
		validation.Field(&b.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&b.Time, validation.Required),
		validation.Field(&b.Address, validation.Required),
	)
}

type Service struct {
	store model.Inserter
}

func New(store model.Inserter) *Service {
	return &Service{store: store}
}

// BookCollection validates the form and files it as a pending collection
// request. Store failures are reported through the result, not the error.
func (s *Service) BookCollection(ctx context.Context, b CollectionBooking) (model.InsertResult, error) {
	b = b.trimmed()
	if err := b.Validate(); err != nil {
		return model.InsertResult{}, errx.Invalid(err.Error())
	}
	return s.insert(ctx, model.ServiceRequest{
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		ServiceType: model.ServiceCollection,
		Date:        b.Date,
		Time:        b.Time,
		Address:     b.Address,
		Notes:       b.Items,
		Status:      model.StatusPending,
	}), nil
}

// CreateServiceRequest files an arbitrary service request. Status defaults
// to pending.
func (s *Service) CreateServiceRequest(ctx context.Context, req model.ServiceRequest) (model.InsertResult, error) {
	if req.Status == "" {
		req.Status = model.StatusPending
	}
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Phone, validation.Required),
		validation.Field(&req.ServiceType, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Time, validation.Required),
		validation.Field(&req.Status, validation.By(validStatus)),
	)
	if err != nil {
		return model.InsertResult{}, errx.Invalid(err.Error())
	}
	return s.insert(ctx, req), nil
}

func (s *Service) insert(ctx context.Context, req model.ServiceRequest) model.InsertResult {
	res := s.store.Insert(ctx, model.CollectionServiceRequests, req)
	if !res.Success {
		logx.Warn().Str("service_type", req.ServiceType).Msg("service request was not stored")
		return res
	}
	logx.Info().Str("id", res.ID).Str("service_type", req.ServiceType).Msg("service request stored")
	return res
}

func validStatus(v interface{}) error {
	if s, ok := v.(model.RequestStatus); ok && s.Valid() {
		return nil
	}
	return validation.NewError("validation_status_invalid", "must be one of pending, confirmed, completed, cancelled")
}

func (b CollectionBooking) trimmed() CollectionBooking {
	return CollectionBooking{
		Name:    strings.TrimSpace(b.Name),
		Email:   strings.TrimSpace(b.Email),
		Phone:   strings.TrimSpace(b.Phone),
		Date:    strings.TrimSpace(b.Date),
		Time:    strings.TrimSpace(b.Time),
		Address: strings.TrimSpace(b.Address),
		Items:   strings.TrimSpace(b.Items),
	}
}
