package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/getspace/payment-uz/internal/advisor"
	"github.com/getspace/payment-uz/internal/common"
	"github.com/getspace/payment-uz/internal/money"
	"github.com/getspace/payment-uz/internal/provider"
)

// Handler exposes the HTTP surface of the gateway: checkout generation,
// webhook verification, and the static advisory endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

// NewHandler wires a handler with a fresh validator instance.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, Validate: validator.New()}
}

// Routes mounts all gateway endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/checkout", h.Checkout)
	r.Post("/webhooks/{provider}/verify", h.VerifyWebhook)
	r.Get("/providers/compare", h.CompareProviders)
	r.Get("/providers/status", h.ProviderStatus)
	r.Get("/providers/{provider}/guide", h.IntegrationGuide)
	r.Get("/security/best-practices", h.SecurityBestPractices)
}

type checkoutReq struct {
	Provider    string      `json:"provider" validate:"required"`
	OrderID     string      `json:"orderId" validate:"required"`
	Amount      json.Number `json:"amount" validate:"required"`
	ReturnURL   string      `json:"returnUrl" validate:"omitempty,url"`
	Environment string      `json:"environment" validate:"omitempty,oneof=test production"`
}

// Checkout generates a provider checkout link or payload.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "GATEWAY_NOT_CONFIGURED", "gateway handler unavailable", nil)
		return
	}
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid body", nil)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "validation failed", validationDetails(err))
		return
	}
	id, err := provider.ParseID(req.Provider)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, common.CodeProviderNotSupported, err.Error(), nil)
		return
	}
	env, err := provider.ParseEnvironment(req.Environment)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, err.Error(), nil)
		return
	}
	if req.Environment == "" {
		env = h.Svc.DefaultEnvironment()
	}
	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeInvalidAmount, "amount is not a valid decimal", nil)
		return
	}

	result, err := h.Svc.GenerateCheckout(r.Context(), id, provider.CheckoutRequest{
		OrderID:     strings.TrimSpace(req.OrderID),
		Amount:      amount,
		ReturnURL:   strings.TrimSpace(req.ReturnURL),
		Environment: env,
	})
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

func writeCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, money.ErrInvalidAmount):
		common.JSONError(w, http.StatusBadRequest, common.CodeInvalidAmount, err.Error(), nil)
	case errors.Is(err, provider.ErrEncoding):
		common.JSONError(w, http.StatusBadRequest, common.CodeEncodingError, err.Error(), nil)
	case errors.Is(err, provider.ErrMissingCredentials):
		common.JSONError(w, http.StatusInternalServerError, common.CodeMissingCredentials, err.Error(), nil)
	case errors.Is(err, provider.ErrProviderNotSupported):
		common.JSONError(w, http.StatusNotFound, common.CodeProviderNotSupported, err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout generation failed", nil)
	}
}

// webhookVerifyReq is the union of per-provider proof fields. Numeric Click
// fields are kept as json.Number so the signature base uses the exact wire
// text instead of a reformatted value.
type webhookVerifyReq struct {
	// Payme
	AuthorizationHeader string `json:"authorizationHeader"`

	// Click
	ClickTransID    json.Number `json:"clickTransId"`
	ServiceID       json.Number `json:"serviceId"`
	MerchantTransID string      `json:"merchantTransId"`
	Amount          json.Number `json:"amount"`
	Action          json.Number `json:"action"`
	SignTime        string      `json:"signTime"`

	// Octo
	PaymentUUID string `json:"paymentUuid"`
	Status      string `json:"status"`

	// Signature delivered by the provider (Click sign_string, Octo signature).
	Sign string `json:"sign"`
}

// VerifyWebhook checks an inbound webhook proof for the provider named in the
// URL. Proof failures are not errors: the endpoint answers 200 with
// valid=false so callers can distinguish "your proof is wrong" from "your
// request is wrong".
func (h *Handler) VerifyWebhook(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "GATEWAY_NOT_CONFIGURED", "gateway handler unavailable", nil)
		return
	}
	id, err := provider.ParseID(chi.URLParam(r, "provider"))
	if err != nil {
		common.JSONError(w, http.StatusNotFound, common.CodeProviderNotSupported, err.Error(), nil)
		return
	}
	var req webhookVerifyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeMalformedProof, "invalid body", nil)
		return
	}

	result, err := h.Svc.VerifyWebhook(id, provider.WebhookRequest{
		AuthorizationHeader: req.AuthorizationHeader,
		ClickTransID:        req.ClickTransID.String(),
		ServiceID:           req.ServiceID.String(),
		MerchantTransID:     req.MerchantTransID,
		Amount:              req.Amount.String(),
		Action:              req.Action.String(),
		SignTime:            req.SignTime,
		PaymentUUID:         req.PaymentUUID,
		Status:              req.Status,
		ReceivedProof:       req.Sign,
	})
	if err != nil {
		common.JSONError(w, http.StatusNotFound, common.CodeProviderNotSupported, err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

// CompareProviders returns the static provider comparison table with
// scenario recommendations.
func (h *Handler) CompareProviders(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{
		"providers":           advisor.CompareProviders(),
		"recommendations":     advisor.Recommendations(),
		"integrationPriority": advisor.IntegrationPriority(),
	})
}

// IntegrationGuide returns the step-by-step integration guide for one provider.
func (h *Handler) IntegrationGuide(w http.ResponseWriter, r *http.Request) {
	id, err := provider.ParseID(chi.URLParam(r, "provider"))
	if err != nil {
		common.JSONError(w, http.StatusNotFound, common.CodeProviderNotSupported, err.Error(), nil)
		return
	}
	guide, ok := advisor.IntegrationGuide(id)
	if !ok {
		common.JSONError(w, http.StatusNotFound, common.CodeProviderNotSupported, "no guide for provider", nil)
		return
	}
	common.JSON(w, http.StatusOK, guide)
}

// SecurityBestPractices returns payment-security guidance.
func (h *Handler) SecurityBestPractices(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, advisor.SecurityBestPractices())
}

// ProviderStatus returns the static endpoint directory per provider.
func (h *Handler) ProviderStatus(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"providers": advisor.ProviderStatus()})
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
