package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/useprospera/prospera_backend/internal/core/domain"
	"github.com/useprospera/prospera_backend/internal/utils/pricing"
)

// LineItemRequest is one billable entry as submitted by the editor. Range
// checks on the amount happen in the service layer before any pricing math.
type LineItemRequest struct {
	ID          string          `json:"id"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"type" binding:"required,oneof=ONE_TIME RECURRING"`
}

// PaymentOptionRequest is one payment option as submitted by the editor.
type PaymentOptionRequest struct {
	ID              string          `json:"id"`
	PaymentMethodID string          `json:"paymentMethodId" binding:"required"`
	Installments    int             `json:"installments" binding:"required,min=1"`
	HasDownPayment  bool            `json:"hasDownPayment"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	PaymentTerms    string          `json:"paymentTerms"`
}

// SaveQuoteRequest carries the full editor form. AsDraft selects whether the
// save keeps the quote in DRAFT or moves it to SENT.
type SaveQuoteRequest struct {
	ClientName         string                 `json:"clientName" binding:"required"`
	ClientEmail        string                 `json:"clientEmail" binding:"omitempty,email"`
	ServiceDescription string                 `json:"serviceDescription"`
	ValidUntil         time.Time              `json:"validUntil" binding:"required"`
	ProductionDays     int                    `json:"productionDays" binding:"min=0"`
	Items              []LineItemRequest      `json:"items"`
	PaymentOptions     []PaymentOptionRequest `json:"paymentOptions"`
	LayoutType         string                 `json:"layoutType" binding:"omitempty,oneof=SIMPLE PREMIUM"`
	Content            *domain.QuoteContent   `json:"content"`
	AsDraft            bool                   `json:"asDraft"`
}

// UpdateQuoteStatusRequest is the operator-facing status update (including the
// manual EXPIRED marking).
type UpdateQuoteStatusRequest struct {
	Status                  string  `json:"status" binding:"required,oneof=DRAFT SENT APPROVED EXPIRED"`
	SelectedPaymentOptionID *string `json:"selectedPaymentOptionId"`
}

// ApproveQuoteRequest is the client-facing approval: the shared gate password
// plus the chosen option (absent for legacy single-method quotes).
type ApproveQuoteRequest struct {
	Password                string  `json:"password" binding:"required"`
	SelectedPaymentOptionID *string `json:"selectedPaymentOptionId"`
}

// ViewQuoteRequest gates the public read path.
type ViewQuoteRequest struct {
	Password string `form:"password" binding:"required"`
}

// OptionBreakdownResponse is the computed pricing for one payment option.
type OptionBreakdownResponse struct {
	OptionID          string            `json:"optionId"`
	Label             string            `json:"label"`
	PaymentMethodID   string            `json:"paymentMethodId"`
	Installments      int               `json:"installments"`
	HasDownPayment    bool              `json:"hasDownPayment"`
	DiscountPercent   decimal.Decimal   `json:"discountPercent"`
	PaymentTerms      string            `json:"paymentTerms,omitempty"`
	SubtotalOneTime   decimal.Decimal   `json:"subtotalOneTime"`
	SubtotalRecurring decimal.Decimal   `json:"subtotalRecurring"`
	DiscountAmount    decimal.Decimal   `json:"discountAmount"`
	TotalOneTime      decimal.Decimal   `json:"totalOneTime"`
	GrandTotal        decimal.Decimal   `json:"grandTotal"`
	InstallmentAmount decimal.Decimal   `json:"installmentAmount"`
	InstallmentPlan   []decimal.Decimal `json:"installmentSchedule"`
	Selected          bool              `json:"selected"`

	// Localized renderings, populated only on the client-facing viewer path.
	GrandTotalDisplay        string `json:"grandTotalDisplay,omitempty"`
	InstallmentAmountDisplay string `json:"installmentAmountDisplay,omitempty"`
}

// QuoteResponse is the full quote with computed pricing for every option.
type QuoteResponse struct {
	ID                      string                    `json:"id"`
	ClientName              string                    `json:"clientName"`
	ClientEmail             string                    `json:"clientEmail,omitempty"`
	ServiceDescription      string                    `json:"serviceDescription,omitempty"`
	CreatedAt               time.Time                 `json:"createdAt"`
	UpdatedAt               time.Time                 `json:"updatedAt"`
	ValidUntil              time.Time                 `json:"validUntil"`
	ProductionDays          int                       `json:"productionDays"`
	Items                   []domain.LineItem         `json:"items"`
	PaymentOptions          []domain.PaymentOption    `json:"paymentOptions"`
	SelectedPaymentOptionID *string                   `json:"selectedPaymentOptionId,omitempty"`
	Status                  domain.QuoteStatus        `json:"status"`
	UserEmail               string                    `json:"userEmail,omitempty"`
	LayoutType              domain.LayoutType         `json:"layoutType,omitempty"`
	Content                 *domain.QuoteContent      `json:"content,omitempty"`
	Pricing                 []OptionBreakdownResponse `json:"pricing"`
}

// QuoteSummaryResponse is the dashboard listing row.
type QuoteSummaryResponse struct {
	ID         string             `json:"id"`
	ClientName string             `json:"clientName"`
	Status     domain.QuoteStatus `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	ValidUntil time.Time          `json:"validUntil"`
	UserEmail  string             `json:"userEmail,omitempty"`
}

// ShareMessageResponse is the copyable share artifact: deep link plus the
// static shared password, composed into one message.
type ShareMessageResponse struct {
	URL      string `json:"url"`
	Password string `json:"password"`
	Message  string `json:"message"`
}

// ToOptionBreakdownResponse converts an engine breakdown to its DTO, marking
// whether this option is the approved one.
func ToOptionBreakdownResponse(b pricing.OptionBreakdown, selectedID *string) OptionBreakdownResponse {
	return OptionBreakdownResponse{
		OptionID:          b.Option.OptionID,
		Label:             b.Label,
		PaymentMethodID:   b.Option.PaymentMethodID,
		Installments:      b.Option.Installments,
		HasDownPayment:    b.Option.HasDownPayment,
		DiscountPercent:   b.Option.DiscountPercent,
		PaymentTerms:      b.Option.PaymentTerms,
		SubtotalOneTime:   b.SubtotalOneTime,
		SubtotalRecurring: b.SubtotalRecurring,
		DiscountAmount:    b.DiscountAmount,
		TotalOneTime:      b.TotalOneTime,
		GrandTotal:        b.GrandTotal,
		InstallmentAmount: b.InstallmentAmount,
		InstallmentPlan:   b.Installments,
		Selected:          selectedID != nil && *selectedID == b.Option.OptionID,
	}
}

// ToQuoteResponse converts a domain quote plus its computed pricing to the
// response DTO.
func ToQuoteResponse(q *domain.Quote, breakdowns []pricing.OptionBreakdown) QuoteResponse {
	priced := make([]OptionBreakdownResponse, len(breakdowns))
	for i, b := range breakdowns {
		priced[i] = ToOptionBreakdownResponse(b, q.SelectedPaymentOptionID)
	}
	return QuoteResponse{
		ID:                      q.QuoteID,
		ClientName:              q.ClientName,
		ClientEmail:             q.ClientEmail,
		ServiceDescription:      q.ServiceDescription,
		CreatedAt:               q.CreatedAt,
		UpdatedAt:               q.LastUpdatedAt,
		ValidUntil:              q.ValidUntil,
		ProductionDays:          q.ProductionDays,
		Items:                   q.Items,
		PaymentOptions:          q.PaymentOptions,
		SelectedPaymentOptionID: q.SelectedPaymentOptionID,
		Status:                  q.Status,
		UserEmail:               q.UserEmail,
		LayoutType:              q.LayoutType,
		Content:                 q.Content,
		Pricing:                 priced,
	}
}

// ToQuoteSummaryResponse converts a domain quote to its dashboard row.
func ToQuoteSummaryResponse(q *domain.Quote) QuoteSummaryResponse {
	return QuoteSummaryResponse{
		ID:         q.QuoteID,
		ClientName: q.ClientName,
		Status:     q.Status,
		CreatedAt:  q.CreatedAt,
		ValidUntil: q.ValidUntil,
		UserEmail:  q.UserEmail,
	}
}
