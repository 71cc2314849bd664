package dto

import (
	"circles-backend/internal/catalog"
	"circles-backend/internal/checkout"
	"circles-backend/internal/model"
)

type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type ProjectListResponse struct {
	Projects []model.Project  `json:"projects"`
	Total    int              `json:"total"`
	Criteria catalog.Criteria `json:"criteria"`
}

type ProjectRowsResponse struct {
	Rows    catalog.Groups `json:"rows,omitempty"`
	Curated []catalog.Row  `json:"curated,omitempty"`
}

type ProjectDetailResponse struct {
	Project                  *model.Project `json:"project"`
	ComputedFundedPercentage int            `json:"computedFundedPercentage"`
	Perks                    []model.Perk   `json:"perks"`
}

type TiersResponse struct {
	Tiers  []model.PerkTier `json:"tiers"`
	Limits checkout.Limits  `json:"limits"`
}

type MerchandiseListResponse struct {
	Items []model.MerchandiseItem `json:"items"`
	Total int                     `json:"total"`
}

type AttemptRequest struct {
	Amount        int64               `json:"amount"`
	TierID        string              `json:"tierId"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	Nonce         string              `json:"nonce"`
}

func (r AttemptRequest) Attempt() checkout.Attempt {
	return checkout.Attempt{
		Amount:        r.Amount,
		TierID:        r.TierID,
		PaymentMethod: r.PaymentMethod,
		Nonce:         r.Nonce,
	}
}

type InvestRequest struct {
	ProjectID string `json:"projectId"`
	AttemptRequest
}

type InvestResponse struct {
	Receipt        *model.Receipt       `json:"receipt"`
	LastInvestment model.LastInvestment `json:"lastInvestment"`
}

type OpenSessionRequest struct {
	ProjectID string `json:"projectId"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ChannelMessageRequest struct {
	CircleID string `json:"circleId"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	MediaURL string `json:"mediaUrl"`
}

type CreatePostRequest struct {
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	MediaType string   `json:"mediaType"`
	MediaURL  string   `json:"mediaUrl"`
	Tags      []string `json:"tags"`
}
