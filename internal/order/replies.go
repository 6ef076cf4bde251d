package order

import "github.com/cuanku/ppob-bot/internal/gateway"

// Reply adalah hasil terstruktur untuk layer presentasi. Core tidak pernah
// menghasilkan markup atau copy platform; rendering jadi urusan adapter.
type ReplyKind string

const (
	ReplyIgnored        ReplyKind = "ignored"
	ReplyAskDestination ReplyKind = "ask_destination"
	ReplyProductList    ReplyKind = "product_list"
	ReplyConfirmOrder   ReplyKind = "confirm_order"
	ReplyTrxResult      ReplyKind = "trx_result"
	ReplyCancelled      ReplyKind = "cancelled"
	ReplyBalance        ReplyKind = "balance"
	ReplyHistory        ReplyKind = "history"
	ReplyError          ReplyKind = "error"
)

// Kode error yang dimengerti presentasi; bukan pesan jadi.
const (
	ErrCodeUnknownCategory    = "unknown_category"
	ErrCodeInvalidDestination = "invalid_destination"
	ErrCodeNoProducts         = "no_products"
	ErrCodeProductNotFound    = "product_not_found"
	ErrCodeSessionExpired     = "session_expired"
	ErrCodeGatewayFailure     = "gateway_failure"
)

type Quote struct {
	Destination string `json:"destination"`
	ProductID   string `json:"product_id"`
	Price       int    `json:"price"`
	Description string `json:"description"`
}

type TrxOutcome struct {
	RefID       string         `json:"ref_id"`
	Success     bool           `json:"success"`
	Status      gateway.Status `json:"status"`
	SN          string         `json:"sn,omitempty"`
	Message     string         `json:"message,omitempty"`
	Destination string         `json:"destination"`
	Amount      int            `json:"amount"`
	Description string         `json:"description,omitempty"`
}

type HistoryItem struct {
	RefID       string         `json:"ref_id"`
	ProductCode string         `json:"product_code"`
	ProductName string         `json:"product_name,omitempty"`
	Destination string         `json:"destination"`
	Amount      int            `json:"amount"`
	Status      gateway.Status `json:"status"`
	SN          string         `json:"sn,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

type Reply struct {
	Kind        ReplyKind         `json:"kind"`
	ErrorCode   string            `json:"error_code,omitempty"`
	Category    *CatalogItem      `json:"category,omitempty"`
	Destination string            `json:"destination,omitempty"`
	Products    []gateway.Product `json:"products,omitempty"`
	Quote       *Quote            `json:"quote,omitempty"`
	Result      *TrxOutcome       `json:"result,omitempty"`
	Balance     string            `json:"balance,omitempty"`
	History     []HistoryItem     `json:"history,omitempty"`
}

func errReply(code string) Reply {
	return Reply{Kind: ReplyError, ErrorCode: code}
}

func ignored() Reply {
	return Reply{Kind: ReplyIgnored}
}
