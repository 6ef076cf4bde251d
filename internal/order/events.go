package order

import (
	"encoding/json"
	"time"
)

const (
	EventTrxExecuted = "TrxExecuted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // ref_id transaksi
	Payload       json.RawMessage `json:"payload"`
}

// TrxExecutedPayload dipublish setelah record transaksi mencapai status
// terminal (atau tetap PENDING karena gateway tidak menjawab).
type TrxExecutedPayload struct {
	RefID       string `json:"ref_id"`
	UserID      string `json:"user_id"`
	ProductCode string `json:"product_code"`
	Destination string `json:"destination"`
	Amount      int    `json:"amount"`
	Status      string `json:"status"`
	SN          string `json:"sn,omitempty"`
	Message     string `json:"message,omitempty"`
}
