package order

import (
	"time"

	"github.com/cuanku/ppob-bot/internal/gateway"
)

type User struct {
	ID         string
	PlatformID string
	Username   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Transaction adalah record durable satu order. Dibuat PENDING sebelum call
// gateway yang bisa menggerakkan uang, lalu di-update in place; tidak pernah
// diduplikasi per ref_id.
type Transaction struct {
	ID           string
	UserID       string
	RefID        string
	ProductCode  string
	ProductName  string
	Destination  string
	Amount       int
	Status       gateway.Status
	SN           string
	Message      string
	RequestData  []byte
	ResponseData []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
