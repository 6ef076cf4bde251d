package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cuanku/ppob-bot/internal/gateway"
	"github.com/cuanku/ppob-bot/internal/redisx"
	"github.com/redis/go-redis/v9"
)

type State string

const (
	StateAwaitingDestination State = "awaiting_destination"
	StateAwaitingProduct     State = "awaiting_product_selection"
	StateAwaitingConfirm     State = "awaiting_payment_confirmation"
)

var validNext = map[State]map[State]bool{
	StateAwaitingDestination: {StateAwaitingProduct: true},
	StateAwaitingProduct:     {StateAwaitingConfirm: true},
	StateAwaitingConfirm:     {},
}

func CanTransition(from, to State) bool {
	return validNext[from][to]
}

var (
	ErrSessionIncomplete = errors.New("session missing required data")
	ErrBadTransition     = errors.New("invalid session transition")
)

// SessionData mengakumulasi field sepanjang alur order. Field mana yang
// wajib terisi per state dicek lewat accessor di bawah, bukan dibaca mentah.
type SessionData struct {
	ProductCode string            `json:"product_code"`
	ProductName string            `json:"product_name"`
	Destination string            `json:"destination,omitempty"`
	Products    []gateway.Product `json:"products,omitempty"`
	SelectedID  string            `json:"selected_id,omitempty"`
	Price       int               `json:"price,omitempty"`
	Description string            `json:"description,omitempty"`
}

type Session struct {
	State State       `json:"state"`
	Data  SessionData `json:"data"`
}

func (s *Session) advance(to State) error {
	if !CanTransition(s.State, to) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, s.State, to)
	}
	s.State = to
	return nil
}

// SelectionView adalah potongan session yang valid di state
// awaiting_product_selection.
type SelectionView struct {
	ProductCode string
	Destination string
	Products    []gateway.Product
}

func (s *Session) Selection() (SelectionView, error) {
	if s.State != StateAwaitingProduct || s.Data.ProductCode == "" ||
		s.Data.Destination == "" || len(s.Data.Products) == 0 {
		return SelectionView{}, ErrSessionIncomplete
	}
	return SelectionView{
		ProductCode: s.Data.ProductCode,
		Destination: s.Data.Destination,
		Products:    s.Data.Products,
	}, nil
}

// ConfirmationView adalah potongan session yang valid di state
// awaiting_payment_confirmation: semua yang dibutuhkan buat eksekusi.
type ConfirmationView struct {
	ProductCode string
	Destination string
	SelectedID  string
	Price       int
	Description string
}

func (s *Session) Confirmation() (ConfirmationView, error) {
	if s.State != StateAwaitingConfirm || s.Data.ProductCode == "" ||
		s.Data.Destination == "" || s.Data.SelectedID == "" || s.Data.Price <= 0 {
		return ConfirmationView{}, ErrSessionIncomplete
	}
	return ConfirmationView{
		ProductCode: s.Data.ProductCode,
		Destination: s.Data.Destination,
		SelectedID:  s.Data.SelectedID,
		Price:       s.Data.Price,
		Description: s.Data.Description,
	}, nil
}

// SessionStore: satu session per user. Save menimpa; order yang masih
// jalan otomatis hangus kalau user mulai alur baru.
type SessionStore interface {
	Load(ctx context.Context, userID string) (*Session, error)
	Save(ctx context.Context, userID string, s *Session) error
	Clear(ctx context.Context, userID string) error
}

type RedisSessionStore struct {
	RDB *redis.Client
}

func (r *RedisSessionStore) Load(ctx context.Context, userID string) (*Session, error) {
	raw, err := r.RDB.Get(ctx, fmt.Sprintf(redisx.KeySession, userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, userID string, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, fmt.Sprintf(redisx.KeySession, userID), b, redisx.TTLSession).Err()
}

func (r *RedisSessionStore) Clear(ctx context.Context, userID string) error {
	return r.RDB.Del(ctx, fmt.Sprintf(redisx.KeySession, userID)).Err()
}
