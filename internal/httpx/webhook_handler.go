package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cuanku/ppob-bot/internal/order"
	"github.com/cuanku/ppob-bot/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// Update adalah event platform-netral dari layer chat: teks bebas atau
// sinyal tombol. Adapter platform yang menerjemahkan bentuk aslinya.
type Update struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Kind     string `json:"kind"` // "text" | "callback"
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
}

type TrxStatusReader interface {
	GetByRefID(ctx context.Context, refID string) (*order.Transaction, error)
}

type PriceListFetcher interface {
	FetchPriceList(ctx context.Context) ([]byte, error)
}

type WebhookHandler struct {
	Flow      *order.Workflow
	Trx       TrxStatusReader
	PriceList PriceListFetcher
	Redis     *redis.Client
	AdminIDs  []string
}

func (h *WebhookHandler) Register(r *chi.Mux) {
	r.Post("/webhook", h.handleUpdate)
	r.Get("/transactions/{refID}", h.getTransaction)
	r.Get("/balance", h.getBalance)
	r.Get("/pricelist", h.getPriceList)
}

// isAdmin: saldo reseller dan aksi admin lain hanya buat user di ADMIN_IDS.
func (h *WebhookHandler) isAdmin(userID string) bool {
	for _, id := range h.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *WebhookHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var up Update
	if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if up.UserID == "" || up.Kind == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	// Satu update bisa nunggu call gateway + satu retry failover.
	ctx, cancel := context.WithTimeout(r.Context(), 65*time.Second)
	defer cancel()

	reply, err := h.dispatch(ctx, up)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (h *WebhookHandler) dispatch(ctx context.Context, up Update) (order.Reply, error) {
	switch up.Kind {
	case "text":
		return h.Flow.HandleText(ctx, up.UserID, up.Text)
	case "callback":
		switch {
		case strings.HasPrefix(up.Data, "cat_"):
			return h.Flow.StartOrder(ctx, up.UserID, strings.TrimPrefix(up.Data, "cat_"))
		case strings.HasPrefix(up.Data, "select_"):
			return h.Flow.SelectProduct(ctx, up.UserID, strings.TrimPrefix(up.Data, "select_"))
		case up.Data == "confirm":
			return h.Flow.Confirm(ctx, up.UserID, up.Username)
		case up.Data == "cancel":
			return h.Flow.Cancel(ctx, up.UserID)
		case up.Data == "balance":
			if !h.isAdmin(up.UserID) {
				return order.Reply{Kind: order.ReplyIgnored}, nil
			}
			return h.Flow.CheckBalance(ctx)
		case up.Data == "history":
			return h.Flow.History(ctx, up.UserID, up.Username)
		}
	}
	return order.Reply{Kind: order.ReplyIgnored}, nil
}

func (h *WebhookHandler) getTransaction(w http.ResponseWriter, r *http.Request) {
	refID := chi.URLParam(r, "refID")
	if refID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing refID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) coba cache
	key := fmt.Sprintf(redisx.KeyTrxStatus, refID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	// 2) fallback DB
	t, err := h.Trx.GetByRefID(ctx, refID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	body := map[string]any{"status": t.Status, "sn": t.SN}
	b, _ := json.Marshal(body)
	_ = h.Redis.Set(ctx, key, b, redisx.TTLTrxStatus).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *WebhookHandler) getPriceList(w http.ResponseWriter, r *http.Request) {
	if h.PriceList == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "price list not configured"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	b, err := h.PriceList.FetchPriceList(ctx)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *WebhookHandler) getBalance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 65*time.Second)
	defer cancel()

	reply, err := h.Flow.CheckBalance(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
