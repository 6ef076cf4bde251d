package order

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/cuanku/ppob-bot/internal/gateway"
	kafkax "github.com/cuanku/ppob-bot/internal/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Gateway adalah potongan klien Omega Tronik yang dipakai alur order.
type Gateway interface {
	CheckBalance(ctx context.Context) (string, error)
	ListProducts(ctx context.Context, productCode, dest, refID string) ([]gateway.Product, string, error)
	CheckPrice(ctx context.Context, productCode, dest, refID, productID string) (gateway.PriceResult, error)
	Execute(ctx context.Context, productCode, dest, refID, productID string) (gateway.TrxResult, error)
}

type TrxStore interface {
	GetOrCreateUser(ctx context.Context, platformID, username string) (User, error)
	InsertPending(ctx context.Context, t *Transaction) error
	UpdateByRefID(ctx context.Context, refID string, upd TrxUpdate) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Transaction, error)
}

type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Workflow menjalankan state machine order per user:
// pilih kategori -> nomor tujuan -> pilih produk -> konfirmasi -> eksekusi.
// Semua kegagalan turun jadi Reply + bersih-bersih session; tidak ada yang
// fatal ke proses.
type Workflow struct {
	Sessions SessionStore
	Store    TrxStore
	Gateway  Gateway
	Producer EventPublisher
	Service  string
}

const historyLimit = 10

// StartOrder: user milih kategori paket. Session baru dibuat (menimpa order
// yang masih jalan); belum ada call gateway di langkah ini.
func (w *Workflow) StartOrder(ctx context.Context, userID, category string) (Reply, error) {
	item, ok := Catalog[category]
	if !ok {
		return errReply(ErrCodeUnknownCategory), nil
	}

	s := &Session{
		State: StateAwaitingDestination,
		Data:  SessionData{ProductCode: item.Code, ProductName: item.Name},
	}
	if err := w.Sessions.Save(ctx, userID, s); err != nil {
		return Reply{}, err
	}
	return Reply{Kind: ReplyAskDestination, Category: &item}, nil
}

// HandleText: teks bebas hanya berarti saat session menunggu nomor tujuan.
// Tanpa session, atau di state lain, teks diabaikan.
func (w *Workflow) HandleText(ctx context.Context, userID, text string) (Reply, error) {
	s, err := w.Sessions.Load(ctx, userID)
	if err != nil {
		return Reply{}, err
	}
	if s == nil || s.State != StateAwaitingDestination {
		return ignored(), nil
	}
	return w.handleDestination(ctx, userID, text, s)
}

func (w *Workflow) handleDestination(ctx context.Context, userID, text string, s *Session) (Reply, error) {
	dest, err := NormalizeDestination(text)
	if err != nil {
		// recoverable: state tidak berubah, tidak ada call gateway
		return errReply(ErrCodeInvalidDestination), nil
	}

	refID := NewRefID("LIST")
	products, _, err := w.Gateway.ListProducts(ctx, s.Data.ProductCode, dest, refID)
	if err != nil {
		w.clear(ctx, userID)
		return errReply(ErrCodeGatewayFailure), nil
	}
	if len(products) == 0 {
		w.clear(ctx, userID)
		return errReply(ErrCodeNoProducts), nil
	}

	s.Data.Destination = dest
	s.Data.Products = products
	if err := s.advance(StateAwaitingProduct); err != nil {
		return Reply{}, err
	}
	if err := w.Sessions.Save(ctx, userID, s); err != nil {
		return Reply{}, err
	}
	return Reply{Kind: ReplyProductList, Destination: dest, Products: products}, nil
}

// SelectProduct: cek harga produk terpilih lewat kode CEK turunan kode list.
func (w *Workflow) SelectProduct(ctx context.Context, userID, productID string) (Reply, error) {
	s, err := w.Sessions.Load(ctx, userID)
	if err != nil {
		return Reply{}, err
	}
	if s == nil {
		return errReply(ErrCodeSessionExpired), nil
	}
	if s.State != StateAwaitingProduct {
		return ignored(), nil
	}
	sel, err := s.Selection()
	if err != nil {
		w.clear(ctx, userID)
		return errReply(ErrCodeSessionExpired), nil
	}

	var picked *gateway.Product
	for i := range sel.Products {
		if sel.Products[i].ID == productID {
			picked = &sel.Products[i]
			break
		}
	}
	if picked == nil {
		// bukan kegagalan alur; user bisa milih ulang
		return errReply(ErrCodeProductNotFound), nil
	}

	refID := NewRefID("CEK")
	quote, err := w.Gateway.CheckPrice(ctx, CheckCode(sel.ProductCode), sel.Destination, refID, productID)
	if err != nil || !quote.Success {
		w.clear(ctx, userID)
		return errReply(ErrCodeGatewayFailure), nil
	}
	price, err := strconv.Atoi(quote.Price)
	if err != nil || price <= 0 {
		w.clear(ctx, userID)
		return errReply(ErrCodeGatewayFailure), nil
	}

	s.Data.SelectedID = productID
	s.Data.Price = price
	s.Data.Description = quote.Description
	if err := s.advance(StateAwaitingConfirm); err != nil {
		return Reply{}, err
	}
	if err := w.Sessions.Save(ctx, userID, s); err != nil {
		return Reply{}, err
	}
	return Reply{Kind: ReplyConfirmOrder, Quote: &Quote{
		Destination: sel.Destination,
		ProductID:   productID,
		Price:       price,
		Description: quote.Description,
	}}, nil
}

// Confirm mengeksekusi order. Urutan di sini adalah jaminan inti: record
// PENDING harus sudah durable sebelum call yang bisa menggerakkan uang,
// supaya crash di tengah call ninggalin jejak yang bisa direkonsiliasi.
func (w *Workflow) Confirm(ctx context.Context, platformID, username string) (Reply, error) {
	s, err := w.Sessions.Load(ctx, platformID)
	if err != nil {
		return Reply{}, err
	}
	if s == nil {
		return errReply(ErrCodeSessionExpired), nil
	}
	if s.State != StateAwaitingConfirm {
		return ignored(), nil
	}
	conf, err := s.Confirmation()
	if err != nil {
		w.clear(ctx, platformID)
		return errReply(ErrCodeSessionExpired), nil
	}

	user, err := w.Store.GetOrCreateUser(ctx, platformID, username)
	if err != nil {
		return Reply{}, err
	}

	refID := NewRefID("TRX")
	payCode := ExecuteCode(conf.ProductCode)
	reqData, _ := json.Marshal(map[string]string{
		"product":  payCode,
		"dest":     conf.Destination,
		"refID":    refID,
		"idproduk": conf.SelectedID,
	})

	t := &Transaction{
		UserID:      user.ID,
		RefID:       refID,
		ProductCode: payCode,
		ProductName: conf.Description,
		Destination: conf.Destination,
		Amount:      conf.Price,
		RequestData: reqData,
	}
	if err := w.Store.InsertPending(ctx, t); err != nil {
		return Reply{}, err
	}

	res, err := w.Gateway.Execute(ctx, payCode, conf.Destination, refID, conf.SelectedID)
	if err != nil {
		// transport gagal total: record tetap PENDING buat rekonsiliasi,
		// cuma pesan errornya yang dicatat
		if uerr := w.Store.UpdateByRefID(ctx, refID, TrxUpdate{Message: err.Error()}); uerr != nil {
			log.Printf("update trx %s: %v", refID, uerr)
		}
		w.clear(ctx, platformID)
		return errReply(ErrCodeGatewayFailure), nil
	}

	status := res.Status
	if status == gateway.StatusUnknown {
		status = gateway.StatusPending
	}
	respData, _ := json.Marshal(res)
	if uerr := w.Store.UpdateByRefID(ctx, refID, TrxUpdate{
		Status:       status,
		SN:           res.SN,
		Message:      res.Message,
		ResponseData: respData,
	}); uerr != nil {
		log.Printf("update trx %s: %v", refID, uerr)
	}

	w.publishExecuted(user.ID, t, status, res)
	w.clear(ctx, platformID)

	return Reply{Kind: ReplyTrxResult, Result: &TrxOutcome{
		RefID:       refID,
		Success:     res.Success,
		Status:      status,
		SN:          res.SN,
		Message:     res.Message,
		Destination: conf.Destination,
		Amount:      conf.Price,
		Description: conf.Description,
	}}, nil
}

// Cancel membatalkan dari state non-terminal mana pun: session dibuang,
// tidak ada call gateway.
func (w *Workflow) Cancel(ctx context.Context, userID string) (Reply, error) {
	if err := w.Sessions.Clear(ctx, userID); err != nil {
		return Reply{}, err
	}
	return Reply{Kind: ReplyCancelled}, nil
}

func (w *Workflow) CheckBalance(ctx context.Context) (Reply, error) {
	body, err := w.Gateway.CheckBalance(ctx)
	if err != nil {
		return errReply(ErrCodeGatewayFailure), nil
	}
	return Reply{Kind: ReplyBalance, Balance: body}, nil
}

func (w *Workflow) History(ctx context.Context, platformID, username string) (Reply, error) {
	user, err := w.Store.GetOrCreateUser(ctx, platformID, username)
	if err != nil {
		return Reply{}, err
	}
	trxs, err := w.Store.ListByUser(ctx, user.ID, historyLimit)
	if err != nil {
		return Reply{}, err
	}
	items := make([]HistoryItem, 0, len(trxs))
	for _, t := range trxs {
		items = append(items, HistoryItem{
			RefID:       t.RefID,
			ProductCode: t.ProductCode,
			ProductName: t.ProductName,
			Destination: t.Destination,
			Amount:      t.Amount,
			Status:      t.Status,
			SN:          t.SN,
			CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		})
	}
	return Reply{Kind: ReplyHistory, History: items}, nil
}

func (w *Workflow) clear(ctx context.Context, userID string) {
	if err := w.Sessions.Clear(ctx, userID); err != nil {
		log.Printf("clear session %s: %v", userID, err)
	}
}

func (w *Workflow) publishExecuted(userID string, t *Transaction, status gateway.Status, res gateway.TrxResult) {
	if w.Producer == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventTrxExecuted,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      w.Service,
		CorrelationID: t.RefID,
		Payload: kafkax.MustMarshal(TrxExecutedPayload{
			RefID:       t.RefID,
			UserID:      userID,
			ProductCode: t.ProductCode,
			Destination: t.Destination,
			Amount:      t.Amount,
			Status:      string(status),
			SN:          res.SN,
			Message:     res.Message,
		}),
	}
	w.Producer.Publish(PartitionKey(t.RefID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventTrxExecuted)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
