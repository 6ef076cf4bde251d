package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	kafkax "github.com/cuanku/ppob-bot/internal/kafka"
	"github.com/cuanku/ppob-bot/internal/order"
	"github.com/cuanku/ppob-bot/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type StalePendingLister interface {
	ListStalePending(ctx context.Context, olderThan time.Duration) ([]order.Transaction, error)
}

// Service adalah sisi baca audit trail: consume event trx.executed buat
// cache status, plus sweep berkala atas record PENDING yang nyangkut.
// Tidak pernah memutasi record transaksi; itu milik alur order.
type Service struct {
	Repo        StalePendingLister
	Redis       *redis.Client
	ServiceName string
}

// HandleTrxExecuted dipasang sebagai handler consumer.
func (s *Service) HandleTrxExecuted(ctx context.Context, m kafkago.Message) error {
	var env order.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != order.EventTrxExecuted {
		return nil
	}

	// dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, "audit", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[order.TrxExecutedPayload](env.Payload)
	if err != nil {
		return err
	}

	cached, _ := json.Marshal(map[string]string{"status": p.Status, "sn": p.SN})
	key := fmt.Sprintf(redisx.KeyTrxStatus, p.RefID)
	if err := s.Redis.Set(ctx, key, cached, redisx.TTLTrxStatus).Err(); err != nil {
		return err
	}

	log.Printf("trx executed: ref=%s status=%s sn=%q", p.RefID, p.Status, p.SN)
	return nil
}

// SweepStalePending melaporkan transaksi PENDING yang melewati cutoff.
// Laporan saja: PENDING yang nyangkut berarti proses mati di tengah call
// gateway, dan penyelesaiannya keputusan manusia, bukan auto-update.
func (s *Service) SweepStalePending(ctx context.Context, interval, cutoff time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("pending sweep started: interval=%s cutoff=%s", interval, cutoff)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.sweep(ctx, cutoff); err != nil {
				log.Printf("pending sweep: %v", err)
			}
		}
	}
}

func (s *Service) sweep(ctx context.Context, cutoff time.Duration) error {
	stuck, err := s.Repo.ListStalePending(ctx, cutoff)
	if err != nil {
		return err
	}
	for _, t := range stuck {
		log.Printf("stale PENDING: ref=%s dest=%s amount=%d age=%s, butuh rekonsiliasi manual",
			t.RefID, t.Destination, t.Amount, time.Since(t.CreatedAt).Round(time.Second))
	}
	return nil
}
