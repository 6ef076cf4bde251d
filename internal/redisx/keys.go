package redisx

import "time"

const (
	// Sesi order per user: session:{user_id} -> JSON {"state": "...", "data": {...}}
	KeySession = "session:%s"

	// Cache status transaksi: trx_status:{ref_id} -> {"status": "...", "sn": "..."}
	KeyTrxStatus = "trx_status:%s"

	// Dedup event processing di auditor: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	// Sesi tidak punya timeout di alur order; TTL panjang sekadar jaring
	// penampung kalau user menghilang di tengah jalan.
	TTLSession   = 7 * 24 * time.Hour
	TTLTrxStatus = 24 * time.Hour
	TTLDedup     = 48 * time.Hour
)
