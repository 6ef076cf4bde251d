package gateway

import "sync/atomic"

// Failover memilih base URL gateway: primary sampai ada kegagalan pertama,
// setelah itu pindah permanen ke backup selama proses hidup. Trip satu arah,
// tidak pernah balik otomatis ke primary.
type Failover struct {
	primary string
	backup  string
	tripped atomic.Bool
}

func NewFailover(primary, backup string) *Failover {
	return &Failover{primary: primary, backup: backup}
}

func (f *Failover) Endpoint() string {
	if f.tripped.Load() {
		return f.backup
	}
	return f.primary
}

// Trip memindahkan state ke backup. Return true hanya untuk caller yang
// benar-benar memindahkan state (CAS), supaya dari banyak call konkuren
// cuma satu yang dapat jatah retry ke backup.
func (f *Failover) Trip() bool {
	return f.tripped.CompareAndSwap(false, true)
}

func (f *Failover) OnBackup() bool {
	return f.tripped.Load()
}
