package gateway

// Deskripsi kode status numerik gateway. Hanya untuk display; alur kontrol
// tetap berdasar keyword di body.
var statusDescriptions = map[int]string{
	2:  "Menunggu Jawaban",
	20: "Sukses",
	40: "Gagal",
	45: "Stok Kosong",
	47: "Produk Gangguan",
	50: "Dibatalkan",
	52: "Tujuan Salah",
	53: "Tujuan Diluar Wilayah",
	55: "TimeOut",
	56: "Nomor Blacklist",
	69: "CutOff",
}

func StatusDescription(code int) string {
	if d, ok := statusDescriptions[code]; ok {
		return d
	}
	return "Unknown"
}
