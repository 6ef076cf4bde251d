package gateway

import (
	"regexp"
	"strconv"
	"strings"
)

// Balasan gateway bukan format mesin; prosa dengan field bertanda di
// dalamnya. Decoding di sini pattern-based dan tidak pernah gagal keras:
// bentuk yang tidak dikenal turun jadi hasil "unknown", bukan error.

type Status string

const (
	StatusSukses  Status = "SUKSES"
	StatusGagal   Status = "GAGAL"
	StatusPending Status = "PENDING"
	StatusUnknown Status = ""
)

type TrxResult struct {
	Raw        string `json:"raw"`
	Success    bool   `json:"success"`
	RefID      string `json:"ref_id,omitempty"`
	Status     Status `json:"status,omitempty"`
	SN         string `json:"sn,omitempty"`
	Message    string `json:"message,omitempty"`
	Saldo      string `json:"saldo,omitempty"`
	HargaBeli  string `json:"harga_beli,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"` // rupiah utuh, tanpa separator
}

type PriceResult struct {
	Raw         string `json:"raw"`
	Success     bool   `json:"success"`
	Price       string `json:"price,omitempty"`
	Description string `json:"description,omitempty"`
}

var (
	reStatusCode = regexp.MustCompile(`status=(\d+)`)
	reRefID      = regexp.MustCompile(`R#(\S+)`)
	reSN         = regexp.MustCompile(`SN/Ref:\s*([^.]+)`)
	reSaldo      = regexp.MustCompile(`Saldo\s+([\d.,]+)(?:-([\d.,]+))?\s*=\s*([\d.,]+)`)
	reGagal      = regexp.MustCompile(`GAGAL\.\s*([^.]+)`)
	// Titik pemisah kalimat = titik yang diikuti spasi atau akhir body.
	// Titik desimal di dalam nama produk ("AIGO Mini 1.5GB") bukan terminator.
	rePrice    = regexp.MustCompile(`SN/Ref:\s*Rp([\d.,]+)/(.+?)\.(\s|$)`)
	reListBody = regexp.MustCompile(`SN/Ref:\s*(.+?)\.(\s|$)`)
)

// ParseTransaction memetakan balasan transaksi/cek ke hasil bertipe.
// Urutan prioritas keyword: SUKSES dulu, baru GAGAL, baru PENDING.
func ParseTransaction(body string) TrxResult {
	res := TrxResult{Raw: body}

	if m := reStatusCode.FindStringSubmatch(body); m != nil {
		res.StatusCode, _ = strconv.Atoi(m[1])
	}
	// refID yang di-echo balik gateway, ada di semua cabang outcome
	if m := reRefID.FindStringSubmatch(body); m != nil {
		res.RefID = m[1]
	}

	switch {
	case strings.Contains(body, "SUKSES"):
		res.Success = true
		res.Status = StatusSukses
		if m := reSN.FindStringSubmatch(body); m != nil {
			res.SN = strings.TrimSpace(m[1])
		}
		if m := reSaldo.FindStringSubmatch(body); m != nil {
			res.Saldo = stripDots(m[3])
			if m[2] != "" {
				res.HargaBeli = stripDots(m[2])
			}
		}
	case strings.Contains(body, "GAGAL"):
		res.Status = StatusGagal
		if m := reGagal.FindStringSubmatch(body); m != nil {
			res.Message = strings.TrimSpace(m[1])
		}
	case strings.Contains(body, "PENDING"), strings.Contains(body, "Menunggu"):
		res.Status = StatusPending
	}

	return res
}

// ParseProductList membelah segmen SN/Ref jadi item id#nama#harga.
// Item yang bentuknya tidak pas tiga field dibuang diam-diam; satu item
// rusak tidak boleh menggagalkan seluruh list.
func ParseProductList(body string) []Product {
	m := reListBody.FindStringSubmatch(body)
	if m == nil {
		return nil
	}

	var products []Product
	for _, item := range strings.Split(m[1], ";") {
		parts := strings.Split(item, "#")
		if len(parts) != 3 {
			continue
		}
		raw := stripDots(strings.TrimSpace(parts[2]))
		price, err := strconv.Atoi(strings.TrimPrefix(raw, "Rp"))
		if err != nil {
			continue
		}
		products = append(products, Product{
			ID:    strings.TrimSpace(parts[0]),
			Name:  strings.TrimSpace(parts[1]),
			Price: price,
		})
	}
	return products
}

// ParsePrice membaca pasangan harga/deskripsi dari balasan cek harga.
// Hanya berarti kalau body mengandung SUKSES; SUKSES tanpa pola harga
// dianggap payload rusak (success=false), bukan crash.
func ParsePrice(body string) PriceResult {
	res := PriceResult{Raw: body}

	if !strings.Contains(body, "SUKSES") {
		return res
	}
	m := rePrice.FindStringSubmatch(body)
	if m == nil {
		return res
	}
	res.Success = true
	res.Price = stripDots(m[1])
	res.Description = strings.TrimSpace(m[2])
	return res
}

func stripDots(s string) string {
	return strings.ReplaceAll(s, ".", "")
}
