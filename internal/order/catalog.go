package order

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// CatalogItem memetakan satu kategori paket ke kode operasi list gateway.
type CatalogItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Katalog kategori yang dilayani. Key = id kategori dari layer presentasi.
var Catalog = map[string]CatalogItem{
	"tsel_dh":    {Code: "LISTDH", Name: "Paket Data Harian Telkomsel"},
	"tsel_dm":    {Code: "LISTDM", Name: "Paket Data Mingguan Telkomsel"},
	"tsel_db":    {Code: "LISTDB", Name: "Paket Data Bulanan Telkomsel"},
	"tsel_sakti": {Code: "LISTSAKTI", Name: "Paket Combo Sakti Telkomsel"},
	"tsel_ns":    {Code: "LISTNS", Name: "Paket Nelpon Sakti Telkomsel"},
	"tsel_orbit": {Code: "LISTORBIT", Name: "Paket Orbit Telkomsel"},
	"tsel_omni":  {Code: "LISTOMNI", Name: "Paket Omni Telkomsel"},
	"isat_di":    {Code: "LISTDI", Name: "Paket Only4You Indosat"},
	"xl_dx":      {Code: "LISTDX", Name: "Paket Cuanku XL/AXIS"},
	"tri_dtr":    {Code: "LISTDTR", Name: "Paket CuanMax Tri"},
	"byu_byu":    {Code: "LISTBYU", Name: "Paket By.U"},
}

// CheckCode menurunkan kode operasi cek harga dari kode list (LISTX -> CEKX).
func CheckCode(listCode string) string {
	return strings.Replace(listCode, "LIST", "CEK", 1)
}

// ExecuteCode menurunkan kode eksekusi transaksi: prefix LIST/CEK dibuang.
func ExecuteCode(code string) string {
	return strings.TrimPrefix(strings.TrimPrefix(code, "LIST"), "CEK")
}

// NewRefID bikin reference id unik format upstream: PREFIX + millis + 3 digit
// acak. Dipakai buat korelasi request, record durable, dan echo R# gateway.
func NewRefID(prefix string) string {
	return fmt.Sprintf("%s%d%03d", prefix, time.Now().UnixMilli(), rand.IntN(1000))
}
