package views

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var embedded embed.FS

// Layout dipakai semua halaman publik.
const Layout = "layouts/main"

// NewEngine membangun view engine fiber dari template yang di-embed ke binary.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		// path embed di atas statis, jadi ini hanya terjadi kalau direktori dihapus
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	engine.AddFunc("year", func() int { return time.Now().Year() })
	engine.AddFunc("lines", func(s string) []string { return strings.Split(s, "\n") })
	return engine
}
