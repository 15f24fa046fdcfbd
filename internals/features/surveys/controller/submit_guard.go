package controller

import (
	"sync"
	"time"
)

// submitGuard menahan satu pengiriman per (survey, form_token). POST kedua
// dengan token yang sama menunggu hasil yang pertama, tidak mengirim ulang.
type submitGuard struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*pendingSubmit
}

type pendingSubmit struct {
	done    chan struct{}
	ok      bool      // dibaca hanya setelah done ditutup
	expires time.Time // diisi saat selesai sukses
}

func newSubmitGuard(ttl time.Duration) *submitGuard {
	return &submitGuard{ttl: ttl, now: time.Now, entries: map[string]*pendingSubmit{}}
}

func guardKey(surveyID, token string) string {
	return surveyID + "\x00" + token
}

// begin: owner=true berarti pemanggil wajib memanggil finish.
func (g *submitGuard) begin(key string) (p *pendingSubmit, owner bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, e := range g.entries {
		if !e.expires.IsZero() && now.After(e.expires) {
			delete(g.entries, k)
		}
	}

	if e, ok := g.entries[key]; ok {
		return e, false
	}
	p = &pendingSubmit{done: make(chan struct{})}
	g.entries[key] = p
	return p, true
}

// finish: sukses diingat sampai ttl (form yang sama tidak terkirim dua kali),
// gagal langsung dilepas supaya bisa dikirim ulang.
func (g *submitGuard) finish(key string, p *pendingSubmit, ok bool) {
	g.mu.Lock()
	p.ok = ok
	if ok {
		p.expires = g.now().Add(g.ttl)
	} else {
		delete(g.entries, key)
	}
	g.mu.Unlock()
	close(p.done)
}
