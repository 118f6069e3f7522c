package credentials

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var _ Store = (*CookieStore)(nil)

// CookieStore keeps the pair as in-process cookies. Expiry is tracked
// against its own clock, the same way a cookie jar evicts stale entries.
type CookieStore struct {
	opts    Options
	cookies map[string]*http.Cookie
	lock    sync.RWMutex
	nowTime func() time.Time
}

// CookieStoreOption defines a function type to modify the CookieStore instance.
type CookieStoreOption func(*CookieStore)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CookieStoreOption {
	return func(cs *CookieStore) {
		cs.nowTime = nowFunc
	}
}

func NewCookieStore(opts Options, options ...CookieStoreOption) *CookieStore {
	cs := &CookieStore{
		opts:    opts.normalize(),
		cookies: make(map[string]*http.Cookie),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(cs)
	}
	return cs
}

func (cs *CookieStore) Persist(_ context.Context, pair Pair) error {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	now := cs.nowTime()
	cs.set(cs.opts.AccessTokenName, pair.AccessToken, cs.opts.AccessTokenTTL, now)
	cs.set(cs.opts.RefreshTokenName, pair.RefreshToken, cs.opts.RefreshTokenTTL, now)

	log.Debug().Str("access_cookie", cs.opts.AccessTokenName).Str("refresh_cookie", cs.opts.RefreshTokenName).Msg("credentials persisted")
	return nil
}

func (cs *CookieStore) set(name, value string, ttl time.Duration, now time.Time) {
	cs.cookies[name] = &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     cs.opts.Path,
		MaxAge:   int(ttl.Seconds()),
		Expires:  now.Add(ttl),
		SameSite: http.SameSiteLaxMode,
	}
}

func (cs *CookieStore) Read(_ context.Context) (string, bool, error) {
	return cs.get(cs.opts.AccessTokenName)
}

func (cs *CookieStore) ReadRefresh(_ context.Context) (string, bool, error) {
	return cs.get(cs.opts.RefreshTokenName)
}

func (cs *CookieStore) get(name string) (string, bool, error) {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	c, ok := cs.cookies[name]
	if !ok {
		return "", false, nil
	}
	if !cs.nowTime().Before(c.Expires) {
		delete(cs.cookies, name)
		return "", false, nil
	}
	return c.Value, true, nil
}

func (cs *CookieStore) Clear(_ context.Context) error {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	delete(cs.cookies, cs.opts.AccessTokenName)
	delete(cs.cookies, cs.opts.RefreshTokenName)

	log.Debug().Msg("credentials cleared")
	return nil
}

// Cookies returns copies of the unexpired cookies, sorted by name.
func (cs *CookieStore) Cookies() []*http.Cookie {
	cs.lock.RLock()
	defer cs.lock.RUnlock()

	now := cs.nowTime()
	live := make([]*http.Cookie, 0, len(cs.cookies))
	for _, c := range cs.cookies {
		if now.Before(c.Expires) {
			cp := *c
			live = append(live, &cp)
		}
	}
	sort.Slice(live, func(i, j int) bool {
		return live[i].Name < live[j].Name
	})
	return live
}

// WriteCookies sets a Set-Cookie header for every unexpired cookie.
func (cs *CookieStore) WriteCookies(w http.ResponseWriter) {
	for _, c := range cs.Cookies() {
		http.SetCookie(w, c)
	}
}
