package devapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/orders"
	"github.com/jrsteele09/go-storefront-client/products"
	"golang.org/x/crypto/bcrypt"
)

// NowTimeFunc stamps created users, soft deletes and seeded orders.
var NowTimeFunc = time.Now

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

type UserStore struct {
	users    map[string]*User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:    make(map[string]*User),
		emailIds: make(map[string]string),
	}
}

// Create hashes the password and stores a new account. Emails are unique, case-insensitively.
func (us *UserStore) Create(email, password string, isAdmin bool) (*User, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	hash, err := HashPassword(password)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[UserStore Create] hash password")
	}

	us.lock.Lock()
	defer us.lock.Unlock()

	if _, exists := us.emailIds[key]; exists {
		return nil, apperrors.Wrapf(apperrors.ErrConflict, "[UserStore Create] %s", key)
	}
	u := &User{
		ID:           uuid.NewString(),
		Email:        key,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    NowTimeFunc().UTC(),
	}
	us.users[u.ID] = u
	us.emailIds[key] = u.ID
	copied := *u
	return &copied, nil
}

// Authenticate returns the account when the password matches its hash.
func (us *UserStore) Authenticate(email, password string) (*User, bool) {
	us.lock.RLock()
	id, ok := us.emailIds[strings.ToLower(strings.TrimSpace(email))]
	var u User
	if ok {
		u = *us.users[id]
	}
	us.lock.RUnlock()

	if !ok || !CheckPasswordHash(password, u.PasswordHash) {
		return nil, false
	}
	return &u, true
}

type ProductStore struct {
	products map[string]*products.Product
	lock     sync.RWMutex
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[string]*products.Product)}
}

func (ps *ProductStore) Create(payload products.CreatePayload) products.Product {
	p := &products.Product{
		ID:            uuid.NewString(),
		Name:          payload.Name,
		Description:   payload.Description,
		Price:         payload.Price,
		StockQuantity: payload.StockQuantity,
	}
	ps.lock.Lock()
	ps.products[p.ID] = p
	ps.lock.Unlock()
	return *p
}

// List returns every product, including soft-deleted ones, whose name or description contains q.
func (ps *ProductStore) List(q string) []products.Product {
	q = strings.ToLower(strings.TrimSpace(q))

	ps.lock.RLock()
	out := make([]products.Product, 0, len(ps.products))
	for _, p := range ps.products {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, *p)
		}
	}
	ps.lock.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (ps *ProductStore) Get(id string) (products.Product, error) {
	ps.lock.RLock()
	defer ps.lock.RUnlock()
	p, ok := ps.products[id]
	if !ok {
		return products.Product{}, apperrors.Wrapf(apperrors.ErrNotFound, "[ProductStore Get] %s", id)
	}
	return *p, nil
}

func (ps *ProductStore) Update(id string, payload products.UpdatePayload) (products.Product, error) {
	ps.lock.Lock()
	defer ps.lock.Unlock()
	p, ok := ps.products[id]
	if !ok {
		return products.Product{}, apperrors.Wrapf(apperrors.ErrNotFound, "[ProductStore Update] %s", id)
	}
	if payload.Name != nil {
		p.Name = *payload.Name
	}
	if payload.Description != nil {
		p.Description = *payload.Description
	}
	if payload.Price != nil {
		p.Price = *payload.Price
	}
	if payload.StockQuantity != nil {
		p.StockQuantity = *payload.StockQuantity
	}
	return *p, nil
}

// Delete is a soft delete: the product stays listed with deletedAt set.
func (ps *ProductStore) Delete(id string) error {
	ps.lock.Lock()
	defer ps.lock.Unlock()
	p, ok := ps.products[id]
	if !ok {
		return apperrors.Wrapf(apperrors.ErrNotFound, "[ProductStore Delete] %s", id)
	}
	if p.DeletedAt == nil {
		now := NowTimeFunc().UTC()
		p.DeletedAt = &now
	}
	return nil
}

type OrderStore struct {
	orders []orders.Order
	lock   sync.RWMutex
}

func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

func (st *OrderStore) Add(o orders.Order) orders.Order {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	st.lock.Lock()
	st.orders = append(st.orders, o)
	st.lock.Unlock()
	return o
}

// List returns orders placed on or between the given dates, newest first. Zero bounds are open.
func (st *OrderStore) List(start, end time.Time) []orders.Order {
	st.lock.RLock()
	out := make([]orders.Order, 0, len(st.orders))
	for _, o := range st.orders {
		day := o.OrderDate.UTC().Truncate(24 * time.Hour)
		if !start.IsZero() && day.Before(start) {
			continue
		}
		if !end.IsZero() && day.After(end) {
			continue
		}
		out = append(out, o)
	}
	st.lock.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out
}
