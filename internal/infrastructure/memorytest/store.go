// Package memorytest implementa los puertos de persistencia en memoria para los
// tests de casos de uso y HTTP. Las transacciones se serializan y se revierten
// restaurando una copia del estado.
package memorytest

import (
	"context"
	"errors"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Proveo-api/internal/application/ports"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/pkg/retry"
)

// ErrSerialization simula un fallo de serialización (transitorio).
var ErrSerialization = errors.New("memorytest: could not serialize access")

// IsTransient clasificador de errores transitorios de este paquete.
func IsTransient(err error) bool { return errors.Is(err, ErrSerialization) }

type state struct {
	users     map[string]entity.User
	products  map[string]entity.Product
	communes  map[string]entity.Commune
	companies map[string]entity.Company

	usersDeleted     map[string]entity.DeletedUser
	productsDeleted  map[string]entity.DeletedProduct
	communesDeleted  map[string]entity.DeletedCommune
	companiesDeleted map[string]entity.DeletedCompany
}

func (s state) clone() state {
	return state{
		users:            maps.Clone(s.users),
		products:         maps.Clone(s.products),
		communes:         maps.Clone(s.communes),
		companies:        maps.Clone(s.companies),
		usersDeleted:     maps.Clone(s.usersDeleted),
		productsDeleted:  maps.Clone(s.productsDeleted),
		communesDeleted:  maps.Clone(s.communesDeleted),
		companiesDeleted: maps.Clone(s.companiesDeleted),
	}
}

// DB base de datos en memoria. También implementa ports.TxRunner.
type DB struct {
	mu sync.Mutex
	st state

	// Policy reintentos de Run; el clasificador se fija a IsTransient.
	Policy retry.Policy
	// BeforeCommit se invoca antes de confirmar; un error revierte la transacción.
	BeforeCommit func(attempt int) error

	attempts int
	now      func() time.Time
}

var _ ports.TxRunner = (*DB)(nil)

// New crea una base vacía sin reintentos.
func New() *DB {
	return &DB{
		st: state{
			users:            map[string]entity.User{},
			products:         map[string]entity.Product{},
			communes:         map[string]entity.Commune{},
			companies:        map[string]entity.Company{},
			usersDeleted:     map[string]entity.DeletedUser{},
			productsDeleted:  map[string]entity.DeletedProduct{},
			communesDeleted:  map[string]entity.DeletedCommune{},
			companiesDeleted: map[string]entity.DeletedCompany{},
		},
		Policy: retry.Policy{MaxAttempts: 1},
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Attempts cantidad total de intentos de transacción ejecutados.
func (db *DB) Attempts() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.attempts
}

// Run ejecuta fn con repos sobre una copia del estado; confirma solo si fn y BeforeCommit tienen éxito.
func (db *DB) Run(ctx context.Context, _ repository.TxOptions, fn func(ctx context.Context, s repository.Store) error) error {
	policy := db.Policy
	policy.Retryable = IsTransient
	err := policy.Do(ctx, func(ctx context.Context) error {
		db.mu.Lock()
		defer db.mu.Unlock()
		db.attempts++
		attempt := db.attempts

		work := db.st.clone()
		tx := &txState{st: &work, now: db.now}
		if err := fn(ctx, tx.store()); err != nil {
			return err
		}
		if db.BeforeCommit != nil {
			if err := db.BeforeCommit(attempt); err != nil {
				return err
			}
		}
		db.st = work
		return nil
	})
	if err != nil && IsTransient(err) {
		return errors.Join(domain.ErrTransient, err)
	}
	return err
}

// Seed helpers para tests.

func (db *DB) AddUser(u entity.User) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.st.users[u.ID] = u
}

func (db *DB) AddProduct(p entity.Product) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.st.products[p.ID] = p
}

func (db *DB) AddCommune(c entity.Commune) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.st.communes[c.ID] = c
}

func (db *DB) AddCompany(c entity.Company) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.st.companies[c.ID] = c
}

// Counts cantidades vivas y archivadas por tipo (para asserts).
type Counts struct {
	Users, Products, Communes, Companies                         int
	UsersDeleted, ProductsDeleted, CommunesDeleted, CompaniesDeleted int
}

func (db *DB) Counts() Counts {
	db.mu.Lock()
	defer db.mu.Unlock()
	return Counts{
		Users: len(db.st.users), Products: len(db.st.products),
		Communes: len(db.st.communes), Companies: len(db.st.companies),
		UsersDeleted: len(db.st.usersDeleted), ProductsDeleted: len(db.st.productsDeleted),
		CommunesDeleted: len(db.st.communesDeleted), CompaniesDeleted: len(db.st.companiesDeleted),
	}
}

// DeletedCompany devuelve la copia archivada de una empresa, si existe.
func (db *DB) DeletedCompany(id string) (entity.DeletedCompany, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	c, ok := db.st.companiesDeleted[id]
	return c, ok
}

// DeletedUser devuelve la copia archivada de un usuario, si existe.
func (db *DB) DeletedUser(id string) (entity.DeletedUser, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.st.usersDeleted[id]
	return u, ok
}

// Companies devuelve las empresas vivas ordenadas por ID.
func (db *DB) Companies() []entity.Company {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]entity.Company, 0, len(db.st.companies))
	for _, c := range db.st.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type txState struct {
	st  *state
	now func() time.Time
}

func (t *txState) store() repository.Store {
	return repository.Store{
		Users:     userRepo{t},
		Products:  productRepo{t},
		Communes:  communeRepo{t},
		Companies: companyRepo{t},
		Archive:   archiveRepo{t},
	}
}

type userRepo struct{ t *txState }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.t.st.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.t.st.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.t.st.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.t.st.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) GetByVerificationToken(_ context.Context, token string) (*entity.User, error) {
	for _, u := range r.t.st.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) update(id string, fn func(u *entity.User)) error {
	u, ok := r.t.st.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	fn(&u)
	r.t.st.users[id] = u
	return nil
}

func (r userRepo) SetVerificationToken(_ context.Context, id, token string, expires time.Time) error {
	return r.update(id, func(u *entity.User) {
		u.VerificationToken = &token
		u.VerificationTokenExpires = &expires
	})
}

func (r userRepo) MarkEmailVerified(_ context.Context, id string) error {
	return r.update(id, func(u *entity.User) {
		u.EmailVerified = true
		u.VerificationToken = nil
		u.VerificationTokenExpires = nil
	})
}

func (r userRepo) SetRole(_ context.Context, id, role string) error {
	return r.update(id, func(u *entity.User) { u.Role = role })
}

type productRepo struct{ t *txState }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.t.st.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.t.st.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r productRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.t.st.products))
	for _, p := range r.t.st.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameES < out[j].NameES })
	return out, nil
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.t.st.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.t.st.products[p.ID] = *p
	return nil
}

func (r productRepo) CountCompanies(_ context.Context, id string) (int, error) {
	n := 0
	for _, c := range r.t.st.companies {
		if c.ProductID == id {
			n++
		}
	}
	return n, nil
}

type communeRepo struct{ t *txState }

func (r communeRepo) Create(_ context.Context, c *entity.Commune) error {
	r.t.st.communes[c.ID] = *c
	return nil
}

func (r communeRepo) GetByID(_ context.Context, id string) (*entity.Commune, error) {
	if c, ok := r.t.st.communes[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r communeRepo) List(_ context.Context) ([]*entity.Commune, error) {
	out := make([]*entity.Commune, 0, len(r.t.st.communes))
	for _, c := range r.t.st.communes {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r communeRepo) Update(_ context.Context, c *entity.Commune) error {
	if _, ok := r.t.st.communes[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.t.st.communes[c.ID] = *c
	return nil
}

func (r communeRepo) CountCompanies(_ context.Context, id string) (int, error) {
	n := 0
	for _, c := range r.t.st.companies {
		if c.CommuneID == id {
			n++
		}
	}
	return n, nil
}

type companyRepo struct{ t *txState }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	for _, existing := range r.t.st.companies {
		if existing.UserID == c.UserID {
			return domain.ErrCompanyAlreadyExists
		}
	}
	r.t.st.companies[c.ID] = *c
	return nil
}

func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if c, ok := r.t.st.companies[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r companyRepo) detail(c entity.Company) *entity.CompanyDetail {
	d := &entity.CompanyDetail{Company: c}
	if u, ok := r.t.st.users[c.UserID]; ok {
		d.UserName, d.UserEmail = u.Name, u.Email
	}
	if p, ok := r.t.st.products[c.ProductID]; ok {
		d.ProductNameES, d.ProductNameEN = p.NameES, p.NameEN
	}
	if cm, ok := r.t.st.communes[c.CommuneID]; ok {
		d.CommuneName = cm.Name
	}
	return d
}

func (r companyRepo) GetDetail(_ context.Context, id string) (*entity.CompanyDetail, error) {
	c, ok := r.t.st.companies[id]
	if !ok {
		return nil, nil
	}
	return r.detail(c), nil
}

func (r companyRepo) GetByOwner(_ context.Context, userID string) (*entity.Company, error) {
	for _, c := range r.t.st.companies {
		if c.UserID == userID {
			return &c, nil
		}
	}
	return nil, nil
}

func (r companyRepo) List(_ context.Context, f entity.CompanyFilter) ([]*entity.CompanyDetail, int, error) {
	var all []*entity.CompanyDetail
	for _, c := range r.t.st.companies {
		if f.ProductID != "" && c.ProductID != f.ProductID {
			continue
		}
		if f.CommuneID != "" && c.CommuneID != f.CommuneID {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Name)) {
			continue
		}
		all = append(all, r.detail(c))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	total := len(all)
	start := min(f.Offset, total)
	end := total
	if f.Limit > 0 {
		end = min(start+f.Limit, total)
	}
	return all[start:end], total, nil
}

func (r companyRepo) ListByOwner(_ context.Context, userID string) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.t.st.companies {
		if c.UserID == userID {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r companyRepo) Update(_ context.Context, c *entity.Company) error {
	if _, ok := r.t.st.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	c.UpdatedAt = r.t.now()
	r.t.st.companies[c.ID] = *c
	return nil
}

func (r companyRepo) DeleteByOwner(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, c := range r.t.st.companies {
		if c.UserID == userID {
			delete(r.t.st.companies, id)
			n++
		}
	}
	return n, nil
}

type archiveRepo struct{ t *txState }

func (r archiveRepo) ArchiveUser(_ context.Context, id string) (*entity.DeletedUser, error) {
	u, ok := r.t.st.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for _, c := range r.t.st.companies {
		if c.UserID == id {
			return nil, domain.NewConflict("user referenciado por otros registros", 0)
		}
	}
	d := entity.DeletedUser{User: u, DeletedAt: r.t.now()}
	r.t.st.usersDeleted[id] = d
	delete(r.t.st.users, id)
	return &d, nil
}

func (r archiveRepo) ArchiveProduct(_ context.Context, id string) (*entity.DeletedProduct, error) {
	p, ok := r.t.st.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	d := entity.DeletedProduct{Product: p, DeletedAt: r.t.now()}
	r.t.st.productsDeleted[id] = d
	delete(r.t.st.products, id)
	return &d, nil
}

func (r archiveRepo) ArchiveCommune(_ context.Context, id string) (*entity.DeletedCommune, error) {
	c, ok := r.t.st.communes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	d := entity.DeletedCommune{Commune: c, DeletedAt: r.t.now()}
	r.t.st.communesDeleted[id] = d
	delete(r.t.st.communes, id)
	return &d, nil
}

func (r archiveRepo) ArchiveCompany(_ context.Context, id string) (*entity.DeletedCompany, error) {
	c, ok := r.t.st.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	d := entity.DeletedCompany{Company: c, DeletedAt: r.t.now()}
	r.t.st.companiesDeleted[id] = d
	delete(r.t.st.companies, id)
	return &d, nil
}

func (r archiveRepo) ArchiveCompaniesByOwner(_ context.Context, userID string) ([]*entity.DeletedCompany, error) {
	var out []*entity.DeletedCompany
	for _, c := range r.t.st.companies {
		if c.UserID != userID {
			continue
		}
		d := entity.DeletedCompany{Company: c, DeletedAt: r.t.now()}
		r.t.st.companiesDeleted[c.ID] = d
		out = append(out, &d)
	}
	return out, nil
}
