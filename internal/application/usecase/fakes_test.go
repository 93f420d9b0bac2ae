package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/memorytest"
)

const (
	adminID   = "00000000-0000-0000-0000-00000000000a"
	ownerID   = "00000000-0000-0000-0000-000000000001"
	otherID   = "00000000-0000-0000-0000-000000000002"
	productID = "00000000-0000-0000-0000-0000000000b1"
	communeID = "00000000-0000-0000-0000-0000000000c1"
)

var (
	asAdmin = entity.Requester{UserID: adminID, Role: entity.RoleAdmin}
	asOwner = entity.Requester{UserID: ownerID, Role: entity.RoleUser}
	asOther = entity.Requester{UserID: otherID, Role: entity.RoleUser}
)

// fakeRefresher registra las operaciones que pidieron refresco.
type fakeRefresher struct {
	mu  sync.Mutex
	ops []string
	err error
}

func (f *fakeRefresher) AfterCommit(_ context.Context, op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, op)
	if f.err != nil {
		return &domain.RefreshError{Op: op, Err: f.err}
	}
	return nil
}

func (f *fakeRefresher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}

type fakeTranslator struct {
	out   string
	err   error
	calls int
	from  string
	to    string
}

func (f *fakeTranslator) Translate(_ context.Context, text, from, to string) (string, error) {
	f.calls++
	f.from, f.to = from, to
	if f.err != nil {
		return "", f.err
	}
	if f.out == "" {
		return text, nil
	}
	return f.out, nil
}

type fakeImages struct{}

func (fakeImages) Resolve(ref string) (string, error) {
	if strings.HasPrefix(ref, "bad:") {
		return "", errors.New("referencia de imagen inválida")
	}
	return ref, nil
}

// fakeSearchIndex devuelve resultados fijos y guarda la última consulta.
type fakeSearchIndex struct {
	last    repository.SearchQuery
	calls   int
	results []*entity.SearchResult
	err     error
}

func (f *fakeSearchIndex) Search(_ context.Context, q repository.SearchQuery) ([]*entity.SearchResult, error) {
	f.calls++
	f.last = q
	return f.results, f.err
}

func (f *fakeSearchIndex) Refresh(context.Context, bool) error { return nil }

// seededDB base con un admin, dos usuarios, un producto y una comuna.
func seededDB() *memorytest.DB {
	db := memorytest.New()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db.AddUser(entity.User{ID: adminID, Name: "Admin", Email: "admin@proveo.test", Role: entity.RoleAdmin, CreatedAt: now})
	db.AddUser(entity.User{ID: ownerID, Name: "Joe", Email: "joe@proveo.test", Role: entity.RoleUser, CreatedAt: now})
	db.AddUser(entity.User{ID: otherID, Name: "Ana", Email: "ana@proveo.test", Role: entity.RoleUser, CreatedAt: now})
	db.AddProduct(entity.Product{ID: productID, NameES: "Panadería", NameEN: "Bakery Goods", CreatedAt: now})
	db.AddCommune(entity.Commune{ID: communeID, Name: "Springfield", CreatedAt: now})
	return db
}
