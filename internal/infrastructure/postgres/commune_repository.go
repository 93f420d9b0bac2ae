package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
)

var _ repository.CommuneRepository = (*CommuneRepo)(nil)

// CommuneRepo implementación del puerto CommuneRepository sobre PostgreSQL.
type CommuneRepo struct {
	q Querier
}

// NewCommuneRepository construye el adaptador de persistencia para comunas.
func NewCommuneRepository(q Querier) *CommuneRepo {
	return &CommuneRepo{q: q}
}

func (r *CommuneRepo) Create(ctx context.Context, c *entity.Commune) error {
	_, err := r.q.Exec(ctx, `INSERT INTO communes (id, name, created_at) VALUES ($1, $2, $3)`,
		c.ID, c.Name, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert commune: %w", err)
	}
	return nil
}

func (r *CommuneRepo) GetByID(ctx context.Context, id string) (*entity.Commune, error) {
	var c entity.Commune
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at FROM communes WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commune: %w", err)
	}
	return &c, nil
}

func (r *CommuneRepo) List(ctx context.Context) ([]*entity.Commune, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM communes ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list communes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Commune
	for rows.Next() {
		var c entity.Commune
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan commune: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CommuneRepo) Update(ctx context.Context, c *entity.Commune) error {
	cmd, err := r.q.Exec(ctx, `UPDATE communes SET name = $2 WHERE id = $1`, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("update commune: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CommuneRepo) CountCompanies(ctx context.Context, id string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM companies WHERE commune_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count companies by commune: %w", err)
	}
	return n, nil
}
