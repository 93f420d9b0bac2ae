package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, user_id, product_id, commune_id, name, description_es, description_en,
	address, phone, email, image_url, created_at, updated_at`

const companyDetailSelect = `
	SELECT c.id, c.user_id, c.product_id, c.commune_id, c.name, c.description_es, c.description_en,
	       c.address, c.phone, c.email, c.image_url, c.created_at, c.updated_at,
	       u.name, u.email, p.name_es, p.name_en, cm.name
	  FROM companies c
	  JOIN users u     ON u.id = c.user_id
	  JOIN products p  ON p.id = c.product_id
	  JOIN communes cm ON cm.id = c.commune_id`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

func companyFields(c *entity.Company) []any {
	return []any{&c.ID, &c.UserID, &c.ProductID, &c.CommuneID, &c.Name, &c.DescriptionES,
		&c.DescriptionEN, &c.Address, &c.Phone, &c.Email, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt}
}

func scanCompanyDetail(row pgx.Row) (*entity.CompanyDetail, error) {
	var d entity.CompanyDetail
	dest := append(companyFields(&d.Company),
		&d.UserName, &d.UserEmail, &d.ProductNameES, &d.ProductNameEN, &d.CommuneName)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &d, nil
}

// companyWriteError traduce violaciones de constraints a errores de dominio.
func companyWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		return domain.ErrCompanyAlreadyExists
	}
	if isForeignKeyViolation(err) {
		_, pgErr := pgCode(err)
		switch pgErr.ConstraintName {
		case "fk_companies_product":
			return domain.NewValidation("product_id", "el producto no existe")
		case "fk_companies_commune":
			return domain.NewValidation("commune_id", "la comuna no existe")
		default:
			return domain.NewValidation("user_id", "el usuario no existe")
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.UserID, c.ProductID, c.CommuneID, c.Name, c.DescriptionES, c.DescriptionEN,
		c.Address, c.Phone, c.Email, c.ImageURL, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return companyWriteError("insert company", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id).
		Scan(companyFields(&c)...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// GetDetail obtiene una empresa con dueño, producto y comuna.
func (r *CompanyRepo) GetDetail(ctx context.Context, id string) (*entity.CompanyDetail, error) {
	d, err := scanCompanyDetail(r.q.QueryRow(ctx, companyDetailSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company detail: %w", err)
	}
	return d, nil
}

// GetByOwner obtiene la empresa del usuario, si tiene.
func (r *CompanyRepo) GetByOwner(ctx context.Context, userID string) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE user_id = $1`, userID).
		Scan(companyFields(&c)...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by owner: %w", err)
	}
	return &c, nil
}

// List devuelve empresas filtradas y el total sin paginar.
func (r *CompanyRepo) List(ctx context.Context, f entity.CompanyFilter) ([]*entity.CompanyDetail, int, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}
	if f.ProductID != "" {
		add("c.product_id = ?", f.ProductID)
	}
	if f.CommuneID != "" {
		add("c.commune_id = ?", f.CommuneID)
	}
	if f.Name != "" {
		add("c.name ILIKE ?", "%"+escapeLike(f.Name)+"%")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM companies c`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	n := len(args)
	query := companyDetailSelect + where +
		fmt.Sprintf(" ORDER BY c.created_at DESC, c.id LIMIT $%d OFFSET $%d", n+1, n+2)
	rows, err := r.q.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyDetail
	for rows.Next() {
		d, err := scanCompanyDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

// ListByOwner bloquea y devuelve las empresas del usuario.
func (r *CompanyRepo) ListByOwner(ctx context.Context, userID string) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE user_id = $1 ORDER BY id FOR UPDATE`, userID)
	if err != nil {
		return nil, fmt.Errorf("list companies by owner: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(companyFields(&c)...); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update persiste todos los campos editables y renueva updated_at.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies
		   SET product_id = $2, commune_id = $3, name = $4, description_es = $5, description_en = $6,
		       address = $7, phone = $8, email = $9, image_url = $10, updated_at = now()
		 WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		c.ID, c.ProductID, c.CommuneID, c.Name, c.DescriptionES, c.DescriptionEN,
		c.Address, c.Phone, c.Email, c.ImageURL,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return companyWriteError("update company", err)
	}
	return nil
}

// DeleteByOwner borra todas las empresas del usuario y devuelve cuántas eran.
func (r *CompanyRepo) DeleteByOwner(ctx context.Context, userID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM companies WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete companies by owner: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
