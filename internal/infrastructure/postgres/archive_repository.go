package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/internal/domain/entity"
	"github.com/jhoicas/Proveo-api/internal/domain/repository"
)

var _ repository.ArchiveRepository = (*ArchiveRepo)(nil)

// archiveTable describe una tabla viva y su sombra *_deleted (mismas columnas + deleted_at).
type archiveTable struct {
	kind    entity.Kind
	live    string
	shadow  string
	columns string
}

var (
	usersTable     = archiveTable{entity.KindUser, "users", "users_deleted", userColumns}
	productsTable  = archiveTable{entity.KindProduct, "products", "products_deleted", "id, name_es, name_en, created_at"}
	communesTable  = archiveTable{entity.KindCommune, "communes", "communes_deleted", "id, name, created_at"}
	companiesTable = archiveTable{entity.KindCompany, "companies", "companies_deleted", companyColumns}
)

// ArchiveRepo motor de archivado: copia a la sombra y borra la fila viva.
type ArchiveRepo struct {
	q Querier
}

// NewArchiveRepository construye el motor sobre una transacción (o el pool en tests).
func NewArchiveRepository(q Querier) *ArchiveRepo {
	return &ArchiveRepo{q: q}
}

// archiveOne bloquea la fila, la inserta en la sombra y la borra, en ese orden.
// fields devuelve los destinos de Scan para columns + deleted_at.
func archiveOne[T any](ctx context.Context, q Querier, t archiveTable, id string, fields func(*T) []any) (*T, error) {
	var locked string
	err := q.QueryRow(ctx, `SELECT id FROM `+t.live+` WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock %s: %w", t.kind, err)
	}

	var out T
	insert := fmt.Sprintf(`
		INSERT INTO %[2]s (%[3]s, deleted_at)
		SELECT %[3]s, now() FROM %[1]s WHERE id = $1
		RETURNING %[3]s, deleted_at`, t.live, t.shadow, t.columns)
	if err := q.QueryRow(ctx, insert, id).Scan(fields(&out)...); err != nil {
		return nil, fmt.Errorf("archive %s: %w", t.kind, err)
	}

	cmd, err := q.Exec(ctx, `DELETE FROM `+t.live+` WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewConflict(fmt.Sprintf("%s referenciado por otros registros", t.kind), 0)
		}
		return nil, fmt.Errorf("delete %s: %w", t.kind, err)
	}
	if cmd.RowsAffected() != 1 {
		return nil, fmt.Errorf("delete %s: %d filas afectadas", t.kind, cmd.RowsAffected())
	}
	return &out, nil
}

func deletedUserFields(u *entity.DeletedUser) []any {
	return []any{&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.EmailVerified,
		&u.VerificationToken, &u.VerificationTokenExpires, &u.CreatedAt, &u.DeletedAt}
}

func deletedCompanyFields(c *entity.DeletedCompany) []any {
	return append(companyFields(&c.Company), &c.DeletedAt)
}

// ArchiveUser archiva un usuario. Sus empresas deben haberse archivado antes.
func (r *ArchiveRepo) ArchiveUser(ctx context.Context, id string) (*entity.DeletedUser, error) {
	return archiveOne(ctx, r.q, usersTable, id, deletedUserFields)
}

// ArchiveProduct archiva un producto sin referencias.
func (r *ArchiveRepo) ArchiveProduct(ctx context.Context, id string) (*entity.DeletedProduct, error) {
	return archiveOne(ctx, r.q, productsTable, id, func(p *entity.DeletedProduct) []any {
		return []any{&p.ID, &p.NameES, &p.NameEN, &p.CreatedAt, &p.DeletedAt}
	})
}

// ArchiveCommune archiva una comuna sin referencias.
func (r *ArchiveRepo) ArchiveCommune(ctx context.Context, id string) (*entity.DeletedCommune, error) {
	return archiveOne(ctx, r.q, communesTable, id, func(c *entity.DeletedCommune) []any {
		return []any{&c.ID, &c.Name, &c.CreatedAt, &c.DeletedAt}
	})
}

// ArchiveCompany archiva una empresa.
func (r *ArchiveRepo) ArchiveCompany(ctx context.Context, id string) (*entity.DeletedCompany, error) {
	return archiveOne(ctx, r.q, companiesTable, id, deletedCompanyFields)
}

// ArchiveCompaniesByOwner copia todas las empresas del usuario a companies_deleted.
func (r *ArchiveRepo) ArchiveCompaniesByOwner(ctx context.Context, userID string) ([]*entity.DeletedCompany, error) {
	query := fmt.Sprintf(`
		INSERT INTO companies_deleted (%[1]s, deleted_at)
		SELECT %[1]s, now() FROM companies WHERE user_id = $1
		RETURNING %[1]s, deleted_at`, companyColumns)
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("archive companies by owner: %w", err)
	}
	defer rows.Close()

	var list []*entity.DeletedCompany
	for rows.Next() {
		var c entity.DeletedCompany
		if err := rows.Scan(deletedCompanyFields(&c)...); err != nil {
			return nil, fmt.Errorf("scan archived company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
