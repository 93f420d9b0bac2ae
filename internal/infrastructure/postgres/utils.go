package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados por los repos.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeSerialization       = "40001"
	codeDeadlock            = "40P01"
	codeTooManyConnections  = "53300"
	codeAdminShutdown       = "57P01"
	codeCrashShutdown       = "57P02"
	codeCannotConnectNow    = "57P03"
	codeQueryCanceled       = "57014"
	codeInternalError       = "XX000"
)

func pgCode(err error) (string, *pgconn.PgError) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr
	}
	return "", nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	code, _ := pgCode(err)
	return code == codeUniqueViolation
}

// uniqueConstraint devuelve el nombre del constraint único violado ("" si no aplica).
func uniqueConstraint(err error) string {
	code, pgErr := pgCode(err)
	if code != codeUniqueViolation {
		return ""
	}
	return pgErr.ConstraintName
}

func isForeignKeyViolation(err error) bool {
	code, _ := pgCode(err)
	return code == codeForeignKeyViolation
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsTransient clasifica errores que justifican reintentar la transacción completa:
// pérdida de conexión (clase 08), serialización, deadlock, error interno, saturación
// y apagado del servidor. statement_timeout (57014) y la cancelación del cliente no se reintentan.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	code, _ := pgCode(err)
	switch {
	case code == codeQueryCanceled:
		return false
	case len(code) == 5 && code[:2] == "08":
		return true
	case code == codeSerialization, code == codeDeadlock, code == codeInternalError,
		code == codeTooManyConnections, code == codeAdminShutdown,
		code == codeCrashShutdown, code == codeCannotConnectNow:
		return true
	case code != "":
		return false
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}
