package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Proveo-api/internal/application/auth"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Proveo-api/pkg/retry"
)

const (
	nameFlag     = "name"
	emailFlag    = "email"
	passwordFlag = "password"
)

var adminFlags = map[string]cobraflags.Flag{
	nameFlag: &cobraflags.StringFlag{
		Name:  nameFlag,
		Value: "Administrador",
		Usage: "Nombre del administrador",
	},
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Email del administrador (requerido)",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Value: "",
		Usage: "Password; si se omite se lee PROVEO_ADMIN_PASSWORD",
	},
}

func newCreateAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Crea un administrador o promueve un usuario existente",
		Args:  cobra.NoArgs,
		RunE:  createAdmin,
	}
	cobraflags.RegisterMap(cmd, adminFlags)
	return cmd
}

func createAdmin(c *cobra.Command, _ []string) error {
	email := adminFlags[emailFlag].GetString()
	password := adminFlags[passwordFlag].GetString()
	if password == "" {
		password = os.Getenv("PROVEO_ADMIN_PASSWORD")
	}
	if email == "" || password == "" {
		return errors.New("--email y --password (o PROVEO_ADMIN_PASSWORD) son requeridos")
	}

	e, err := connect(c.Context())
	if err != nil {
		return err
	}
	defer e.pool.Close()

	policy := retry.Policy{
		MaxAttempts: e.cfg.Retry.Attempts,
		Multiplier:  e.cfg.Retry.WaitMultiplier,
		MaxWait:     e.cfg.Retry.MaxWait,
	}
	tx := postgres.NewTxRunner(e.pool, policy, e.log, nil)
	uc := auth.NewAuthUseCase(tx, auth.JWTConfig{
		Secret:     e.cfg.JWT.Secret,
		ExpMinutes: e.cfg.JWT.Expiration,
		Issuer:     e.cfg.JWT.Issuer,
	}, e.log)

	out, err := uc.CreateAdmin(c.Context(), adminFlags[nameFlag].GetString(), email, password)
	if err != nil {
		return err
	}
	fmt.Printf("admin listo: %s <%s>\n", out.ID, out.Email)
	return nil
}
