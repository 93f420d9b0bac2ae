package main

import (
	"fmt"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Proveo-api/internal/application/index"
	"github.com/jhoicas/Proveo-api/internal/infrastructure/postgres"
)

const concurrentFlag = "concurrent"

var concurrent = &cobraflags.BoolFlag{
	Name:  concurrentFlag,
	Value: false,
	Usage: "REFRESH ... CONCURRENTLY (no bloquea lecturas)",
}

var indexFlags = map[string]cobraflags.Flag{
	concurrentFlag: concurrent,
}

func newRefreshIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh-index",
		Short: "Reconstruye el índice de búsqueda desde las tablas vivas",
		Args:  cobra.NoArgs,
		RunE:  refreshIndex,
	}
	cobraflags.RegisterMap(cmd, indexFlags)
	return cmd
}

func refreshIndex(c *cobra.Command, _ []string) error {
	e, err := connect(c.Context())
	if err != nil {
		return err
	}
	defer e.pool.Close()

	mode := concurrent.GetBool()
	r := index.NewRefresher(postgres.NewSearchIndex(e.pool), index.Options{}, e.log, nil)
	start := time.Now()
	if err := r.Rebuild(c.Context(), mode); err != nil {
		return err
	}
	fmt.Printf("índice reconstruido en %s (concurrent=%t)\n", time.Since(start).Round(time.Millisecond), mode)
	return nil
}
