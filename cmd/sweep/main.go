// Binario del barrido diario de almacenaje, pensado para correr desde
// cron. Idempotente: relanzarlo el mismo día no duplica cobros.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/billing"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Bodega-api/pkg/config"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

func main() {
	dateFlag := flag.String("date", "", "fecha del barrido (YYYY-MM-DD, por defecto hoy)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	date := time.Now()
	if *dateFlag != "" {
		date, err = time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("fecha inválida, formato esperado YYYY-MM-DD")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usageUC := billing.NewUsageRecorder(
		postgres.NewBillingEventRepository(pool),
		postgres.NewPriceListRepository(pool),
		postgres.NewBalanceRepository(pool),
	)

	created, err := usageUC.RunDailyStorage(ctx, date)
	if err != nil {
		log.Fatal().Err(err).Msg("barrido de almacenaje")
	}
	log.Info().
		Str("date", date.Format("2006-01-02")).
		Int("events_created", created).
		Msg("barrido de almacenaje completado")
}
