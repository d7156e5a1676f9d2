// File: cmd/seed/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"alertpe-admin/internal/config"
	pg "alertpe-admin/internal/infra/db/postgres"
	"alertpe-admin/internal/infra/logging"
	"alertpe-admin/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Log, true)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := pg.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	planUC := usecase.NewPlanUseCase(pg.NewPlanRepo(pool), logger)

	// If plans already exist, do nothing
	plans, err := planUC.List(ctx)
	if err != nil {
		log.Fatalf("list plans: %v", err)
	}
	if len(plans) > 0 {
		fmt.Printf("%d plans already present. No changes.\n", len(plans))
		for _, p := range plans {
			fmt.Printf("  - %s (monthly=%d, yearly=%d)\n", p.Name, p.MonthlyPrice, p.YearlyPrice)
		}
		return
	}

	seed := []usecase.PlanInput{
		{Name: "Basic", MonthlyPrice: 99, YearlyPrice: 999, Duration: "monthly", Features: []string{"UPI alerts", "Daily reports"}},
		{Name: "Pro", MonthlyPrice: 199, YearlyPrice: 1999, Duration: "monthly", Features: []string{"UPI alerts", "Daily reports", "QR Code Generation", "Priority support"}},
		{Name: "Business", MonthlyPrice: 499, YearlyPrice: 4999, Duration: "yearly", Features: []string{"Everything in Pro", "Multi-device", "Export"}},
	}
	for _, in := range seed {
		p, err := planUC.Create(ctx, in)
		if err != nil {
			log.Fatalf("seed plan %q: %v", in.Name, err)
		}
		fmt.Printf("created plan %s (%s)\n", p.Name, p.ID)
	}
}
