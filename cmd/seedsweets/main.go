// cmd/seedsweets loads the demo catalog into the database.
// Safe to re-run: existing sweets (matched by name) are left alone, and rows
// created before image support gained a default image are backfilled.
// Usage: go run ./cmd/seedsweets
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/config"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/dto"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/infra"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/repository"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/service"
)

type seedSweet struct {
	name     string
	category string
	price    string
	quantity int
}

var catalog = []seedSweet{
	{"Gulab Jamun", "Indian", "3.99", 50},
	{"Rasgulla", "Indian", "3.49", 60},
	{"Kaju Katli", "Indian", "6.99", 40},
	{"Jalebi", "Indian", "2.99", 80},
	{"Ladoo", "Indian", "2.49", 90},
	{"Barfi", "Indian", "4.49", 55},
	{"Soan Papdi", "Indian", "3.29", 70},
	{"Mysore Pak", "Indian", "4.99", 45},

	{"Chocolate Truffle", "Chocolate", "4.99", 40},
	{"Dark Chocolate Bark", "Chocolate", "5.49", 35},
	{"Chocolate Fudge", "Chocolate", "4.59", 50},

	{"Gummy Bears", "Candy", "2.19", 120},
	{"Sour Worms", "Candy", "2.49", 110},
	{"Lollipop", "Candy", "1.29", 200},
	{"Caramel Toffee", "Candy", "2.79", 95},

	{"Red Velvet Cupcake", "Cake", "3.75", 30},
	{"Cheesecake Slice", "Cake", "4.25", 28},
	{"Chocolate Brownie", "Cake", "3.25", 44},

	{"Butter Cookies", "Cookie", "2.99", 75},
	{"Choco Chip Cookies", "Cookie", "3.19", 80},

	{"Vanilla Ice Cream Cup", "Ice_Cream", "2.89", 65},
	{"Mango Kulfi", "Ice_Cream", "3.39", 55},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx := context.Background()
	repo := repository.NewSweetRepository(db)
	// nil redis: the seeder has no cache to keep coherent
	svc := service.NewSweetService(repo, nil)

	existing, err := repo.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list sweets")
	}
	byName := make(map[string]bool, len(existing))
	for i := range existing {
		byName[existing[i].Name] = true
	}

	// Backfill defaults for rows created before image support
	backfilled := 0
	for i := range existing {
		if existing[i].ImageURL != nil {
			continue
		}
		if _, err := svc.Update(ctx, existing[i].ID, dto.UpdateSweetRequest{}); err != nil {
			log.Error().Err(err).Str("sweet", existing[i].Name).Msg("backfill failed")
			continue
		}
		backfilled++
	}

	created := 0
	for _, s := range catalog {
		if byName[s.name] {
			continue
		}
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			log.Fatal().Err(err).Str("sweet", s.name).Msg("bad seed price")
		}
		if _, err := svc.Create(ctx, dto.CreateSweetRequest{
			Name:     s.name,
			Category: s.category,
			Price:    price,
			Quantity: s.quantity,
		}); err != nil {
			log.Error().Err(err).Str("sweet", s.name).Msg("seed failed")
			continue
		}
		created++
	}

	log.Info().Int("created", created).Int("backfilled", backfilled).Msg("seed complete")
}
