// Command seed fills the configured database with demo cards and
// transactions for local development.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"

	"cardbook/internal/config"
	"cardbook/internal/core"
	"cardbook/internal/ledger"
	"cardbook/internal/log"
	"cardbook/internal/storage"
)

var categories = []string{
	"Groceries", "Rent", "Transport", "Utilities",
	"Dining", "Health", "Entertainment", "Other",
}

func main() {
	cards := flag.Int("cards", 3, "number of cards to create")
	txPerCard := flag.Int("transactions", 25, "number of transactions per card")
	months := flag.Int("months", 6, "how many months back transactions spread over")
	flag.Parse()

	godotenv.Load()

	logger := log.New(log.Config{Component: log.ComponentSeed})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	store, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	svc := ledger.NewService(store, nil)
	ctx := context.Background()

	for i := 0; i < *cards; i++ {
		cardType := core.Debit
		if gofakeit.Bool() {
			cardType = core.Credit
		}

		card, err := svc.CreateCard(ctx, core.Card{
			Name:    gofakeit.Company() + " " + gofakeit.CreditCardType(),
			Type:    cardType,
			Balance: core.Money{Cents: int64(gofakeit.Number(0, 500000))},
		})
		if err != nil {
			logger.Error("Failed to create card", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Card created",
			log.FieldCardID, card.ID,
			log.FieldCardName, card.Name,
			log.FieldCardType, card.Type)

		for j := 0; j < *txPerCard; j++ {
			txType := core.Expense
			if gofakeit.Number(0, 9) < 3 {
				txType = core.Income
			}

			daysBack := gofakeit.Number(0, *months*30)
			tx := core.Transaction{
				CardID:      card.ID,
				Type:        txType,
				Amount:      core.Money{Cents: int64(gofakeit.Number(100, 250000))},
				Description: gofakeit.ProductName(),
				Category:    categories[gofakeit.Number(0, len(categories)-1)],
				Date:        time.Now().AddDate(0, 0, -daysBack),
			}
			if txType == core.Income {
				tx.Description = gofakeit.JobTitle() + " payment"
				tx.Category = "Salary"
			}

			if _, _, err := svc.RecordTransaction(ctx, tx); err != nil {
				logger.Error("Failed to record transaction", log.FieldError, err,
					log.FieldCardID, card.ID)
				os.Exit(1)
			}
		}
	}

	logger.Info("Seeding complete",
		"cards", *cards, "transactions", *cards*(*txPerCard))
}
