package config

import (
	"log"

	"corebank/internal/adapters/persistence/models"
	"corebank/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedMasterData seeds the master tables that role derivation and the
// loan workflow depend on. Safe to run on every startup.
func SeedMasterData(db *gorm.DB) error {
	if err := seedPositions(db); err != nil {
		return err
	}

	if err := seedAccountTypes(db); err != nil {
		return err
	}

	if err := seedLoanTypes(db); err != nil {
		return err
	}

	log.Println("Master data seeded")
	return nil
}

func seedPositions(db *gorm.DB) error {
	positions := []models.Position{
		{Name: domain.PositionTechnician},
		{Name: domain.PositionBranchManager},
		{Name: domain.PositionGeneralEmployee},
	}

	for _, p := range positions {
		if err := db.Where("name = ?", p.Name).FirstOrCreate(&p).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedAccountTypes(db *gorm.DB) error {
	types := []models.AccountType{
		{Name: "Savings"},
		{Name: "Cheque"},
		{Name: "Fixed Deposit"},
	}

	for _, t := range types {
		if err := db.Where("name = ?", t.Name).FirstOrCreate(&t).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedLoanTypes(db *gorm.DB) error {
	loanTypes := []models.LoanType{
		{
			Name:         "Personal Loan",
			InterestRate: decimal.NewFromFloat(12.50),
			IsActive:     true,
		},
		{
			Name:         "Home Loan",
			InterestRate: decimal.NewFromFloat(8.25),
			IsActive:     true,
		},
		{
			Name:         "Vehicle Loan",
			InterestRate: decimal.NewFromFloat(10.75),
			IsActive:     true,
		},
	}

	for _, lt := range loanTypes {
		if err := db.Where("name = ?", lt.Name).FirstOrCreate(&lt).Error; err != nil {
			return err
		}
	}

	return nil
}
