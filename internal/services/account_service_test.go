package services

import (
	"errors"
	"testing"

	apperrors "finbot/internal/errors"
	"finbot/internal/matching"
	"finbot/internal/testutil"
)

func TestAccountService_AddIncome(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewAccountService(db, matching.Substring{})
	user := testutil.CreateTestUser(t, db)

	t.Run("creates_account_on_first_income", func(t *testing.T) {
		account, err := service.AddIncome(user.ID, "Nubank", testutil.Amount(t, "1000"))
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, account.Balance, "1000")
		if account.BankName != "Nubank" {
			t.Errorf("expected bank Nubank, got %q", account.BankName)
		}
	})

	t.Run("accumulates_on_repeat_income", func(t *testing.T) {
		account, err := service.AddIncome(user.ID, "Nubank", testutil.Amount(t, "250.50"))
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, account.Balance, "1250.50")

		account, err = service.AddIncome(user.ID, "Nubank", testutil.Amount(t, "100"))
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, account.Balance, "1350.50")
	})

	t.Run("banks_are_independent", func(t *testing.T) {
		account, err := service.AddIncome(user.ID, "Itaú", testutil.Amount(t, "500"))
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, account.Balance, "500")
	})

	t.Run("blank_bank_rejected", func(t *testing.T) {
		_, err := service.AddIncome(user.ID, "  ", testutil.Amount(t, "10"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("non_positive_amount_rejected", func(t *testing.T) {
		_, err := service.AddIncome(user.ID, "Nubank", testutil.Amount(t, "0"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAccountService_GetAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewAccountService(db, matching.Substring{})
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	testutil.CreateTestAccount(t, db, user.ID, "Nubank", "1200")
	testutil.CreateTestAccount(t, db, user.ID, "Itaú", "800")
	testutil.CreateTestAccount(t, db, other.ID, "Nubank", "9999")

	t.Run("lists_all_ordered_by_bank", func(t *testing.T) {
		accounts, err := service.GetAccounts(user.ID, "")
		testutil.AssertNoError(t, err)
		if len(accounts) != 2 {
			t.Fatalf("expected 2 accounts, got %d", len(accounts))
		}
		if accounts[0].BankName != "Itaú" || accounts[1].BankName != "Nubank" {
			t.Errorf("unexpected order: %s, %s", accounts[0].BankName, accounts[1].BankName)
		}
	})

	t.Run("filters_by_bank_substring", func(t *testing.T) {
		accounts, err := service.GetAccounts(user.ID, "nu")
		testutil.AssertNoError(t, err)
		if len(accounts) != 1 || accounts[0].BankName != "Nubank" {
			t.Fatalf("expected only Nubank, got %+v", accounts)
		}
	})

	t.Run("does_not_leak_other_users", func(t *testing.T) {
		accounts, err := service.GetAccounts(user.ID, "nubank")
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, accounts[0].Balance, "1200")
	})
}

func TestAccountService_Debit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewAccountService(db, matching.Substring{})
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestAccount(t, db, user.ID, "Nubank", "300")

	t.Run("debits_matching_account", func(t *testing.T) {
		account, err := service.Debit(db, user.ID, "nubank", testutil.Amount(t, "120.25"))
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, account.Balance, "179.75")

		accounts, err := service.GetAccounts(user.ID, "Nubank")
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, accounts[0].Balance, "179.75")
	})

	t.Run("balance_can_go_negative", func(t *testing.T) {
		account, err := service.Debit(db, user.ID, "Nubank", testutil.Amount(t, "500"))
		testutil.AssertNoError(t, err)
		testutil.AssertAmount(t, account.Balance, "-320.25")
	})

	t.Run("unknown_bank", func(t *testing.T) {
		_, err := service.Debit(db, user.ID, "Bradesco", testutil.Amount(t, "10"))
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})
}
