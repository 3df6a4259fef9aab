package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/Darekar-Ishita/Trading-website/internal/domain"
)

func TestBuyValidation(t *testing.T) {
	// Validation rejects before any persistence is touched, so no
	// database is needed here.
	wallets := NewWalletService(nil)
	trades := NewTradeService(nil, wallets, NewOrderBook(nil))

	cases := []struct {
		name     string
		symbol   string
		price    float64
		quantity int
	}{
		{"empty symbol", "", 100, 5},
		{"zero price", "ABC", 0, 5},
		{"negative price", "ABC", -1, 5},
		{"zero quantity", "ABC", 100, 0},
		{"negative quantity", "ABC", 100, -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := trades.Buy(1, tc.symbol, tc.price, tc.quantity)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSellValidation(t *testing.T) {
	wallets := NewWalletService(nil)
	trades := NewTradeService(nil, wallets, NewOrderBook(nil))

	if _, _, err := trades.Sell(1, 1, 0, 5); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for zero price, got %v", err)
	}
	if _, _, err := trades.Sell(1, 1, 100, 0); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for zero quantity, got %v", err)
	}
}

func TestBuyDebitsWalletAndOpensPosition(t *testing.T) {
	db := setupTestDB(t)
	_, trades, _ := newTestServices(db)

	userID := createTestUser(t, db, 1000)

	order, balance, err := trades.Buy(userID, "ABC", 100, 5)
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if balance != 500 {
		t.Errorf("expected balance 500, got %v", balance)
	}
	if order.StockSymbol != "ABC" || order.Price != 100 || order.Quantity != 5 {
		t.Errorf("unexpected order: %+v", order)
	}
	if order.Type != "BUY" {
		t.Errorf("expected BUY order, got %q", order.Type)
	}

	orders, err := trades.Orders(userID)
	if err != nil {
		t.Fatalf("listing orders failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != order.ID {
		t.Errorf("expected the new order in the listing, got %+v", orders)
	}
}

func TestBuyInsufficientFundsMutatesNothing(t *testing.T) {
	db := setupTestDB(t)
	wallets, trades, _ := newTestServices(db)

	userID := createTestUser(t, db, 100)

	_, _, err := trades.Buy(userID, "ABC", 100, 5)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	balance, _ := wallets.Balance(userID)
	if balance != 100 {
		t.Errorf("expected balance unchanged at 100, got %v", balance)
	}
	orders, _ := trades.Orders(userID)
	if len(orders) != 0 {
		t.Errorf("expected no orders, got %+v", orders)
	}
}

func TestTwoBuysSameSymbolAreSeparatePositions(t *testing.T) {
	db := setupTestDB(t)
	_, trades, _ := newTestServices(db)

	userID := createTestUser(t, db, 1000)

	if _, _, err := trades.Buy(userID, "ABC", 100, 2); err != nil {
		t.Fatal(err)
	}
	if _, _, err := trades.Buy(userID, "ABC", 110, 3); err != nil {
		t.Fatal(err)
	}

	orders, _ := trades.Orders(userID)
	if len(orders) != 2 {
		t.Errorf("expected 2 separate positions, got %d", len(orders))
	}
}

func TestSellFullQuantityClosesPosition(t *testing.T) {
	db := setupTestDB(t)
	wallets, trades, _ := newTestServices(db)

	// Scenario from the wallet accounting contract: 1000 → buy 5@100
	// → 500 → sell 5@120 → 1100, position gone.
	userID := createTestUser(t, db, 1000)
	order, _, err := trades.Buy(userID, "ABC", 100, 5)
	if err != nil {
		t.Fatal(err)
	}

	remaining, balance, err := trades.Sell(userID, order.ID, 120, 5)
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if remaining != nil {
		t.Errorf("expected fully closed position, got %+v", remaining)
	}
	if balance != 1100 {
		t.Errorf("expected balance 1100, got %v", balance)
	}

	orders, _ := trades.Orders(userID)
	if len(orders) != 0 {
		t.Errorf("expected closed position gone from listing, got %+v", orders)
	}

	walletBalance, _ := wallets.Balance(userID)
	if walletBalance != 1100 {
		t.Errorf("expected persisted balance 1100, got %v", walletBalance)
	}
}

func TestSellPartialQuantityDecrementsPosition(t *testing.T) {
	db := setupTestDB(t)
	_, trades, _ := newTestServices(db)

	userID := createTestUser(t, db, 1000)
	order, _, err := trades.Buy(userID, "ABC", 100, 5)
	if err != nil {
		t.Fatal(err)
	}

	remaining, balance, err := trades.Sell(userID, order.ID, 110, 2)
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if remaining == nil || remaining.Quantity != 3 {
		t.Errorf("expected 3 units remaining, got %+v", remaining)
	}
	if balance != 720 { // 500 + 2*110
		t.Errorf("expected balance 720, got %v", balance)
	}
}

func TestSellQuantityExceedsOwned(t *testing.T) {
	db := setupTestDB(t)
	wallets, trades, _ := newTestServices(db)

	userID := createTestUser(t, db, 1000)
	order, _, err := trades.Buy(userID, "ABC", 100, 5)
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = trades.Sell(userID, order.ID, 100, 6)
	if !errors.Is(err, domain.ErrQuantityExceedsOwned) {
		t.Fatalf("expected ErrQuantityExceedsOwned, got %v", err)
	}

	// Neither wallet nor order mutated.
	balance, _ := wallets.Balance(userID)
	if balance != 500 {
		t.Errorf("expected balance unchanged at 500, got %v", balance)
	}
	orders, _ := trades.Orders(userID)
	if len(orders) != 1 || orders[0].Quantity != 5 {
		t.Errorf("expected position unchanged, got %+v", orders)
	}
}

func TestSellForeignOrderIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, trades, _ := newTestServices(db)

	owner := createTestUser(t, db, 1000)
	attacker := createTestUser(t, db, 1000)

	order, _, err := trades.Buy(owner, "ABC", 100, 5)
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = trades.Sell(attacker, order.ID, 100, 5)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound for another user's order, got %v", err)
	}
}

func TestConcurrentBuysSameUser(t *testing.T) {
	db := setupTestDB(t)
	wallets, trades, _ := newTestServices(db)

	userID := createTestUser(t, db, 10000)

	const numTrades = 10
	var wg sync.WaitGroup
	errs := make(chan error, numTrades)
	for i := 0; i < numTrades; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := trades.Buy(userID, "AAPL", 100, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent buy failed: %v", err)
		}
	}

	balance, _ := wallets.Balance(userID)
	if balance != 10000-100*numTrades {
		t.Errorf("lost update detected: expected balance %v, got %v", 10000-100*numTrades, balance)
	}
}

func TestConcurrentBuysNeverOverdraw(t *testing.T) {
	db := setupTestDB(t)
	wallets, trades, _ := newTestServices(db)

	// Balance covers only 3 of the 10 attempted buys.
	userID := createTestUser(t, db, 300)

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := trades.Buy(userID, "AAPL", 100, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 3 {
		t.Errorf("expected exactly 3 buys to succeed, got %d", succeeded)
	}

	balance, _ := wallets.Balance(userID)
	if balance < 0 {
		t.Errorf("balance went negative: %v", balance)
	}
}
