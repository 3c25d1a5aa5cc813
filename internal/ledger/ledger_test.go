package ledger

import (
	"errors"
	"math"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/funildigital/prelander/internal/models"
	"github.com/funildigital/prelander/internal/repository"
	"github.com/funildigital/prelander/pkg/logger"
)

var tokenCodePattern = regexp.MustCompile(`^[0-9a-f]{16}$`)

func newTestLedger(t *testing.T) (models.LedgerI, models.Repository) {
	t.Helper()

	log, err := logger.NewLogger(true)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	db, err := repository.NewSQLiteDB(filepath.Join(t.TempDir(), "tokens.db"), log)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewLedger(db, log), db
}

func TestIssueMintsToken(t *testing.T) {
	led, _ := newTestLedger(t)

	token, err := led.Issue("abc123", "hadrielle-10", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tokenCodePattern.MatchString(token.Token) {
		t.Fatalf("token %q is not 16 hex characters", token.Token)
	}
	if token.User != "abc123" || token.Plano != "hadrielle-10" || token.Valor != 10 {
		t.Fatalf("unexpected token fields: %+v", token)
	}
	if !token.Active() {
		t.Fatal("issued token should be active")
	}
}

func TestIssueIsIdempotentWhileActive(t *testing.T) {
	led, _ := newTestLedger(t)

	first, err := led.Issue("abc123", "basic", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := led.Issue("abc123", "basic", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Token != second.Token {
		t.Fatalf("expected same token on re-issuance, got %q and %q", first.Token, second.Token)
	}
}

func TestIssueSeparatePerUserAndPlan(t *testing.T) {
	led, _ := newTestLedger(t)

	a, err := led.Issue("abc123", "basic", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := led.Issue("xyz", "basic", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := led.Issue("abc123", "premium", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Token == b.Token || a.Token == c.Token || b.Token == c.Token {
		t.Fatalf("tokens should differ across users and plans: %q %q %q", a.Token, b.Token, c.Token)
	}
}

func TestIssueRejectsInvalidPurchases(t *testing.T) {
	led, db := newTestLedger(t)

	cases := []struct {
		name  string
		plano string
		valor float64
	}{
		{"value below range", "p1", 5},
		{"value above range", "p1", 100.01},
		{"empty plan", "", 50},
		{"nan value", "p1", math.NaN()},
		{"infinite value", "p1", math.Inf(1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := led.Issue("u1", tc.plano, tc.valor)
			if !errors.Is(err, ErrInvalidPurchase) {
				t.Fatalf("expected ErrInvalidPurchase, got %v", err)
			}
		})
	}

	// No row may be created by a rejected issuance.
	row, err := db.FindActiveToken("u1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row != nil {
		t.Fatalf("rejected issuance created a row: %+v", row)
	}
}

func TestIssueAcceptsRangeBoundaries(t *testing.T) {
	led, _ := newTestLedger(t)

	if _, err := led.Issue("u1", "p1", 10); err != nil {
		t.Fatalf("value 10 should be accepted: %v", err)
	}
	if _, err := led.Issue("u1", "p2", 100); err != nil {
		t.Fatalf("value 100 should be accepted: %v", err)
	}
}

func TestRedeemUnknownToken(t *testing.T) {
	led, _ := newTestLedger(t)

	if _, err := led.Redeem("ffffffffffffffff"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
	if _, err := led.Redeem(""); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound for empty token, got %v", err)
	}
}

func TestRedeemExactlyOnce(t *testing.T) {
	led, db := newTestLedger(t)

	issued, err := led.Issue("xyz", "basic", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	redeemed, err := led.Redeem(issued.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if redeemed.Valor != 100 || redeemed.Plano != "basic" {
		t.Fatalf("unexpected redeemed fields: %+v", redeemed)
	}

	if _, err := led.Redeem(issued.Token); !errors.Is(err, ErrTokenUsed) {
		t.Fatalf("expected ErrTokenUsed on second redeem, got %v", err)
	}

	// The consumed row stays in place as the audit trail.
	row, err := db.GetToken(issued.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row == nil || row.Used == nil {
		t.Fatalf("expected consumed row, got %+v", row)
	}
}

func TestIssueAfterRedeemMintsFreshToken(t *testing.T) {
	led, _ := newTestLedger(t)

	first, err := led.Issue("abc123", "basic", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := led.Redeem(first.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := led.Issue("abc123", "basic", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Token == first.Token {
		t.Fatal("expected a fresh token after the previous one was redeemed")
	}
}
