package ledger

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/funildigital/prelander/internal/models"
	"github.com/funildigital/prelander/pkg/logger"
)

const (
	// MinValor and MaxValor bound the accepted purchase value in BRL.
	MinValor = 10
	MaxValor = 100

	// tokenBytes is the number of random bytes behind a token; the hex
	// encoding makes a 16 character code.
	tokenBytes = 8
)

var (
	// ErrInvalidPurchase means the plan or value failed validation and no
	// token was created.
	ErrInvalidPurchase = errors.New("invalid plan or value")

	// ErrTokenNotFound means the token was never issued.
	ErrTokenNotFound = errors.New("token not found")

	// ErrTokenUsed means the token was already consumed.
	ErrTokenUsed = errors.New("token already used")
)

// Ledger is the durable record of issued and consumed tokens and serves
// the issue/redeem business logic.
type Ledger struct {
	logger *logger.Logger

	repo models.Repository
}

// NewLedger creates a new Ledger instance
func NewLedger(repo models.Repository, logger *logger.Logger) models.LedgerI {
	return &Ledger{
		repo:   repo,
		logger: logger,
	}
}

// Issue returns the active token for the (user, plano) pair, minting a new
// one when none exists. Issuing again while a token is active is idempotent.
func (l *Ledger) Issue(user, plano string, valor float64) (*models.Token, error) {
	if plano == "" || math.IsNaN(valor) || math.IsInf(valor, 0) || valor < MinValor || valor > MaxValor {
		return nil, ErrInvalidPurchase
	}

	existing, err := l.repo.FindActiveToken(user, plano)
	if err != nil {
		return nil, fmt.Errorf("failed to look up active token: %s", err)
	}
	if existing != nil {
		return existing, nil
	}

	code, err := newTokenCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %s", err)
	}

	token := &models.Token{
		Token: code,
		Valor: valor,
		User:  user,
		Plano: plano,
	}

	err = l.repo.CreateToken(token)
	if errors.Is(err, models.ErrDuplicateActiveToken) {
		// A concurrent request won the insert; return its token so both
		// callers see the same code.
		l.logger.Debug("Concurrent issuance detected, reusing winner's token", " user ", user, " plano ", plano)
		winner, ferr := l.repo.FindActiveToken(user, plano)
		if ferr != nil {
			return nil, fmt.Errorf("failed to resolve concurrent issuance: %s", ferr)
		}
		if winner == nil {
			return nil, fmt.Errorf("failed to resolve concurrent issuance: no active token after conflict")
		}
		return winner, nil
	}
	if err != nil {
		return nil, err
	}

	l.logger.Info("Token issued", " token ", token.Token, " user ", user, " plano ", plano)
	return token, nil
}

// Redeem transitions a token from unconsumed to consumed exactly once and
// returns the pre-update row for display.
func (l *Ledger) Redeem(token string) (*models.Token, error) {
	if token == "" {
		return nil, ErrTokenNotFound
	}

	row, err := l.repo.GetToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %s", err)
	}
	if row == nil {
		return nil, ErrTokenNotFound
	}
	if !row.Active() {
		return nil, ErrTokenUsed
	}

	affected, err := l.repo.ConsumeToken(token, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to consume token: %s", err)
	}
	if affected == 0 {
		// Lost a race against another redemption between the read and the
		// conditional update.
		return nil, ErrTokenUsed
	}

	l.logger.Info("Token redeemed", " token ", token, " plano ", row.Plano)
	return row, nil
}

// newTokenCode generates an unguessable token code from a cryptographically
// strong source, independently of any other field.
func newTokenCode() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
