package models

import "time"

// Token represents a single-use redemption token linking a visitor, a plan
// and a price. Column names match the original tokens table.
type Token struct {
	// Token is the opaque redemption code, 16 hex characters.
	Token string `json:"token" gorm:"column:token;primaryKey"`
	// Valor is the purchase value in BRL, constrained to [10, 100] at issuance.
	Valor float64 `json:"valor" gorm:"column:valor;not null"`
	// User is the visitor identity the token is credited to.
	User string `json:"user" gorm:"column:user;not null;index:idx_tokens_user_plano"`
	// Plano is the plan code the visitor is buying.
	Plano string `json:"plano" gorm:"column:plano;not null;index:idx_tokens_user_plano"`
	// Used is the consumption timestamp. Nil means the token is still active.
	Used *time.Time `json:"used" gorm:"column:used"`
}

// TableName specifies the table name for GORM
func (Token) TableName() string {
	return "tokens"
}

// Active reports whether the token has not been consumed yet.
func (t *Token) Active() bool {
	return t.Used == nil
}
