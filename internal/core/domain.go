package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO-8601 calendar date layout used by transaction fixtures.
const DateLayout = "2006-01-02"

const (
	ToneGreen Tone = "green"
	ToneAmber Tone = "amber"
	ToneRed   Tone = "red"
	ToneSlate Tone = "slate"
)

type (
	// Tone is the display classification of a badge.
	Tone string

	Transaction struct {
		ID       string          `json:"id"`
		Date     string          `json:"date"`
		Desc     string          `json:"desc"`
		Amount   decimal.Decimal `json:"amount"`
		Category string          `json:"category"`
		RefCode  string          `json:"refCode"`
	}

	QuickAction struct {
		ID    string `json:"id"`
		Label string `json:"label"`
		Icon  string `json:"iconName"`
	}

	Account struct {
		Bank            string          `json:"bank"`
		AccountName     string          `json:"accountName"`
		AccountNoMasked string          `json:"accountNoMasked"`
		Owner           string          `json:"owner"`
		Status          string          `json:"status"`
		Balance         decimal.Decimal `json:"balance"`
		Available       decimal.Decimal `json:"available"`
		LastUpdated     string          `json:"lastUpdated"`
	}

	User struct {
		Email string
	}
)

var (
	ErrEmptyID          = errors.New("empty transaction id")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidDate      = errors.New("invalid date")
	ErrDuplicateID      = errors.New("duplicate transaction id")
)

// IsCredit reports whether the transaction adds money to the account.
// Zero amounts are shown as credits.
func (t Transaction) IsCredit() bool {
	return !t.Amount.IsNegative()
}

// Tone returns the badge tone used when listing the transaction.
func (t Transaction) Tone() Tone {
	if t.IsCredit() {
		return ToneGreen
	}
	if t.Category == "Bill" {
		return ToneAmber
	}
	return ToneSlate
}

// SearchText is the text the dashboard search box matches against.
func (t Transaction) SearchText() string {
	return t.Date + " " + t.Desc + " " + t.Category + " " + t.RefCode
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidDate, t.Date)
	}
	if strings.TrimSpace(t.Desc) == "" {
		return ErrEmptyDescription
	}
	if len(t.Desc) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// ValidateAll validates every transaction and checks that IDs are unique.
func ValidateAll(txs []Transaction) error {
	seen := make(map[string]struct{}, len(txs))
	for _, t := range txs {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transaction %q: %w", t.ID, err)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
