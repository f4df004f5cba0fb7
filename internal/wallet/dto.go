package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/C00lPIXER/aperture/pkg/db/models"
	"github.com/C00lPIXER/aperture/pkg/enums"
)

// Movement describes one debit or credit.
type Movement struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	OrderID     *uuid.UUID
}

// TransactionDTO is a wallet history entry.
type TransactionDTO struct {
	ID          uuid.UUID                   `json:"id"`
	Type        enums.WalletTransactionType `json:"transactionType"`
	Amount      decimal.Decimal             `json:"amount"`
	Description string                      `json:"description"`
	OrderID     *uuid.UUID                  `json:"orderId,omitempty"`
	CreatedAt   time.Time                   `json:"createdAt"`
}

// View is the balance and full history of a wallet.
type View struct {
	Balance      decimal.Decimal  `json:"balance"`
	Transactions []TransactionDTO `json:"transactions"`
}

func transactionFromModel(row models.WalletTransaction) TransactionDTO {
	return TransactionDTO{
		ID:          row.ID,
		Type:        row.Type,
		Amount:      row.Amount,
		Description: row.Description,
		OrderID:     row.OrderID,
		CreatedAt:   row.CreatedAt,
	}
}
