package export

import (
	"context"

	"ledgerlite/internal/core"
)

// Ports for outbound export adapters.
type (
	TransactionAppender interface {
		Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}

	TransactionDeleter interface {
		Delete(ctx context.Context, transactionID string) error
	}

	// Exporter is the full surface the export worker drives.
	Exporter interface {
		TransactionAppender
		TransactionDeleter
	}
)
