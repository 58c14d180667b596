package service

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/tallerhq/facturas/internal/domain/sequence"
	ierr "github.com/tallerhq/facturas/internal/errors"
)

// maxAllocationAttempts bounds the retry on a counter creation race so
// pathological contention cannot recurse forever.
const maxAllocationAttempts = 3

// NumberingService allocates unique, monotonically increasing document
// numbers per prefix. It is safe for concurrent callers: the counter row
// is locked for the duration of the surrounding transaction, so two
// allocations for the same prefix can never observe the same value.
type NumberingService interface {
	// NextNumber returns the next formatted number for the prefix,
	// e.g. "F-10000". It must be called inside the same transaction as
	// the insert of the document it numbers, so an aborted insert rolls
	// the increment back too.
	NextNumber(ctx context.Context, prefix string) (string, error)
}

type numberingService struct {
	ServiceParams
}

// NewNumberingService creates a new numbering service
func NewNumberingService(params ServiceParams) NumberingService {
	return &numberingService{ServiceParams: params}
}

func (s *numberingService) NextNumber(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		prefix = s.Config.Numbering.InvoicePrefix
	}

	var number string
	operation := func() error {
		// Each attempt runs in its own (sub)transaction so a lost
		// creation race rolls back cleanly to the savepoint before
		// the retry re-reads the winner's row.
		err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
			n, err := s.allocate(txCtx, prefix)
			if err != nil {
				return err
			}
			number = n
			return nil
		})
		if err != nil && !ierr.IsAlreadyExists(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.Retry(operation, backoff.WithMaxRetries(&backoff.ZeroBackOff{}, maxAllocationAttempts-1))
	if err != nil {
		return "", ierr.WithError(err).
			WithHintf("Could not allocate a document number for prefix %s", prefix).
			Mark(ierr.ErrDatabase)
	}

	s.Logger.Infow("allocated document number",
		"prefix", prefix,
		"number", number,
	)
	return number, nil
}

// allocate performs one locked increment of the counter row.
func (s *numberingService) allocate(ctx context.Context, prefix string) (string, error) {
	start := s.Config.Numbering.StartValue

	counter, err := s.SequenceRepo.GetForUpdate(ctx, prefix)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return "", err
		}

		// First allocation for this prefix: seed the counter at the
		// configured start value. A concurrent creator may win the
		// race; the AlreadyExists error bubbles up for retry.
		counter = &sequence.Counter{Prefix: prefix, LastValue: start}
		if err := s.SequenceRepo.Create(ctx, counter); err != nil {
			return "", err
		}
	}

	// Legacy rows may sit below the configured start; raise them so
	// issued numbers never regress under the series floor.
	if counter.LastValue < start {
		counter.LastValue = start
	}

	next := counter.LastValue + 1
	if err := s.SequenceRepo.UpdateValue(ctx, prefix, next); err != nil {
		return "", err
	}

	return FormatDocumentNumber(prefix, next), nil
}

// FormatDocumentNumber renders a prefix and value as the canonical
// document number, zero-padding the value to five digits.
func FormatDocumentNumber(prefix string, value int64) string {
	return fmt.Sprintf("%s-%05d", prefix, value)
}
