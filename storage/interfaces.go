package storage

import "github.com/jaydipmangukiya/Prop-valuer-sub000/models"

// RequestWriter is the interface any valuation-request backend must satisfy.
type RequestWriter interface {
	Write(requests []*models.ValuationRequest) error
	Close() error
}

// AuctionWriter is the interface for persisting cleaned auction listings.
type AuctionWriter interface {
	WriteAuctions(listings []*models.AuctionListing) error
	Close() error
}

// SubmissionReader yields raw form submissions exactly as entered.
type SubmissionReader interface {
	ReadAll() ([]*models.RawSubmission, error)
	Close() error
}

var (
	_ RequestWriter    = (*CSVWriter)(nil)
	_ RequestWriter    = (*PostgresWriter)(nil)
	_ AuctionWriter    = (*PostgresWriter)(nil)
	_ SubmissionReader = (*CSVReader)(nil)
)
