// Package ingestion turns raw uploaded CSV reports into the typed row slices
// the reconciliation core consumes. All platform quirks live here: delimiter
// sniffing, statement preambles, malformed METADATA blobs.
package ingestion

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/netair/conciliador/internal/reconciliation"
)

// Upload field names, matching the platform's report names.
const (
	FileSettlement  = "dinheiro"
	FileSales       = "vendas"
	FilePostSale    = "pos_venda"
	FileReleases    = "liberacoes"
	FileStatement   = "extrato"
	FileWithdrawals = "retirada"
)

// statementPreambleRows is the number of banner lines the platform prepends
// to the account statement before its header.
const statementPreambleRows = 3

// Service loads a full report set into reconciliation inputs.
type Service struct {
	log *zap.Logger
}

// NewService creates an ingestion service.
func NewService(log *zap.Logger) *Service {
	return &Service{log: log}
}

// LoadAll parses the five required reports plus the optional withdrawals
// report, keyed by upload field name. A required report that is absent or has
// none of its expected columns fails the whole load.
func (s *Service) LoadAll(files map[string][]byte) (*reconciliation.Inputs, error) {
	in := &reconciliation.Inputs{}

	settlementTable, err := s.read(files, FileSettlement, ReadOptions{ScrubJSON: true})
	if err != nil {
		return nil, err
	}
	if in.Settlement, err = ParseSettlement(settlementTable); err != nil {
		return nil, err
	}

	salesTable, err := s.read(files, FileSales, ReadOptions{})
	if err != nil {
		return nil, err
	}
	if in.Sales, err = ParseSales(salesTable); err != nil {
		return nil, err
	}

	postSaleTable, err := s.read(files, FilePostSale, ReadOptions{})
	if err != nil {
		return nil, err
	}
	if in.PostSale, err = ParsePostSale(postSaleTable); err != nil {
		return nil, err
	}

	releasesTable, err := s.read(files, FileReleases, ReadOptions{ScrubJSON: true})
	if err != nil {
		return nil, err
	}
	if in.Releases, err = ParseReleases(releasesTable); err != nil {
		return nil, err
	}

	statementTable, err := s.read(files, FileStatement, ReadOptions{SkipRows: statementPreambleRows})
	if err != nil {
		return nil, err
	}
	if in.Statement, err = ParseStatement(statementTable); err != nil {
		return nil, err
	}

	// Optional; a broken withdrawals file is ignored, matching its
	// informational role.
	if data, ok := files[FileWithdrawals]; ok && len(data) > 0 {
		if t, err := ReadTable(data, ReadOptions{}); err == nil {
			in.Withdrawals = ParseWithdrawals(t)
		} else {
			s.log.Warn("withdrawals report unreadable, ignoring", zap.Error(err))
		}
	}

	s.log.Info("reports loaded",
		zap.Int("settlement", len(in.Settlement)),
		zap.Int("sales", len(in.Sales)),
		zap.Int("post_sale", len(in.PostSale)),
		zap.Int("releases", len(in.Releases)),
		zap.Int("statement", len(in.Statement)),
		zap.Int("withdrawals", len(in.Withdrawals)),
	)
	return in, nil
}

func (s *Service) read(files map[string][]byte, name string, opts ReadOptions) (*Table, error) {
	data, ok := files[name]
	if !ok || len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", name, reconciliation.ErrMissingReport)
	}
	t, err := ReadTable(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}
