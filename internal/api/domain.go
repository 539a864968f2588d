package api

import (
	"github.com/JaimeStill/cmdreview/internal/corpus"
	"github.com/JaimeStill/cmdreview/internal/ledger"
	"github.com/JaimeStill/cmdreview/internal/progress"
	"github.com/JaimeStill/cmdreview/internal/reporting"
	"github.com/JaimeStill/cmdreview/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Users     users.System
	Corpus    corpus.System
	Ledger    ledger.System
	Progress  progress.System
	Reporting reporting.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	usersSystem := users.New(db, runtime.Logger, runtime.Pagination, runtime.BcryptCost)
	corpusSystem := corpus.New(db, runtime.Logger, runtime.Pagination)
	ledgerSystem := ledger.New(db, runtime.Logger, runtime.Pagination, nil)

	progressSystem := progress.New(db, corpusSystem, ledgerSystem, runtime.Logger)

	reportingSystem := reporting.New(
		db,
		corpusSystem,
		ledgerSystem,
		runtime.Logger,
		runtime.Location,
		nil,
	)

	return &Domain{
		Users:     usersSystem,
		Corpus:    corpusSystem,
		Ledger:    ledgerSystem,
		Progress:  progressSystem,
		Reporting: reportingSystem,
	}
}
