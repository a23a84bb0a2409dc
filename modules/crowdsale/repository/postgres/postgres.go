package postgres

import (
	"github.com/gaze-network/crowdsale/internal/postgres"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/modules/crowdsale/repository/postgres/gen"
	"github.com/jackc/pgx/v5"
)

var _ datagateway.CrowdsaleDataGateway = (*Repository)(nil)

type Repository struct {
	db      postgres.DB
	queries *gen.Queries
	tx      pgx.Tx
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db:      db,
		queries: gen.New(db),
	}
}
