package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cardcraft/internal/dbx"
	"github.com/dmitrijs2005/cardcraft/internal/server/repositories/cards"
	"github.com/dmitrijs2005/cardcraft/internal/server/repositories/drafts"
	"github.com/dmitrijs2005/cardcraft/internal/server/repositories/views"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Cards(db dbx.DBTX) cards.Repository
	Drafts(db dbx.DBTX) drafts.Repository
	Views(db dbx.DBTX) views.Repository
}
