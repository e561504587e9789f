// Package repomanager hands out repositories bound to a database handle.
// Passing a dbx.DBTX lets a service use the same repository code inside and
// outside an explicit transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fragshare/internal/dbx"
	"github.com/dmitrijs2005/fragshare/internal/server/repositories/files"
	"github.com/dmitrijs2005/fragshare/internal/server/repositories/links"
	"github.com/dmitrijs2005/fragshare/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Files(db dbx.DBTX) files.Repository
	Links(db dbx.DBTX) links.Repository
	Users(db dbx.DBTX) users.Repository
}
