package links

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/fragshare/internal/common"
	"github.com/dmitrijs2005/fragshare/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+links\s*\(file_id,\s*user_id,\s*slug,\s*state,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*created_at\s*$`
const selectCols = `id,\s*file_id,\s*user_id,\s*slug,\s*state,\s*expires_at,\s*created_at`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	owner := "u-1"
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("l-1", created)
	mock.ExpectQuery(insertQ).
		WithArgs("f-1", &owner, "aB3dE6fG", "active", nil).
		WillReturnRows(rows)

	link := &models.ShareLink{FileID: "f-1", UserID: &owner, Slug: "aB3dE6fG", State: models.LinkStateActive}
	if err := repo.Create(context.Background(), link); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if link.ID != "l-1" || !link.CreatedAt.Equal(created) {
		t.Fatalf("unexpected link: %+v", link)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("f-1", nil, "aB3dE6fG", "active", nil).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	link := &models.ShareLink{FileID: "f-1", Slug: "aB3dE6fG", State: models.LinkStateActive}
	err := repo.Create(context.Background(), link)
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("want common.ErrAlreadyExists, got %v", err)
	}
}

func TestGetBySlug_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + selectCols + `\s+FROM\s+links\s+WHERE\s+slug\s*=\s*\$1\s*$`

	owner := "u-1"
	expires := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "file_id", "user_id", "slug", "state", "expires_at", "created_at"}).
		AddRow("l-1", "f-1", &owner, "aB3dE6fG", "active", &expires, created)
	mock.ExpectQuery(q).
		WithArgs("aB3dE6fG").
		WillReturnRows(rows)

	got, err := repo.GetBySlug(context.Background(), "aB3dE6fG")
	if err != nil {
		t.Fatalf("GetBySlug error: %v", err)
	}
	if got.ID != "l-1" || got.State != models.LinkStateActive || got.ExpiresAt == nil || !got.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected link: %+v", got)
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + selectCols + `\s+FROM\s+links\s+WHERE\s+slug\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("ghost123").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBySlug(context.Background(), "ghost123")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestGetByFileAndOwner_NullOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + selectCols + `\s+FROM\s+links\s+WHERE\s+file_id\s*=\s*\$1\s+AND\s+user_id\s+IS\s+NOT\s+DISTINCT\s+FROM\s+\$2\s*$`

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "file_id", "user_id", "slug", "state", "expires_at", "created_at"}).
		AddRow("l-1", "f-1", nil, "aB3dE6fG", "active", nil, created)
	mock.ExpectQuery(q).
		WithArgs("f-1", nil).
		WillReturnRows(rows)

	got, err := repo.GetByFileAndOwner(context.Background(), "f-1", nil)
	if err != nil {
		t.Fatalf("GetByFileAndOwner error: %v", err)
	}
	if got.UserID != nil || got.ExpiresAt != nil {
		t.Fatalf("unexpected link: %+v", got)
	}
}

func TestSlugExists_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+links\s+WHERE\s+slug\s*=\s*\$1\)\s*$`

	mock.ExpectQuery(q).
		WithArgs("aB3dE6fG").
		WillReturnError(errors.New("db down"))

	_, err := repo.SlugExists(context.Background(), "aB3dE6fG")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
