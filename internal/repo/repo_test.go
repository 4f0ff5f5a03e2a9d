package repo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var userCols = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}
var postCols = []string{"id", "title", "content", "author_id", "is_draft", "created_at", "updated_at"}

func TestUserRepoFindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)
	now := time.Now()

	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		expected string
	}{
		{
			name:     "found",
			rows:     sqlmock.NewRows(userCols).AddRow("u1", "Alice", "alice@x.com", "hash", now, now),
			expected: "u1",
		},
		{
			name: "missing",
			rows: sqlmock.NewRows(userCols),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
				WithArgs("alice@x.com", sqlmock.AnyArg()).
				WillReturnRows(tt.rows)

			u, err := r.FindByEmail(context.Background(), "alice@x.com")
			require.NoError(t, err)
			if tt.expected == "" {
				assert.Nil(t, u)
			} else {
				require.NotNil(t, u)
				assert.Equal(t, tt.expected, u.ID)
				assert.Equal(t, "hash", u.PasswordHash)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepoFindByIDError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("connection refused")
	mock.ExpectQuery(`SELECT`).WillReturnError(boom)

	u, err := NewUserRepo(db).FindByID(context.Background(), "u1")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, boom)
}

func TestPostRepoListPreloadsAuthor(t *testing.T) {
	db, mock := newMockDB(t)
	newer := time.Now()
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p2", "second", "b", "u1", false, newer, newer).
			AddRow("p1", "first", "a", "u1", false, older, older))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE "users"."id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow("u1", "Alice", "alice@x.com"))

	posts, err := NewPostRepo(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)
	assert.Equal(t, "p1", posts[1].ID)
	require.NotNil(t, posts[0].Author)
	assert.Equal(t, "Alice", posts[0].Author.Name)
	assert.Equal(t, "alice@x.com", posts[1].Author.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepoListEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "posts"`).WillReturnRows(sqlmock.NewRows(postCols))

	posts, err := NewPostRepo(db).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestPostRepoFindByIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(postCols))

	p, err := NewPostRepo(db).FindByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepoUpdateContent(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		expected bool
	}{
		{name: "updated", affected: 1, expected: true},
		{name: "missing", affected: 0, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "content"=$1,"title"=$2,"updated_at"=$3 WHERE id = $4`)).
				WithArgs("new body", "new title", sqlmock.AnyArg(), "p1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			ok, err := NewPostRepo(db).UpdateContent(context.Background(), "p1", "new title", "new body", time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepoDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		expected bool
	}{
		{name: "deleted", affected: 1, expected: true},
		{name: "missing", affected: 0, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE id = $1`)).
				WithArgs("p1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			ok, err := NewPostRepo(db).Delete(context.Background(), "p1")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
