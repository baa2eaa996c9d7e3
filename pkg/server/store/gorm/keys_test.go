package gorm

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/apidashio/apidash/pkg/model"
	"github.com/apidashio/apidash/pkg/server/store"
)

type KeysSuite struct {
	suite.Suite
	DB    *gorm.DB
	mock  sqlmock.Sqlmock
	store *KeysStore
	owner uuid.UUID
}

func (s *KeysSuite) SetupTest() {
	var (
		db  *sql.DB
		err error
	)

	db, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	s.DB, err = gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{SkipDefaultTransaction: true},
	)
	require.NoError(s.T(), err)

	s.store = NewKeysStore(s.DB)
	s.owner = uuid.New()
}

func (s *KeysSuite) AfterTest(_, _ string) {
	require.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func TestKeysStore(t *testing.T) {
	suite.Run(t, new(KeysSuite))
}

func (s *KeysSuite) keyRows(keys ...model.APIKey) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "name", "scope", "environment", "status", "secret",
	})
	for _, k := range keys {
		rows.AddRow(
			k.ID.String(), k.OwnerID.String(), k.Name, k.Scope, k.Environment, k.Status, k.Secret,
		)
	}
	return rows
}

func (s *KeysSuite) TestCreateKeyDefaultsToActive() {
	s.mock.ExpectExec(`INSERT INTO "api_keys"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	key := &model.APIKey{
		OwnerID:     s.owner,
		Name:        "CI pipeline",
		Scope:       "read",
		Environment: model.KeyEnvProduction,
		Secret:      "ak_live_deadbeef",
	}
	require.NoError(s.T(), s.store.CreateKey(key))

	assert.NotEqual(s.T(), uuid.Nil, key.ID)
	assert.Equal(s.T(), model.KeyStatusActive, key.Status)
}

func (s *KeysSuite) TestRevokeKey() {
	id := uuid.New()

	s.mock.ExpectExec(`UPDATE "api_keys" SET .* WHERE id = .* AND owner_id = .* AND deleted_at IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectQuery(`SELECT \* FROM "api_keys" WHERE id = .* AND owner_id = .* AND deleted_at IS NULL`).
		WillReturnRows(s.keyRows(model.APIKey{
			ID: id, OwnerID: s.owner, Name: "CI pipeline",
			Status: model.KeyStatusRevoked,
		}))

	key, err := s.store.RevokeKey(s.owner, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), model.KeyStatusRevoked, key.Status)
}

func (s *KeysSuite) TestRevokeKeyNotFound() {
	s.mock.ExpectExec(`UPDATE "api_keys" SET .* WHERE id = .* AND owner_id = .* AND deleted_at IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.store.RevokeKey(s.owner, uuid.New())
	assert.ErrorIs(s.T(), err, store.ErrNotFound)
}
