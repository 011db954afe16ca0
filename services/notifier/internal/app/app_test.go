package internal

import (
	"bytes"
	"errors"
	"testing"

	"campus-hub/pkg/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCloseBackends_ClosesDatabase(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectClose()

	queueClosed := false
	closeBackends(logger.New(), closerFunc(func() error {
		queueClosed = true
		return nil
	}), nil, db)

	assert.True(t, queueClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCloseBackends_QueueErrorStillClosesDatabase(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectClose()

	var logs bytes.Buffer
	closeBackends(logger.NewWithWriter(&logs, "info"), closerFunc(func() error {
		return errors.New("channel already closed")
	}), nil, db)

	assert.Contains(t, logs.String(), "Error closing RabbitMQ: channel already closed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
