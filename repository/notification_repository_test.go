package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/waatech/merch-backend/models"
	"github.com/waatech/merch-backend/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestSaveLog_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormNotificationRepository(gormDB)

	entry := &models.NotificationLog{
		OrderID:   "WAA-TEST1",
		Recipient: "member@waatech.xyz",
		Type:      models.TypeOrderCustomer,
		Channel:   models.ChannelEmail,
		Status:    models.StatusSent,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "notification_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	err := repo.SaveLog(context.Background(), entry)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveLog_DBError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormNotificationRepository(gormDB)

	entry := &models.NotificationLog{
		OrderID:   "WAA-TEST2",
		Recipient: "hello@waatech.xyz",
		Type:      models.TypeOrderAdmin,
		Channel:   models.ChannelEmail,
		Status:    models.StatusFailed,
		Error:     "smtp: connection refused",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "notification_logs"`)).
		WillReturnError(gorm.ErrInvalidDB)
	mock.ExpectRollback()

	err := repo.SaveLog(context.Background(), entry)
	assert.Error(t, err)
}

func TestGetLogs_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormNotificationRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "order_id", "recipient", "type", "channel", "status", "error", "created_at"}).
		AddRow(int64(2), "WAA-TEST3", "hello@waatech.xyz", models.TypeOrderAdmin, models.ChannelEmail, models.StatusSent, "", now).
		AddRow(int64(1), "WAA-TEST3", "member@waatech.xyz", models.TypeOrderCustomer, models.ChannelEmail, models.StatusSent, "", now.Add(-time.Second))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notification_logs"`)).
		WithArgs("WAA-TEST3").
		WillReturnRows(rows)

	logs, err := repo.GetLogs(context.Background(), "WAA-TEST3")
	assert.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, models.TypeOrderAdmin, logs[0].Type)
	assert.Equal(t, "member@waatech.xyz", logs[1].Recipient)
}

func TestGetLogs_Empty(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormNotificationRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notification_logs"`)).
		WithArgs("WAA-NONE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	logs, err := repo.GetLogs(context.Background(), "WAA-NONE")
	assert.NoError(t, err)
	assert.Empty(t, logs)
}
