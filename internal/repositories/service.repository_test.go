package repositories

import (
	"context"
	"testing"

	"skimmer/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupServiceRepo(t *testing.T) (ServiceRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	return NewServiceRepository(database.DB{SQL: gormDB}), mock
}

func TestMarkSkipped_AppendsReasonToNotes(t *testing.T) {
	repo, mock := setupServiceRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "services" SET "service_notes"=COALESCE\(service_notes \|\| E'\\n', ''\) \|\| \$1,"status"=\$2,"updated_at"=\$3 WHERE id = \$4`).
		WithArgs("Skipped: gate locked", "skipped", sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "services" WHERE id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "service_type", "status", "service_notes"}).
			AddRow(id, uuid.New(), "regular", "skipped", "Dog in yard\nSkipped: gate locked"))

	service, err := repo.MarkSkipped(context.Background(), id, "gate locked")

	assert.NoError(t, err)
	assert.Equal(t, "skipped", service.Status)
	assert.Equal(t, "Dog in yard\nSkipped: gate locked", *service.ServiceNotes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSkipped_WithoutReasonLeavesNotesAlone(t *testing.T) {
	repo, mock := setupServiceRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "services" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs("skipped", sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "services" WHERE id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(id, "skipped"))

	service, err := repo.MarkSkipped(context.Background(), id, "")

	assert.NoError(t, err)
	assert.Equal(t, "skipped", service.Status)
	assert.Nil(t, service.ServiceNotes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSkipped_UnknownService(t *testing.T) {
	repo, mock := setupServiceRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "services" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	service, err := repo.MarkSkipped(context.Background(), id, "no access")

	assert.Nil(t, service)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
