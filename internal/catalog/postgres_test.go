package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepo(db), mock
}

func TestAddCommentBumpsListingInOneTx(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	at := time.Unix(1700000000, 0).UTC()
	cm := Comment{
		ID:        "c-1",
		ListingID: "l-1",
		AuthorID:  "u-1",
		Text:      "worth a visit",
		CreatedAt: at,
		UpdatedAt: at,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT\s+INTO\s+comments`).
		WithArgs(cm.ID, cm.ListingID, cm.AuthorID, cm.Text, cm.CreatedAt, cm.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE\s+listings\s+SET\s+updated_at`).
		WithArgs(cm.UpdatedAt, cm.ListingID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.AddComment(context.Background(), cm)
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if got.ID != cm.ID {
		t.Fatalf("unexpected comment: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAddCommentRollsBackOnInsertFailure(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	at := time.Unix(1700000000, 0).UTC()
	cm := Comment{ID: "c-1", ListingID: "l-1", AuthorID: "u-1", Text: "x", CreatedAt: at, UpdatedAt: at}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT\s+INTO\s+comments`).
		WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	if _, err := repo.AddComment(context.Background(), cm); err == nil {
		t.Fatalf("expected insert failure")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateCommentMissingRowRollsBack(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	at := time.Unix(1700000000, 0).UTC()
	cm := Comment{ID: "c-missing", ListingID: "l-1", Text: "x", UpdatedAt: at}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE\s+comments`).
		WithArgs(cm.Text, cm.UpdatedAt, cm.ListingID, cm.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if _, err := repo.UpdateComment(context.Background(), cm); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteCommentMissingRowRollsBack(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE\s+FROM\s+comments`).
		WithArgs("l-1", "c-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := repo.DeleteComment(context.Background(), "l-1", "c-missing"); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
