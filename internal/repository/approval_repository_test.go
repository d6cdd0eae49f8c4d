package repository_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taeyeong15/marketing-backend/internal/apperrors"
	"github.com/taeyeong15/marketing-backend/internal/model"
	"github.com/taeyeong15/marketing-backend/internal/repository"
)

func TestCreateRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.ApprovalRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM campaigns WHERE id=\$1 AND deleted_at IS NULL FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PLANNING"))
	mock.ExpectQuery(`INSERT INTO pending_approvals`).
		WithArgs(1, "kim.mk", "lee.lead", "NORMAL", "승인 요청드립니다", "PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, time.Now()))
	mock.ExpectExec(`UPDATE campaigns SET status=\$1`).
		WithArgs("PENDING_APPROVAL", "kim.mk", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO campaign_history`).
		WithArgs(1, "submitted", "kim.mk", "PLANNING", "PENDING_APPROVAL", "승인 요청드립니다").
		WillReturnRows(sqlmock.NewRows([]string{"id", "action_date"}).AddRow(100, time.Now()))
	mock.ExpectCommit()

	req := &model.PendingApproval{
		CampaignID:     1,
		RequesterID:    "kim.mk",
		ApproverID:     "lee.lead",
		Priority:       "NORMAL",
		RequestMessage: "승인 요청드립니다",
	}
	prev, err := repo.CreateRequest(req)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPlanning, prev)
	assert.Equal(t, 7, req.ID)
	assert.Equal(t, model.ApprovalPending, req.ApprovalStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequestNotSubmittable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.ApprovalRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM campaigns WHERE id=\$1 AND deleted_at IS NULL FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("RUNNING"))
	mock.ExpectRollback()

	_, err = repo.CreateRequest(&model.PendingApproval{CampaignID: 1, RequesterID: "kim.mk"})

	var cerr *apperrors.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "cannot be submitted")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequestCampaignMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.ApprovalRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM campaigns`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	_, err = repo.CreateRequest(&model.PendingApproval{CampaignID: 99})

	var nerr *apperrors.NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func pendingApprovalRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "campaign_id", "requester_id", "approver_id", "priority", "request_message", "approval_status", "created_at",
	}).AddRow(5, 1, "kim.mk", "lee.lead", "NORMAL", "승인 요청드립니다", status, time.Now())
}

func TestResolveApprove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.ApprovalRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM pending_approvals WHERE id=\$1 FOR UPDATE`).
		WithArgs(5).
		WillReturnRows(pendingApprovalRow("PENDING"))
	mock.ExpectQuery(`SELECT status FROM campaigns WHERE id=\$1 AND deleted_at IS NULL FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PENDING_APPROVAL"))
	mock.ExpectExec(`UPDATE pending_approvals`).
		WithArgs("APPROVED", "lee.lead", "", sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE campaigns SET status=\$1`).
		WithArgs("APPROVED", "lee.lead", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO campaign_history`).
		WithArgs(1, "approved", "lee.lead", "PENDING_APPROVAL", "APPROVED", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "action_date"}).AddRow(101, time.Now()))
	mock.ExpectCommit()

	pa, prev, err := repo.Resolve(5, model.ApprovalApproved, "lee.lead", "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingApproval, prev)
	assert.Equal(t, model.ApprovalApproved, pa.ApprovalStatus)
	assert.Equal(t, "lee.lead", pa.ApproverID)
	assert.NotNil(t, pa.ApprovalDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveReject(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.ApprovalRepository{DB: db}

	comment := "예산 초과로 반려합니다"

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM pending_approvals WHERE id=\$1 FOR UPDATE`).
		WithArgs(5).
		WillReturnRows(pendingApprovalRow("PENDING"))
	mock.ExpectQuery(`SELECT status FROM campaigns WHERE id=\$1 AND deleted_at IS NULL FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PENDING_APPROVAL"))
	mock.ExpectExec(`UPDATE pending_approvals`).
		WithArgs("REJECTED", "lee.lead", comment, sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE campaigns SET status=\$1`).
		WithArgs("REJECTED", "lee.lead", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO campaign_history`).
		WithArgs(1, "rejected", "lee.lead", "PENDING_APPROVAL", "REJECTED", comment).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action_date"}).AddRow(102, time.Now()))
	mock.ExpectCommit()

	pa, _, err := repo.Resolve(5, model.ApprovalRejected, "lee.lead", comment)
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalRejected, pa.ApprovalStatus)
	assert.Equal(t, comment, pa.ApprovalComment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAlreadyResolved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.ApprovalRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM pending_approvals WHERE id=\$1 FOR UPDATE`).
		WithArgs(5).
		WillReturnRows(pendingApprovalRow("APPROVED"))
	mock.ExpectRollback()

	_, _, err = repo.Resolve(5, model.ApprovalRejected, "lee.lead", "이미 처리된 요청에 대한 반려")

	var cerr *apperrors.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "approval request already resolved", cerr.Message)
	assert.Equal(t, model.ApprovalApproved, cerr.Details["approval_status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveApprovalMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &repository.ApprovalRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM pending_approvals WHERE id=\$1 FOR UPDATE`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "campaign_id", "requester_id", "approver_id", "priority", "request_message", "approval_status", "created_at",
		}))
	mock.ExpectRollback()

	_, _, err = repo.Resolve(99, model.ApprovalApproved, "lee.lead", "")

	var nerr *apperrors.NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
