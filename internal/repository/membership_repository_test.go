package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/orgfee-api/internal/models"
)

func newMembershipMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func membershipRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"student_number", "organization_id", "committee_id", "membership_date",
		"status", "role", "student_name", "organization_name", "committee_name",
	})
}

func TestMembershipRepositoryList(t *testing.T) {
	db, mock, cleanup := newMembershipMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db, testTables)

	rows := membershipRows().
		AddRow("2021-00125", "ORG-ACM", int64(3), time.Now(), "Active", "Member", "Maria Reyes", "ACM Chapter", "Logistics")
	mock.ExpectQuery("FROM memberships m").WillReturnRows(rows)

	memberships, err := repo.List(context.Background(), models.MembershipFilter{})
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, "ORG-ACM", memberships[0].OrganizationID)
	require.NotNil(t, memberships[0].StudentName)
	assert.Equal(t, "Maria Reyes", *memberships[0].StudentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryListFiltered(t *testing.T) {
	db, mock, cleanup := newMembershipMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db, testTables)

	mock.ExpectQuery("FROM memberships m").
		WithArgs("ORG-ACM", models.MembershipStatusActive).
		WillReturnRows(membershipRows())

	_, err := repo.List(context.Background(), models.MembershipFilter{
		OrganizationID: "ORG-ACM",
		Status:         models.MembershipStatusActive,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryFindByKey(t *testing.T) {
	db, mock, cleanup := newMembershipMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db, testTables)

	rows := membershipRows().
		AddRow("2021-00125", "ORG-ACM", nil, nil, "Active", "Member", "Maria Reyes", "ACM Chapter", nil)
	mock.ExpectQuery("m.student_number = .1 AND m.organization_id = .2").
		WithArgs("2021-00125", "ORG-ACM").
		WillReturnRows(rows)

	membership, err := repo.FindByKey(context.Background(), "2021-00125", "ORG-ACM")
	require.NoError(t, err)
	assert.Equal(t, "2021-00125", membership.StudentNumber)
	assert.Nil(t, membership.CommitteeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMembershipMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db, testTables)

	mock.ExpectExec("INSERT INTO memberships").
		WithArgs("2021-00125", "ORG-ACM", nil, sqlmock.AnyArg(), "Active", "Member").
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now()
	err := repo.Create(context.Background(), &models.Membership{
		StudentNumber:  "2021-00125",
		OrganizationID: "ORG-ACM",
		MembershipDate: &now,
		Status:         models.MembershipStatusActive,
		Role:           models.DefaultMembershipRole,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newMembershipMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db, testTables)

	mock.ExpectExec("UPDATE memberships SET status").
		WithArgs("2021-00125", "ORG-ACM", models.MembershipStatusAlumni).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "2021-00125", "ORG-ACM", models.MembershipStatusAlumni)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMembershipMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db, testTables)

	mock.ExpectExec("DELETE FROM memberships WHERE student_number").
		WithArgs("2021-00125", "ORG-ACM").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "2021-00125", "ORG-ACM"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
