//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"troywings/internal/registration/models"
	"troywings/internal/registration/store"
	"troywings/pkg/platform/sentinel"
	"troywings/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.Postgres
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(s.ctx, "users"))
}

func (s *PostgresStoreSuite) newUser(name string) models.User {
	return models.User{
		FullName:    name,
		FatherName:  "Robert Smith",
		DateOfBirth: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		Email:       "john@x.com",
		Address:     "123 Main Street",
	}
}

func (s *PostgresStoreSuite) TestCreateAndListRoundTrip() {
	u := s.newUser("John Smith")
	s.Require().NoError(s.store.Create(s.ctx, &u))
	s.Positive(u.ID)

	users, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal(u.ID, users[0].ID)
	s.Equal("John Smith", users[0].FullName)
	s.Equal("2000-01-01", users[0].DateOfBirth.Format(models.DateLayout))
	s.Nil(users[0].Phone)
}

func (s *PostgresStoreSuite) TestListReturnsInsertionOrder() {
	names := []string{"Alpha One", "Beta Two", "Gamma Three"}
	for _, name := range names {
		u := s.newUser(name)
		s.Require().NoError(s.store.Create(s.ctx, &u))
	}

	users, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 3)
	for i, name := range names {
		s.Equal(name, users[i].FullName)
	}
}

func (s *PostgresStoreSuite) TestPhoneNullRoundTrip() {
	phone := "+91 98765 43210"
	withPhone := s.newUser("John Smith")
	withPhone.Phone = &phone
	s.Require().NoError(s.store.Create(s.ctx, &withPhone))

	withoutPhone := s.newUser("Jane Smith")
	s.Require().NoError(s.store.Create(s.ctx, &withoutPhone))

	users, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Require().NotNil(users[0].Phone)
	s.Equal(phone, *users[0].Phone)
	s.Nil(users[1].Phone)
}

func (s *PostgresStoreSuite) TestUpdateRewritesFields() {
	u := s.newUser("John Smith")
	s.Require().NoError(s.store.Create(s.ctx, &u))

	u.FullName = "John Updated"
	u.Email = "updated@x.com"
	s.Require().NoError(s.store.Update(s.ctx, u))

	found, err := s.store.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("John Updated", found.FullName)
	s.Equal("updated@x.com", found.Email)
}

func (s *PostgresStoreSuite) TestUpdateKeepsBirthDateWhenZero() {
	u := s.newUser("John Smith")
	s.Require().NoError(s.store.Create(s.ctx, &u))

	update := u
	update.DateOfBirth = time.Time{}
	update.FullName = "John Updated"
	s.Require().NoError(s.store.Update(s.ctx, update))

	found, err := s.store.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("2000-01-01", found.DateOfBirth.Format(models.DateLayout))
	s.Equal("John Updated", found.FullName)
}

func (s *PostgresStoreSuite) TestUpdateClearsPhone() {
	phone := "1234567890"
	u := s.newUser("John Smith")
	u.Phone = &phone
	s.Require().NoError(s.store.Create(s.ctx, &u))

	update := u
	update.Phone = nil
	s.Require().NoError(s.store.Update(s.ctx, update))

	found, err := s.store.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Nil(found.Phone)
}

func (s *PostgresStoreSuite) TestUpdateUnknownIDReturnsNotFound() {
	u := s.newUser("John Smith")
	u.ID = 9999
	s.Require().ErrorIs(s.store.Update(s.ctx, u), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestFindByIDUnknownReturnsNotFound() {
	_, err := s.store.FindByID(s.ctx, 9999)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
