package services

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf-backend/src/middleware"
	"github.com/openshelf/openshelf-backend/src/models"
)

func configureAuth(t *testing.T) {
	t.Helper()
	middleware.Configure("test-secret", "openshelf", "openshelf-clients")
}

func TestRegisterDefaultsRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register(&models.UserModel{
		Name:     "Ada",
		Email:    "ada@openshelf.local",
		Password: "hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "hunter2", user.Password, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register(&models.UserModel{
		Name: "Ada", Email: "ada@openshelf.local", Password: "hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Register(&models.UserModel{
		Name: "Other Ada", Email: "ada@openshelf.local", Password: "secret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterConcurrentDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	// Whether the duplicate is caught by the lookup or by the unique
	// index, the caller must see ErrEmailTaken, never a raw driver error
	start := make(chan struct{})
	errs := make([]error, 2)
	var wg sync.WaitGroup

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.Register(&models.UserModel{
				Name:     "Ada",
				Email:    "ada@openshelf.local",
				Password: "hunter2",
			})
		}(i)
	}
	close(start)
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrEmailTaken)
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent registration may win")

	var users int64
	require.NoError(t, db.Model(&models.UserModel{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}

func TestAuthenticateUser(t *testing.T) {
	configureAuth(t)
	db := newTestDB(t)
	svc := NewUserService(db)

	registered, err := svc.Register(&models.UserModel{
		Name:     "Ada",
		Email:    "ada@openshelf.local",
		Password: "hunter2",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.AuthenticateUser("ada@openshelf.local", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AuthenticateUser("nobody@openshelf.local", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := svc.AuthenticateUser("ada@openshelf.local", "hunter2")
	require.NoError(t, err)

	claims, err := middleware.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(registered.Id), claims.Subject)
	assert.Equal(t, "ada@openshelf.local", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "openshelf", claims.Issuer)
}

func TestDeleteUserWithOpenLoan(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	loans := NewLoanService(db, nil)
	book := createBook(t, db, "Dune")
	user := createUser(t, db, "paul@arrakis.net")

	_, err := loans.Borrow(book.Id, user.Id)
	require.NoError(t, err)

	err = svc.DeleteUser(user.Id)
	assert.ErrorIs(t, err, ErrHasOpenLoans)

	// Still there
	_, err = svc.GetUserByID(user.Id)
	require.NoError(t, err)

	_, err = loans.ReturnByBookID(book.Id)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(user.Id))

	_, err = svc.GetUserByID(user.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	err := svc.DeleteUser(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserWithLoans(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	loans := NewLoanService(db, nil)
	user := createUser(t, db, "paul@arrakis.net")
	first := createBook(t, db, "Dune")
	second := createBook(t, db, "Dune Messiah")

	_, err := loans.Borrow(first.Id, user.Id)
	require.NoError(t, err)
	_, err = loans.Borrow(second.Id, user.Id)
	require.NoError(t, err)
	_, err = loans.ReturnByBookID(first.Id)
	require.NoError(t, err)

	got, history, err := svc.GetUserWithLoans(user.Id)
	require.NoError(t, err)
	assert.Equal(t, user.Id, got.Id)

	// History keeps the closed loan alongside the open one
	require.Len(t, history, 2)
	for _, loan := range history {
		require.NotNil(t, loan.Book)
	}

	_, _, err = svc.GetUserWithLoans(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
