package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestCreateFilmRequestValidation(t *testing.T) {
	v := validator.New()

	valid := CreateFilmRequest{
		Name:        "nisi eiusmod",
		Description: "adipisicing",
		ReleaseDate: NewDate(1967, time.March, 25),
		Duration:    100,
		Mpa:         RefID{ID: 1},
	}
	assert.NoError(t, v.Struct(valid))

	blankName := valid
	blankName.Name = ""
	assert.Error(t, v.Struct(blankName))

	longDescription := valid
	longDescription.Description = strings.Repeat("a", 201)
	assert.Error(t, v.Struct(longDescription))

	atLimitDescription := valid
	atLimitDescription.Description = strings.Repeat("a", 200)
	assert.NoError(t, v.Struct(atLimitDescription))

	zeroDuration := valid
	zeroDuration.Duration = 0
	assert.Error(t, v.Struct(zeroDuration))

	negativeDuration := valid
	negativeDuration.Duration = -50
	assert.Error(t, v.Struct(negativeDuration))

	badGenre := valid
	badGenre.Genres = []RefID{{ID: 0}}
	assert.Error(t, v.Struct(badGenre))
}

func TestCreateUserRequestValidation(t *testing.T) {
	v := validator.New()

	valid := CreateUserRequest{
		Email:    "mail@mail.ru",
		Login:    "dolore",
		Name:     "Nick Name",
		Birthday: NewDate(1946, time.August, 20),
	}
	assert.NoError(t, v.Struct(valid))

	badEmail := valid
	badEmail.Email = "mail.ru"
	assert.Error(t, v.Struct(badEmail))

	blankEmail := valid
	blankEmail.Email = ""
	assert.Error(t, v.Struct(blankEmail))

	blankLogin := valid
	blankLogin.Login = ""
	assert.Error(t, v.Struct(blankLogin))

	noBirthday := valid
	noBirthday.Birthday = Date{}
	assert.Error(t, v.Struct(noBirthday))
}

func TestUpdateRequestValidation(t *testing.T) {
	v := validator.New()

	// id обязателен в любом запросе обновления.
	assert.Error(t, v.Struct(UpdateFilmRequest{}))
	assert.Error(t, v.Struct(UpdateUserRequest{}))

	assert.NoError(t, v.Struct(UpdateFilmRequest{ID: 1}))
	assert.NoError(t, v.Struct(UpdateUserRequest{ID: 1}))

	badEmail := "mail.ru"
	assert.Error(t, v.Struct(UpdateUserRequest{ID: 1, Email: &badEmail}))

	long := strings.Repeat("a", 201)
	assert.Error(t, v.Struct(UpdateFilmRequest{ID: 1, Description: &long}))
}
