package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReleaseDate(t *testing.T) {
	tests := []struct {
		name    string
		date    Date
		wantErr bool
	}{
		{name: "day before floor is rejected", date: NewDate(1895, time.December, 27), wantErr: true},
		{name: "floor itself is accepted", date: NewDate(1895, time.December, 28), wantErr: false},
		{name: "day after floor is accepted", date: NewDate(1895, time.December, 29), wantErr: false},
		{name: "modern date is accepted", date: NewDate(2020, time.January, 1), wantErr: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReleaseDate(tt.date)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin("dolore"))
	assert.ErrorIs(t, ValidateLogin(""), ErrInvalidLogin)
	assert.ErrorIs(t, ValidateLogin("dolore ullamco"), ErrInvalidLogin)
	assert.ErrorIs(t, ValidateLogin("with\ttab"), ErrInvalidLogin)
}

func TestValidateBirthday(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateBirthday(NewDate(1990, time.March, 15), now))
	assert.NoError(t, ValidateBirthday(NewDate(2024, time.June, 1), now))
	assert.ErrorIs(t, ValidateBirthday(NewDate(2024, time.June, 2), now), ErrFutureBirthday)
}

func TestNormalizeName(t *testing.T) {
	u := &User{Login: "dolore", Name: ""}
	NormalizeName(u)
	assert.Equal(t, "dolore", u.Name)

	u = &User{Login: "dolore", Name: "   "}
	NormalizeName(u)
	assert.Equal(t, "dolore", u.Name)

	u = &User{Login: "dolore", Name: "Nick Name"}
	NormalizeName(u)
	assert.Equal(t, "Nick Name", u.Name)
}

func TestDateJSON(t *testing.T) {
	d := NewDate(1967, time.March, 25)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1967-03-25"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"1967-03-25"`), &parsed))
	assert.True(t, parsed.Equal(d.Time))

	var zero Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &zero))
	assert.True(t, zero.IsZero())

	var bad Date
	assert.Error(t, json.Unmarshal([]byte(`"25.03.1967"`), &bad))
}

func TestFilmClone(t *testing.T) {
	film := &Film{
		ID:     1,
		Name:   "nisi eiusmod",
		Genres: []Genre{{ID: 1, Name: "Комедия"}},
		Likes:  []int64{1, 2},
	}

	clone := film.Clone()
	clone.Genres[0].Name = "changed"
	clone.Likes[0] = 99

	assert.Equal(t, "Комедия", film.Genres[0].Name)
	assert.Equal(t, int64(1), film.Likes[0])
}
