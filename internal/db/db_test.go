package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialector(t *testing.T) {
	d, err := Dialector("mysql", "user:pass@tcp(localhost:3306)/app")
	assert.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector("postgres", "host=localhost user=app dbname=app")
	assert.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector("oracle", "")
	assert.Error(t, err)
}
