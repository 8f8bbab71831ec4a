package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/tableau/model"
)

func TestRegisterFormat(t *testing.T) {
	var got string
	RegisterFormat(".Fixture", func(path string) (*model.LP, error) {
		got = path
		return ParseString("min 1\n1 >= 2")
	})

	p, err := Load("testdata/problem.fixture")
	require.NoError(t, err)
	assert.Equal(t, "testdata/problem.fixture", got)
	assert.Equal(t, []float64{2}, p.B)
}
