package chisel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tydi-hdl/tydi/internal/design"
)

func TestEmitComponentUnimplemented(t *testing.T) {
	s, err := design.NewStreamlet("X")
	require.NoError(t, err)

	_, err = EmitComponent(&s)
	var de *design.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, design.ErrCodeUnimplemented, de.Code)
}
