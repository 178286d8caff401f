package yaerrors_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/YaCodeDev/GoYaRSA/yalogger"
)

var errSentinel = errors.New("sentinel")

func TestFromString_Flow(t *testing.T) {
	t.Parallel()

	err := yaerrors.FromString(http.StatusNotFound, "Not Found")
	require.NotNil(t, err)

	assert.Equal(t, http.StatusNotFound, err.Code())
	assert.Equal(t, "404 | Not Found", err.Error())
}

func TestFromError_KeepsCause(t *testing.T) {
	t.Parallel()

	err := yaerrors.FromError(http.StatusBadRequest, errSentinel, "bad input")

	assert.Equal(t, "400 | bad input: sentinel", err.Error())
	assert.ErrorIs(t, err, errSentinel)
}

func TestWrap_PrependsTraceback(t *testing.T) {
	t.Parallel()

	err := yaerrors.FromError(http.StatusBadRequest, errSentinel, "inner").Wrap("outer")

	assert.Equal(t, "400 | outer -> inner: sentinel", err.Error())
	assert.Equal(t, "outer", err.UnwrapLastError())
	assert.ErrorIs(t, err, errSentinel)
}

func TestUnwrapLastError_NoWrap(t *testing.T) {
	t.Parallel()

	err := yaerrors.FromString(http.StatusTeapot, "single")

	assert.Equal(t, "single", err.UnwrapLastError())
}

func TestWithLog_ReportsMessage(t *testing.T) {
	t.Parallel()

	base, hook := test.NewNullLogger()
	log := yalogger.NewLogrusLogger(base)

	err := yaerrors.FromErrorWithLog(http.StatusInternalServerError, errSentinel, "failed", log)
	require.NotNil(t, err)

	_ = err.WrapWithLog("while testing", log)

	require.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "while testing", hook.LastEntry().Message)
}
