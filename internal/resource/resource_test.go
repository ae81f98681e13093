package resource_test

import (
	"bytes"
	"strings"
	"testing"

	"codeberg.org/mutker/scopeguard/internal/errors"
	"codeberg.org/mutker/scopeguard/internal/logger"
	"codeberg.org/mutker/scopeguard/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSink() (logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}

	return logger.New(buf), buf
}

func notifications(buf *bytes.Buffer, msg string) int {
	return strings.Count(buf.String(), msg)
}

func errorCode(t *testing.T, err error) errors.ErrorCode {
	t.Helper()

	var appErr errors.Error
	require.ErrorAs(t, err, &appErr)

	return appErr.Code()
}

func TestOpen(t *testing.T) {
	sink, buf := newTestSink()

	r := resource.Open("r1", sink)
	assert.Equal(t, "r1", r.Name())
	assert.Equal(t, resource.StateOpen, r.State())
	assert.Equal(t, 1, notifications(buf, "resource opened"))
}

func TestPerformOperation(t *testing.T) {
	sink, buf := newTestSink()

	r := resource.Open("r1", sink)
	require.NoError(t, r.PerformOperation())
	assert.Equal(t, 1, notifications(buf, "operation performed"))
	assert.Equal(t, resource.StateOpen, r.State(), "Operations do not change state")
}

func TestPerformOperationOnClosed(t *testing.T) {
	sink, buf := newTestSink()

	r := resource.Open("r1", sink)
	require.NoError(t, r.Close())

	err := r.PerformOperation()
	require.Error(t, err)
	assert.Equal(t, resource.ErrResourceClosed, errorCode(t, err))
	assert.Equal(t, 0, notifications(buf, "operation performed"))
}

func TestFaultyResource(t *testing.T) {
	sink, _ := newTestSink()

	r := resource.Open(resource.FaultyName, sink)
	err := r.PerformOperation()
	require.Error(t, err)
	assert.Equal(t, resource.ErrResourceFaulty, errorCode(t, err))
	assert.Equal(t, resource.StateOpen, r.State(), "A faulty operation does not close the resource")
}

func TestFaultyResourceClosedTakesPrecedence(t *testing.T) {
	sink, _ := newTestSink()

	r := resource.Open(resource.FaultyName, sink)
	require.NoError(t, r.Close())

	err := r.PerformOperation()
	assert.Equal(t, resource.ErrResourceClosed, errorCode(t, err), "Closed state wins over the faulty name")
}

func TestCloseIdempotent(t *testing.T) {
	sink, buf := newTestSink()

	r := resource.Open("r1", sink)
	require.NoError(t, r.Close())
	assert.Equal(t, resource.StateClosed, r.State())
	assert.Equal(t, 1, notifications(buf, "resource closed"))

	require.NoError(t, r.Close(), "Second close is a no-op")
	assert.Equal(t, 1, notifications(buf, "resource closed"), "No second notification")
}

func TestFailingCloseStillTransitions(t *testing.T) {
	sink, buf := newTestSink()

	r := resource.Open(resource.FailingName, sink)
	err := r.Close()
	require.Error(t, err)
	assert.Equal(t, resource.ErrCloseFailed, errorCode(t, err))
	assert.Equal(t, resource.StateClosed, r.State(), "State flips before the failure is reported")
	assert.Equal(t, 1, notifications(buf, "resource closed"))

	require.NoError(t, r.Close(), "No second failure on an already closed resource")
	assert.Equal(t, 1, notifications(buf, "resource closed"))
}

func TestTransfer(t *testing.T) {
	sink, buf := newTestSink()

	src := resource.Open("handover", sink)
	dst := src.Transfer()

	assert.Equal(t, src.ID(), dst.ID(), "Transfer preserves the resource identity")
	assert.Equal(t, "handover", dst.Name())
	assert.Equal(t, resource.StateOpen, dst.State())

	err := src.PerformOperation()
	assert.Equal(t, resource.ErrResourceClosed, errorCode(t, err), "The source is inert after transfer")

	require.NoError(t, src.Close())
	assert.Equal(t, 0, notifications(buf, "resource closed"), "An inert source emits nothing on close")

	require.NoError(t, dst.Close())
	assert.Equal(t, 1, notifications(buf, "resource closed"), "The destination carries the close obligation")
}

func TestTransferClosedResource(t *testing.T) {
	sink, buf := newTestSink()

	src := resource.Open("r1", sink)
	require.NoError(t, src.Close())

	dst := src.Transfer()
	assert.Equal(t, resource.StateClosed, dst.State(), "Transfer preserves the closed state")
	require.NoError(t, dst.Close())
	assert.Equal(t, 1, notifications(buf, "resource closed"))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "open", resource.StateOpen.String())
	assert.Equal(t, "closed", resource.StateClosed.String())
}
