package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogData(t *testing.T) (*LogData, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := SetupLogging()
	logger.Out = buf
	return NewLogData(logger), buf
}

func TestLogData_FieldsAndTimings(t *testing.T) {
	logData, buf := newBufferedLogData(t)

	logData.AddData("transactionCount", 3)
	stop := logData.AddTiming("listTransactionsMs")
	stop()
	logData.Log().Info("done")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, float64(3), line["transactionCount"])
	assert.Contains(t, line, "listTransactionsMs")
	assert.Equal(t, "info", line["loglevel"])
}

func TestLogData_AddToExistingTiming(t *testing.T) {
	logData, _ := newBufferedLogData(t)

	logData.AddToExistingTiming("dbMs")()
	logData.AddToExistingTiming("dbMs")()

	_, ok := logData.timeItems["dbMs"]
	assert.True(t, ok)
}

func TestGetLogData(t *testing.T) {
	logData, _ := newBufferedLogData(t)

	assert.Nil(t, GetLogData(context.Background()))
	assert.Same(t, logData, GetLogData(WithLogData(context.Background(), logData)))
}

func TestTimed_WithoutLogData(t *testing.T) {
	called := false
	err := Timed(nil, "x", func() error {
		called = true
		return errors.New("boom")
	})

	assert.True(t, called)
	assert.EqualError(t, err, "boom")
}

func TestSetupLoggingWithLevel_InvalidFallsBackToInfo(t *testing.T) {
	logger := SetupLoggingWithLevel("chatty")
	assert.Equal(t, "info", logger.Level.String())

	logger = SetupLoggingWithLevel("debug")
	assert.Equal(t, "debug", logger.Level.String())
}

func TestLoggingWrapper_PassesLogDataThroughContext(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := SetupLogging()
	logger.Out = buf

	handler := LoggingWrapper("Ping", logger, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		assert.Same(t, logData, GetLogData(req.Context()))
		logData.AddData("ping", true)
		w.WriteHeader(http.StatusNoContent)
		return nil
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, buf.String(), "Handler.Ping.Complete")
	assert.Contains(t, buf.String(), `"ping":true`)
}
