package common

import (
	"encoding/json"
	"testing"

	logging "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/errors"
)

type recordHandler struct {
	records []*logging.Record
}

func (h *recordHandler) Log(r *logging.Record) error {
	h.records = append(h.records, r)
	return nil
}

func TestJsonFormatEx(t *testing.T) {
	h := &recordHandler{}
	logger := logging.New("module", "test")
	SetLogging(logger, logging.LvlDebug, h)

	var nilErr *errors.Error
	logger.Info(
		"voted",
		"error", errors.VoterNotRegistered,
		"nothing", nilErr,
		"plain", errors.New("plain").Error(),
	)
	require.Len(t, h.records, 1)

	b := JsonFormatEx(false, true).Format(h.records[0])
	require.Equal(t, byte('\n'), b[len(b)-1])

	var props map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &props))
	require.Equal(t, "voted", props["msg"])
	require.Equal(t, "test", props["module"])
	require.Nil(t, props["nothing"])
	require.Equal(t, float64(errors.VoterNotRegistered.Code), props["error"].(map[string]interface{})["code"])
}

func TestSetLoggingLevel(t *testing.T) {
	h := &recordHandler{}
	logger := logging.New()
	SetLogging(logger, logging.LvlInfo, h)

	logger.Debug("hidden")
	logger.Info("shown")
	require.Len(t, h.records, 1)
	require.Equal(t, "shown", h.records[0].Msg)
}
