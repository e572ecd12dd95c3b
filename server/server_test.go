package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDrainer struct {
	stopped int
}

func (f *fakeDrainer) Stop() { f.stopped++ }

func TestShutdownDrainsAuditQueue(t *testing.T) {
	drainer := &fakeDrainer{}
	s := NewServer(nil, drainer, nil, nil, nil, nil, nil, nil)

	require.NoError(t, s.shutdown())
	assert.Equal(t, 1, drainer.stopped, "shutdown must flush queued audit writes")
}
