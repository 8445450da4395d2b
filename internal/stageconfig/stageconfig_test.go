package stageconfig

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadStageAProductionDefaults(t *testing.T) {
	cfg := LoadStageA(false)
	assert.Equal(t, "ExtrapTrackData", cfg.OutboundGroup)
	assert.Equal(t, "udp://239.1.1.2:9001", cfg.OutboundEndpoint)
	assert.Equal(t, 8.0, cfg.FIn)
	assert.Equal(t, 100.0, cfg.FOut)
	assert.Equal(t, 1024, cfg.OutboundQueueCapacity)
}

func TestLoadStageADevProfileUsesLoopback(t *testing.T) {
	cfg := LoadStageA(true)
	assert.Equal(t, "udp://127.0.0.1:15000", cfg.OutboundEndpoint)
}

func TestLoadStageBWiresInboundAndOutboundHops(t *testing.T) {
	cfg := LoadStageB(false)
	assert.Equal(t, "udp://239.1.1.2:9001", cfg.InboundEndpoint)
	assert.Equal(t, "udp://239.1.1.5:9595", cfg.OutboundEndpoint)
	assert.Equal(t, 500, cfg.InboundQueueCapacity)
	assert.Equal(t, 1000, cfg.OutboundQueueCapacity)
}

func TestLoadStageCTerminalGroup(t *testing.T) {
	cfg := LoadStageC(false)
	assert.Equal(t, "FinalCalcTrackData", cfg.OutboundGroup)
	assert.Equal(t, "udp://239.1.1.5:9597", cfg.OutboundEndpoint)
}

func TestEnvOverrideWinsOverDefault(t *testing.T) {
	os.Setenv("TRACKRELAY_F_IN", "16")
	defer os.Unsetenv("TRACKRELAY_F_IN")

	cfg := LoadStageA(false)
	assert.Equal(t, 16.0, cfg.FIn)
}
