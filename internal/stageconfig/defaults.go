package stageconfig

import "strconv"

// Production transport defaults. A development profile (dev=true) swaps
// every multicast endpoint for a loopback unicast address on its own dev
// port (14999, 15000, 15002, 15003), so a stage can be run and exercised
// locally without a multicast-capable network.
const (
	rawTrackGroup      = "RawTrackData"
	extrapTrackGroup   = "ExtrapTrackData"
	delayCalcTrackGroup = "DelayCalcTrackData"
	finalCalcTrackGroup = "FinalCalcTrackData"

	// prodRawTrackAddr/Port address the hop feeding stage A from its
	// upstream origin, one address below the A→B hop in the same
	// 239.1.1.x numbering scheme.
	prodRawTrackAddr = "239.1.1.1"
	prodRawTrackPort = 9000

	prodExtrapAddr   = "239.1.1.2"
	prodExtrapPort   = 9001
	prodDelayCalcAddr = "239.1.1.5"
	prodDelayCalcPort = 9595
	prodFinalCalcAddr = "239.1.1.5"
	prodFinalCalcPort = 9597

	devLoopback  = "127.0.0.1"
	devRawTrackPort = 14999
	devExtrapPort   = 15000
	devDelayCalcPort = 15002
	devFinalCalcPort = 15003

	defaultFIn  = 8.0
	defaultFOut = 100.0

	stageAOutboundCapacity = 1024
	stageBInboundCapacity  = 500
	midStageOutboundCapacity = 1000
	analyticsSinkCapacity  = 200

	ioThreadPriority     = 95
	domainWorkerPriority = 90

	receiverCore = 1
	workerCore   = 3
	senderCoreAB = 2
	senderCoreBC = 4
)

func udpEndpoint(dev bool, prodAddr string, prodPort, devPort int) string {
	if dev {
		return formatUDP(devLoopback, devPort)
	}
	return formatUDP(prodAddr, prodPort)
}

func formatUDP(host string, port int) string {
	return "udp://" + host + ":" + strconv.Itoa(port)
}

// DevEnv is the environment-variable name reserved for the loopback
// development profile. Nothing in this package reads it: LoadStageA/B/C
// select the profile only from their dev argument.
const DevEnv = "TRACKRELAY_DEV"

// LoadStageA resolves stage A's configuration: inbound raw-track hop from
// its origin, outbound to A→B.
func LoadStageA(dev bool) Config {
	return Config{
		Role:                  RoleStageA,
		InboundGroup:          envString("TRACKRELAY_RAW_GROUP", rawTrackGroup),
		InboundEndpoint:       envString("TRACKRELAY_RAW_ENDPOINT", udpEndpoint(dev, prodRawTrackAddr, prodRawTrackPort, devRawTrackPort)),
		OutboundGroup:         envString("TRACKRELAY_AB_GROUP", extrapTrackGroup),
		OutboundEndpoint:      envString("TRACKRELAY_AB_ENDPOINT", udpEndpoint(dev, prodExtrapAddr, prodExtrapPort, devExtrapPort)),
		FIn:                   envFloat("TRACKRELAY_F_IN", defaultFIn),
		FOut:                  envFloat("TRACKRELAY_F_OUT", defaultFOut),
		InboundQueueCapacity:  envInt("TRACKRELAY_A_IN_QCAP", stageBInboundCapacity),
		OutboundQueueCapacity: envInt("TRACKRELAY_A_OUT_QCAP", stageAOutboundCapacity),
		ReceiverCPU:           receiverCore,
		WorkerCPU:             workerCore,
		SenderCPU:             senderCoreAB,
		ReceiverPriority:      ioThreadPriority,
		WorkerPriority:        domainWorkerPriority,
		SenderPriority:        ioThreadPriority,
	}
}

// LoadStageB resolves stage B's configuration: inbound from A→B, outbound
// to B→C.
func LoadStageB(dev bool) Config {
	return Config{
		Role:                  RoleStageB,
		InboundGroup:          envString("TRACKRELAY_AB_GROUP", extrapTrackGroup),
		InboundEndpoint:       envString("TRACKRELAY_AB_ENDPOINT", udpEndpoint(dev, prodExtrapAddr, prodExtrapPort, devExtrapPort)),
		OutboundGroup:         envString("TRACKRELAY_BC_GROUP", delayCalcTrackGroup),
		OutboundEndpoint:      envString("TRACKRELAY_BC_ENDPOINT", udpEndpoint(dev, prodDelayCalcAddr, prodDelayCalcPort, devDelayCalcPort)),
		InboundQueueCapacity:  envInt("TRACKRELAY_B_IN_QCAP", stageBInboundCapacity),
		OutboundQueueCapacity: envInt("TRACKRELAY_B_OUT_QCAP", midStageOutboundCapacity),
		ReceiverCPU:           receiverCore,
		WorkerCPU:             workerCore,
		SenderCPU:             senderCoreAB,
		ReceiverPriority:      ioThreadPriority,
		WorkerPriority:        domainWorkerPriority,
		SenderPriority:        ioThreadPriority,
	}
}

// LoadStageC resolves stage C's configuration: inbound from B→C, outbound
// (terminal) on group C→.
func LoadStageC(dev bool) Config {
	return Config{
		Role:                  RoleStageC,
		InboundGroup:          envString("TRACKRELAY_BC_GROUP", delayCalcTrackGroup),
		InboundEndpoint:       envString("TRACKRELAY_BC_ENDPOINT", udpEndpoint(dev, prodDelayCalcAddr, prodDelayCalcPort, devDelayCalcPort)),
		OutboundGroup:         envString("TRACKRELAY_C_GROUP", finalCalcTrackGroup),
		OutboundEndpoint:      envString("TRACKRELAY_C_ENDPOINT", udpEndpoint(dev, prodFinalCalcAddr, prodFinalCalcPort, devFinalCalcPort)),
		InboundQueueCapacity:  envInt("TRACKRELAY_C_IN_QCAP", stageBInboundCapacity),
		OutboundQueueCapacity: envInt("TRACKRELAY_C_OUT_QCAP", midStageOutboundCapacity),
		ReceiverCPU:           receiverCore,
		WorkerCPU:             workerCore,
		SenderCPU:             senderCoreBC,
		ReceiverPriority:      ioThreadPriority,
		WorkerPriority:        domainWorkerPriority,
		SenderPriority:        ioThreadPriority,
	}
}

// AnalyticsSinkCapacity is the queue capacity for stage C's local analytics
// sink.
func AnalyticsSinkCapacity() int {
	return envInt("TRACKRELAY_ANALYTICS_QCAP", analyticsSinkCapacity)
}
