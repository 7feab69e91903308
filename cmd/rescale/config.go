package main

// Defaults shared by the subcommands.
const (
	defaultThreads   = 0 // GOMAXPROCS
	defaultWarmup    = 2
	defaultRuns      = 10
	defaultInnerReps = 1
	defaultCSVPath   = "benchmark_results.csv"

	defaultPNGCompression = 3 // zlib-style 0..9
	defaultJPEGQuality    = 95
)

// Fixed setup of the no-argument protocol.
const (
	protocolInput       = "test_1.png"
	protocolThreads     = 12
	protocolInnerReps   = 10
	protocolValidateW   = 896
	protocolValidateH   = 896
	protocolBaseW       = 512
	protocolBaseH       = 512
	protocolSteps       = 6
	protocolScale       = 1.5
	protocolWarmup      = 2
	protocolRuns        = 20
	protocolCSVTemplate = "bench_%s.csv"
)

// Process exit codes.
const (
	exitOK       = 0
	exitUsage    = 1
	exitError    = 2
	exitMismatch = 3
)
