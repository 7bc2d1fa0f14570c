package monitoring

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/process"
)

// ConnectionCounter reports how many realtime connections are open.
type ConnectionCounter interface {
	ClientCount() int
}

// StatReporter periodically logs process resource usage and the open
// realtime connection count.
type StatReporter struct {
	connections ConnectionCounter
	ticker      *time.Ticker
	done        chan bool
}

// NewStatReporter creates a new StatReporter.
func NewStatReporter(connections ConnectionCounter) *StatReporter {
	return &StatReporter{
		connections: connections,
		done:        make(chan bool),
	}
}

// Run starts the periodic reporting.
func (sr *StatReporter) Run() {
	log.Info().Msg("Starting background stat reporter...")
	sr.ticker = time.NewTicker(30 * time.Second)
	defer sr.ticker.Stop()

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn().Err(err).Msg("StatReporter: could not attach to own process")
		proc = nil
	}

	for {
		select {
		case <-sr.done:
			log.Info().Msg("Stopping background stat reporter.")
			return
		case <-sr.ticker.C:
			sr.report(proc)
		}
	}
}

// Stop halts the periodic reporting.
func (sr *StatReporter) Stop() {
	sr.done <- true
}

func (sr *StatReporter) report(proc *process.Process) {
	event := log.Info().Int("ws_clients", sr.connections.ClientCount())

	if proc != nil {
		if cpu, err := proc.CPUPercent(); err == nil {
			event = event.Float64("cpu_percent", cpu)
		}
		if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
			event = event.Uint64("rss_bytes", mem.RSS)
		}
	}

	event.Msg("Service stats")
}
