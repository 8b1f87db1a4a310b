package comtrade

import (
	"github.com/gridsignal/comtrade/cfg"
	"github.com/gridsignal/comtrade/dat"
	"github.com/gridsignal/comtrade/internal/hash"
)

// Record is a fully decoded recording: the parsed configuration, the
// per-sample arrays, and the auxiliary HDR/INF text when present.
//
// Each Record is independently owned by its caller; decoding shares no
// state between calls.
type Record struct {
	// Config is the parsed configuration; read-only.
	Config *cfg.Config

	// Time holds per-sample times in seconds relative to the start
	// timestamp.
	Time []float64

	// Analog holds one physical-value array per analog channel, in
	// declaration order. Values are reconstructed as a*raw + b.
	Analog [][]float64

	// Status holds one 0/1 array per status channel, in declaration
	// order.
	Status [][]int32

	// TotalSamples is the per-channel sample count; every array above
	// has exactly this length.
	TotalSamples int

	// HDR and INF are the auxiliary text files' contents, empty when
	// absent.
	HDR string
	INF string

	analogIndex map[uint64]int
	statusIndex map[uint64]int
}

func newRecord(c *cfg.Config, d *dat.Record, hdr, inf string) *Record {
	r := &Record{
		Config:       c,
		Time:         d.Time,
		Analog:       d.Analog,
		Status:       d.Status,
		TotalSamples: d.TotalSamples,
		HDR:          hdr,
		INF:          inf,
		analogIndex:  make(map[uint64]int, c.AnalogCount()),
		statusIndex:  make(map[uint64]int, c.StatusCount()),
	}
	for i, ch := range c.AnalogChannels {
		id := hash.ID(ch.Name)
		if _, exists := r.analogIndex[id]; !exists {
			r.analogIndex[id] = i
		}
	}
	for i, ch := range c.StatusChannels {
		id := hash.ID(ch.Name)
		if _, exists := r.statusIndex[id]; !exists {
			r.statusIndex[id] = i
		}
	}

	return r
}

// ChannelID converts a channel name to its 64-bit hash identifier, the
// key used by the Record's name indexes.
func ChannelID(name string) uint64 {
	return hash.ID(name)
}

// Warnings returns the non-fatal conditions collected while parsing the
// configuration; empty when none occurred or when suppressed with
// WithIgnoreWarnings.
func (r *Record) Warnings() []cfg.Warning {
	return r.Config.Warnings
}

// TriggerTime returns the trigger instant relative to the recording
// start, in seconds.
func (r *Record) TriggerTime() float64 {
	return r.Config.TriggerTimestamp.Sub(r.Config.StartTimestamp).Seconds()
}

// AnalogNames returns the analog channel names in declaration order.
func (r *Record) AnalogNames() []string {
	names := make([]string, len(r.Config.AnalogChannels))
	for i, ch := range r.Config.AnalogChannels {
		names[i] = ch.Name
	}

	return names
}

// StatusNames returns the status channel names in declaration order.
func (r *Record) StatusNames() []string {
	names := make([]string, len(r.Config.StatusChannels))
	for i, ch := range r.Config.StatusChannels {
		names[i] = ch.Name
	}

	return names
}

// AnalogByName returns the physical-value array of the named analog
// channel. The hash index hit is verified against the stored channel
// name, so a hash collision reports a miss rather than the wrong
// channel. With duplicate channel names the first declaration wins.
func (r *Record) AnalogByName(name string) ([]float64, bool) {
	i, ok := r.analogIndex[hash.ID(name)]
	if !ok || r.Config.AnalogChannels[i].Name != name {
		return nil, false
	}

	return r.Analog[i], true
}

// StatusByName returns the value array of the named status channel,
// with the same verification semantics as AnalogByName.
func (r *Record) StatusByName(name string) ([]int32, bool) {
	i, ok := r.statusIndex[hash.ID(name)]
	if !ok || r.Config.StatusChannels[i].Name != name {
		return nil, false
	}

	return r.Status[i], true
}
