package sim

import (
	"fmt"
	"sort"
	"strings"
)

// TimeAvg accumulates the time-weighted average of a step function:
// a value v holds from the moment it is recorded until the next
// recording (or Finish), and Average reports sum(v_i * dt_i) / sum(dt_i).
type TimeAvg struct {
	lastUpdate int64
	lastValue  float64
	sumValues  float64
	sumTime    float64
}

func newTimeAvg(seededAt int64) *TimeAvg {
	return &TimeAvg{lastUpdate: seededAt}
}

// Average returns the time-weighted mean. Callers should only read this
// after Finish; sumTime is 0 (division by zero) if no interval of
// positive length was ever closed.
func (t *TimeAvg) Average() float64 {
	return t.sumValues / t.sumTime
}

// OutputSingle accumulates scalar metrics: one-shot values recorded at
// most once, and named time-averaged step functions sampled throughout
// a run. Both are gated by Enable — the warmup period — so that no
// pre-warmup activity contaminates the reported averages or leaks into
// the one-shot counters.
type OutputSingle struct {
	enabled bool
	warmup  int64
	oneTime map[string]float64
	timeAvg map[string]*TimeAvg
}

// NewOutputSingle returns an accumulator with nothing recorded and
// collection disabled until Enable is called.
func NewOutputSingle() *OutputSingle {
	return &OutputSingle{
		oneTime: make(map[string]float64),
		timeAvg: make(map[string]*TimeAvg),
	}
}

// OneTime records a scalar metric. No-op before Enable has been called.
func (o *OutputSingle) OneTime(name string, value float64) {
	if o.enabled {
		o.oneTime[name] = value
	}
}

// TimeAvg records a sample of the named step function at time now. The
// accumulator is created lazily, seeded at the current warmup instant
// (zero before Enable ever fires) with a last-value of zero. Before
// Enable, a call only updates the running "current value" that the
// first post-warmup interval will be charged against — no interval is
// ever accumulated pre-warmup, so no sample is lost across the
// enable transition, it simply hasn't started contributing yet.
func (o *OutputSingle) TimeAvg(name string, now int64, value float64) {
	acc, ok := o.timeAvg[name]
	if !ok {
		acc = newTimeAvg(o.warmup)
		o.timeAvg[name] = acc
	}
	if o.enabled {
		dt := float64(now - acc.lastUpdate)
		acc.sumValues += dt * acc.lastValue
		acc.sumTime += dt
		acc.lastUpdate = now
	}
	acc.lastValue = value
}

// Enable starts the warmup-gated accumulation window: one_time starts
// accepting values, and every time-average already created has its
// clock reset to now (its sums are untouched, since none could have
// accumulated before Enable).
func (o *OutputSingle) Enable(now int64) {
	o.enabled = true
	o.warmup = now
	for _, acc := range o.timeAvg {
		acc.lastUpdate = now
	}
}

// Finish closes the final open interval of every time-average at now.
// Call exactly once, at the end of a run, before reading Averages.
func (o *OutputSingle) Finish(now int64) {
	for _, acc := range o.timeAvg {
		dt := float64(now - acc.lastUpdate)
		acc.sumValues += dt * acc.lastValue
		acc.sumTime += dt
		acc.lastUpdate = now
	}
}

// OneTimeNames returns the recorded one-shot metric names in sorted
// order, matching the deterministic column ordering a CSV writer needs.
func (o *OutputSingle) OneTimeNames() []string { return sortedKeys(o.oneTime) }

// OneTimeValue returns the recorded value for a one-shot metric name.
func (o *OutputSingle) OneTimeValue(name string) float64 { return o.oneTime[name] }

// TimeAvgNames returns the recorded time-average metric names in
// sorted order.
func (o *OutputSingle) TimeAvgNames() []string { return sortedKeys(o.timeAvg) }

// Average returns the time-weighted average for a named metric.
func (o *OutputSingle) Average(name string) float64 {
	acc, ok := o.timeAvg[name]
	if !ok {
		return 0
	}
	return acc.Average()
}

// Header returns the CSV column header matching ToCSV's field order:
// every one-shot metric name (sorted), followed by every time-average
// metric name (sorted). For use by the external CSV writer only.
func (o *OutputSingle) Header() string {
	return strings.Join(o.OneTimeNames(), ",") + "," + strings.Join(o.TimeAvgNames(), ",")
}

// ToCSV renders every recorded one-shot value, then every time-average
// metric's Average, in the same order as Header. For use by the
// external CSV writer only.
func (o *OutputSingle) ToCSV() string {
	oneTime := make([]string, 0, len(o.oneTime))
	for _, name := range o.OneTimeNames() {
		oneTime = append(oneTime, fmt.Sprintf("%v", o.oneTime[name]))
	}
	timeAvg := make([]string, 0, len(o.timeAvg))
	for _, name := range o.TimeAvgNames() {
		timeAvg = append(timeAvg, fmt.Sprintf("%v", o.timeAvg[name].Average()))
	}
	return strings.Join(oneTime, ",") + "," + strings.Join(timeAvg, ",")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// OutputSeriesSingle holds every recorded sample of one named series
// metric, grouped by label (e.g. "num_qubits,priority").
type OutputSeriesSingle struct {
	Header string
	Values map[string][]float64
}

// OutputSeries collects per-label sample series. Nothing is recorded
// until Enable has been called, mirroring OutputSingle's warmup gate.
type OutputSeries struct {
	enabled bool
	series  map[string]*OutputSeriesSingle
}

// NewOutputSeries returns a series collector with collection disabled.
func NewOutputSeries() *OutputSeries {
	return &OutputSeries{series: make(map[string]*OutputSeriesSingle)}
}

// Add appends value to the series identified by (name, label). No-op
// before Enable has been called.
func (s *OutputSeries) Add(name, label string, value float64) {
	if !s.enabled {
		return
	}
	single := s.entry(name)
	single.Values[label] = append(single.Values[label], value)
}

// Enable starts accepting samples via Add.
func (s *OutputSeries) Enable() { s.enabled = true }

// SetHeader records the column header a CSV writer should use for a
// named series' label column. For use by the external CSV writer only;
// the kernel itself never reads it back.
func (s *OutputSeries) SetHeader(name, header string) {
	s.entry(name).Header = header
}

func (s *OutputSeries) entry(name string) *OutputSeriesSingle {
	single, ok := s.series[name]
	if !ok {
		single = &OutputSeriesSingle{Header: "label", Values: make(map[string][]float64)}
		s.series[name] = single
	}
	return single
}

// Names returns the recorded series metric names in sorted order.
func (s *OutputSeries) Names() []string {
	keys := make([]string, 0, len(s.series))
	for k := range s.series {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Series returns the accumulated series for a metric name, or nil if
// neither SetHeader nor an enabled Add ever touched that name.
func (s *OutputSeries) Series(name string) *OutputSeriesSingle {
	return s.series[name]
}

// Output is the complete result of one simulation run: one-shot and
// time-averaged scalars, per-label sample series, and a rendering of
// the Config that produced the run (for the external CSV writer to
// prepend as identifying columns).
type Output struct {
	Single    *OutputSingle
	Series    *OutputSeries
	ConfigCSV string
}
