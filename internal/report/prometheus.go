package report

import (
	"fmt"
	"io"
	"sort"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/harmonicstack/harmonicstack/pkg/types"
)

// Metric family names.
const (
	metricImprovement = "mhm_improvement_percent"
	metricCurrentRate = "mhm_projected_rate"
	metricBaseline    = "mhm_baseline_rate"
	metricCycles      = "mhm_optimization_cycles_total"
	metricExtra       = "mhm_summary_value"
)

// Prometheus renders reports in the Prometheus text exposition format.
type Prometheus struct {
	w      io.Writer
	format expfmt.Format
}

// NewPrometheus returns a Prometheus renderer writing to w.
func NewPrometheus(w io.Writer) *Prometheus {
	return &Prometheus{w: w, format: expfmt.NewFormat(expfmt.TypeTextPlain)}
}

// Report encodes the report's breakdown and summary as metric families.
func (p *Prometheus) Report(rep types.Report) error {
	enc := expfmt.NewEncoder(p.w, p.format)
	for _, mf := range Families(rep) {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("report: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Families converts one report into metric families, each labelled with the
// core name.
func Families(rep types.Report) []*dto.MetricFamily {
	core := labelPair("core", rep.Core)

	terms := append(orderedTerms(rep.Breakdown), types.TotalKey)
	improvement := family(metricImprovement, "Percentage contribution per term of the latest pass.", dto.MetricType_GAUGE)
	for _, term := range terms {
		improvement.Metric = append(improvement.Metric, gauge(rep.Breakdown[term], core, labelPair("term", term)))
	}

	rate := family(metricCurrentRate, "Projected rate floor(baseline * (1 + fraction)).", dto.MetricType_GAUGE)
	rate.Metric = []*dto.Metric{gauge(float64(rep.Summary.CurrentRate), core)}

	baseline := family(metricBaseline, "Fixed baseline rate.", dto.MetricType_GAUGE)
	baseline.Metric = []*dto.Metric{gauge(float64(rep.Summary.BaselineRate), core)}

	cycles := family(metricCycles, "Total-computation passes since the core was constructed.", dto.MetricType_COUNTER)
	cycles.Metric = []*dto.Metric{{
		Label:   []*dto.LabelPair{core},
		Counter: &dto.Counter{Value: ptr(float64(rep.Summary.OptimizationCycles))},
	}}

	out := []*dto.MetricFamily{improvement, rate, baseline, cycles}

	if len(rep.Summary.Extra) > 0 {
		keys := make([]string, 0, len(rep.Summary.Extra))
		for k := range rep.Summary.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		extra := family(metricExtra, "Core-specific summary values.", dto.MetricType_GAUGE)
		for _, k := range keys {
			extra.Metric = append(extra.Metric, gauge(rep.Summary.Extra[k], core, labelPair("key", k)))
		}
		out = append(out, extra)
	}
	return out
}

func family(name, help string, typ dto.MetricType) *dto.MetricFamily {
	return &dto.MetricFamily{Name: ptr(name), Help: ptr(help), Type: typ.Enum()}
}

func gauge(v float64, labels ...*dto.LabelPair) *dto.Metric {
	return &dto.Metric{Label: labels, Gauge: &dto.Gauge{Value: ptr(v)}}
}

func labelPair(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: ptr(name), Value: ptr(value)}
}

func ptr[T any](v T) *T { return &v }
