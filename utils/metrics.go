package utils

import (
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

const metricsLogPrefix = "metrics"

type logCapabilities struct{}

func (logCapabilities) Reporting() bool { return true }
func (logCapabilities) Tagging() bool   { return true }

// LogReporter is a tally.StatsReporter which writes every flushed value to
// logrus
type LogReporter struct {
	logger *log.Entry
}

func NewLogReporter() *LogReporter {
	return &LogReporter{
		logger: log.WithField("prefix", metricsLogPrefix),
	}
}

func (r *LogReporter) fields(name string, tags map[string]string) log.Fields {
	f := log.Fields{"metric": name}
	for k, v := range tags {
		f["tag."+k] = v
	}
	return f
}

func (r *LogReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.logger.WithFields(r.fields(name, tags)).WithField("value", value).Info("counter")
}

func (r *LogReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.logger.WithFields(r.fields(name, tags)).WithField("value", value).Info("gauge")
}

func (r *LogReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.logger.WithFields(r.fields(name, tags)).WithField("value", interval).Info("timer")
}

func (r *LogReporter) ReportHistogramValueSamples(name string, tags map[string]string, buckets tally.Buckets, bucketLowerBound, bucketUpperBound float64, samples int64) {
	r.logger.WithFields(r.fields(name, tags)).WithFields(log.Fields{
		"lower":   bucketLowerBound,
		"upper":   bucketUpperBound,
		"samples": samples,
	}).Info("histogram")
}

func (r *LogReporter) ReportHistogramDurationSamples(name string, tags map[string]string, buckets tally.Buckets, bucketLowerBound, bucketUpperBound time.Duration, samples int64) {
	r.logger.WithFields(r.fields(name, tags)).WithFields(log.Fields{
		"lower":   bucketLowerBound,
		"upper":   bucketUpperBound,
		"samples": samples,
	}).Info("histogram")
}

func (r *LogReporter) Capabilities() tally.Capabilities {
	return logCapabilities{}
}

func (r *LogReporter) Flush() {}

// NewMetricScope returns a root scope reporting to logrus every interval
func NewMetricScope(prefix string, interval time.Duration) (tally.Scope, io.Closer) {
	return tally.NewRootScope(tally.ScopeOptions{
		Prefix:   prefix,
		Reporter: NewLogReporter(),
	}, interval)
}
