package analyzer

import "github.com/alejandrodnm/matchlens/internal/domain"

// DefaultRaceTargets son los objetivos de "race-to-N" para córners.
var DefaultRaceTargets = []int{3, 5, 7, 9}

// Options configura los analizadores. Los campos vacíos toman valores por defecto.
type Options struct {
	Vocabulary  *domain.Vocabulary
	Buckets     *domain.IntervalBucketizer
	HistorySize int
	RaceTargets []int
	ValueEdge   float64
}

// withDefaults rellena los campos no configurados.
func (o Options) withDefaults() Options {
	if o.Vocabulary == nil {
		o.Vocabulary = domain.DefaultVocabulary()
	}
	if o.Buckets == nil {
		o.Buckets = domain.NewIntervalBucketizer()
	}
	if o.HistorySize <= 0 {
		o.HistorySize = domain.DefaultHistorySize
	}
	if len(o.RaceTargets) == 0 {
		o.RaceTargets = DefaultRaceTargets
	}
	if o.ValueEdge <= 0 {
		o.ValueEdge = domain.DefaultValueEdge
	}
	return o
}
