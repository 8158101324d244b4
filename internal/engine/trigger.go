package engine

// TriggerPolicy decides, after each appended event, whether a full analysis
// pass should run. Decoupling the policy from ingestion keeps the track path
// free of scheduling knowledge and lets alternative policies (time-based,
// externally driven) be substituted.
type TriggerPolicy interface {
	// ShouldAnalyze receives the total event count after the append.
	ShouldAnalyze(count int) bool
}

// everyN fires once the event count crosses each multiple of N. The count is
// recomputed from the event log on every call, so the watermark survives
// process restarts without any persisted state of its own.
type everyN struct {
	n int
}

// EveryN returns the watermark trigger policy. n must be positive.
func EveryN(n int) TriggerPolicy {
	if n <= 0 {
		n = 10
	}
	return everyN{n: n}
}

func (p everyN) ShouldAnalyze(count int) bool {
	return count > 0 && count%p.n == 0
}

// Never is a trigger policy that never fires. Useful when analysis is driven
// entirely by an external scheduler calling RunAnalysisPass.
var Never TriggerPolicy = neverTrigger{}

type neverTrigger struct{}

func (neverTrigger) ShouldAnalyze(int) bool { return false }
