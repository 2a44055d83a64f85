package telemetry

import "github.com/prometheus/client_golang/prometheus"

// BusinessMetrics counts hub workflow outcomes. A nil *BusinessMetrics is
// valid and records nothing, so services work without metrics wired.
type BusinessMetrics struct {
	applicationsSubmitted prometheus.Counter
	reviewDecisions       *prometheus.CounterVec
	proposalVotes         *prometheus.CounterVec
	proposalsResolved     *prometheus.CounterVec
	contactMessages       prometheus.Counter
	aiGenerations         *prometheus.CounterVec
	quotaRejections       *prometheus.CounterVec
	jobRuns               *prometheus.CounterVec
}

func newBusinessMetrics(namespace string) *BusinessMetrics {
	return &BusinessMetrics{
		applicationsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "recruitment", Name: "applications_submitted_total",
			Help: "Migration applications received.",
		}),
		reviewDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "recruitment", Name: "review_decisions_total",
			Help: "Application review decisions by stage.",
		}, []string{"stage", "decision"}),
		proposalVotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "stateinfo", Name: "votes_total",
			Help: "Votes cast on state info proposals.",
		}, []string{"decision"}),
		proposalsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "stateinfo", Name: "proposals_resolved_total",
			Help: "Proposals closed by vote.",
		}, []string{"status"}),
		contactMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "inbox", Name: "messages_received_total",
			Help: "Contact form submissions.",
		}),
		aiGenerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "ai", Name: "generations_total",
			Help: "AI generation requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
		quotaRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "ai", Name: "quota_rejections_total",
			Help: "Requests refused because the caller's quota was spent.",
		}, []string{"action"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "scheduler", Name: "job_runs_total",
			Help: "Scheduled job executions.",
		}, []string{"job", "outcome"}),
	}
}

func (b *BusinessMetrics) register(r prometheus.Registerer) {
	r.MustRegister(
		b.applicationsSubmitted,
		b.reviewDecisions,
		b.proposalVotes,
		b.proposalsResolved,
		b.contactMessages,
		b.aiGenerations,
		b.quotaRejections,
		b.jobRuns,
	)
}

// ApplicationSubmitted counts a new application
func (b *BusinessMetrics) ApplicationSubmitted() {
	if b != nil {
		b.applicationsSubmitted.Inc()
	}
}

// ReviewDecision counts an alliance or president decision
func (b *BusinessMetrics) ReviewDecision(stage, decision string) {
	if b != nil {
		b.reviewDecisions.WithLabelValues(stage, decision).Inc()
	}
}

// ProposalVote counts a vote and, if it closed the proposal, the resolution
func (b *BusinessMetrics) ProposalVote(decision, resolvedStatus string) {
	if b == nil {
		return
	}
	b.proposalVotes.WithLabelValues(decision).Inc()
	if resolvedStatus != "" {
		b.proposalsResolved.WithLabelValues(resolvedStatus).Inc()
	}
}

// ContactReceived counts a contact form submission
func (b *BusinessMetrics) ContactReceived() {
	if b != nil {
		b.contactMessages.Inc()
	}
}

// AIGeneration counts a generation attempt
func (b *BusinessMetrics) AIGeneration(kind string, err error) {
	if b == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	b.aiGenerations.WithLabelValues(kind, outcome).Inc()
}

// QuotaRejected counts a rate-limited AI request
func (b *BusinessMetrics) QuotaRejected(action string) {
	if b != nil {
		b.quotaRejections.WithLabelValues(action).Inc()
	}
}

// JobRun counts a scheduled job execution
func (b *BusinessMetrics) JobRun(job string, err error) {
	if b == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	b.jobRuns.WithLabelValues(job, outcome).Inc()
}
