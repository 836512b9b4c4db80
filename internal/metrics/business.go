package metrics

// Ledger outcomes of a single vote cast
const (
	VoteOutcomeCreated  = "created"
	VoteOutcomeRemoved  = "removed"
	VoteOutcomeSwitched = "switched"
)

// Thread cache lookup results
const (
	CacheResultHit   = "hit"
	CacheResultMiss  = "miss"
	CacheResultError = "error"
)

// IncrementPostCreated increments post creation counter
func (m *Metrics) IncrementPostCreated() {
	m.safeExecute("IncrementPostCreated", func() {
		m.PostCreatedTotal.Inc()
	})
}

// RecordVoteCast counts one applied vote cast
func (m *Metrics) RecordVoteCast(kind, outcome string) {
	m.safeExecute("RecordVoteCast", func() {
		m.VotesCastTotal.WithLabelValues(kind, outcome).Inc()
	})
}

// IncrementCommentCreated counts a new comment of the given type
func (m *Metrics) IncrementCommentCreated(commentType string) {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.WithLabelValues(commentType).Inc()
	})
}

// AddCommentsDeleted counts removed comments, replies included
func (m *Metrics) AddCommentsDeleted(count int) {
	m.safeExecute("AddCommentsDeleted", func() {
		m.CommentDeletedTotal.Add(float64(count))
	})
}

// RecordThreadCache counts a thread cache lookup
func (m *Metrics) RecordThreadCache(result string) {
	m.safeExecute("RecordThreadCache", func() {
		m.ThreadCacheRequestsTotal.WithLabelValues(result).Inc()
	})
}

// AddAggregateRepairs counts rows rewritten by reconciliation
func (m *Metrics) AddAggregateRepairs(target string, rows int64) {
	if rows <= 0 {
		return
	}
	m.safeExecute("AddAggregateRepairs", func() {
		m.AggregateRepairsTotal.WithLabelValues(target).Add(float64(rows))
	})
}

// SetPostsTotal sets total posts gauge
func (m *Metrics) SetPostsTotal(count int64) {
	m.safeExecute("SetPostsTotal", func() {
		m.PostsTotal.Set(float64(count))
	})
}

// SetCommentsTotal sets total comments gauge
func (m *Metrics) SetCommentsTotal(count int64) {
	m.safeExecute("SetCommentsTotal", func() {
		m.CommentsTotal.Set(float64(count))
	})
}

// SetVotesTotal sets total votes gauge
func (m *Metrics) SetVotesTotal(count int64) {
	m.safeExecute("SetVotesTotal", func() {
		m.VotesTotal.Set(float64(count))
	})
}
