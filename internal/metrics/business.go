package metrics

// IncrementDiscussionResolved increments the resolution counter
func (m *Metrics) IncrementDiscussionResolved() {
	m.safeExecute("IncrementDiscussionResolved", func() {
		m.DiscussionsResolvedTotal.Inc()
	})
}

// IncrementLikeToggled records a like toggle with its outcome
func (m *Metrics) IncrementLikeToggled(entityType string, liked bool) {
	m.safeExecute("IncrementLikeToggled", func() {
		action := "unlike"
		if liked {
			action = "like"
		}
		m.LikesToggledTotal.WithLabelValues(entityType, action).Inc()
	})
}

// IncrementBookingTransition records a successful status transition
func (m *Metrics) IncrementBookingTransition(from, to string) {
	m.safeExecute("IncrementBookingTransition", func() {
		m.BookingTransitionsTotal.WithLabelValues(from, to).Inc()
	})
}

// IncrementInvalidTransition records a rejected status transition
func (m *Metrics) IncrementInvalidTransition() {
	m.safeExecute("IncrementInvalidTransition", func() {
		m.InvalidTransitionsTotal.Inc()
	})
}

// IncrementPointsAwarded records a point award event
func (m *Metrics) IncrementPointsAwarded() {
	m.safeExecute("IncrementPointsAwarded", func() {
		m.PointsAwardedTotal.Inc()
	})
}

// IncrementBookingsExpired records pending bookings cancelled by the expiry job
func (m *Metrics) IncrementBookingsExpired(count int) {
	m.safeExecute("IncrementBookingsExpired", func() {
		m.BookingsExpiredTotal.Add(float64(count))
	})
}

// IncrementPaymentVerified records a verification decision
func (m *Metrics) IncrementPaymentVerified(decision string) {
	m.safeExecute("IncrementPaymentVerified", func() {
		m.PaymentsVerifiedTotal.WithLabelValues(decision).Inc()
	})
}
