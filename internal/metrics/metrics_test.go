package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSignupTransition(t *testing.T) {
	before := testutil.ToFloat64(SignupTransitionsTotal.WithLabelValues("join", "ok"))
	RecordSignupTransition("join", "ok")
	after := testutil.ToFloat64(SignupTransitionsTotal.WithLabelValues("join", "ok"))

	assert.Equal(t, before+1, after)
}

func TestRecordSlotsPublished(t *testing.T) {
	before := testutil.ToFloat64(SlotsPublishedTotal)
	RecordSlotsPublished(4)
	after := testutil.ToFloat64(SlotsPublishedTotal)

	assert.Equal(t, before+4, after)
}

func TestRecordPayment(t *testing.T) {
	before := testutil.ToFloat64(PaymentsRecordedTotal.WithLabelValues("sinpe"))
	RecordPayment("sinpe")
	after := testutil.ToFloat64(PaymentsRecordedTotal.WithLabelValues("sinpe"))

	assert.Equal(t, before+1, after)
}
