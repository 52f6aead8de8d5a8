package mail

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_dispatch_total",
			Help: "Verification mails handed to a dispatcher",
		},
		[]string{"dispatcher", "status"},
	)

	deliveryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_delivery_total",
			Help: "Verification mail delivery attempts",
		},
		[]string{"status"},
	)
)

func trackDelivery(err error) {
	if err != nil {
		deliveryTotal.WithLabelValues("failed").Inc()
		return
	}
	deliveryTotal.WithLabelValues("sent").Inc()
}
