package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AppealsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appeals_created_total",
		Help: "Количество созданных обращений",
	})

	AppealsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appeals_processed_total",
		Help: "Количество обработанных обращений",
	})

	NotifyFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "Количество неудачных доставок уведомлений",
	})
)
