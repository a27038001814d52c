package server

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
)

type MetricsHelper struct {
	SubmitCounter  prometheus.Counter     // 指令提交qps
	FailureCounter *prometheus.CounterVec // 按错误码统计失败
}

func NewMetricsHelper(pushAddr string) *MetricsHelper {
	submitCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scribble_instruction_submit_counter",
	})
	failureCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scribble_operation_failure_counter",
	}, []string{"code"})
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		submitCounter,
		failureCounter,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pusher := push.New(pushAddr, "scribble").Gatherer(registry)
	go func() {
		for {
			if err := pusher.Add(); err != nil {
				log.Printf("prometheus pusher push failed. err: %v", err)
			}
			time.Sleep(15 * time.Second)
		}
	}()

	return &MetricsHelper{
		SubmitCounter:  submitCounter,
		FailureCounter: failureCounter,
	}
}
