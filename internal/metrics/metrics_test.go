// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex
// SPDX-License-Identifier: AGPL-3.0-or-later

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSkip(t *testing.T) {
	for _, source := range []string{"custom_marker", "last_chapter", "chapter", "marker"} {
		t.Run(source, func(t *testing.T) {
			RecordSkip(source)
		})
	}
}

func TestRecordVolumeChange(t *testing.T) {
	RecordVolumeChange("lower")
	RecordVolumeChange("restore")
}

func TestRecordAlert(t *testing.T) {
	RecordAlert("playing")
}

func TestRecordCommanderRPC(t *testing.T) {
	RecordCommanderRPC("seek", 10*time.Millisecond, "")
	RecordCommanderRPC("seek", 10*time.Millisecond, "transient")
}

func TestSetListenerConnected(t *testing.T) {
	SetListenerConnected(true)
	if v := testutil.ToFloat64(ListenerConnected); v != 1 {
		t.Errorf("expected 1, got %v", v)
	}
	SetListenerConnected(false)
	if v := testutil.ToFloat64(ListenerConnected); v != 0 {
		t.Errorf("expected 0, got %v", v)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordSkip("chapter")
			RecordVolumeChange("lower")
			RecordCommanderRPC("volume", time.Millisecond, "")
			ActiveSessions.Inc()
			ActiveSessions.Dec()
		}()
	}
	wg.Wait()
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		ActiveSessions,
		IgnoredSessions,
		SkipsTotal,
		VolumeChangesTotal,
		AlertsReceivedTotal,
		ListenerReconnectsTotal,
		ListenerConnected,
		CommanderRPCDuration,
		CommanderRPCErrors,
		CircuitBreakerState,
		BingeBlocksTotal,
	}

	for _, c := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		c.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Error("metric has no descriptors")
		}
	}
}
