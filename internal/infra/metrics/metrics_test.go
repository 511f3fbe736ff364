//go:build !integration

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegisterOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustRegister(reg)
	// second call must not panic on duplicate registration
	MustRegister(reg)

	ObserveShopAPI("orders", "OK", 120*time.Millisecond)
	IncTelegramCommand(" /Catalog ")
	IncTelegramReply("text", errors.New("boom"))
	SetBuildInfo("", "")

	if got := testutil.ToFloat64(shopAPIRequestsTotal.WithLabelValues("orders", "ok")); got != 1 {
		t.Errorf("expected 1 orders/ok request, got %v", got)
	}
	if got := testutil.ToFloat64(telegramCommandsReceivedTotal.WithLabelValues("/catalog")); got != 1 {
		t.Errorf("expected normalized command label, got %v", got)
	}
	if got := testutil.ToFloat64(telegramRepliesTotal.WithLabelValues("text", "error")); got != 1 {
		t.Errorf("expected 1 failed text reply, got %v", got)
	}
	if got := testutil.ToFloat64(buildInfo.WithLabelValues("dev", "dev")); got != 1 {
		t.Errorf("expected build info gauge set, got %v", got)
	}
}
