package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	"github.com/taskboard/backend/internal/infrastructure/monitor"
	"github.com/taskboard/backend/pkg/httpcontext"
)

func TestHealthCheckDegradedWhenDependenciesDown(t *testing.T) {
	// A monitor that never ran a check reports every dependency offline.
	mon := monitor.New(nil, nil, nil, time.Minute, nil)
	h := NewHealthHandler(mon, httpcontext.NewAdapter(time.Second), nil)

	var ctx fasthttp.RequestCtx
	h.Check(&ctx)

	assert.Equal(t, fasthttp.StatusServiceUnavailable, ctx.Response.StatusCode())
	body := string(ctx.Response.Body())
	assert.Contains(t, body, "DEGRADED")
	assert.Contains(t, body, `"postgresql":false`)
	assert.Contains(t, body, `"redis":false`)
}
