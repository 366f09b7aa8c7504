package router

import (
	"github.com/AliaksandrTarashkevich/ppianieal/controllers/check"
	"github.com/AliaksandrTarashkevich/ppianieal/controllers/readProbe"
	"github.com/AliaksandrTarashkevich/ppianieal/controllers/webhook"

	"github.com/gin-gonic/gin"
)

const WebhookPath = "/telegram/webhook"

// Router serves the probes, and the telegram webhook when one is given.
func Router(scheduler check.ScheduleCounter, hook *webhook.WebhookController) *gin.Engine {
	route := gin.Default()

	route.GET("/read-probe", readProbe.Probe)
	route.GET("/check-live", check.CheckAlive(scheduler))
	if hook != nil {
		route.POST(WebhookPath, hook.Receive)
	}

	return route
}
