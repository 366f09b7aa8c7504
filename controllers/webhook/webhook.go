package webhook

import (
	"net/http"

	"github.com/AliaksandrTarashkevich/ppianieal/services/telegram"
	"github.com/AliaksandrTarashkevich/ppianieal/services/trackLog"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Receiver parses a webhook request and hands its message to the submitter.
type Receiver interface {
	HandleWebhook(r *http.Request, submitter telegram.Submitter) error
}

type WebhookController struct {
	receiver  Receiver
	submitter telegram.Submitter
}

func New(receiver Receiver, submitter telegram.Submitter) *WebhookController {
	return &WebhookController{receiver: receiver, submitter: submitter}
}

// Receive answers 400 for bodies that are not telegram updates.
func (w *WebhookController) Receive(c *gin.Context) {
	if err := w.receiver.HandleWebhook(c.Request, w.submitter); err != nil {
		trackLog.WithFields(logrus.Fields{"task": "webhook", "error": err.Error()}).Warn("update rejected")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
