package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"stocksearch/service"
)

// WebhookHandler receives signed LINE webhook callbacks and echoes every
// text message back to its sender.
type WebhookHandler struct {
	channelSecret string
	replier       service.Replier
	log           *slog.Logger
}

func NewWebhookHandler(channelSecret string, replier service.Replier, log *slog.Logger) *WebhookHandler {
	return &WebhookHandler{channelSecret: channelSecret, replier: replier, log: log}
}

func (h *WebhookHandler) Callback(c *gin.Context) {
	callback, err := webhook.ParseRequest(h.channelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.log.Warn("invalid webhook signature")
		} else {
			h.log.Warn("failed to parse webhook request", "error", err)
		}
		c.String(http.StatusBadRequest, "bad request")
		return
	}

	for _, event := range callback.Events {
		messageEvent, ok := event.(webhook.MessageEvent)
		if !ok {
			continue
		}
		textMessage, ok := messageEvent.Message.(webhook.TextMessageContent)
		if !ok {
			continue
		}
		if err := h.replier.ReplyText(messageEvent.ReplyToken, textMessage.Text); err != nil {
			// send failures are not recovered locally
			h.log.Error("failed to send echo reply", "error", err)
			c.String(http.StatusInternalServerError, "internal server error")
			return
		}
	}

	c.String(http.StatusOK, "OK")
}
