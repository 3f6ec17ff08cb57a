package service

import (
	"fmt"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Replier sends a text reply back to the conversation a message came from.
type Replier interface {
	ReplyText(replyToken, text string) error
}

// LineReplier sends replies through the LINE Messaging API.
type LineReplier struct {
	api *messaging_api.MessagingApiAPI
}

func NewLineReplier(channelToken string) (*LineReplier, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging api client: %w", err)
	}
	return &LineReplier{api: api}, nil
}

func (r *LineReplier) ReplyText(replyToken, text string) error {
	_, err := r.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}
