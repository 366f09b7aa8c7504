package telegram

import (
	"testing"

	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestConvertText(t *testing.T) {
	update := tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7},
		Chat: &tgbotapi.Chat{ID: 70},
		Text: "  вес 80  ",
		Date: 1710244800,
	}}
	msg, ok := Convert(update)
	if !ok {
		t.Fatal("text update ignored")
	}
	if msg.UserID != 7 || msg.ChatID != 70 || msg.Text != "вес 80" || msg.IsCommand() {
		t.Fatalf("msg = %+v", msg)
	}
	if msg.ReceivedAt.Unix() != 1710244800 {
		t.Fatalf("received at %v", msg.ReceivedAt)
	}
}

func TestConvertCommand(t *testing.T) {
	update := tgbotapi.Update{Message: &tgbotapi.Message{
		From:     &tgbotapi.User{ID: 7},
		Chat:     &tgbotapi.Chat{ID: 7},
		Text:     "/track шаги 9000 вчера",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
	}}
	msg, ok := Convert(update)
	if !ok || msg.Command != "track" || msg.CommandArgs != "шаги 9000 вчера" {
		t.Fatalf("msg = %+v, ok = %v", msg, ok)
	}
}

func TestConvertPhotoPicksLargest(t *testing.T) {
	update := tgbotapi.Update{Message: &tgbotapi.Message{
		From:    &tgbotapi.User{ID: 7},
		Chat:    &tgbotapi.Chat{ID: 7},
		Caption: "гречка 80г",
		Photo:   []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "medium"}, {FileID: "large"}},
	}}
	msg, ok := Convert(update)
	if !ok || !msg.HasPhoto() || msg.PhotoFileID != "large" || msg.Caption != "гречка 80г" {
		t.Fatalf("msg = %+v, ok = %v", msg, ok)
	}
}

func TestConvertIgnoresOtherUpdates(t *testing.T) {
	cases := []tgbotapi.Update{
		{},
		{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "channel post"}},
		{Message: &tgbotapi.Message{From: &tgbotapi.User{ID: 1}, Chat: &tgbotapi.Chat{ID: 1}}},
	}
	for i, update := range cases {
		if _, ok := Convert(update); ok {
			t.Errorf("case %d: update not ignored", i)
		}
	}
}

func TestBuildChattable(t *testing.T) {
	keyboard := &structs.Keyboard{Rows: [][]string{{"a", "b"}, {"c"}}, OneTime: true, Placeholder: "pick"}
	message, ok := buildChattable(structs.OutgoingMessage{ChatID: 3, Text: "*hi*", Markdown: true, Keyboard: keyboard}).(tgbotapi.MessageConfig)
	if !ok {
		t.Fatal("text message must build a MessageConfig")
	}
	if message.ParseMode != tgbotapi.ModeMarkdown {
		t.Fatalf("parse mode = %q", message.ParseMode)
	}
	markup, ok := message.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok || len(markup.Keyboard) != 2 || markup.Keyboard[0][1].Text != "b" || !markup.OneTimeKeyboard || !markup.ResizeKeyboard {
		t.Fatalf("markup = %+v", message.ReplyMarkup)
	}

	photo, ok := buildChattable(structs.OutgoingMessage{ChatID: 3, Text: "caption", PhotoURL: "https://img/x.jpg", RemoveKeyboard: true}).(tgbotapi.PhotoConfig)
	if !ok || photo.Caption != "caption" {
		t.Fatalf("photo = %+v", photo)
	}
	if _, ok := photo.ReplyMarkup.(tgbotapi.ReplyKeyboardRemove); !ok {
		t.Fatalf("reply markup = %+v, want keyboard removal", photo.ReplyMarkup)
	}
}
