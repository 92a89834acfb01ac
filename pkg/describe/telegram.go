package describe

import (
	"strconv"

	tele "gopkg.in/telebot.v4"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

// telegramMessageRef is "<chat id>/<message id>". Telegram has no stable
// public link for messages in private chats or basic groups.
func telegramMessageRef(m *tele.Message) string {
	chat := Undefined
	if m.Chat != nil {
		chat = itoa(m.Chat.ID)
	}
	return chat + "/" + strconv.Itoa(m.ID)
}

// callbackID is the button's unique name when it has one, else its raw data.
func callbackID(c *tele.Callback) string {
	return firstNonEmpty(c.Unique, c.Data)
}
