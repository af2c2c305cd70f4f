package telegram

// InlineKeyboardMarkup is the transport-neutral inline keyboard attached to
// watch cards and buy-links replies.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton
}

// InlineKeyboardButton carries either CallbackData (refresh button) or a URL
// (DexScreener, trading bot deep links), never both.
type InlineKeyboardButton struct {
	Text         string
	CallbackData string
	URL          string
}

// NewInlineKeyboardMarkup builds a keyboard from rows
func NewInlineKeyboardMarkup(rows ...[]InlineKeyboardButton) InlineKeyboardMarkup {
	return InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

// NewInlineKeyboardRow builds one row of buttons
func NewInlineKeyboardRow(buttons ...InlineKeyboardButton) []InlineKeyboardButton {
	return buttons
}

// NewInlineKeyboardButtonData builds a callback button
func NewInlineKeyboardButtonData(text, callbackData string) InlineKeyboardButton {
	return InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// NewInlineKeyboardButtonURL builds a link button
func NewInlineKeyboardButtonURL(text, url string) InlineKeyboardButton {
	return InlineKeyboardButton{
		Text: text,
		URL:  url,
	}
}
