// Package feedback is the single place user-facing failure messages are produced and reported.
package feedback

import "github.com/hongminglow/labubu-portal/internal/remote"

// User-facing messages. The portal speaks Russian, like its badges and amounts.
const (
	MsgConnectionError  = "Ошибка подключения к серверу"
	MsgPasswordMismatch = "Пароли не совпадают"
	MsgPasswordTooShort = "Пароль должен содержать минимум 6 символов"
	MsgAmountOutOfRange = "Сумма должна быть от 1,000 до 100,000 ₽"
	MsgTermOutOfRange   = "Срок должен быть от 7 до 365 дней"
	MsgInvalidAmount    = "Введите корректную сумму"
	MsgLoginFailed      = "Ошибка входа"
	MsgRegisterFailed   = "Ошибка регистрации"
	MsgLoanFailed       = "Ошибка создания заявки"
	MsgTransferFailed   = "Ошибка перевода"
	MsgLoadFailed       = "Не удалось загрузить данные"
)

// Kind says how a message is presented.
type Kind string

const (
	// Inline messages sit next to the form that produced them.
	Inline Kind = "inline"
	// Alert messages block the page until acknowledged.
	Alert Kind = "alert"
)

// Message is a reported failure.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Reporter receives failures from form controllers.
type Reporter interface {
	Report(text string)
	Clear()
	Current() *Message
}

// Box is a Reporter that keeps the latest message.
type Box struct {
	kind Kind
	msg  *Message
}

func NewInline() *Box { return &Box{kind: Inline} }

func NewAlert() *Box { return &Box{kind: Alert} }

func (b *Box) Report(text string) {
	b.msg = &Message{Kind: b.kind, Text: text}
}

func (b *Box) Clear() {
	b.msg = nil
}

func (b *Box) Current() *Message {
	return b.msg
}

// Describe maps a failed upstream call to the text shown to the visitor.
// Domain rejections show the upstream error, or fallback when it is empty;
// everything else is a connection error.
func Describe(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if rej, ok := remote.AsRejection(err); ok {
		if rej.Message != "" {
			return rej.Message
		}
		return fallback
	}
	return MsgConnectionError
}
