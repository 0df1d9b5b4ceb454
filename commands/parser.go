package commands

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"moderation-bot/model"
)

// Parse failures. Each maps to a correction hint shown back to the chat.
var (
	ErrMalformedCommand = errors.New("malformed punishment command")
	ErrInvalidNickname  = errors.New("invalid player nickname")
	ErrInvalidDuration  = errors.New("invalid punishment duration")
	ErrMissingSignature = errors.New("missing admin signature")
)

var (
	nicknamePattern = regexp.MustCompile(`^[A-Za-z_]+$`)
	durationPattern = regexp.MustCompile(`^[0-9]+$`)
)

// PunishmentRequest is a validated punishment command.
// Duration is minutes for mute/warn and days for ban.
type PunishmentRequest struct {
	Type     model.FormType
	Nickname string
	Duration int
	Reason   string
	Signer   string
}

// ParsePunishment validates a raw /mute, /warn or /ban command and extracts
// its fields. It is pure: no store access, no side effects.
func ParsePunishment(text string) (*PunishmentRequest, error) {
	parts := strings.Fields(text)
	if len(parts) < 5 {
		return nil, ErrMalformedCommand
	}

	formType, ok := punishmentVerbs[parts[0]]
	if !ok {
		return nil, ErrMalformedCommand
	}

	nickname := parts[1]
	if !nicknamePattern.MatchString(nickname) {
		return nil, ErrInvalidNickname
	}

	if !durationPattern.MatchString(parts[2]) {
		return nil, ErrInvalidDuration
	}
	duration, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, ErrInvalidDuration
	}

	rest := strings.Join(parts[3:], " ")
	sep := strings.Index(rest, "|")
	if sep < 0 {
		return nil, ErrMissingSignature
	}

	return &PunishmentRequest{
		Type:     formType,
		Nickname: nickname,
		Duration: duration,
		Reason:   strings.TrimSpace(rest[:sep]),
		Signer:   strings.TrimSpace(rest[sep+1:]),
	}, nil
}

// ParseHint returns the correction text for a parse failure.
func ParseHint(err error) string {
	switch {
	case errors.Is(err, ErrInvalidNickname):
		return "Неверный формат никнейма: допустимы только латинские буквы и подчёркивание."
	case errors.Is(err, ErrInvalidDuration):
		return "Неверный формат времени: укажите целое число."
	case errors.Is(err, ErrMissingSignature):
		return "Отсутствует информация об администраторе: добавьте '|' и подпись."
	default:
		return "Неверный формат команды."
	}
}
