package events

import "errors"

var (
	// ErrPublish возвращается при ошибке отправки события
	ErrPublish = errors.New("events: failed to publish")

	// ErrConfig возвращается при некорректной конфигурации издателя
	ErrConfig = errors.New("events: invalid publisher config")
)
