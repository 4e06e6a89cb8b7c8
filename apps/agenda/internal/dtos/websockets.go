package dtos

import (
	"time"
)

// SubscribeMessageDto selects the job whose refresh state a client follows.
type SubscribeMessageDto struct {
	Subject string `json:"subject"`
}

type StateMessageDto struct {
	Job          string     `json:"job"`
	IsRefreshing bool       `json:"isRefreshing"`
	LastRefresh  *time.Time `json:"lastRefresh"`
}

func (dto SubscribeMessageDto) Topic() string {
	return dto.Subject
}

func (dto SubscribeMessageDto) Validate() (bool, map[string]string) {
	errs := make(map[string]string)
	if dto.Subject == "" {
		errs["subject"] = "must be provided"
	}
	return len(errs) == 0, errs
}
