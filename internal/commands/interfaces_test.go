package commands

import (
	"github.com/nikmy/timebot/internal/users"
)

//go:generate mockgen -source interfaces_test.go -destination mocks_test.go -package commands

type responderImpl interface {
	Responder
}

type directoryImpl interface {
	users.Directory
}
