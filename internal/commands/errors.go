package commands

import "github.com/nikmy/timebot/pkg/errors"

var (
	ErrUsage               = errors.New("bad command arguments")
	ErrUnknownCommand      = errors.New("unknown command")
	ErrUpstreamUnavailable = errors.New("chat platform unavailable")
)

const genericFailure = "Произошла ошибка при обработке вашего запроса."

var failures = map[string]string{
	AddLocation:    "Произошла ошибка при добавлении локации. Пожалуйста, попробуйте еще раз.",
	DeleteLocation: "Произошла ошибка при удалении локации. Пожалуйста, попробуйте еще раз.",
}

// complaint is an error the requester can act upon, with the text to show them.
type complaint struct {
	err error
	msg string
}

func (c *complaint) Error() string {
	return c.err.Error()
}

func (c *complaint) Unwrap() error {
	return c.err
}

func complain(err error, msg string) error {
	return &complaint{err: err, msg: msg}
}

// explain turns err into the text shown to the requester of cmd.
func explain(cmd string, err error) string {
	var c *complaint
	if errors.As(err, &c) {
		return c.msg
	}

	if msg, ok := failures[cmd]; ok {
		return msg
	}
	return genericFailure
}

// IsRejection reports whether err was caused by the requester's input
// rather than by a failure of the bot or its dependencies.
func IsRejection(err error) bool {
	var c *complaint
	return errors.As(err, &c)
}
