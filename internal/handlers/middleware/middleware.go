package middleware

import (
	logger "github.com/Bparsons0904/goLogger"
)

type TokenParser interface {
	ParseToken(token string) (int, error)
}

type Middleware struct {
	tokens TokenParser
	log    logger.Logger
}

func New(tokens TokenParser) Middleware {
	return Middleware{
		tokens: tokens,
		log:    logger.New("middleware"),
	}
}
