package duckduckgo

import "github.com/pkg/errors"

var ErrCaptcha = errors.New("captcha challenge")
