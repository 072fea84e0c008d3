package io

import (
	"errors"

	"github.com/ezrec/i8080/translate"
)

var f = translate.From

var (
	// Port errors
	ErrPortFull     = errors.New(f("port full"))
	ErrPortEmpty    = errors.New(f("port empty"))
	ErrPortReadOnly = errors.New(f("port read only"))
)
